package app

import (
	"os"
	"path/filepath"
	"testing"

	"gones/internal/bus"
	"gones/internal/cartridge"
)

func newTestBus(t *testing.T) *bus.Bus {
	t.Helper()
	cart := cartridge.NewCart(make([]uint8, 16384), nil, 0, cartridge.MirrorHorizontal, false)
	b := bus.New()
	b.LoadCartridge(cart)
	return b
}

func TestStateManagerSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sm := NewStateManager(dir)
	b := newTestBus(t)

	b.Run(3)
	savedFrames := b.GetFrameCount()
	savedCycles := b.GetCycleCount()

	if err := sm.SaveState(b, 0, "mario.nes"); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	// Diverge the live bus so a restore is actually observable.
	b.Reset()
	if b.GetFrameCount() == savedFrames && b.GetCycleCount() == savedCycles {
		b.Run(2)
	}

	if err := sm.LoadState(b, 0, "mario.nes"); err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}

	if got := b.GetFrameCount(); got != savedFrames {
		t.Errorf("frame count after restore = %d, want %d", got, savedFrames)
	}
	if got := b.GetCycleCount(); got != savedCycles {
		t.Errorf("cycle count after restore = %d, want %d", got, savedCycles)
	}
}

func TestStateManagerLoadRejectsMismatchedROM(t *testing.T) {
	dir := t.TempDir()
	sm := NewStateManager(dir)
	b := newTestBus(t)

	if err := sm.SaveState(b, 0, "mario.nes"); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	if err := sm.LoadState(b, 0, "zelda.nes"); err == nil {
		t.Fatal("LoadState with a different ROM path should fail, got nil error")
	}
}

func TestStateManagerHasAndDeleteSaveState(t *testing.T) {
	dir := t.TempDir()
	sm := NewStateManager(dir)
	b := newTestBus(t)

	if sm.HasSaveState(1, "mario.nes") {
		t.Fatal("HasSaveState should be false before any save")
	}

	if err := sm.SaveState(b, 1, "mario.nes"); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if !sm.HasSaveState(1, "mario.nes") {
		t.Fatal("HasSaveState should be true after SaveState")
	}

	if err := sm.DeleteState(1, "mario.nes"); err != nil {
		t.Fatalf("DeleteState failed: %v", err)
	}
	if sm.HasSaveState(1, "mario.nes") {
		t.Fatal("HasSaveState should be false after DeleteState")
	}
}

func TestStateManagerExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sm := NewStateManager(dir)
	b := newTestBus(t)
	b.Run(1)

	exportPath := filepath.Join(dir, "exported.state")
	if err := sm.ExportState(b, exportPath, "mario.nes"); err != nil {
		t.Fatalf("ExportState failed: %v", err)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	b.Reset()
	if err := sm.ImportState(b, exportPath, "mario.nes"); err != nil {
		t.Fatalf("ImportState failed: %v", err)
	}
}
