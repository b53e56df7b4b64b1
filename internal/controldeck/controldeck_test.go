package controldeck

import (
	"testing"

	"gones/internal/input"
	"gones/internal/memory"
)

// buildNROMImage builds a minimal one-bank NROM iNES image with no CHR ROM.
func buildNROMImage() []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16384)
	return append(header, prg...)
}

func TestLoadROMAttachesCartridgeAndPowersOn(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	if !cd.IsPoweredOn() {
		t.Fatalf("expected deck to be powered on after LoadROM")
	}
	if cd.Bus.Cart == nil {
		t.Fatalf("expected a cartridge to be attached to the bus")
	}
}

func TestLoadROMRejectsBadMagic(t *testing.T) {
	cd := New()
	bad := buildNROMImage()
	bad[0] = 'X'
	if err := cd.LoadROM("bad.nes", bad); err == nil {
		t.Fatalf("expected an error for a malformed iNES header")
	}
}

func TestClockAdvancesCycleCount(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	before := cd.Bus.GetCycleCount()
	spent := cd.Clock()
	if spent == 0 {
		t.Fatalf("Clock() reported 0 cycles consumed")
	}
	if cd.Bus.GetCycleCount() != before+spent {
		t.Fatalf("cycle count did not advance by the reported spent cycles")
	}
}

func TestClockFrameAdvancesFrameCount(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	startFrame := cd.Bus.GetFrameCount()
	cd.ClockFrame()
	if cd.Bus.GetFrameCount() != startFrame+1 {
		t.Fatalf("ClockFrame should advance the frame counter by exactly 1")
	}
}

func TestClockScanlineAdvancesScanline(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	startScanline := cd.Bus.GetPPUState().Scanline
	cd.ClockScanline()
	if cd.Bus.GetPPUState().Scanline == startScanline {
		t.Fatalf("ClockScanline should leave the scanline counter changed")
	}
}

func TestClockSecondsBudgetsWholeCycles(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	before := cd.Bus.GetCycleCount()
	cd.ClockSeconds(1.0 / 60.0)
	after := cd.Bus.GetCycleCount()
	if after <= before {
		t.Fatalf("ClockSeconds should have consumed cycles")
	}
	wantApprox := uint64(CPUClockRateNTSC / 60)
	got := after - before
	if got < wantApprox-400 || got > wantApprox+400 {
		t.Fatalf("ClockSeconds(1/60) consumed %d cycles, want approximately %d", got, wantApprox)
	}
}

func TestPowerCycleReinitializesRAMPerPolicy(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	cd.SetRAMInitPolicy(memory.RAMInitFF, nil)
	cd.Bus.Memory.Write(0x0000, 0x00)
	cd.PowerCycle()
	if got := cd.Bus.Memory.Read(0x0000); got != 0xFF {
		t.Fatalf("after PowerCycle with RAMInitFF, RAM[0] = %#02x, want 0xFF", got)
	}
}

func TestResetDoesNotTouchRAM(t *testing.T) {
	cd := New()
	if err := cd.LoadROM("test.nes", buildNROMImage()); err != nil {
		t.Fatalf("LoadROM failed: %v", err)
	}
	cd.Bus.Memory.Write(0x0010, 0x42)
	cd.Reset()
	if got := cd.Bus.Memory.Read(0x0010); got != 0x42 {
		t.Fatalf("Reset must leave RAM untouched, got %#02x", got)
	}
}

func TestSetTurboAppliesToCorrectController(t *testing.T) {
	cd := New()
	cd.SetTurbo(2, input.ButtonB, true)
	cd.Bus.Input.Controller2.SetButton(input.ButtonB, true)

	// Controller1 must be unaffected; only controller 2 had turbo enabled.
	cd.Bus.Input.Controller1.SetButton(input.ButtonB, true)

	cd.Bus.Input.TickTurboFrame()
	cd.Bus.Input.TickTurboFrame()
	cd.Bus.Input.TickTurboFrame()

	if !cd.Bus.Input.Controller1.IsPressed(input.ButtonB) {
		t.Fatalf("controller 1's B button should be unaffected by controller 2's turbo setting")
	}
}
