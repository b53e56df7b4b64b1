package nesstate

import (
	"testing"

	"gones/internal/bus"
	"gones/internal/cartridge"
)

func newTestCart() *cartridge.Cart {
	prg := make([]uint8, 0x4000)
	return cartridge.NewCart(prg, nil, 0, cartridge.MirrorHorizontal, false)
}

func TestSaveAndLoadRoundTripsRAM(t *testing.T) {
	b := bus.New()
	b.LoadCartridge(newTestCart())

	b.Memory.Write(0x0000, 0xAB)
	b.Memory.Write(0x0123, 0xCD)

	data, err := Save(b)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	b.Memory.Write(0x0000, 0x00)
	b.Memory.Write(0x0123, 0x00)

	if err := Load(b, data); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := b.Memory.Read(0x0000); got != 0xAB {
		t.Fatalf("RAM[0x0000] = %#02x after restore, want 0xAB", got)
	}
	if got := b.Memory.Read(0x0123); got != 0xCD {
		t.Fatalf("RAM[0x0123] = %#02x after restore, want 0xCD", got)
	}
}

func TestRestoreRejectsVersionMismatch(t *testing.T) {
	b := bus.New()
	b.LoadCartridge(newTestCart())

	c := Capture(b)
	c.Version = Version + 1

	if err := Restore(b, c); err == nil {
		t.Fatalf("expected a version-mismatch error")
	}
}

func TestCaptureIncludesCartridgeState(t *testing.T) {
	b := bus.New()
	b.LoadCartridge(newTestCart())

	b.Cart.PrgRAM[0] = 0x42

	c := Capture(b)
	if !c.HasCart {
		t.Fatalf("expected HasCart to be true with a cartridge loaded")
	}
	if c.Cart.PRGRAM[0] != 0x42 {
		t.Fatalf("captured PRG-RAM did not reflect the written byte")
	}
}

func TestCaptureWithoutCartridgeOmitsCartState(t *testing.T) {
	b := bus.New()
	c := Capture(b)
	if c.HasCart {
		t.Fatalf("expected HasCart to be false with no cartridge loaded")
	}
}
