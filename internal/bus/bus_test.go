package bus

import (
	"testing"

	"gones/internal/cartridge"
	"gones/internal/region"
)

func newTestBusWithCart(t *testing.T) *Bus {
	t.Helper()
	cart := cartridge.NewCart(make([]uint8, 16384), nil, 0, cartridge.MirrorHorizontal, false)
	b := New()
	b.LoadCartridge(cart)
	return b
}

func TestDefaultRegionIsNTSC(t *testing.T) {
	b := newTestBusWithCart(t)
	if b.Region() != region.NTSC {
		t.Fatalf("default region = %v, want NTSC", b.Region())
	}
}

func TestGetFrameRateDiffersByRegion(t *testing.T) {
	b := newTestBusWithCart(t)

	ntscRate := b.GetFrameRate()
	b.SetRegion(region.PAL)
	palRate := b.GetFrameRate()

	if ntscRate == palRate {
		t.Fatalf("NTSC and PAL frame rates should differ, both = %v", ntscRate)
	}
	if palRate < 49 || palRate > 51 {
		t.Errorf("PAL frame rate = %v, want ~50", palRate)
	}
	if ntscRate < 59 || ntscRate > 61 {
		t.Errorf("NTSC frame rate = %v, want ~60", ntscRate)
	}
}

func TestPALStepsPPUAtHigherAverageRatio(t *testing.T) {
	ntsc := newTestBusWithCart(t)
	pal := newTestBusWithCart(t)
	pal.SetRegion(region.PAL)

	const steps = 1000
	for i := 0; i < steps; i++ {
		ntsc.Step()
		pal.Step()
	}

	if pal.ppuCycles <= ntsc.ppuCycles {
		t.Fatalf("PAL ppuCycles = %d, want more than NTSC's %d (ratio 3.2 vs 3.0)", pal.ppuCycles, ntsc.ppuCycles)
	}
}

func TestGetPPUStateDoesNotClearVBlank(t *testing.T) {
	b := newTestBusWithCart(t)
	b.PPU.WriteRegister(0x2000, 0x80) // enable NMI on vblank, doesn't matter here
	b.PPU.Reset()

	// Step the bus until the PPU enters VBlank.
	b.PPU.WriteRegister(0x2000, 0x00)
	for !b.PPU.IsVBlank() {
		b.Step()
	}

	before := b.PPU.IsVBlank()
	state := b.GetPPUState()
	after := b.PPU.IsVBlank()

	if !before {
		t.Fatal("expected VBlank to be set before querying state")
	}
	if !state.VBlankFlag {
		t.Fatal("GetPPUState().VBlankFlag should reflect the set VBlank flag")
	}
	if !after {
		t.Fatal("GetPPUState must not clear the VBlank flag as a side effect")
	}
}
