package cartridge

import "testing"

func nromCart(prgBanks int) *Cart {
	prg := make([]uint8, prgBanks*0x4000)
	for i := range prg {
		prg[i] = uint8(i)
	}
	return NewCart(prg, nil, 0, MirrorHorizontal, false)
}

func TestNROMSingleBankMirrors(t *testing.T) {
	c := nromCart(1)
	if c.ReadPRG(0x8000) != c.ReadPRG(0xC000) {
		t.Fatalf("16KB NROM must mirror $8000 and $C000")
	}
}

func TestNROMTwoBanksDoNotMirror(t *testing.T) {
	c := nromCart(2)
	c.PrgROM[0] = 0xAA
	c.PrgROM[0x4000] = 0xBB
	if c.ReadPRG(0x8000) != 0xAA || c.ReadPRG(0xC000) != 0xBB {
		t.Fatalf("32KB NROM must not mirror banks")
	}
}

func TestCHRRAMIsWritable(t *testing.T) {
	c := nromCart(1)
	c.WriteCHR(0x0010, 0x7E)
	if got := c.ReadCHR(0x0010); got != 0x7E {
		t.Fatalf("CHR RAM read-after-write = %#02x, want 0x7e", got)
	}
}

func TestUxROMBankSwitchLastBankFixed(t *testing.T) {
	prg := make([]uint8, 4*0x4000)
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 0x4000; i++ {
			prg[bank*0x4000+i] = uint8(bank)
		}
	}
	c := NewCart(prg, nil, 2, MirrorHorizontal, false)
	c.WritePRG(0x8000, 0x02)
	if got := c.ReadPRG(0x8000); got != 2 {
		t.Fatalf("switchable bank = %d, want 2", got)
	}
	if got := c.ReadPRG(0xC000); got != 3 {
		t.Fatalf("fixed last bank = %d, want 3", got)
	}
}

func TestMMC1ControlShiftRegister(t *testing.T) {
	prg := make([]uint8, 4*0x4000)
	c := NewCart(prg, nil, 1, MirrorHorizontal, false)
	writeMMC1 := func(addr uint16, value uint8) {
		for i := 0; i < 5; i++ {
			c.WritePRG(addr, (value>>uint(i))&1)
		}
	}
	writeMMC1(0x8000, 0x08) // control: fix first bank, switch $C000, CHR 8KB mode
	if c.state.control&0x0C != 0x08 {
		t.Fatalf("control register = %#02x, want PRG mode bits = 0x08", c.state.control&0x0C)
	}
}

func TestMirroringDefaultsToHeaderValue(t *testing.T) {
	c := nromCart(1)
	if c.Mirroring() != MirrorHorizontal {
		t.Fatalf("NROM mirroring must pass through the header value")
	}
}

func TestAxROMSingleScreenMirroring(t *testing.T) {
	prg := make([]uint8, 8*0x8000)
	c := NewCart(prg, nil, 7, MirrorHorizontal, false)
	c.WritePRG(0x8000, 0x10) // select single-screen page 1
	if c.Mirroring() != MirrorSingleScreen1 {
		t.Fatalf("AxROM mirroring = %v, want MirrorSingleScreen1", c.Mirroring())
	}
}

func TestMirrorNotifyFiresOnRegisterWrite(t *testing.T) {
	prg := make([]uint8, 8*0x8000)
	c := NewCart(prg, nil, 7, MirrorHorizontal, false)

	var notified Mirroring
	calls := 0
	c.SetMirrorNotify(func(m Mirroring) {
		notified = m
		calls++
	})

	c.WritePRG(0x8000, 0x10) // AxROM: select single-screen page 1

	if calls == 0 {
		t.Fatalf("mirror notify callback was never invoked on a mapper register write")
	}
	if notified != MirrorSingleScreen1 {
		t.Fatalf("mirror notify reported %v, want MirrorSingleScreen1", notified)
	}
}

func TestRefreshMirroringReinvokesNotify(t *testing.T) {
	prg := make([]uint8, 8*0x8000)
	c := NewCart(prg, nil, 7, MirrorHorizontal, false)
	c.WritePRG(0x8000, 0x10) // select single-screen page 1 before the notify is wired

	var notified Mirroring
	c.SetMirrorNotify(func(m Mirroring) { notified = m })
	c.RefreshMirroring()

	if notified != MirrorSingleScreen1 {
		t.Fatalf("RefreshMirroring reported %v, want MirrorSingleScreen1", notified)
	}
}

// bankedPrg builds a PRG ROM of the given 8KB-bank count, each bank filled
// with its own index so bank-switch tests can assert on the byte read back.
func bankedPrg(banks8k int) []uint8 {
	prg := make([]uint8, banks8k*0x2000)
	for bank := 0; bank < banks8k; bank++ {
		for i := 0; i < 0x2000; i++ {
			prg[bank*0x2000+i] = uint8(bank)
		}
	}
	return prg
}

func TestMMC3PRGSlotsSwapModeOff(t *testing.T) {
	c := NewCart(bankedPrg(8), nil, 4, MirrorHorizontal, false) // 4 16KB banks, last 8KB bank = 7
	c.WritePRG(0x8000, 6) // bank-select register 6 (even addr, swap mode off)
	c.WritePRG(0x8001, 3) // R6 = bank 3
	if got := c.ReadPRG(0x8000); got != 3 {
		t.Fatalf("MMC3 $8000 (R6, swap off) = %d, want 3", got)
	}
	if got := c.ReadPRG(0xC000); got != 6 {
		t.Fatalf("MMC3 $C000 (second-to-last 8KB bank) = %d, want 6", got)
	}
	if got := c.ReadPRG(0xE000); got != 7 {
		t.Fatalf("MMC3 $E000 (last 8KB bank, always fixed) = %d, want 7", got)
	}
}

func TestMMC5SingleSwitchable32KBWindow(t *testing.T) {
	c := NewCart(bankedPrg(16), nil, 5, MirrorHorizontal, false) // 4x 32KB banks
	c.WritePRG(0x5100, 2)
	if got := c.ReadPRG(0x8000); got != 8 {
		t.Fatalf("MMC5 $8000 after selecting 32KB bank 2 = %d, want 8 (bank 2's first 8KB sub-bank)", got)
	}
}

func TestGxROMSwitchesBothPRGAndCHRBanks(t *testing.T) {
	c := NewCart(bankedPrg(8), nil, 66, MirrorHorizontal, false) // 2x 32KB banks
	c.WritePRG(0x8000, 0x10) // PRG bank 1 (bits 4-5), CHR bank 0
	if got := c.ReadPRG(0x8000); got != 4 {
		t.Fatalf("GxROM $8000 after selecting PRG bank 1 = %d, want 4 (bank 1's first 8KB sub-bank)", got)
	}
}

func TestBf909xBankSwitchLastBankFixed(t *testing.T) {
	c := NewCart(bankedPrg(8), nil, 71, MirrorHorizontal, false) // 4x 16KB banks, last = 7
	c.WritePRG(0x8000, 1)
	if got := c.ReadPRG(0x8000); got != 2 {
		t.Fatalf("Bf909x switchable $8000 after selecting bank 1 = %d, want 2 (bank 1's first 8KB sub-bank)", got)
	}
	if got := c.ReadPRG(0xC000); got != 6 {
		t.Fatalf("Bf909x fixed $C000 = %d, want 6 (last 16KB bank's first 8KB sub-bank)", got)
	}
}

func TestMMC2FixedRegionIsLastThreeEightKBBanks(t *testing.T) {
	// 6 8KB banks (0xC000 total): switchable $8000-$9FFF, fixed $A000-$FFFF
	// is the *last three* 8KB banks (3, 4, 5) -- not the last 16KB-aligned
	// bank, which would start one 8KB bank too late and scramble this window.
	c := NewCart(bankedPrg(6), nil, 9, MirrorHorizontal, false)
	c.WritePRG(0xA000, 2) // switchable bank = 2
	if got := c.ReadPRG(0x8000); got != 2 {
		t.Fatalf("MMC2 switchable $8000 = %d, want 2", got)
	}
	if got := c.ReadPRG(0xA000); got != 3 {
		t.Fatalf("MMC2 fixed $A000 = %d, want 3 (first of the last three 8KB banks)", got)
	}
	if got := c.ReadPRG(0xC000); got != 4 {
		t.Fatalf("MMC2 fixed $C000 = %d, want 4", got)
	}
	if got := c.ReadPRG(0xE000); got != 5 {
		t.Fatalf("MMC2 fixed $E000 = %d, want 5 (last 8KB bank)", got)
	}
}

func TestMMC4Has16KBSwitchableAnd16KBFixedWindows(t *testing.T) {
	// MMC4/Fxrom is not MMC2 with a relabeled PRG scheme: it switches a full
	// 16KB bank at $8000-$BFFF and fixes the last 16KB bank at $C000-$FFFF.
	c := NewCart(bankedPrg(8), nil, 10, MirrorHorizontal, false) // 4x 16KB banks, last = 3
	c.WritePRG(0xA000, 1)                                        // switchable 16KB bank = 1
	if got := c.ReadPRG(0x8000); got != 2 {
		t.Fatalf("MMC4 switchable $8000 (bank 1's first 8KB sub-bank) = %d, want 2", got)
	}
	if got := c.ReadPRG(0xB000); got != 3 {
		t.Fatalf("MMC4 switchable $B000 (bank 1's second 8KB sub-bank) = %d, want 3", got)
	}
	if got := c.ReadPRG(0xC000); got != 6 {
		t.Fatalf("MMC4 fixed $C000 (last 16KB bank's first 8KB sub-bank) = %d, want 6", got)
	}
	if got := c.ReadPRG(0xE000); got != 7 {
		t.Fatalf("MMC4 fixed $E000 (last 16KB bank's second 8KB sub-bank) = %d, want 7", got)
	}
}
