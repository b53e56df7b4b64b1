package ppu

import (
	"testing"

	"gones/internal/cartridge"
	"gones/internal/memory"
	"gones/internal/region"
)

func newTestPPUMemory() *memory.PPUMemory {
	cart := cartridge.NewCart(make([]uint8, 0x4000), nil, 0, cartridge.MirrorHorizontal, false)
	return memory.NewPPUMemory(cart, cartridge.MirrorHorizontal)
}

func TestVBlankSetAtScanline241Cycle1(t *testing.T) {
	p := New()
	p.scanline = 241
	p.cycle = 1
	p.Step()
	if !p.IsVBlank() {
		t.Fatalf("VBlank flag not set at scanline 241 cycle 1")
	}
}

func TestVBlankAndSpriteFlagsClearAtPreRenderDot1(t *testing.T) {
	p := New()
	p.ppuStatus |= 0x80 | 0x40 | 0x20
	p.sprite0Hit = true
	p.spriteOverflow = true
	p.scanline = -1
	p.cycle = 1
	p.Step()
	if p.IsVBlank() {
		t.Fatalf("VBlank flag should clear at pre-render dot 1")
	}
	if p.ppuStatus&0x40 != 0 || p.ppuStatus&0x20 != 0 {
		t.Fatalf("sprite0hit/overflow flags should clear at pre-render dot 1, got status=%#02x", p.ppuStatus)
	}
}

func TestReadingStatusClearsVBlankAndLatch(t *testing.T) {
	p := New()
	p.ppuStatus = 0x80
	p.w = true
	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatalf("status read should return VBL flag set")
	}
	if p.IsVBlank() {
		t.Fatalf("reading $2002 should clear VBlank flag")
	}
	if p.w {
		t.Fatalf("reading $2002 should clear the write latch")
	}
}

func TestPPUScrollWriteSequence(t *testing.T) {
	p := New()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	if p.x != 5 {
		t.Fatalf("fine X = %d, want 5", p.x)
	}
	if p.t&0x1F != 15 {
		t.Fatalf("coarse X in t = %d, want 15", p.t&0x1F)
	}
	p.WriteRegister(0x2005, 0x5E) // fine Y = 6, coarse Y = 11
	if (p.t>>12)&0x07 != 6 {
		t.Fatalf("fine Y in t = %d, want 6", (p.t>>12)&0x07)
	}
	if (p.t>>5)&0x1F != 11 {
		t.Fatalf("coarse Y in t = %d, want 11", (p.t>>5)&0x1F)
	}
}

func TestPPUAddrWriteLatchesVAfterSecondWrite(t *testing.T) {
	p := New()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	if p.v != 0x2108 {
		t.Fatalf("v = %#04x, want 0x2108", p.v)
	}
}

func TestPPUDataReadIsBufferedBelowPalette(t *testing.T) {
	p := New()
	mem := newTestPPUMemory()
	mem.Write(0x2000, 0xAB)
	p.SetMemory(mem)
	p.v = 0x2000
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Fatalf("first buffered read should return stale buffer (0), got %#02x", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xAB {
		t.Fatalf("second read should return the buffered nametable byte, got %#02x", second)
	}
}

func TestOAMDataWriteAutoIncrementsAddr(t *testing.T) {
	p := New()
	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0x55)
	if p.oamAddr != 0x11 {
		t.Fatalf("oamAddr = %#02x, want 0x11", p.oamAddr)
	}
	if p.oam[0x10] != 0x55 {
		t.Fatalf("oam[0x10] = %#02x, want 0x55", p.oam[0x10])
	}
}

func TestIncrementCoarseXWrapsNametable(t *testing.T) {
	p := New()
	p.renderingEnabled = true
	p.v = 0x001F // coarse X = 31, nametable bit 0 = 0
	p.incrementCoarseX()
	if p.v&0x001F != 0 {
		t.Fatalf("coarse X should wrap to 0")
	}
	if p.v&0x0400 == 0 {
		t.Fatalf("horizontal nametable bit should toggle on coarse X wrap")
	}
}

func TestIncrementYCarriesAtRow29(t *testing.T) {
	p := New()
	p.renderingEnabled = true
	p.v = 0x7000 | (29 << 5) // fine Y = 7, coarse Y = 29
	p.incrementY()
	if (p.v>>5)&0x1F != 0 {
		t.Fatalf("coarse Y should wrap to 0 at row 29")
	}
	if p.v&0x0800 == 0 {
		t.Fatalf("vertical nametable bit should toggle at row 29 wraparound")
	}
}

func TestSpriteOverflowFlagSetWithMoreThanEightSprites(t *testing.T) {
	p := New()
	p.ppuCtrl = 0 // 8x8 sprites
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 10 // all on scanline 11 (targetScanline = scanline+1)
		p.oam[i*4+1] = 0x01
	}
	p.scanline = 10
	p.evaluateSprites()
	if !p.spriteOverflow {
		t.Fatalf("expected sprite overflow with 9 in-range sprites")
	}
	if p.spriteCount != 8 {
		t.Fatalf("secondary OAM should cap at 8 sprites, got %d", p.spriteCount)
	}
}

func TestSprite0HitRequiresOpaqueBackgroundAndSprite(t *testing.T) {
	p := New()
	p.backgroundEnabled = true
	p.spritesEnabled = true
	p.backgroundLeftColumn = true
	p.spritesLeftColumn = true
	cart := cartridge.NewCart(make([]uint8, 0x4000), nil, 0, cartridge.MirrorHorizontal, false)
	cart.WriteCHR(0x0000, 0x08) // tile 0, row 0, column 4 opaque (pattern low-plane bit 3)
	p.SetMemory(memory.NewPPUMemory(cart, cartridge.MirrorHorizontal))
	p.renderPixelSprite0HitTestSetup()
	p.renderPixel(100, 50)
	if !p.sprite0Hit {
		t.Fatalf("expected sprite 0 hit when both background and sprite 0 are opaque")
	}
	if p.ppuStatus&0x40 == 0 {
		t.Fatalf("expected sprite 0 hit status bit set")
	}
}

// renderPixelSprite0HitTestSetup seeds shift registers and secondary OAM so
// renderPixel sees an opaque background pixel and an opaque sprite-0 pixel.
func (p *PPU) renderPixelSprite0HitTestSetup() {
	p.scanline = 50
	p.bgShiftPatternLo = 0x8000
	p.bgShiftPatternHi = 0
	p.spriteCount = 1
	p.sprite0OnScanline = true
	p.secondaryIndex[0] = 0
	p.secondaryOAM[0] = 50 // Y
	p.secondaryOAM[1] = 0  // tile
	p.secondaryOAM[2] = 0  // attributes
	p.secondaryOAM[3] = 96 // X, so pixel 100 is column 4 of the sprite
}

func TestReadingStatusOneDotBeforeVBlankSuppressesItForTheFrame(t *testing.T) {
	p := New()
	p.ppuCtrl = 0x80 // NMI enabled
	var nmiFired bool
	p.SetNMICallback(func() { nmiFired = true })

	p.scanline = 241
	p.cycle = 0
	status := p.ReadRegister(0x2002)
	if status&0x80 != 0 {
		t.Fatalf("status read one dot early should report VBlank clear, got %#02x", status)
	}

	p.Step() // processes dot (241,0)
	p.Step() // processes dot (241,1), the dot that would normally set VBlank
	if p.IsVBlank() {
		t.Fatalf("VBlank flag should stay clear this frame after the early read suppressed it")
	}
	if nmiFired {
		t.Fatalf("NMI should not fire this frame after the early read suppressed VBlank")
	}
}

func TestReadingStatusOnSetDotReadsSetButSuppressesNMI(t *testing.T) {
	p := New()
	p.ppuCtrl = 0x80 // NMI enabled
	var nmiFired bool
	p.SetNMICallback(func() { nmiFired = true })

	p.scanline = 241
	p.cycle = 1
	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatalf("status read on the set dot should report VBlank set, got %#02x", status)
	}

	p.Step() // processes dot (241,1) itself
	if nmiFired {
		t.Fatalf("NMI should be suppressed when $2002 is read on the same dot VBlank sets")
	}
}

func TestPALRegionHasMoreScanlinesThanNTSC(t *testing.T) {
	p := New()
	p.SetRegion(region.PAL)
	p.Reset()

	if p.lastScanline != 310 {
		t.Fatalf("PAL lastScanline = %d, want 310", p.lastScanline)
	}
}

func TestDendyRegionScanlineCount(t *testing.T) {
	p := New()
	p.SetRegion(region.Dendy)
	p.Reset()

	if p.lastScanline != 309 {
		t.Fatalf("Dendy lastScanline = %d, want 309", p.lastScanline)
	}
}

func TestPALDoesNotSkipOddFrameDot(t *testing.T) {
	p := New()
	p.SetRegion(region.PAL)
	p.Reset()

	p.scanline = -1
	p.cycle = 339
	p.oddFrame = true
	p.renderingEnabled = true
	p.Step()

	if p.cycle != 340 {
		t.Fatalf("PAL stepped from cycle 339 to %d, want 340 (no dot skip)", p.cycle)
	}
}

func TestNTSCWrapsScanlineAtLastScanline(t *testing.T) {
	p := New()
	p.scanline = p.lastScanline
	p.cycle = 340
	p.Step()

	if p.scanline != -1 {
		t.Fatalf("scanline after wraparound = %d, want -1", p.scanline)
	}
}
