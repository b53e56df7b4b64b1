// Package ppu implements the NES Picture Processing Unit (2C02): a
// dot-accurate background shift-register pipeline, sprite evaluation
// (including the hardware's buggy overflow algorithm), and the loopy
// v/t/x/w scroll-register protocol.
package ppu

import (
	"gones/internal/memory"
	"gones/internal/region"
)

// PPU represents the NES Picture Processing Unit (2C02).
type PPU struct {
	// CPU-visible registers.
	ppuCtrl   uint8 // $2000
	ppuMask   uint8 // $2001
	ppuStatus uint8 // $2002
	oamAddr   uint8 // $2003

	// Loopy scroll/address state.
	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / address latch (15 bits)
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle

	memory *memory.PPUMemory

	// mapperNotify is invoked on every VRAM address the PPU puts on its
	// bus, so A12-edge-sensitive mappers (MMC3) can clock their IRQ
	// counter off real PPU fetches rather than a synthetic per-scanline tick.
	mapperNotify func(addr uint16)

	scanline    int // -1 (pre-render) through 260
	cycle       int // 0 through 340
	frameCount  uint64
	oddFrame    bool
	readBuffer  uint8 // PPUDATA read-behind-one buffer

	// Sprite evaluation (secondary OAM, built once per visible scanline).
	oam              [256]uint8
	secondaryOAM     [32]uint8
	secondaryIndex   [8]uint8 // original OAM index of each secondary-OAM entry
	spriteCount      uint8
	sprite0OnScanline bool
	sprite0Hit       bool
	spriteOverflow   bool

	// Background shift-register pipeline.
	bgNextTileID     uint8
	bgNextTileAttrib uint8
	bgNextTileLSB    uint8
	bgNextTileMSB    uint8
	bgShiftPatternLo uint16
	bgShiftPatternHi uint16
	bgShiftAttribLo  uint16
	bgShiftAttribHi  uint16

	frameBuffer [WIDTH * HEIGHT]uint16 // NES palette indices (0-63), not RGB

	nmiCallback           func()
	frameCompleteCallback func()

	backgroundEnabled bool
	spritesEnabled    bool
	spritesLeftColumn bool
	backgroundLeftColumn bool
	renderingEnabled  bool

	cycleCount uint64

	region       region.Region
	lastScanline int  // last scanline number before wraparound to pre-render (260 NTSC, 310 PAL, 309 Dendy)
	oddFrameSkip bool // whether rendering-enabled odd frames skip the pre-render's last dot

	// suppressVBlank/suppressNMI model the $2002 read race at the VBlank
	// set dot (241,1): a read one dot early clears suppressVBlank's target
	// (the flag never sets, no NMI, for the rest of the frame); a read on
	// the set dot itself only suppresses the NMI. Reset every pre-render.
	suppressVBlank bool
	suppressNMI    bool

	Debug bool
}

// WIDTH and HEIGHT are the NES's visible picture dimensions.
const (
	WIDTH  = 256
	HEIGHT = 240
)

// New creates a new PPU instance.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// Reset resets the PPU to its power-on state.
func (p *PPU) Reset() {
	p.ppuCtrl = 0
	p.ppuMask = 0
	p.ppuStatus = 0xA0
	p.oamAddr = 0

	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false

	p.scanline = -1
	p.cycle = 0
	p.frameCount = 0
	p.oddFrame = false
	p.readBuffer = 0

	p.spriteCount = 0
	p.sprite0Hit = false
	p.spriteOverflow = false
	p.sprite0OnScanline = false

	p.bgShiftPatternLo = 0
	p.bgShiftPatternHi = 0
	p.bgShiftAttribLo = 0
	p.bgShiftAttribHi = 0

	p.backgroundEnabled = false
	p.spritesEnabled = false
	p.renderingEnabled = false

	p.cycleCount = 0

	timing := region.For(p.region)
	p.lastScanline = timing.ScanlinesPerFrame - 2
	p.oddFrameSkip = timing.OddFrameSkip

	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// SetMemory sets the PPU's nametable/palette memory interface.
func (p *PPU) SetMemory(mem *memory.PPUMemory) { p.memory = mem }

// SetRegion selects the console timing standard, changing the scanline
// count per frame and whether odd-frame rendering skips the pre-render's
// last dot. Takes effect immediately.
func (p *PPU) SetRegion(r region.Region) {
	p.region = r
	timing := region.For(r)
	p.lastScanline = timing.ScanlinesPerFrame - 2
	p.oddFrameSkip = timing.OddFrameSkip
}

// Region returns the PPU's configured console timing standard.
func (p *PPU) Region() region.Region { return p.region }

// SetMapperNotify installs the mapper PPU-address hook (MMC3 A12 IRQ clocking).
func (p *PPU) SetMapperNotify(notify func(addr uint16)) { p.mapperNotify = notify }

// SetNMICallback sets the function invoked when VBlank starts with NMI enabled.
func (p *PPU) SetNMICallback(callback func()) { p.nmiCallback = callback }

// SetFrameCompleteCallback sets the function invoked when a frame finishes.
func (p *PPU) SetFrameCompleteCallback(callback func()) { p.frameCompleteCallback = callback }

func (p *PPU) busRead(addr uint16) uint8 {
	if p.mapperNotify != nil {
		p.mapperNotify(addr)
	}
	if p.memory == nil {
		return 0
	}
	return p.memory.Read(addr)
}

// ReadRegister reads from a CPU-visible PPU register ($2000-$2007).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2000, 0x2001, 0x2003, 0x2005, 0x2006:
		return p.ppuStatus & 0x1F
	case 0x2002:
		status := p.ppuStatus
		switch {
		case p.scanline == 241 && p.cycle == 0:
			// One dot before VBlank sets: flag reads clear, and both the
			// flag and its NMI are suppressed for the rest of this frame.
			status &^= 0x80
			p.suppressVBlank = true
		case p.scanline == 241 && p.cycle == 1:
			// On the set dot itself: flag reads set (race with the PPU's
			// own set), but the NMI this dot would have fired is suppressed.
			status |= 0x80
			p.suppressNMI = true
		}
		p.ppuStatus &= 0x7F // clear VBL flag; sprite0/overflow clear at pre-render dot 1, not here
		p.w = false
		return status
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readPPUData()
	default:
		return 0
	}
}

// WriteRegister writes to a CPU-visible PPU register ($2000-$2007).
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		p.updateRenderingFlags()
		p.checkNMI()
	case 0x2001:
		p.ppuMask = value
		p.updateRenderingFlags()
	case 0x2002:
		// read-only
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writePPUScroll(value)
	case 0x2006:
		p.writePPUAddr(value)
	case 0x2007:
		p.writePPUData(value)
	}
}

// WriteOAM writes OAM directly, used by the bus's OAMDMA transfer.
func (p *PPU) WriteOAM(address uint8, value uint8) { p.oam[address] = value }

func (p *PPU) updateRenderingFlags() {
	p.backgroundEnabled = (p.ppuMask & 0x08) != 0
	p.spritesEnabled = (p.ppuMask & 0x10) != 0
	p.backgroundLeftColumn = (p.ppuMask & 0x02) != 0
	p.spritesLeftColumn = (p.ppuMask & 0x04) != 0
	p.renderingEnabled = p.backgroundEnabled || p.spritesEnabled
}

func (p *PPU) checkNMI() {
	if (p.ppuCtrl&0x80 != 0) && (p.ppuStatus&0x80 != 0) && p.nmiCallback != nil {
		p.nmiCallback()
	}
}

func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		if p.mapperNotify != nil {
			p.mapperNotify(p.v)
		}
		p.w = false
	}
}

func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.v >= 0x3F00 {
		data = p.busRead(p.v)
		p.readBuffer = p.busRead(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.busRead(p.v)
	}
	p.advanceVRAMAddr()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	if p.memory != nil {
		p.memory.Write(p.v, value)
	}
	if p.mapperNotify != nil {
		p.mapperNotify(p.v)
	}
	p.advanceVRAMAddr()
}

func (p *PPU) advanceVRAMAddr() {
	if p.ppuCtrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v += 1
	}
	p.v &= 0x3FFF
}

// Step advances the PPU by one PPU cycle (dot).
func (p *PPU) Step() {
	p.cycleCount++

	if p.scanline == -1 && p.cycle == 1 {
		p.ppuStatus &= 0x1F // clear VBL, sprite-0-hit, and overflow (pre-render dot 1)
		p.sprite0Hit = false
		p.spriteOverflow = false
		p.suppressVBlank = false
		p.suppressNMI = false
	}

	if p.scanline >= -1 && p.scanline < 240 {
		p.renderScanlineCycle()
	}

	if p.scanline == 241 && p.cycle == 1 && !p.suppressVBlank {
		p.ppuStatus |= 0x80
		if p.ppuCtrl&0x80 != 0 && !p.suppressNMI && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}

	p.cycle++
	if p.cycle > 340 {
		// Odd-frame cycle skip: on a rendering-enabled odd frame, the
		// pre-render scanline's last dot (340) is skipped: dot 339 is followed
		// directly by dot 0 of scanline 0.
		// NTSC only; PAL/Dendy have no such skip (region.Timing.OddFrameSkip).
		p.cycle = 0
		p.scanline++
		if p.scanline > p.lastScanline {
			p.scanline = -1
			p.frameCount++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	} else if p.scanline == -1 && p.cycle == 340 && p.oddFrame && p.renderingEnabled && p.oddFrameSkip {
		p.cycle = 0
		p.scanline = 0
		p.frameCount++
		p.oddFrame = !p.oddFrame
		if p.frameCompleteCallback != nil {
			p.frameCompleteCallback()
		}
	}
}

// renderScanlineCycle runs the background-fetch pipeline, sprite
// evaluation, and pixel output for one dot of a visible or pre-render
// scanline.
func (p *PPU) renderScanlineCycle() {
	if !p.renderingEnabled {
		return
	}

	visibleOrPrefetch := (p.cycle >= 1 && p.cycle <= 256) || (p.cycle >= 321 && p.cycle <= 336)
	if visibleOrPrefetch {
		p.shiftBackgroundRegisters()
		switch p.cycle % 8 {
		case 1:
			p.loadBackgroundShifters()
			nametableAddr := 0x2000 | uint16(p.getNametable())<<10 | uint16(p.getCoarseY())<<5 | uint16(p.getCoarseX())
			p.bgNextTileID = p.busRead(nametableAddr)
		case 3:
			addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attrib := p.busRead(addr)
			if (p.v>>4)&1 != 0 {
				attrib >>= 4
			}
			if (p.v>>1)&1 != 0 {
				attrib >>= 2
			}
			p.bgNextTileAttrib = attrib & 0x03
		case 5:
			base := uint16(0)
			if p.ppuCtrl&0x10 != 0 {
				base = 0x1000
			}
			addr := base + uint16(p.bgNextTileID)*16 + uint16(p.getFineY())
			p.bgNextTileLSB = p.busRead(addr)
		case 7:
			base := uint16(0)
			if p.ppuCtrl&0x10 != 0 {
				base = 0x1000
			}
			addr := base + uint16(p.bgNextTileID)*16 + uint16(p.getFineY()) + 8
			p.bgNextTileMSB = p.busRead(addr)
		case 0:
			p.incrementCoarseX()
		}
	}

	if p.cycle == 256 {
		p.shiftBackgroundRegisters()
		p.incrementY()
	}
	if p.cycle == 257 {
		p.loadBackgroundShifters()
		p.copyX()
		p.evaluateSprites()
	}
	if p.scanline == -1 && p.cycle >= 280 && p.cycle <= 304 {
		p.copyY()
	}

	// Unused NT/AT fetches at 337-340, present on real hardware for bus
	// activity (MMC3 A12 clocking) but not feeding the shift registers.
	if p.cycle == 337 || p.cycle == 339 {
		p.busRead(0x2000 | (p.v & 0x0FFF))
	}

	if p.cycle >= 1 && p.cycle <= 256 && p.scanline >= 0 {
		p.renderPixel(p.cycle-1, p.scanline)
	}
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShiftPatternLo = (p.bgShiftPatternLo & 0xFF00) | uint16(p.bgNextTileLSB)
	p.bgShiftPatternHi = (p.bgShiftPatternHi & 0xFF00) | uint16(p.bgNextTileMSB)
	attribLo := uint16(0)
	attribHi := uint16(0)
	if p.bgNextTileAttrib&0x01 != 0 {
		attribLo = 0xFF
	}
	if p.bgNextTileAttrib&0x02 != 0 {
		attribHi = 0xFF
	}
	p.bgShiftAttribLo = (p.bgShiftAttribLo & 0xFF00) | attribLo
	p.bgShiftAttribHi = (p.bgShiftAttribHi & 0xFF00) | attribHi
}

func (p *PPU) shiftBackgroundRegisters() {
	if !p.backgroundEnabled {
		return
	}
	p.bgShiftPatternLo <<= 1
	p.bgShiftPatternHi <<= 1
	p.bgShiftAttribLo <<= 1
	p.bgShiftAttribHi <<= 1
}

// incrementCoarseX wraps coarse X at 31 into a horizontal nametable switch.
func (p *PPU) incrementCoarseX() {
	if !p.renderingEnabled {
		return
	}
	if (p.v & 0x001F) == 31 {
		p.v &= ^uint16(0x001F)
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, carrying into coarse Y and the vertical
// nametable select at the scanline boundary.
func (p *PPU) incrementY() {
	if !p.renderingEnabled {
		return
	}
	if (p.v & 0x7000) != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &= ^uint16(0x7000)
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v & ^uint16(0x03E0)) | (y << 5)
}

func (p *PPU) copyX() {
	if !p.renderingEnabled {
		return
	}
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

func (p *PPU) copyY() {
	if !p.renderingEnabled {
		return
	}
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}

func (p *PPU) getCoarseX() int { return int(p.v & 0x001F) }
func (p *PPU) getCoarseY() int { return int((p.v >> 5) & 0x001F) }
func (p *PPU) getFineY() int   { return int((p.v >> 12) & 0x0007) }
func (p *PPU) getNametable() int { return int((p.v >> 10) & 0x0003) }

// evaluateSprites builds secondary OAM for the NEXT scanline (p.scanline+1)
// and reproduces the hardware's total-sprite-overflow bug: once 8 sprites
// have been found, further evaluation keeps incrementing both the sprite
// index and a byte offset that should stay pinned to Y, so it drifts onto
// the wrong byte of later sprites and produces both false negatives and
// false positives on the overflow flag.
func (p *PPU) evaluateSprites() {
	targetScanline := p.scanline + 1
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteCount = 0
	p.sprite0OnScanline = false

	spriteHeight := 8
	if p.ppuCtrl&0x20 != 0 {
		spriteHeight = 16
	}

	n, m := 0, 0
	for n < 64 {
		y := int(p.oam[n*4+m])
		inRange := targetScanline >= y && targetScanline < y+spriteHeight
		if p.spriteCount < 8 {
			if inRange {
				copy(p.secondaryOAM[p.spriteCount*4:p.spriteCount*4+4], p.oam[n*4:n*4+4])
				p.secondaryIndex[p.spriteCount] = uint8(n)
				if n == 0 {
					p.sprite0OnScanline = true
				}
				p.spriteCount++
			}
			n++
		} else {
			if inRange {
				p.spriteOverflow = true
				p.ppuStatus |= 0x20
			}
			n++
			m++
			if m > 3 {
				m = 0
			}
		}
	}
}

// renderPixel composites the background and sprite pixel at (x, scanline)
// and writes the resulting NES palette index into the frame buffer.
func (p *PPU) renderPixel(x, scanline int) {
	bgPixel, bgPalette := p.backgroundPixelAt(x)
	spPixel, spPalette, spPriority, spIsSprite0 := p.spritePixelAt(x)

	if bgPixel != 0 && spPixel != 0 && spIsSprite0 && x != 255 &&
		p.backgroundEnabled && p.spritesEnabled &&
		(x >= 8 || (p.backgroundLeftColumn && p.spritesLeftColumn)) {
		p.sprite0Hit = true
		p.ppuStatus |= 0x40
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && spPixel == 0:
		paletteAddr = 0x3F00
	case bgPixel == 0 && spPixel != 0:
		paletteAddr = 0x3F10 + uint16(spPalette)*4 + uint16(spPixel)
	case bgPixel != 0 && spPixel == 0:
		paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
	default:
		if spPriority {
			paletteAddr = 0x3F00 + uint16(bgPalette)*4 + uint16(bgPixel)
		} else {
			paletteAddr = 0x3F10 + uint16(spPalette)*4 + uint16(spPixel)
		}
	}

	colorIndex := p.busRead(paletteAddr) & 0x3F
	p.frameBuffer[scanline*WIDTH+x] = uint16(colorIndex)
}

func (p *PPU) backgroundPixelAt(x int) (pixel, palette uint8) {
	if !p.backgroundEnabled || (x < 8 && !p.backgroundLeftColumn) {
		return 0, 0
	}
	bitMux := uint16(0x8000) >> p.x
	p0 := uint8(0)
	p1 := uint8(0)
	if p.bgShiftPatternLo&bitMux != 0 {
		p0 = 1
	}
	if p.bgShiftPatternHi&bitMux != 0 {
		p1 = 1
	}
	pixel = (p1 << 1) | p0
	a0 := uint8(0)
	a1 := uint8(0)
	if p.bgShiftAttribLo&bitMux != 0 {
		a0 = 1
	}
	if p.bgShiftAttribHi&bitMux != 0 {
		a1 = 1
	}
	palette = (a1 << 1) | a0
	return pixel, palette
}

func (p *PPU) spritePixelAt(x int) (pixel, palette uint8, priority bool, isSprite0 bool) {
	if !p.spritesEnabled || (x < 8 && !p.spritesLeftColumn) {
		return 0, 0, false, false
	}
	spriteHeight := 8
	if p.ppuCtrl&0x20 != 0 {
		spriteHeight = 16
	}
	for i := uint8(0); i < p.spriteCount; i++ {
		spriteY := int(p.secondaryOAM[i*4])
		tileIndex := p.secondaryOAM[i*4+1]
		attributes := p.secondaryOAM[i*4+2]
		spriteX := int(p.secondaryOAM[i*4+3])
		if x < spriteX || x >= spriteX+8 {
			continue
		}
		row := p.scanline - spriteY
		col := x - spriteX
		flipH := attributes&0x40 != 0
		flipV := attributes&0x80 != 0
		if flipH {
			col = 7 - col
		}
		if flipV {
			row = spriteHeight - 1 - row
		}

		var patternAddr uint16
		if spriteHeight == 16 {
			table := uint16(tileIndex&0x01) * 0x1000
			tile := uint16(tileIndex &^ 1)
			half := uint16(0)
			if row >= 8 {
				half = 1
				row -= 8
			}
			patternAddr = table + (tile+half)*16 + uint16(row)
		} else {
			base := uint16(0)
			if p.ppuCtrl&0x08 != 0 {
				base = 0x1000
			}
			patternAddr = base + uint16(tileIndex)*16 + uint16(row)
		}

		lo := p.busRead(patternAddr)
		hi := p.busRead(patternAddr + 8)
		bit := uint(7 - col)
		p0 := (lo >> bit) & 1
		p1 := (hi >> bit) & 1
		pix := (p1 << 1) | p0
		if pix == 0 {
			continue // transparent; keep looking for a lower-priority sprite
		}
		return pix, attributes & 0x03, attributes&0x20 != 0, p.sprite0OnScanline && p.secondaryIndex[i] == 0
	}
	return 0, 0, false, false
}

// GetFrameBuffer returns the current frame buffer of NES palette indices.
func (p *PPU) GetFrameBuffer() [WIDTH * HEIGHT]uint16 { return p.frameBuffer }

// GetFrameCount returns the number of frames rendered since reset.
func (p *PPU) GetFrameCount() uint64 { return p.frameCount }

// SetFrameCount sets the frame counter, used to resync after a save-state load.
func (p *PPU) SetFrameCount(count uint64) { p.frameCount = count }

// GetScanline returns the current scanline (-1 through 260).
func (p *PPU) GetScanline() int { return p.scanline }

// GetCycle returns the current dot within the scanline (0 through 340).
func (p *PPU) GetCycle() int { return p.cycle }

// IsRenderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) IsRenderingEnabled() bool { return p.renderingEnabled }

// IsVBlank reports whether the VBlank status flag is currently set.
func (p *PPU) IsVBlank() bool { return (p.ppuStatus & 0x80) != 0 }

// GetCycleCount returns the total number of PPU dots elapsed since reset.
func (p *PPU) GetCycleCount() uint64 { return p.cycleCount }

// ClearFrameBuffer fills the frame buffer with a single palette index,
// used by callers resetting the display between ROM loads.
func (p *PPU) ClearFrameBuffer(paletteIndex uint16) {
	for i := range p.frameBuffer {
		p.frameBuffer[i] = paletteIndex
	}
}

// NES 2C02 NTSC color palette, indexed by the 6-bit palette value; display
// code converts frame-buffer indices to RGB through NESColorToRGB below.
var NESPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// NESColorToRGB converts a NES palette index to its 0x00RRGGBB RGB value.
func NESColorToRGB(colorIndex uint8) uint32 {
	if colorIndex >= 64 {
		return 0
	}
	return NESPalette[colorIndex] & 0x00FFFFFF
}
