package ppu

// State is the exported snapshot of the PPU's architectural state, gob-encoded
// by internal/nesstate. memory/mapperNotify/nmiCallback/frameCompleteCallback
// are wiring, rebuilt by the bus on load, not state; Debug is a host toggle.
type State struct {
	PPUCtrl   uint8
	PPUMask   uint8
	PPUStatus uint8
	OAMAddr   uint8

	V uint16
	T uint16
	X uint8
	W bool

	Scanline   int
	Cycle      int
	FrameCount uint64
	OddFrame   bool
	ReadBuffer uint8

	OAM            [256]uint8
	SecondaryOAM   [32]uint8
	SecondaryIndex [8]uint8
	SpriteCount    uint8
	Sprite0OnScanline bool
	Sprite0Hit        bool
	SpriteOverflow    bool

	BGNextTileID     uint8
	BGNextTileAttrib uint8
	BGNextTileLSB    uint8
	BGNextTileMSB    uint8
	BGShiftPatternLo uint16
	BGShiftPatternHi uint16
	BGShiftAttribLo  uint16
	BGShiftAttribHi  uint16

	FrameBuffer [WIDTH * HEIGHT]uint16

	BackgroundEnabled    bool
	SpritesEnabled       bool
	SpritesLeftColumn    bool
	BackgroundLeftColumn bool
	RenderingEnabled     bool

	CycleCount uint64
}

// SaveState captures the PPU's architectural state.
func (p *PPU) SaveState() State {
	return State{
		PPUCtrl: p.ppuCtrl, PPUMask: p.ppuMask, PPUStatus: p.ppuStatus, OAMAddr: p.oamAddr,
		V: p.v, T: p.t, X: p.x, W: p.w,
		Scanline: p.scanline, Cycle: p.cycle, FrameCount: p.frameCount, OddFrame: p.oddFrame, ReadBuffer: p.readBuffer,
		OAM: p.oam, SecondaryOAM: p.secondaryOAM, SecondaryIndex: p.secondaryIndex, SpriteCount: p.spriteCount,
		Sprite0OnScanline: p.sprite0OnScanline, Sprite0Hit: p.sprite0Hit, SpriteOverflow: p.spriteOverflow,
		BGNextTileID: p.bgNextTileID, BGNextTileAttrib: p.bgNextTileAttrib,
		BGNextTileLSB: p.bgNextTileLSB, BGNextTileMSB: p.bgNextTileMSB,
		BGShiftPatternLo: p.bgShiftPatternLo, BGShiftPatternHi: p.bgShiftPatternHi,
		BGShiftAttribLo: p.bgShiftAttribLo, BGShiftAttribHi: p.bgShiftAttribHi,
		FrameBuffer: p.frameBuffer,
		BackgroundEnabled: p.backgroundEnabled, SpritesEnabled: p.spritesEnabled,
		SpritesLeftColumn: p.spritesLeftColumn, BackgroundLeftColumn: p.backgroundLeftColumn,
		RenderingEnabled: p.renderingEnabled,
		CycleCount:       p.cycleCount,
	}
}

// SaveVRAMState captures nametable and palette RAM through the PPU's
// attached memory, if any is attached.
func (p *PPU) SaveVRAMState() (vram [0x1000]uint8, palette [32]uint8, ok bool) {
	if p.memory == nil {
		return vram, palette, false
	}
	vram, palette = p.memory.SaveState()
	return vram, palette, true
}

// LoadVRAMState restores nametable and palette RAM through the PPU's
// attached memory, if any is attached.
func (p *PPU) LoadVRAMState(vram [0x1000]uint8, palette [32]uint8) {
	if p.memory != nil {
		p.memory.LoadState(vram, palette)
	}
}

// LoadState restores the PPU's architectural state.
func (p *PPU) LoadState(s State) {
	p.ppuCtrl, p.ppuMask, p.ppuStatus, p.oamAddr = s.PPUCtrl, s.PPUMask, s.PPUStatus, s.OAMAddr
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.scanline, p.cycle, p.frameCount, p.oddFrame, p.readBuffer = s.Scanline, s.Cycle, s.FrameCount, s.OddFrame, s.ReadBuffer
	p.oam, p.secondaryOAM, p.secondaryIndex, p.spriteCount = s.OAM, s.SecondaryOAM, s.SecondaryIndex, s.SpriteCount
	p.sprite0OnScanline, p.sprite0Hit, p.spriteOverflow = s.Sprite0OnScanline, s.Sprite0Hit, s.SpriteOverflow
	p.bgNextTileID, p.bgNextTileAttrib = s.BGNextTileID, s.BGNextTileAttrib
	p.bgNextTileLSB, p.bgNextTileMSB = s.BGNextTileLSB, s.BGNextTileMSB
	p.bgShiftPatternLo, p.bgShiftPatternHi = s.BGShiftPatternLo, s.BGShiftPatternHi
	p.bgShiftAttribLo, p.bgShiftAttribHi = s.BGShiftAttribLo, s.BGShiftAttribHi
	p.frameBuffer = s.FrameBuffer
	p.backgroundEnabled, p.spritesEnabled = s.BackgroundEnabled, s.SpritesEnabled
	p.spritesLeftColumn, p.backgroundLeftColumn = s.SpritesLeftColumn, s.BackgroundLeftColumn
	p.renderingEnabled = s.RenderingEnabled
	p.cycleCount = s.CycleCount
}
