package memory

// State is the exported snapshot of the CPU-visible internal RAM,
// gob-encoded by internal/nesstate. The PPU's nametable/palette RAM is
// captured separately by PPUMemory.SaveState. Register
// mirrors (ppuRegisters/apuRegisters/inputSystem) are not state — they are
// the owning components, saved and restored independently.
type State struct {
	RAM [0x800]uint8
}

// SaveState captures internal RAM.
func (m *Memory) SaveState() State {
	return State{RAM: m.ram}
}

// LoadState restores internal RAM.
func (m *Memory) LoadState(s State) {
	m.ram = s.RAM
}

// SaveState captures nametable and palette RAM.
func (pm *PPUMemory) SaveState() (vram [0x1000]uint8, palette [32]uint8) {
	return pm.vram, pm.paletteRAM
}

// LoadState restores nametable and palette RAM.
func (pm *PPUMemory) LoadState(vram [0x1000]uint8, palette [32]uint8) {
	pm.vram = vram
	pm.paletteRAM = palette
}
