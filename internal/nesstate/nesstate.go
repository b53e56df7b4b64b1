// Package nesstate implements versioned save states: a single gob-encoded
// container holding every component's architectural state, so a session can
// be suspended and resumed bit-for-bit.
package nesstate

import (
	"bytes"
	"encoding/gob"

	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/memory"
	"gones/internal/neserr"
	"gones/internal/ppu"
)

// Version is incremented whenever Container's shape changes in a way that
// would make an older save file unsafe to decode into the current layout.
const Version uint8 = 1

// Container is the full snapshot of one system's state at a point in time.
type Container struct {
	Version uint8

	CPU cpu.State
	PPU ppu.State
	APU apu.State
	RAM memory.State
	Cart cartridge.State

	HasVRAM bool
	VRAM    [0x1000]uint8
	Palette [32]uint8

	HasCart bool
}

// Capture builds a Container from the live state of a running bus.
func Capture(b *bus.Bus) Container {
	c := Container{
		Version: Version,
		CPU:     b.CPU.SaveState(),
		PPU:     b.PPU.SaveState(),
		APU:     b.APU.SaveState(),
		RAM:     b.Memory.SaveState(),
	}
	if vram, palette, ok := b.PPU.SaveVRAMState(); ok {
		c.HasVRAM = true
		c.VRAM = vram
		c.Palette = palette
	}
	if b.Cart != nil {
		c.HasCart = true
		c.Cart = b.Cart.SaveState()
	}
	return c
}

// Restore applies a Container onto a running bus. The caller must have
// already loaded the same ROM the Container was captured from (Cart's
// PRG-ROM/CHR-ROM are not part of the state, only PRG-RAM/CHR-RAM and the
// mapper's bank registers) — restoring onto a mismatched or absent
// cartridge leaves the mapper's bank selection inconsistent with the
// attached ROM.
func Restore(b *bus.Bus, c Container) error {
	if c.Version != Version {
		return neserr.InvalidSaveVersion(Version, c.Version)
	}
	b.CPU.LoadState(c.CPU)
	b.PPU.LoadState(c.PPU)
	b.APU.LoadState(c.APU)
	b.Memory.LoadState(c.RAM)
	if c.HasVRAM {
		b.PPU.LoadVRAMState(c.VRAM, c.Palette)
	}
	if c.HasCart {
		if b.Cart == nil {
			return neserr.InvalidSaveHeader("nesstate", "save state has cartridge data but no cartridge is loaded")
		}
		b.Cart.LoadState(c.Cart)
		b.Cart.RefreshMirroring()
	}
	return nil
}

// Save gob-encodes a Container captured from the given bus.
func Save(b *bus.Bus) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Capture(b)); err != nil {
		return nil, neserr.Io("nesstate.Save", err)
	}
	return buf.Bytes(), nil
}

// Load decodes data into a Container and restores it onto the given bus.
func Load(b *bus.Bus, data []byte) error {
	var c Container
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return neserr.Io("nesstate.Load", err)
	}
	return Restore(b, c)
}
