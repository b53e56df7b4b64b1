// Package memory implements the CPU and PPU address-space routing: internal
// RAM, register mirroring, nametable/palette RAM, and open-bus behavior.
package memory

import (
	"fmt"

	"gones/internal/cartridge"
)

// RAMInitPolicy controls the pattern internal RAM is seeded with on power-on
// and hard reset, per the hard-reset RAM-state policy (all-zero, all-FF, or
// random).
type RAMInitPolicy uint8

const (
	RAMInitZero RAMInitPolicy = iota
	RAMInitFF
	RAMInitRandom
)

// randSource abstracts the random byte generator so tests can supply a
// deterministic one instead of pulling in math/rand/v2 at the package level.
type randSource func() uint8

// Memory represents the NES CPU address space.
type Memory struct {
	ram [0x800]uint8

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	dmaCallback func(uint8)

	openBusValue uint8

	initPolicy RAMInitPolicy
	rand       randSource

	Debug bool
}

// PPUMemory represents the PPU's memory space: pattern tables pass through
// to the cartridge, nametables and palette RAM are owned here.
type PPUMemory struct {
	vram       [0x1000]uint8
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
	mirroring  cartridge.Mirroring

	Debug bool
}

// PPUInterface defines the interface for PPU register access.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface defines the interface for APU register access.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface defines the interface for input system access.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface defines the interface for cartridge access.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// New creates a Memory instance with the default zero-init RAM policy.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	return NewWithPolicy(ppu, apu, cart, RAMInitZero, nil)
}

// NewWithPolicy creates a Memory instance with an explicit RAM-init policy.
// rand is only consulted when policy is RAMInitRandom; a nil rand falls
// back to an all-zero seed (still deterministic, useful for tests).
func NewWithPolicy(ppu PPUInterface, apu APUInterface, cart CartridgeInterface, policy RAMInitPolicy, rand randSource) *Memory {
	mem := &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cartridge:    cart,
		initPolicy:   policy,
		rand:         rand,
	}
	mem.PowerOn()
	return mem
}

// SetInputSystem sets the input system for controller access.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback sets the DMA callback function.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// SetRAMInitPolicy changes the policy PowerOn reseeds RAM with on the next
// call; it does not itself touch RAM.
func (m *Memory) SetRAMInitPolicy(policy RAMInitPolicy, rand randSource) {
	m.initPolicy = policy
	m.rand = rand
}

// PowerOn (re)seeds internal RAM according to the configured init policy.
func (m *Memory) PowerOn() {
	switch m.initPolicy {
	case RAMInitFF:
		for i := range m.ram {
			m.ram[i] = 0xFF
		}
	case RAMInitRandom:
		for i := range m.ram {
			if m.rand != nil {
				m.ram[i] = m.rand()
			}
		}
	default:
		for i := range m.ram {
			m.ram[i] = 0
		}
	}
}

// Read reads a byte from the given address.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		value = m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4015:
			value = m.apuRegisters.ReadStatus()
		case address == 0x4016 || address == 0x4017:
			if m.inputSystem != nil {
				value = m.inputSystem.Read(address)
			}
		default:
			value = m.openBusValue
		}

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			value = m.cartridge.ReadPRG(address)
		} else {
			value = m.openBusValue
		}

	case address < 0x8000:
		value = m.openBusValue

	default:
		if m.cartridge != nil {
			value = m.cartridge.ReadPRG(address)
		} else {
			value = m.openBusValue
		}
	}

	m.openBusValue = value
	return value
}

// Write writes a byte to the given address.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			} else {
				m.performOAMDMA(value)
			}
		case address == 0x4016:
			if m.inputSystem != nil {
				m.inputSystem.Write(address, value)
			}
		case address >= 0x4000 && address <= 0x4013, address == 0x4015, address == 0x4017:
			m.apuRegisters.WriteRegister(address, value)
		}
		// $4018-$401F (APU/IO test mode) are ignored

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}

	case address < 0x8000:
		// cartridge expansion area ($4020-$5FFF), unmapped on most boards

	default:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// performOAMDMA is the fallback immediate DMA path used when no stall-aware
// callback has been registered; the bus normally supplies one so the CPU
// observes the correct 513/514-cycle stall.
func (m *Memory) performOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		value := m.Read(base + i)
		m.ppuRegisters.WriteRegister(0x2004, value)
	}
}

// NewPPUMemory creates a new PPU memory instance.
func NewPPUMemory(cart CartridgeInterface, mirroring cartridge.Mirroring) *PPUMemory {
	mem := &PPUMemory{
		cartridge: cart,
		mirroring: mirroring,
	}
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F
	}
	return mem
}

// SetMirroring updates the active mirroring mode; mappers that change
// mirroring at runtime (MMC1, MMC3, AxROM) call through to this via the PPU.
func (pm *PPUMemory) SetMirroring(mode cartridge.Mirroring) { pm.mirroring = mode }

// Read reads from PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes to PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	return pm.vram[pm.getNametableIndex(address)]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	pm.vram[pm.getNametableIndex(address)] = value
}

// getNametableIndex computes the physical 4KB VRAM index for a nametable
// address under the active mirroring mode.
func (pm *PPUMemory) getNametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case cartridge.MirrorHorizontal:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset

	case cartridge.MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset

	case cartridge.MirrorSingleScreen0:
		return offset

	case cartridge.MirrorSingleScreen1:
		return 0x400 + offset

	case cartridge.MirrorFourScreen:
		return uint16(nametable)*0x400 + offset

	default:
		return offset
	}
}

func (pm *PPUMemory) readPalette(address uint16) uint8 {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	if pm.Debug {
		fmt.Printf("palette read [%02X] = %02X\n", index, pm.paletteRAM[index])
	}
	return pm.paletteRAM[index]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	pm.paletteRAM[index] = value
}
