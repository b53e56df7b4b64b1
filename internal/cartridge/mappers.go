package cartridge

// mapperState holds the union of every mapper variant's bank-selection
// registers. Only the fields relevant to c.kind are live at any time; this
// mirrors spec.md §9's "tagged variant, not a heap-allocated trait object"
// guidance — one struct, switched on kind, instead of N interface
// implementations boxed behind a pointer.
type mapperState struct {
	prgBanks16k int
	chrBanks8k  int

	// MMC1 (Sxrom)
	shift    uint8
	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	mmc1Prg  uint8

	// UxROM / GxROM / Bf909x / AxROM shared single-register banking
	prgBank uint8
	chrBank uint8

	// AxROM / single-screen mirroring mappers
	singleScreenPage uint8

	// MMC3 (Txrom)
	bankSelect   uint8
	bankRegs     [8]uint8
	mmc3Mirror   uint8
	prgRAMEnable bool
	prgRAMWrite  bool
	irqLatch     uint8
	irqCounter   uint8
	irqReload    bool
	irqEnable    bool
	irqPendingF  bool
	lastA12      bool

	// MMC2 (Pxrom) / MMC4 (Fxrom) CHR latches
	chrBankFD0, chrBankFE0 uint8
	chrBankFD1, chrBankFE1 uint8
	latch0FE, latch1FE     bool
	mmc2PrgBank            uint8
}

func (m *mapperState) init(c *Cart) {
	m.prgBanks16k = max1(len(c.PrgROM) / 0x4000)
	m.chrBanks8k = max1(len(c.ChrROM) / 0x2000)
	if c.kind == MapperSxrom {
		m.shift = 0x10
		m.control = 0x0C // power-on: PRG mode 3 (fix last bank), CHR mode 0
	}
	if c.kind == MapperTxrom {
		m.irqEnable = false
	}
	if c.kind == MapperUxrom || c.kind == MapperBf909x {
		m.prgBank = 0
	}
	if c.kind == MapperExrom {
		m.prgBank = uint8(max1(len(c.PrgROM)/0x8000) - 1) // last 32KB bank
	}
}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (m *mapperState) mirroring(c *Cart) Mirroring {
	switch c.kind {
	case MapperSxrom:
		switch m.control & 0x03 {
		case 0:
			return MirrorSingleScreen0
		case 1:
			return MirrorSingleScreen1
		case 2:
			return MirrorVertical
		default:
			return MirrorHorizontal
		}
	case MapperTxrom:
		if m.mmc3Mirror&1 != 0 {
			return MirrorHorizontal
		}
		return MirrorVertical
	case MapperAxrom:
		if m.singleScreenPage != 0 {
			return MirrorSingleScreen1
		}
		return MirrorSingleScreen0
	default:
		return c.mirroring
	}
}

func (m *mapperState) irqPending() bool { return m.irqPendingF }

// ppuAddr is the mapper PPU hook: MMC3 snoops A12 rising edges to clock its
// scanline IRQ counter. The MMC2/MMC4 CHR latch is flipped in mapReadCHR,
// not here.
func (m *mapperState) ppuAddr(addr uint16) {
	a12 := addr&0x1000 != 0
	if a12 && !m.lastA12 {
		m.clockMMC3IRQ()
	}
	m.lastA12 = a12
}

func (m *mapperState) clockMMC3IRQ() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnable {
		m.irqPendingF = true
	}
}

func (m *mapperState) mapRead(c *Cart, addr uint16) MappedRead {
	switch c.kind {
	case MapperEmpty:
		return MappedRead{Kind: ReadBus}

	case MapperNrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			idx := uint32(addr-0x8000) % uint32(m.prgBanks16k*0x4000)
			return MappedRead{Kind: ReadPrgRom, Index: idx}
		}
		return MappedRead{Kind: ReadBus}

	case MapperSxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			return MappedRead{Kind: ReadPrgRom, Index: m.mmc1PrgIndex(addr)}
		}

	case MapperUxrom:
		if addr >= 0x8000 {
			if addr < 0xC000 {
				return MappedRead{Kind: ReadPrgRom, Index: uint32(m.prgBank)*0x4000 + uint32(addr-0x8000)}
			}
			last := uint32(m.prgBanks16k - 1)
			return MappedRead{Kind: ReadPrgRom, Index: last*0x4000 + uint32(addr-0xC000)}
		}

	case MapperCnrom:
		if addr >= 0x8000 {
			idx := uint32(addr-0x8000) % uint32(m.prgBanks16k*0x4000)
			return MappedRead{Kind: ReadPrgRom, Index: idx}
		}

	case MapperTxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			return MappedRead{Kind: ReadPrgRom, Index: m.mmc3PrgIndex(addr)}
		}

	case MapperExrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			// simplified MMC5: single switchable 32KB PRG window, last
			// bank fixed at power-on; full EXRAM/split-screen support is
			// out of scope for this minimum variant.
			idx := uint32(m.prgBank)*0x8000 + uint32(addr-0x8000)
			return MappedRead{Kind: ReadPrgRom, Index: idx % uint32(len(c.PrgROM))}
		}

	case MapperAxrom:
		if addr >= 0x8000 {
			idx := uint32(m.prgBank&0x07)*0x8000 + uint32(addr-0x8000)
			return MappedRead{Kind: ReadPrgRom, Index: idx % uint32(len(c.PrgROM))}
		}

	case MapperPxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			return MappedRead{Kind: ReadPrgRom, Index: m.mmc2PrgIndex(addr)}
		}

	case MapperFxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedRead{Kind: ReadPrgRam, Index: uint32(addr - 0x6000)}
		}
		if addr >= 0x8000 {
			return MappedRead{Kind: ReadPrgRom, Index: m.mmc4PrgIndex(addr)}
		}

	case MapperGxrom:
		if addr >= 0x8000 {
			idx := uint32(m.prgBank)*0x8000 + uint32(addr-0x8000)
			return MappedRead{Kind: ReadPrgRom, Index: idx % uint32(len(c.PrgROM))}
		}

	case MapperBf909x:
		if addr >= 0x8000 {
			if addr < 0xC000 {
				return MappedRead{Kind: ReadPrgRom, Index: uint32(m.prgBank)*0x4000 + uint32(addr-0x8000)}
			}
			last := uint32(m.prgBanks16k - 1)
			return MappedRead{Kind: ReadPrgRom, Index: last*0x4000 + uint32(addr-0xC000)}
		}
	}
	return MappedRead{Kind: ReadBus}
}

func (m *mapperState) mmc1PrgIndex(addr uint16) uint32 {
	mode := (m.control >> 2) & 0x03
	bank := uint32(m.mmc1Prg & 0x0F)
	off := uint32(addr - 0x8000)
	switch mode {
	case 0, 1:
		// 32KB mode, bank bit0 ignored
		return (bank&^1)*0x4000 + off
	case 2:
		// fix first bank at $8000, switch $C000
		if addr < 0xC000 {
			return off
		}
		return bank*0x4000 + uint32(addr-0xC000)
	default:
		// fix last bank at $C000, switch $8000
		if addr >= 0xC000 {
			last := uint32(m.prgBanks16k - 1)
			return last*0x4000 + uint32(addr-0xC000)
		}
		return bank*0x4000 + off
	}
}

func (m *mapperState) mmc3PrgIndex(addr uint16) uint32 {
	last := uint32(m.prgBanks16k*2 - 1)
	swapMode := m.bankSelect&0x40 != 0
	off := uint32(addr-0x8000) % 0x2000
	slot := uint32(addr-0x8000) / 0x2000
	r6 := uint32(m.bankRegs[6])
	r7 := uint32(m.bankRegs[7])
	switch {
	case !swapMode && slot == 0:
		return r6*0x2000 + off
	case !swapMode && slot == 2:
		return (last-1)*0x2000 + off
	case swapMode && slot == 0:
		return (last-1)*0x2000 + off
	case swapMode && slot == 2:
		return r6*0x2000 + off
	case slot == 1:
		return r7*0x2000 + off
	default: // slot == 3, always fixed to the very last 8KB bank
		return last*0x2000 + off
	}
}

func (m *mapperState) mmc2PrgIndex(addr uint16) uint32 {
	if addr < 0xA000 {
		return uint32(m.mmc2PrgBank)*0x2000 + uint32(addr-0x8000)
	}
	// remaining 24KB ($A000-$FFFF) fixed to the last three 8KB banks
	last3 := uint32(m.prgBanks16k)*0x4000 - 3*0x2000
	return last3 + uint32(addr-0xA000)
}

// mmc4PrgIndex implements MMC4/Fxrom's PRG scheme, which is a different
// bank granularity from MMC2/Pxrom despite sharing CHR-latch logic: a single
// 16KB bank switchable at $8000-$BFFF, and the last 16KB bank fixed at
// $C000-$FFFF.
func (m *mapperState) mmc4PrgIndex(addr uint16) uint32 {
	if addr < 0xC000 {
		return uint32(m.mmc2PrgBank)*0x4000 + uint32(addr-0x8000)
	}
	last := uint32(m.prgBanks16k - 1)
	return last*0x4000 + uint32(addr-0xC000)
}

func (m *mapperState) mapWrite(c *Cart, addr uint16, value uint8) MappedWrite {
	switch c.kind {
	case MapperSxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedWrite{Kind: WritePrgRam, Index: uint32(addr - 0x6000), Value: value}
		}
		if addr >= 0x8000 {
			m.mmc1Write(addr, value)
		}

	case MapperUxrom:
		if addr >= 0x8000 {
			if c.busConflicts {
				value &= c.ReadPRG(addr)
			}
			m.prgBank = value & 0x0F
		}

	case MapperCnrom:
		if addr >= 0x8000 {
			if c.busConflicts {
				value &= c.ReadPRG(addr)
			}
			m.chrBank = value & 0x03
		}

	case MapperTxrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedWrite{Kind: WritePrgRam, Index: uint32(addr - 0x6000), Value: value}
		}
		if addr >= 0x8000 {
			m.mmc3Write(addr, value)
		}

	case MapperExrom:
		if addr >= 0x6000 && addr < 0x8000 {
			return MappedWrite{Kind: WritePrgRam, Index: uint32(addr - 0x6000), Value: value}
		}
		if addr == 0x5100 || addr == 0x5000 {
			m.prgBank = value & 0x03
		}

	case MapperAxrom:
		if addr >= 0x8000 {
			m.prgBank = value & 0x07
			m.singleScreenPage = (value >> 4) & 0x01
		}

	case MapperPxrom:
		switch {
		case addr >= 0xA000 && addr < 0xB000:
			m.mmc2PrgBank = value & 0x0F
		case addr >= 0xB000 && addr < 0xC000:
			m.chrBankFD0 = value & 0x1F
		case addr >= 0xC000 && addr < 0xD000:
			m.chrBankFE0 = value & 0x1F
		case addr >= 0xD000 && addr < 0xE000:
			m.chrBankFD1 = value & 0x1F
		case addr >= 0xE000 && addr < 0xF000:
			m.chrBankFE1 = value & 0x1F
		case addr >= 0xF000:
			m.mmc3Mirror = value & 0x01
		}

	case MapperFxrom:
		switch {
		case addr >= 0xA000 && addr < 0xB000:
			m.mmc2PrgBank = value & 0x0F
		case addr >= 0xB000 && addr < 0xC000:
			m.chrBankFD0 = value & 0x1F
		case addr >= 0xC000 && addr < 0xD000:
			m.chrBankFE0 = value & 0x1F
		case addr >= 0xD000 && addr < 0xE000:
			m.chrBankFD1 = value & 0x1F
		case addr >= 0xE000 && addr < 0xF000:
			m.chrBankFE1 = value & 0x1F
		case addr >= 0xF000:
			m.mmc3Mirror = value & 0x01
		}

	case MapperGxrom:
		if addr >= 0x8000 {
			m.chrBank = value & 0x03
			m.prgBank = (value >> 4) & 0x03
		}

	case MapperBf909x:
		if addr >= 0x8000 {
			m.prgBank = value & 0x0F
		}
	}
	return MappedWrite{Kind: WriteNone}
}

func (m *mapperState) mmc1Write(addr uint16, value uint8) {
	if value&0x80 != 0 {
		m.shift = 0x10
		m.control |= 0x0C
		return
	}
	complete := m.shift&0x01 != 0
	m.shift = (m.shift >> 1) | ((value & 0x01) << 4)
	if !complete {
		return
	}
	result := m.shift
	m.shift = 0x10
	switch {
	case addr < 0xA000:
		m.control = result
	case addr < 0xC000:
		m.chrBank0 = result
	case addr < 0xE000:
		m.chrBank1 = result
	default:
		m.mmc1Prg = result
	}
}

func (m *mapperState) mmc3Write(addr uint16, value uint8) {
	even := addr&1 == 0
	switch {
	case addr < 0xA000 && even:
		m.bankSelect = value
	case addr < 0xA000:
		m.bankRegs[m.bankSelect&0x07] = value
	case addr < 0xC000 && even:
		m.mmc3Mirror = value
	case addr < 0xC000:
		m.prgRAMEnable = value&0x80 != 0
		m.prgRAMWrite = value&0x40 == 0
	case addr < 0xE000 && even:
		m.irqLatch = value
	case addr < 0xE000:
		m.irqReload = true
	case even:
		m.irqEnable = false
		m.irqPendingF = false
	default:
		m.irqEnable = true
	}
}

func (m *mapperState) mapReadCHR(c *Cart, addr uint16) MappedRead {
	switch c.kind {
	case MapperNrom, MapperSxrom, MapperUxrom, MapperAxrom, MapperBf909x:
		if c.kind == MapperSxrom {
			return MappedRead{Kind: ReadChr, Index: m.mmc1ChrIndex(addr)}
		}
		return MappedRead{Kind: ReadChr, Index: uint32(addr)}

	case MapperCnrom:
		return MappedRead{Kind: ReadChr, Index: uint32(m.chrBank)*0x2000 + uint32(addr)}

	case MapperTxrom:
		return MappedRead{Kind: ReadChr, Index: m.mmc3ChrIndex(addr)}

	case MapperExrom:
		return MappedRead{Kind: ReadChr, Index: uint32(addr) % uint32(len(c.ChrROM))}

	case MapperGxrom:
		return MappedRead{Kind: ReadChr, Index: uint32(m.chrBank)*0x2000 + uint32(addr)}

	case MapperPxrom, MapperFxrom:
		m.updateMMC2Latch(addr)
		return MappedRead{Kind: ReadChr, Index: m.mmc2ChrIndex(addr)}
	}
	return MappedRead{Kind: ReadChr, Index: uint32(addr)}
}

func (m *mapperState) mmc1ChrIndex(addr uint16) uint32 {
	chrMode4k := m.control&0x10 != 0
	if !chrMode4k {
		// 8KB mode: one register selects both 4KB halves
		return uint32(m.chrBank0&^1)*0x1000 + uint32(addr)
	}
	if addr < 0x1000 {
		return uint32(m.chrBank0)*0x1000 + uint32(addr)
	}
	return uint32(m.chrBank1)*0x1000 + uint32(addr-0x1000)
}

func (m *mapperState) mmc3ChrIndex(addr uint16) uint32 {
	invert := m.bankSelect&0x80 != 0
	slot := addr / 0x0400
	off := addr % 0x0400
	regs := m.bankRegs
	order := [8]uint8{0, 0, 1, 1, 2, 3, 4, 5}
	if invert {
		order = [8]uint8{2, 3, 4, 5, 0, 0, 1, 1}
	}
	two := func(regIdx uint8, half uint16) uint32 {
		return (uint32(regs[regIdx]) &^ 1) * 0x0400 + uint32(half)*0x0400 + uint32(off)
	}
	switch slot {
	case 0:
		return two(order[0], 0)
	case 1:
		return two(order[0], 1)
	case 2:
		return two(order[2], 0)
	case 3:
		return two(order[2], 1)
	default:
		return uint32(regs[order[int(slot)]])*0x0400 + uint32(off)
	}
}

// updateMMC2Latch flips the CHR-bank latch when the PPU fetches one of the
// four sentinel tile addresses ($0FD8/$0FE8 for the left latch, $1FD8/$1FE8
// for the right), per the MMC2/MMC4 hardware quirk.
func (m *mapperState) updateMMC2Latch(addr uint16) {
	switch addr {
	case 0x0FD8:
		m.latch0FE = false
	case 0x0FE8:
		m.latch0FE = true
	case 0x1FD8:
		m.latch1FE = false
	case 0x1FE8:
		m.latch1FE = true
	}
}

func (m *mapperState) mmc2ChrIndex(addr uint16) uint32 {
	if addr < 0x1000 {
		if m.latch0FE {
			return uint32(m.chrBankFE0)*0x1000 + uint32(addr)
		}
		return uint32(m.chrBankFD0)*0x1000 + uint32(addr)
	}
	var bank uint32
	if m.latch1FE {
		bank = uint32(m.chrBankFE1)
	} else {
		bank = uint32(m.chrBankFD1)
	}
	return bank*0x1000 + uint32(addr-0x1000)
}

func (m *mapperState) mapWriteCHR(c *Cart, addr uint16, value uint8) MappedWrite {
	return MappedWrite{Kind: WriteChr, Index: uint32(addr), Value: value}
}
