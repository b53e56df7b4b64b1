package cartridge

// MapperState is the exported snapshot of a mapper's bank-selection
// registers, gob-encoded by internal/nesstate.
type MapperState struct {
	PRGBanks16k int
	CHRBanks8k  int

	Shift    uint8
	Control  uint8
	CHRBank0 uint8
	CHRBank1 uint8
	MMC1Prg  uint8

	PRGBank uint8
	CHRBank uint8

	SingleScreenPage uint8

	BankSelect   uint8
	BankRegs     [8]uint8
	MMC3Mirror   uint8
	PRGRAMEnable bool
	PRGRAMWrite  bool
	IRQLatch     uint8
	IRQCounter   uint8
	IRQReload    bool
	IRQEnable    bool
	IRQPendingF  bool
	LastA12      bool

	CHRBankFD0, CHRBankFE0 uint8
	CHRBankFD1, CHRBankFE1 uint8
	Latch0FE, Latch1FE     bool
	MMC2PRGBank            uint8
}

func (m *mapperState) save() MapperState {
	return MapperState{
		PRGBanks16k: m.prgBanks16k, CHRBanks8k: m.chrBanks8k,
		Shift: m.shift, Control: m.control, CHRBank0: m.chrBank0, CHRBank1: m.chrBank1, MMC1Prg: m.mmc1Prg,
		PRGBank: m.prgBank, CHRBank: m.chrBank,
		SingleScreenPage: m.singleScreenPage,
		BankSelect:       m.bankSelect, BankRegs: m.bankRegs, MMC3Mirror: m.mmc3Mirror,
		PRGRAMEnable: m.prgRAMEnable, PRGRAMWrite: m.prgRAMWrite,
		IRQLatch: m.irqLatch, IRQCounter: m.irqCounter, IRQReload: m.irqReload,
		IRQEnable: m.irqEnable, IRQPendingF: m.irqPendingF, LastA12: m.lastA12,
		CHRBankFD0: m.chrBankFD0, CHRBankFE0: m.chrBankFE0,
		CHRBankFD1: m.chrBankFD1, CHRBankFE1: m.chrBankFE1,
		Latch0FE: m.latch0FE, Latch1FE: m.latch1FE, MMC2PRGBank: m.mmc2PrgBank,
	}
}

func (m *mapperState) load(s MapperState) {
	m.prgBanks16k, m.chrBanks8k = s.PRGBanks16k, s.CHRBanks8k
	m.shift, m.control, m.chrBank0, m.chrBank1, m.mmc1Prg = s.Shift, s.Control, s.CHRBank0, s.CHRBank1, s.MMC1Prg
	m.prgBank, m.chrBank = s.PRGBank, s.CHRBank
	m.singleScreenPage = s.SingleScreenPage
	m.bankSelect, m.bankRegs, m.mmc3Mirror = s.BankSelect, s.BankRegs, s.MMC3Mirror
	m.prgRAMEnable, m.prgRAMWrite = s.PRGRAMEnable, s.PRGRAMWrite
	m.irqLatch, m.irqCounter, m.irqReload = s.IRQLatch, s.IRQCounter, s.IRQReload
	m.irqEnable, m.irqPendingF, m.lastA12 = s.IRQEnable, s.IRQPendingF, s.LastA12
	m.chrBankFD0, m.chrBankFE0 = s.CHRBankFD0, s.CHRBankFE0
	m.chrBankFD1, m.chrBankFE1 = s.CHRBankFD1, s.CHRBankFE1
	m.latch0FE, m.latch1FE, m.mmc2PrgBank = s.Latch0FE, s.Latch1FE, s.MMC2PRGBank
}

// State is the exported snapshot of a cartridge's writable state: PRG-RAM
// (battery-backed save data lives here), CHR-RAM if the board has no CHR-ROM,
// the active mirroring mode, and the mapper's own bank-selection registers.
// PRG-ROM/CHR-ROM themselves are never part of a save state — they are
// supplied fresh by whatever ROM file the caller loads before restoring.
type State struct {
	PRGRAM  [0x2000]uint8
	CHRRAM  []uint8
	Mirroring Mirroring
	Mapper  MapperState
}

// SaveState captures the cartridge's writable state.
func (c *Cart) SaveState() State {
	s := State{
		PRGRAM:    c.PrgRAM,
		Mirroring: c.mirroring,
		Mapper:    c.state.save(),
	}
	if c.hasCHRRAM {
		s.CHRRAM = append([]uint8(nil), c.ChrROM...)
	}
	return s
}

// LoadState restores the cartridge's writable state. The ROM the caller
// already loaded must match the mapper kind and CHR-RAM/CHR-ROM shape the
// state was captured from; this is the caller's responsibility to verify
// (e.g. against a stored ROM checksum), not this package's.
func (c *Cart) LoadState(s State) {
	c.PrgRAM = s.PRGRAM
	c.mirroring = s.Mirroring
	if c.hasCHRRAM && len(s.CHRRAM) == len(c.ChrROM) {
		copy(c.ChrROM, s.CHRRAM)
	}
	c.state.load(s.Mapper)
}
