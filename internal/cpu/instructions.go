package cpu

// Instruction describes one of the 256 opcode-table entries: the decoded
// (operation, addressing_mode, base_cycles, page_cross_penalty) tuple from
// spec.md §4.1.
type Instruction struct {
	Name             string
	Opcode           uint8
	Bytes            uint8
	Cycles           uint8
	Mode             AddressingMode
	PageCrossPenalty bool
	exec             func(cpu *CPU, addr uint16, pageCrossed bool) uint8
}

func (cpu *CPU) execute(inst *Instruction, addr uint16, pageCrossed bool) uint64 {
	extra := inst.exec(cpu, addr, pageCrossed)
	if pageCrossed && inst.PageCrossPenalty {
		extra++
	}
	return uint64(extra)
}

func (cpu *CPU) initInstructions() {
	add := func(name string, opcode uint8, bytes, cycles uint8, mode AddressingMode, pageCross bool, fn func(*CPU, uint16, bool) uint8) {
		cpu.instructions[opcode] = &Instruction{
			Name: name, Opcode: opcode, Bytes: bytes, Cycles: cycles,
			Mode: mode, PageCrossPenalty: pageCross, exec: fn,
		}
	}

	// --- load/store ---
	add("LDA", 0xA9, 2, 2, Immediate, false, opLDA)
	add("LDA", 0xA5, 2, 3, ZeroPage, false, opLDA)
	add("LDA", 0xB5, 2, 4, ZeroPageX, false, opLDA)
	add("LDA", 0xAD, 3, 4, Absolute, false, opLDA)
	add("LDA", 0xBD, 3, 4, AbsoluteX, true, opLDA)
	add("LDA", 0xB9, 3, 4, AbsoluteY, true, opLDA)
	add("LDA", 0xA1, 2, 6, IndexedIndirect, false, opLDA)
	add("LDA", 0xB1, 2, 5, IndirectIndexed, true, opLDA)

	add("LDX", 0xA2, 2, 2, Immediate, false, opLDX)
	add("LDX", 0xA6, 2, 3, ZeroPage, false, opLDX)
	add("LDX", 0xB6, 2, 4, ZeroPageY, false, opLDX)
	add("LDX", 0xAE, 3, 4, Absolute, false, opLDX)
	add("LDX", 0xBE, 3, 4, AbsoluteY, true, opLDX)

	add("LDY", 0xA0, 2, 2, Immediate, false, opLDY)
	add("LDY", 0xA4, 2, 3, ZeroPage, false, opLDY)
	add("LDY", 0xB4, 2, 4, ZeroPageX, false, opLDY)
	add("LDY", 0xAC, 3, 4, Absolute, false, opLDY)
	add("LDY", 0xBC, 3, 4, AbsoluteX, true, opLDY)

	add("STA", 0x85, 2, 3, ZeroPage, false, opSTA)
	add("STA", 0x95, 2, 4, ZeroPageX, false, opSTA)
	add("STA", 0x8D, 3, 4, Absolute, false, opSTA)
	add("STA", 0x9D, 3, 5, AbsoluteX, false, opSTA)
	add("STA", 0x99, 3, 5, AbsoluteY, false, opSTA)
	add("STA", 0x81, 2, 6, IndexedIndirect, false, opSTA)
	add("STA", 0x91, 2, 6, IndirectIndexed, false, opSTA)

	add("STX", 0x86, 2, 3, ZeroPage, false, opSTX)
	add("STX", 0x96, 2, 4, ZeroPageY, false, opSTX)
	add("STX", 0x8E, 3, 4, Absolute, false, opSTX)

	add("STY", 0x84, 2, 3, ZeroPage, false, opSTY)
	add("STY", 0x94, 2, 4, ZeroPageX, false, opSTY)
	add("STY", 0x8C, 3, 4, Absolute, false, opSTY)

	// --- transfers ---
	add("TAX", 0xAA, 1, 2, Implied, false, opTAX)
	add("TAY", 0xA8, 1, 2, Implied, false, opTAY)
	add("TXA", 0x8A, 1, 2, Implied, false, opTXA)
	add("TYA", 0x98, 1, 2, Implied, false, opTYA)
	add("TSX", 0xBA, 1, 2, Implied, false, opTSX)
	add("TXS", 0x9A, 1, 2, Implied, false, opTXS)

	// --- stack ---
	add("PHA", 0x48, 1, 3, Implied, false, opPHA)
	add("PLA", 0x68, 1, 4, Implied, false, opPLA)
	add("PHP", 0x08, 1, 3, Implied, false, opPHP)
	add("PLP", 0x28, 1, 4, Implied, false, opPLP)

	// --- arithmetic ---
	for _, e := range []struct {
		op   uint8
		b, c uint8
		m    AddressingMode
		pc   bool
	}{
		{0x69, 2, 2, Immediate, false}, {0x65, 2, 3, ZeroPage, false},
		{0x75, 2, 4, ZeroPageX, false}, {0x6D, 3, 4, Absolute, false},
		{0x7D, 3, 4, AbsoluteX, true}, {0x79, 3, 4, AbsoluteY, true},
		{0x61, 2, 6, IndexedIndirect, false}, {0x71, 2, 5, IndirectIndexed, true},
	} {
		add("ADC", e.op, e.b, e.c, e.m, e.pc, opADC)
	}
	for _, e := range []struct {
		op   uint8
		b, c uint8
		m    AddressingMode
		pc   bool
	}{
		{0xE9, 2, 2, Immediate, false}, {0xE5, 2, 3, ZeroPage, false},
		{0xF5, 2, 4, ZeroPageX, false}, {0xED, 3, 4, Absolute, false},
		{0xFD, 3, 4, AbsoluteX, true}, {0xF9, 3, 4, AbsoluteY, true},
		{0xE1, 2, 6, IndexedIndirect, false}, {0xF1, 2, 5, IndirectIndexed, true},
	} {
		add("SBC", e.op, e.b, e.c, e.m, e.pc, opSBC)
	}
	add("SBC", 0xEB, 2, 2, Immediate, false, opSBC) // unofficial duplicate

	// --- logic ---
	addFamily := func(name string, base map[uint8]struct {
		b, c uint8
		m    AddressingMode
		pc   bool
	}, fn func(*CPU, uint16, bool) uint8) {
		for op, e := range base {
			add(name, op, e.b, e.c, e.m, e.pc, fn)
		}
	}
	logicModes := func(imm, zp, zpx, abs, absx, absy, indx, indy uint8) map[uint8]struct {
		b, c uint8
		m    AddressingMode
		pc   bool
	} {
		return map[uint8]struct {
			b, c uint8
			m    AddressingMode
			pc   bool
		}{
			imm:  {2, 2, Immediate, false},
			zp:   {2, 3, ZeroPage, false},
			zpx:  {2, 4, ZeroPageX, false},
			abs:  {3, 4, Absolute, false},
			absx: {3, 4, AbsoluteX, true},
			absy: {3, 4, AbsoluteY, true},
			indx: {2, 6, IndexedIndirect, false},
			indy: {2, 5, IndirectIndexed, true},
		}
	}
	addFamily("AND", logicModes(0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31), opAND)
	addFamily("ORA", logicModes(0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11), opORA)
	addFamily("EOR", logicModes(0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51), opEOR)

	add("BIT", 0x24, 2, 3, ZeroPage, false, opBIT)
	add("BIT", 0x2C, 3, 4, Absolute, false, opBIT)

	add("CMP", 0xC9, 2, 2, Immediate, false, opCMP)
	add("CMP", 0xC5, 2, 3, ZeroPage, false, opCMP)
	add("CMP", 0xD5, 2, 4, ZeroPageX, false, opCMP)
	add("CMP", 0xCD, 3, 4, Absolute, false, opCMP)
	add("CMP", 0xDD, 3, 4, AbsoluteX, true, opCMP)
	add("CMP", 0xD9, 3, 4, AbsoluteY, true, opCMP)
	add("CMP", 0xC1, 2, 6, IndexedIndirect, false, opCMP)
	add("CMP", 0xD1, 2, 5, IndirectIndexed, true, opCMP)
	add("CPX", 0xE0, 2, 2, Immediate, false, opCPX)
	add("CPX", 0xE4, 2, 3, ZeroPage, false, opCPX)
	add("CPX", 0xEC, 3, 4, Absolute, false, opCPX)
	add("CPY", 0xC0, 2, 2, Immediate, false, opCPY)
	add("CPY", 0xC4, 2, 3, ZeroPage, false, opCPY)
	add("CPY", 0xCC, 3, 4, Absolute, false, opCPY)

	// --- inc/dec ---
	add("INC", 0xE6, 2, 5, ZeroPage, false, opINC)
	add("INC", 0xF6, 2, 6, ZeroPageX, false, opINC)
	add("INC", 0xEE, 3, 6, Absolute, false, opINC)
	add("INC", 0xFE, 3, 7, AbsoluteX, false, opINC)
	add("DEC", 0xC6, 2, 5, ZeroPage, false, opDEC)
	add("DEC", 0xD6, 2, 6, ZeroPageX, false, opDEC)
	add("DEC", 0xCE, 3, 6, Absolute, false, opDEC)
	add("DEC", 0xDE, 3, 7, AbsoluteX, false, opDEC)
	add("INX", 0xE8, 1, 2, Implied, false, opINX)
	add("INY", 0xC8, 1, 2, Implied, false, opINY)
	add("DEX", 0xCA, 1, 2, Implied, false, opDEX)
	add("DEY", 0x88, 1, 2, Implied, false, opDEY)

	// --- shifts/rotates ---
	add("ASL", 0x0A, 1, 2, Accumulator, false, opASL)
	add("ASL", 0x06, 2, 5, ZeroPage, false, opASL)
	add("ASL", 0x16, 2, 6, ZeroPageX, false, opASL)
	add("ASL", 0x0E, 3, 6, Absolute, false, opASL)
	add("ASL", 0x1E, 3, 7, AbsoluteX, false, opASL)
	add("LSR", 0x4A, 1, 2, Accumulator, false, opLSR)
	add("LSR", 0x46, 2, 5, ZeroPage, false, opLSR)
	add("LSR", 0x56, 2, 6, ZeroPageX, false, opLSR)
	add("LSR", 0x4E, 3, 6, Absolute, false, opLSR)
	add("LSR", 0x5E, 3, 7, AbsoluteX, false, opLSR)
	add("ROL", 0x2A, 1, 2, Accumulator, false, opROL)
	add("ROL", 0x26, 2, 5, ZeroPage, false, opROL)
	add("ROL", 0x36, 2, 6, ZeroPageX, false, opROL)
	add("ROL", 0x2E, 3, 6, Absolute, false, opROL)
	add("ROL", 0x3E, 3, 7, AbsoluteX, false, opROL)
	add("ROR", 0x6A, 1, 2, Accumulator, false, opROR)
	add("ROR", 0x66, 2, 5, ZeroPage, false, opROR)
	add("ROR", 0x76, 2, 6, ZeroPageX, false, opROR)
	add("ROR", 0x6E, 3, 6, Absolute, false, opROR)
	add("ROR", 0x7E, 3, 7, AbsoluteX, false, opROR)

	// --- jumps/calls/returns ---
	add("JMP", 0x4C, 3, 3, Absolute, false, opJMP)
	add("JMP", 0x6C, 3, 5, Indirect, false, opJMP)
	add("JSR", 0x20, 3, 6, Absolute, false, opJSR)
	add("RTS", 0x60, 1, 6, Implied, false, opRTS)
	add("RTI", 0x40, 1, 6, Implied, false, opRTI)
	add("BRK", 0x00, 1, 7, Implied, false, opBRK)

	// --- branches ---
	add("BCC", 0x90, 2, 2, Relative, false, branch(func(c *CPU) bool { return !c.C }))
	add("BCS", 0xB0, 2, 2, Relative, false, branch(func(c *CPU) bool { return c.C }))
	add("BNE", 0xD0, 2, 2, Relative, false, branch(func(c *CPU) bool { return !c.Z }))
	add("BEQ", 0xF0, 2, 2, Relative, false, branch(func(c *CPU) bool { return c.Z }))
	add("BPL", 0x10, 2, 2, Relative, false, branch(func(c *CPU) bool { return !c.N }))
	add("BMI", 0x30, 2, 2, Relative, false, branch(func(c *CPU) bool { return c.N }))
	add("BVC", 0x50, 2, 2, Relative, false, branch(func(c *CPU) bool { return !c.V }))
	add("BVS", 0x70, 2, 2, Relative, false, branch(func(c *CPU) bool { return c.V }))

	// --- flags ---
	add("CLC", 0x18, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.C = false; return 0 })
	add("SEC", 0x38, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.C = true; return 0 })
	add("CLI", 0x58, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.I = false; return 0 })
	add("SEI", 0x78, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.I = true; return 0 })
	add("CLV", 0xB8, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.V = false; return 0 })
	add("CLD", 0xD8, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.D = false; return 0 })
	add("SED", 0xF8, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 { c.D = true; return 0 })

	// --- NOP (official + unofficial) ---
	add("NOP", 0xEA, 1, 2, Implied, false, opNOP)
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		add("NOP", op, 1, 2, Implied, false, opNOP)
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		add("NOP", op, 2, 2, Immediate, false, opNOP)
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		add("NOP", op, 2, 3, ZeroPage, false, opNOP)
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		add("NOP", op, 2, 4, ZeroPageX, false, opNOP)
	}
	add("NOP", 0x0C, 3, 4, Absolute, false, opNOP)
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		add("NOP", op, 3, 4, AbsoluteX, true, opNOP)
	}

	// --- KIL/JAM: corrupts the CPU, per spec.md §4.1 Failure ---
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		add("KIL", op, 1, 2, Implied, false, func(c *CPU, a uint16, p bool) uint8 {
			c.corrupted = true
			return 0
		})
	}

	// --- stable unofficial combos ---
	add("LAX", 0xA7, 2, 3, ZeroPage, false, opLAX)
	add("LAX", 0xB7, 2, 4, ZeroPageY, false, opLAX)
	add("LAX", 0xAF, 3, 4, Absolute, false, opLAX)
	add("LAX", 0xBF, 3, 4, AbsoluteY, true, opLAX)
	add("LAX", 0xA3, 2, 6, IndexedIndirect, false, opLAX)
	add("LAX", 0xB3, 2, 5, IndirectIndexed, true, opLAX)

	add("SAX", 0x87, 2, 3, ZeroPage, false, opSAX)
	add("SAX", 0x97, 2, 4, ZeroPageY, false, opSAX)
	add("SAX", 0x8F, 3, 4, Absolute, false, opSAX)
	add("SAX", 0x83, 2, 6, IndexedIndirect, false, opSAX)

	add("DCP", 0xC7, 2, 5, ZeroPage, false, opDCP)
	add("DCP", 0xD7, 2, 6, ZeroPageX, false, opDCP)
	add("DCP", 0xCF, 3, 6, Absolute, false, opDCP)
	add("DCP", 0xDF, 3, 7, AbsoluteX, false, opDCP)
	add("DCP", 0xDB, 3, 7, AbsoluteY, false, opDCP)
	add("DCP", 0xC3, 2, 8, IndexedIndirect, false, opDCP)
	add("DCP", 0xD3, 2, 8, IndirectIndexed, false, opDCP)

	add("ISB", 0xE7, 2, 5, ZeroPage, false, opISB)
	add("ISB", 0xF7, 2, 6, ZeroPageX, false, opISB)
	add("ISB", 0xEF, 3, 6, Absolute, false, opISB)
	add("ISB", 0xFF, 3, 7, AbsoluteX, false, opISB)
	add("ISB", 0xFB, 3, 7, AbsoluteY, false, opISB)
	add("ISB", 0xE3, 2, 8, IndexedIndirect, false, opISB)
	add("ISB", 0xF3, 2, 8, IndirectIndexed, false, opISB)

	add("SLO", 0x07, 2, 5, ZeroPage, false, opSLO)
	add("SLO", 0x17, 2, 6, ZeroPageX, false, opSLO)
	add("SLO", 0x0F, 3, 6, Absolute, false, opSLO)
	add("SLO", 0x1F, 3, 7, AbsoluteX, false, opSLO)
	add("SLO", 0x1B, 3, 7, AbsoluteY, false, opSLO)
	add("SLO", 0x03, 2, 8, IndexedIndirect, false, opSLO)
	add("SLO", 0x13, 2, 8, IndirectIndexed, false, opSLO)

	add("RLA", 0x27, 2, 5, ZeroPage, false, opRLA)
	add("RLA", 0x37, 2, 6, ZeroPageX, false, opRLA)
	add("RLA", 0x2F, 3, 6, Absolute, false, opRLA)
	add("RLA", 0x3F, 3, 7, AbsoluteX, false, opRLA)
	add("RLA", 0x3B, 3, 7, AbsoluteY, false, opRLA)
	add("RLA", 0x23, 2, 8, IndexedIndirect, false, opRLA)
	add("RLA", 0x33, 2, 8, IndirectIndexed, false, opRLA)

	add("SRE", 0x47, 2, 5, ZeroPage, false, opSRE)
	add("SRE", 0x57, 2, 6, ZeroPageX, false, opSRE)
	add("SRE", 0x4F, 3, 6, Absolute, false, opSRE)
	add("SRE", 0x5F, 3, 7, AbsoluteX, false, opSRE)
	add("SRE", 0x5B, 3, 7, AbsoluteY, false, opSRE)
	add("SRE", 0x43, 2, 8, IndexedIndirect, false, opSRE)
	add("SRE", 0x53, 2, 8, IndirectIndexed, false, opSRE)

	add("RRA", 0x67, 2, 5, ZeroPage, false, opRRA)
	add("RRA", 0x77, 2, 6, ZeroPageX, false, opRRA)
	add("RRA", 0x6F, 3, 6, Absolute, false, opRRA)
	add("RRA", 0x7F, 3, 7, AbsoluteX, false, opRRA)
	add("RRA", 0x7B, 3, 7, AbsoluteY, false, opRRA)
	add("RRA", 0x63, 2, 8, IndexedIndirect, false, opRRA)
	add("RRA", 0x73, 2, 8, IndirectIndexed, false, opRRA)

	add("ANC", 0x0B, 2, 2, Immediate, false, opANC)
	add("ANC", 0x2B, 2, 2, Immediate, false, opANC)
	add("ALR", 0x4B, 2, 2, Immediate, false, opALR)
	add("ARR", 0x6B, 2, 2, Immediate, false, opARR)
	add("AXS", 0xCB, 2, 2, Immediate, false, opAXS)
	add("LAS", 0xBB, 3, 4, AbsoluteY, true, opLAS)

	// --- unstable-on-real-hardware, best-effort only per spec.md §9 open
	// question: never guessed beyond the commonly-documented approximation,
	// never implemented as a panic. ---
	add("AHX", 0x93, 2, 6, IndirectIndexed, false, opAHXIndirectY)
	add("AHX", 0x9F, 3, 5, AbsoluteY, false, opAHXAbsoluteY)
	add("SHX", 0x9E, 3, 5, AbsoluteY, false, opSHX)
	add("SHY", 0x9C, 3, 5, AbsoluteX, false, opSHY)
	add("TAS", 0x9B, 3, 5, AbsoluteY, false, opTAS)
	add("XAA", 0x8B, 2, 2, Immediate, false, opXAA)
}

func branch(taken func(*CPU) bool) func(*CPU, uint16, bool) uint8 {
	return func(cpu *CPU, addr uint16, pageCrossed bool) uint8 {
		if !taken(cpu) {
			return 0
		}
		extra := uint8(1)
		if (cpu.PC & pageMask) != (addr & pageMask) {
			extra++
		}
		cpu.PC = addr
		return extra
	}
}

func opLDA(cpu *CPU, addr uint16, _ bool) uint8 { cpu.A = cpu.bus.Read(addr); cpu.setZN(cpu.A); return 0 }
func opLDX(cpu *CPU, addr uint16, _ bool) uint8 { cpu.X = cpu.bus.Read(addr); cpu.setZN(cpu.X); return 0 }
func opLDY(cpu *CPU, addr uint16, _ bool) uint8 { cpu.Y = cpu.bus.Read(addr); cpu.setZN(cpu.Y); return 0 }
func opSTA(cpu *CPU, addr uint16, _ bool) uint8 { cpu.bus.Write(addr, cpu.A); return 0 }
func opSTX(cpu *CPU, addr uint16, _ bool) uint8 { cpu.bus.Write(addr, cpu.X); return 0 }
func opSTY(cpu *CPU, addr uint16, _ bool) uint8 { cpu.bus.Write(addr, cpu.Y); return 0 }

func opTAX(cpu *CPU, _ uint16, _ bool) uint8 { cpu.X = cpu.A; cpu.setZN(cpu.X); return 0 }
func opTAY(cpu *CPU, _ uint16, _ bool) uint8 { cpu.Y = cpu.A; cpu.setZN(cpu.Y); return 0 }
func opTXA(cpu *CPU, _ uint16, _ bool) uint8 { cpu.A = cpu.X; cpu.setZN(cpu.A); return 0 }
func opTYA(cpu *CPU, _ uint16, _ bool) uint8 { cpu.A = cpu.Y; cpu.setZN(cpu.A); return 0 }
func opTSX(cpu *CPU, _ uint16, _ bool) uint8 { cpu.X = cpu.SP; cpu.setZN(cpu.X); return 0 }
func opTXS(cpu *CPU, _ uint16, _ bool) uint8 { cpu.SP = cpu.X; return 0 }

func opPHA(cpu *CPU, _ uint16, _ bool) uint8 { cpu.push(cpu.A); return 0 }
func opPLA(cpu *CPU, _ uint16, _ bool) uint8 { cpu.A = cpu.pop(); cpu.setZN(cpu.A); return 0 }
func opPHP(cpu *CPU, _ uint16, _ bool) uint8 {
	cpu.push(cpu.GetStatusByte() | bFlagMask | unusedMask)
	return 0
}
func opPLP(cpu *CPU, _ uint16, _ bool) uint8 { cpu.SetStatusByte(cpu.pop()); return 0 }

func addWithCarry(cpu *CPU, value uint8) {
	sum := uint16(cpu.A) + uint16(value)
	if cpu.C {
		sum++
	}
	result := uint8(sum)
	cpu.C = sum > 0xFF
	cpu.V = (cpu.A^result)&0x80 != 0 && (cpu.A^value)&0x80 == 0
	cpu.A = result
	cpu.setZN(cpu.A)
}

func opADC(cpu *CPU, addr uint16, _ bool) uint8 { addWithCarry(cpu, cpu.bus.Read(addr)); return 0 }
func opSBC(cpu *CPU, addr uint16, _ bool) uint8 {
	addWithCarry(cpu, cpu.bus.Read(addr)^0xFF)
	return 0
}

func opAND(cpu *CPU, addr uint16, _ bool) uint8 { cpu.A &= cpu.bus.Read(addr); cpu.setZN(cpu.A); return 0 }
func opORA(cpu *CPU, addr uint16, _ bool) uint8 { cpu.A |= cpu.bus.Read(addr); cpu.setZN(cpu.A); return 0 }
func opEOR(cpu *CPU, addr uint16, _ bool) uint8 { cpu.A ^= cpu.bus.Read(addr); cpu.setZN(cpu.A); return 0 }

func opBIT(cpu *CPU, addr uint16, _ bool) uint8 {
	v := cpu.bus.Read(addr)
	cpu.Z = (cpu.A & v) == 0
	cpu.V = v&vFlagMask != 0
	cpu.N = v&nFlagMask != 0
	return 0
}

func compare(cpu *CPU, reg, value uint8) {
	result := reg - value
	cpu.C = reg >= value
	cpu.setZN(result)
}
func opCMP(cpu *CPU, addr uint16, _ bool) uint8 { compare(cpu, cpu.A, cpu.bus.Read(addr)); return 0 }
func opCPX(cpu *CPU, addr uint16, _ bool) uint8 { compare(cpu, cpu.X, cpu.bus.Read(addr)); return 0 }
func opCPY(cpu *CPU, addr uint16, _ bool) uint8 { compare(cpu, cpu.Y, cpu.bus.Read(addr)); return 0 }

func opINC(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return v + 1 })
	cpu.setZN(r)
	return 0
}
func opDEC(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return v - 1 })
	cpu.setZN(r)
	return 0
}
func opINX(cpu *CPU, _ uint16, _ bool) uint8 { cpu.X++; cpu.setZN(cpu.X); return 0 }
func opINY(cpu *CPU, _ uint16, _ bool) uint8 { cpu.Y++; cpu.setZN(cpu.Y); return 0 }
func opDEX(cpu *CPU, _ uint16, _ bool) uint8 { cpu.X--; cpu.setZN(cpu.X); return 0 }
func opDEY(cpu *CPU, _ uint16, _ bool) uint8 { cpu.Y--; cpu.setZN(cpu.Y); return 0 }

func asl(cpu *CPU, v uint8) uint8 { cpu.C = v&0x80 != 0; return v << 1 }
func lsr(cpu *CPU, v uint8) uint8 { cpu.C = v&0x01 != 0; return v >> 1 }
func rol(cpu *CPU, v uint8) uint8 {
	carry := uint8(0)
	if cpu.C {
		carry = 1
	}
	cpu.C = v&0x80 != 0
	return v<<1 | carry
}
func ror(cpu *CPU, v uint8) uint8 {
	carry := uint8(0)
	if cpu.C {
		carry = 0x80
	}
	cpu.C = v&0x01 != 0
	return v>>1 | carry
}

func opASL(cpu *CPU, addr uint16, _ bool) uint8 {
	if addr == 0 {
		cpu.A = asl(cpu, cpu.A)
		cpu.setZN(cpu.A)
		return 0
	}
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return asl(cpu, v) })
	cpu.setZN(r)
	return 0
}
func opLSR(cpu *CPU, addr uint16, _ bool) uint8 {
	if addr == 0 {
		cpu.A = lsr(cpu, cpu.A)
		cpu.setZN(cpu.A)
		return 0
	}
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return lsr(cpu, v) })
	cpu.setZN(r)
	return 0
}
func opROL(cpu *CPU, addr uint16, _ bool) uint8 {
	if addr == 0 {
		cpu.A = rol(cpu, cpu.A)
		cpu.setZN(cpu.A)
		return 0
	}
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return rol(cpu, v) })
	cpu.setZN(r)
	return 0
}
func opROR(cpu *CPU, addr uint16, _ bool) uint8 {
	if addr == 0 {
		cpu.A = ror(cpu, cpu.A)
		cpu.setZN(cpu.A)
		return 0
	}
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return ror(cpu, v) })
	cpu.setZN(r)
	return 0
}

func opJMP(cpu *CPU, addr uint16, _ bool) uint8 { cpu.PC = addr; return 0 }
func opJSR(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = addr
	return 0
}
func opRTS(cpu *CPU, _ uint16, _ bool) uint8 { cpu.PC = cpu.popWord() + 1; return 0 }
func opRTI(cpu *CPU, _ uint16, _ bool) uint8 {
	cpu.SetStatusByte(cpu.pop())
	cpu.PC = cpu.popWord()
	return 0
}
func opBRK(cpu *CPU, _ uint16, _ bool) uint8 {
	cpu.PC++ // BRK's second byte is a padding byte, skipped
	cpu.serviceInterrupt(irqVector, true)
	return 0
}
func opNOP(*CPU, uint16, bool) uint8 { return 0 }

// --- stable unofficial opcodes ---

func opLAX(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.A = cpu.bus.Read(addr)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
	return 0
}
func opSAX(cpu *CPU, addr uint16, _ bool) uint8 { cpu.bus.Write(addr, cpu.A&cpu.X); return 0 }

func opDCP(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return v - 1 })
	compare(cpu, cpu.A, r)
	return 0
}
func opISB(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return v + 1 })
	addWithCarry(cpu, r^0xFF)
	return 0
}
func opSLO(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return asl(cpu, v) })
	cpu.A |= r
	cpu.setZN(cpu.A)
	return 0
}
func opRLA(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return rol(cpu, v) })
	cpu.A &= r
	cpu.setZN(cpu.A)
	return 0
}
func opSRE(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return lsr(cpu, v) })
	cpu.A ^= r
	cpu.setZN(cpu.A)
	return 0
}
func opRRA(cpu *CPU, addr uint16, _ bool) uint8 {
	r := cpu.readModifyWrite(addr, func(v uint8) uint8 { return ror(cpu, v) })
	addWithCarry(cpu, r)
	return 0
}

func opANC(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.A &= cpu.bus.Read(addr)
	cpu.setZN(cpu.A)
	cpu.C = cpu.N
	return 0
}
func opALR(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.A &= cpu.bus.Read(addr)
	cpu.A = lsr(cpu, cpu.A)
	cpu.setZN(cpu.A)
	return 0
}
func opARR(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.A &= cpu.bus.Read(addr)
	cpu.A = ror(cpu, cpu.A)
	cpu.setZN(cpu.A)
	cpu.C = cpu.A&0x40 != 0
	cpu.V = (cpu.A>>6)&1^(cpu.A>>5)&1 != 0
	return 0
}
func opAXS(cpu *CPU, addr uint16, _ bool) uint8 {
	v := cpu.bus.Read(addr)
	and := cpu.A & cpu.X
	cpu.C = and >= v
	cpu.X = and - v
	cpu.setZN(cpu.X)
	return 0
}
func opLAS(cpu *CPU, addr uint16, _ bool) uint8 {
	v := cpu.bus.Read(addr) & cpu.SP
	cpu.A, cpu.X, cpu.SP = v, v, v
	cpu.setZN(v)
	return 0
}

// --- best-effort unstable opcodes (spec.md §9 open question) ---
// These are not guaranteed to match any particular revision of real
// hardware under bus contention; they implement the commonly-documented
// approximation so tooling depending on their mere presence in the opcode
// table (disassemblers, test-suite skips) does not need special-casing.

func opAHXIndirectY(cpu *CPU, addr uint16, _ bool) uint8 {
	hi := uint8(addr>>8) + 1
	cpu.bus.Write(addr, cpu.A&cpu.X&hi)
	return 0
}
func opAHXAbsoluteY(cpu *CPU, addr uint16, _ bool) uint8 {
	hi := uint8(addr>>8) + 1
	cpu.bus.Write(addr, cpu.A&cpu.X&hi)
	return 0
}
func opSHX(cpu *CPU, addr uint16, _ bool) uint8 {
	hi := uint8(addr>>8) + 1
	cpu.bus.Write(addr, cpu.X&hi)
	return 0
}
func opSHY(cpu *CPU, addr uint16, _ bool) uint8 {
	hi := uint8(addr>>8) + 1
	cpu.bus.Write(addr, cpu.Y&hi)
	return 0
}
func opTAS(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.SP = cpu.A & cpu.X
	hi := uint8(addr>>8) + 1
	cpu.bus.Write(addr, cpu.SP&hi)
	return 0
}
func opXAA(cpu *CPU, addr uint16, _ bool) uint8 {
	cpu.A = cpu.X & cpu.bus.Read(addr)
	cpu.setZN(cpu.A)
	return 0
}
