package cpu

// State is the exported snapshot of the CPU's architectural state, gob-encoded
// by internal/nesstate. instructions/bus are wiring, not state, and are
// excluded; Debug is a host toggle, not console state.
type State struct {
	A, X, Y, SP uint8
	PC          uint16

	C, Z, I, D, B, V, N bool

	Cycles uint64

	NMIPending bool
	NMILine    bool
	IRQPending bool

	Stall     uint64
	Corrupted bool
}

// SaveState captures the CPU's architectural state.
func (cpu *CPU) SaveState() State {
	return State{
		A: cpu.A, X: cpu.X, Y: cpu.Y, SP: cpu.SP, PC: cpu.PC,
		C: cpu.C, Z: cpu.Z, I: cpu.I, D: cpu.D, B: cpu.B, V: cpu.V, N: cpu.N,
		Cycles:     cpu.cycles,
		NMIPending: cpu.nmiPending, NMILine: cpu.nmiLine, IRQPending: cpu.irqPending,
		Stall: cpu.stall, Corrupted: cpu.corrupted,
	}
}

// LoadState restores the CPU's architectural state.
func (cpu *CPU) LoadState(s State) {
	cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.PC = s.A, s.X, s.Y, s.SP, s.PC
	cpu.C, cpu.Z, cpu.I, cpu.D, cpu.B, cpu.V, cpu.N = s.C, s.Z, s.I, s.D, s.B, s.V, s.N
	cpu.cycles = s.Cycles
	cpu.nmiPending, cpu.nmiLine, cpu.irqPending = s.NMIPending, s.NMILine, s.IRQPending
	cpu.stall, cpu.corrupted = s.Stall, s.Corrupted
}
