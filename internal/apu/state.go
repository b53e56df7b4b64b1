package apu

// PulseState is the exported snapshot of a PulseChannel, used by save states.
type PulseState struct {
	DutyCycle       uint8
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	SweepEnable  bool
	SweepPeriod  uint8
	SweepNegate  bool
	SweepShift   uint8
	SweepReload  bool
	SweepCounter uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	DutyIndex    uint8
	Output       uint8
	SequencerPos uint8
}

func (p *PulseChannel) save() PulseState {
	return PulseState{
		DutyCycle: p.dutyCycle, EnvelopeLoop: p.envelopeLoop, EnvelopeDisable: p.envelopeDisable, Volume: p.volume,
		SweepEnable: p.sweepEnable, SweepPeriod: p.sweepPeriod, SweepNegate: p.sweepNegate, SweepShift: p.sweepShift,
		SweepReload: p.sweepReload, SweepCounter: p.sweepCounter,
		Timer: p.timer, TimerCounter: p.timerCounter,
		LengthCounter: p.lengthCounter, LengthHalt: p.lengthHalt,
		EnvelopeStart: p.envelopeStart, EnvelopeCounter: p.envelopeCounter, EnvelopeDivider: p.envelopeDivider,
		DutyIndex: p.dutyIndex, Output: p.output, SequencerPos: p.sequencerPos,
	}
}

func (p *PulseChannel) load(s PulseState) {
	p.dutyCycle, p.envelopeLoop, p.envelopeDisable, p.volume = s.DutyCycle, s.EnvelopeLoop, s.EnvelopeDisable, s.Volume
	p.sweepEnable, p.sweepPeriod, p.sweepNegate, p.sweepShift = s.SweepEnable, s.SweepPeriod, s.SweepNegate, s.SweepShift
	p.sweepReload, p.sweepCounter = s.SweepReload, s.SweepCounter
	p.timer, p.timerCounter = s.Timer, s.TimerCounter
	p.lengthCounter, p.lengthHalt = s.LengthCounter, s.LengthHalt
	p.envelopeStart, p.envelopeCounter, p.envelopeDivider = s.EnvelopeStart, s.EnvelopeCounter, s.EnvelopeDivider
	p.dutyIndex, p.output, p.sequencerPos = s.DutyIndex, s.Output, s.SequencerPos
}

// TriangleState is the exported snapshot of a TriangleChannel.
type TriangleState struct {
	LengthCounterHalt bool
	LinearCounterLoad uint8

	Timer        uint16
	TimerCounter uint16

	LengthCounter uint8

	LinearCounter       uint8
	LinearCounterReload bool

	SequencerPos uint8
	Output       uint8
}

func (t *TriangleChannel) save() TriangleState {
	return TriangleState{
		LengthCounterHalt: t.lengthCounterHalt, LinearCounterLoad: t.linearCounterLoad,
		Timer: t.timer, TimerCounter: t.timerCounter,
		LengthCounter:       t.lengthCounter,
		LinearCounter:       t.linearCounter,
		LinearCounterReload: t.linearCounterReload,
		SequencerPos:        t.sequencerPos, Output: t.output,
	}
}

func (t *TriangleChannel) load(s TriangleState) {
	t.lengthCounterHalt, t.linearCounterLoad = s.LengthCounterHalt, s.LinearCounterLoad
	t.timer, t.timerCounter = s.Timer, s.TimerCounter
	t.lengthCounter = s.LengthCounter
	t.linearCounter, t.linearCounterReload = s.LinearCounter, s.LinearCounterReload
	t.sequencerPos, t.output = s.SequencerPos, s.Output
}

// NoiseState is the exported snapshot of a NoiseChannel.
type NoiseState struct {
	EnvelopeLoop    bool
	EnvelopeDisable bool
	Volume          uint8

	Mode         bool
	PeriodIndex  uint8
	TimerCounter uint16

	LengthCounter uint8
	LengthHalt    bool

	EnvelopeStart   bool
	EnvelopeCounter uint8
	EnvelopeDivider uint8

	ShiftRegister uint16
	Output        uint8
}

func (n *NoiseChannel) save() NoiseState {
	return NoiseState{
		EnvelopeLoop: n.envelopeLoop, EnvelopeDisable: n.envelopeDisable, Volume: n.volume,
		Mode: n.mode, PeriodIndex: n.periodIndex, TimerCounter: n.timerCounter,
		LengthCounter: n.lengthCounter, LengthHalt: n.lengthHalt,
		EnvelopeStart: n.envelopeStart, EnvelopeCounter: n.envelopeCounter, EnvelopeDivider: n.envelopeDivider,
		ShiftRegister: n.shiftRegister, Output: n.output,
	}
}

func (n *NoiseChannel) load(s NoiseState) {
	n.envelopeLoop, n.envelopeDisable, n.volume = s.EnvelopeLoop, s.EnvelopeDisable, s.Volume
	n.mode, n.periodIndex, n.timerCounter = s.Mode, s.PeriodIndex, s.TimerCounter
	n.lengthCounter, n.lengthHalt = s.LengthCounter, s.LengthHalt
	n.envelopeStart, n.envelopeCounter, n.envelopeDivider = s.EnvelopeStart, s.EnvelopeCounter, s.EnvelopeDivider
	n.shiftRegister, n.output = s.ShiftRegister, s.Output
}

// DMCState is the exported snapshot of a DMCChannel.
type DMCState struct {
	IRQEnable bool
	Loop      bool
	RateIndex uint8

	OutputLevel uint8

	SampleAddress uint16
	SampleLength  uint16

	TimerCounter      uint16
	SampleBuffer      uint8
	SampleBufferBits  uint8
	SampleBufferEmpty bool
	BytesRemaining    uint16
	CurrentAddress    uint16

	IRQFlag bool
	Output  uint8
}

func (d *DMCChannel) save() DMCState {
	return DMCState{
		IRQEnable: d.irqEnable, Loop: d.loop, RateIndex: d.rateIndex,
		OutputLevel:   d.outputLevel,
		SampleAddress: d.sampleAddress, SampleLength: d.sampleLength,
		TimerCounter: d.timerCounter, SampleBuffer: d.sampleBuffer, SampleBufferBits: d.sampleBufferBits,
		SampleBufferEmpty: d.sampleBufferEmpty, BytesRemaining: d.bytesRemaining, CurrentAddress: d.currentAddress,
		IRQFlag: d.irqFlag, Output: d.output,
	}
}

func (d *DMCChannel) load(s DMCState) {
	d.irqEnable, d.loop, d.rateIndex = s.IRQEnable, s.Loop, s.RateIndex
	d.outputLevel = s.OutputLevel
	d.sampleAddress, d.sampleLength = s.SampleAddress, s.SampleLength
	d.timerCounter, d.sampleBuffer, d.sampleBufferBits = s.TimerCounter, s.SampleBuffer, s.SampleBufferBits
	d.sampleBufferEmpty, d.bytesRemaining, d.currentAddress = s.SampleBufferEmpty, s.BytesRemaining, s.CurrentAddress
	d.irqFlag, d.output = s.IRQFlag, s.Output
}

// State is the exported snapshot of an entire APU, gob-encoded by
// internal/nesstate. Audio sample buffering (sampleBuffer/cycleAccumulator)
// is deliberately excluded: it is host-playback plumbing, not console
// architectural state, and is safe to restart fresh on load.
type State struct {
	Pulse1   PulseState
	Pulse2   PulseState
	Triangle TriangleState
	Noise    NoiseState
	DMC      DMCState

	FrameCounter     uint16
	FrameMode        bool
	FrameIRQEnable   bool
	FrameCounterStep uint8
	FrameIRQFlag     bool

	ChannelEnable [5]bool

	Cycles uint64
}

// SaveState captures the APU's architectural state.
func (apu *APU) SaveState() State {
	return State{
		Pulse1: apu.pulse1.save(), Pulse2: apu.pulse2.save(), Triangle: apu.triangle.save(),
		Noise: apu.noise.save(), DMC: apu.dmc.save(),
		FrameCounter: apu.frameCounter, FrameMode: apu.frameMode, FrameIRQEnable: apu.frameIRQEnable,
		FrameCounterStep: apu.frameCounterStep, FrameIRQFlag: apu.frameIRQFlag,
		ChannelEnable: apu.channelEnable,
		Cycles:        apu.cycles,
	}
}

// LoadState restores the APU's architectural state. The memRead/stall
// callbacks are left untouched — they are wired once by the bus and do not
// travel with a save state.
func (apu *APU) LoadState(s State) {
	apu.pulse1.load(s.Pulse1)
	apu.pulse2.load(s.Pulse2)
	apu.triangle.load(s.Triangle)
	apu.noise.load(s.Noise)
	apu.dmc.load(s.DMC)
	apu.frameCounter, apu.frameMode, apu.frameIRQEnable = s.FrameCounter, s.FrameMode, s.FrameIRQEnable
	apu.frameCounterStep, apu.frameIRQFlag = s.FrameCounterStep, s.FrameIRQFlag
	apu.channelEnable = s.ChannelEnable
	apu.cycles = s.Cycles
}
