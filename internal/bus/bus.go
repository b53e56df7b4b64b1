// Package bus wires the CPU, PPU, APU, input, and cartridge together and
// drives system-level timing: PPU/APU clocking at their fixed ratio to the
// CPU, OAMDMA stall orchestration, and mapper IRQ delivery.
package bus

import (
	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
	"gones/internal/region"
)

// Bus connects all NES components together.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState
	Cart   *cartridge.Cart

	cpuCycles  uint64
	ppuCycles  uint64
	frameCount uint64

	dmaInProgress bool

	region        region.Region
	ppuDotDebt    float64 // fractional PPU dots owed for the region's PPU:CPU ratio
	frameCycleBudget float64 // fractional CPU-cycle accumulator for Frame()

	memoryWatchpoints map[uint16]uint8
	watchpointLogging bool
}

// New creates a new system bus with all components, unloaded.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),

		memoryWatchpoints: make(map[uint16]uint8),
	}

	b.Memory = memory.New(b.PPU, b.APU, nil)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.PPU.SetFrameCompleteCallback(b.handleFrameComplete)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.APU.SetMemoryReadFunc(b.Memory.Read)
	b.APU.SetStallFunc(b.CPU.Stall)
	b.Input.SetBeamSource(func() ([ppu.WIDTH * ppu.HEIGHT]uint16, int, int) {
		return b.PPU.GetFrameBuffer(), b.PPU.GetScanline(), b.PPU.GetCycle()
	})

	b.Reset()

	return b
}

// SetRAMInitPolicy configures the pattern internal RAM is reseeded with on
// the next PowerCycle; RAM itself is not touched until then.
func (b *Bus) SetRAMInitPolicy(policy memory.RAMInitPolicy, rand func() uint8) {
	b.Memory.SetRAMInitPolicy(policy, rand)
}

// SetRegion selects the console timing standard (NTSC/PAL/Dendy), which
// changes the PPU's scanlines-per-frame and the PPU:CPU clock ratio used to
// step the PPU. Takes effect immediately.
func (b *Bus) SetRegion(r region.Region) {
	b.region = r
	b.PPU.SetRegion(r)
	b.APU.SetRegion(r)
	b.ppuDotDebt = 0
	b.frameCycleBudget = 0
}

// Region returns the bus's configured console timing standard.
func (b *Bus) Region() region.Region { return b.region }

// PowerCycle performs a hard reset: RAM is reseeded per the configured
// RAM-init policy (unlike Reset, which leaves RAM contents untouched, as
// real hardware's reset line does) and every component returns to its
// power-on state.
func (b *Bus) PowerCycle() {
	b.Memory.PowerOn()
	b.Reset()
}

// Reset returns the CPU, PPU, APU and input to their power-on state; RAM
// contents are left untouched.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.cpuCycles = 0
	b.ppuCycles = 0
	b.frameCount = 0
	b.dmaInProgress = false

	b.PPU.SetFrameCount(0)
	b.memoryWatchpoints = make(map[uint16]uint8)
}

// triggerNMI is called by the PPU when VBlank begins with NMI enabled.
func (b *Bus) triggerNMI() {
	b.CPU.SetNMI(true)
	b.CPU.SetNMI(false)
}

// handleFrameComplete is called by the PPU when a frame finishes.
func (b *Bus) handleFrameComplete() {
	b.frameCount = b.PPU.GetFrameCount()
	b.Input.TickTurboFrame()
}

// Step executes one CPU instruction (or one stall/DMA cycle) and advances
// the PPU/APU by the corresponding number of cycles.
func (b *Bus) Step() {
	irq := b.APU.IRQPending()
	if b.Cart != nil {
		irq = irq || b.Cart.IRQPending()
	}
	b.CPU.SetIRQ(irq)

	cpuCycles := b.CPU.Step()
	if b.CPU.IsStalled() {
		b.dmaInProgress = true
	} else {
		b.dmaInProgress = false
	}

	b.ppuDotDebt += float64(cpuCycles) * region.For(b.region).DotsPerCPUCycle
	for b.ppuDotDebt >= 1.0 {
		b.PPU.Step()
		b.ppuCycles++
		b.ppuDotDebt -= 1.0
	}

	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}

	b.cpuCycles += cpuCycles

	if b.watchpointLogging {
		b.CheckMemoryWatchpoints()
	}
}

// TriggerOAMDMA initiates an OAM DMA transfer: 513 cycles, or 514 if
// starting on an odd CPU cycle, stolen from the CPU via cpu.Stall.
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}
	b.CPU.Stall(dmaCycles)

	sourceAddress := uint16(sourcePage) << 8
	for i := 0; i < 256; i++ {
		data := b.Memory.Read(sourceAddress + uint16(i))
		b.PPU.WriteOAM(uint8(i), data)
	}
}

// LoadCartridge loads a cartridge into the system, rebuilding memory and the
// CPU against it and wiring the PPU's nametable mirroring to match.
func (b *Bus) LoadCartridge(cart *cartridge.Cart) {
	b.Cart = cart
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	ppuMemory := memory.NewPPUMemory(cart, cart.Mirroring())
	b.PPU.SetMemory(ppuMemory)
	b.PPU.SetMapperNotify(cart.NotifyPPUAddr)
	cart.SetMirrorNotify(ppuMemory.SetMirroring)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.APU.SetMemoryReadFunc(b.Memory.Read)
	b.APU.SetStallFunc(b.CPU.Stall)

	b.CPU.Reset()
}

// Run runs the emulator for a specified number of frames.
func (b *Bus) Run(frames int) {
	target := b.frameCount + uint64(frames)
	for b.frameCount < target {
		b.Step()
	}
}

// RunCycles runs the emulator for a specified number of CPU cycles.
func (b *Bus) RunCycles(cycles uint64) {
	target := b.cpuCycles + cycles
	for b.cpuCycles < target {
		b.Step()
	}
}

// Frame executes one complete frame worth of CPU cycles for the configured
// region. Cycles-per-frame is fractional for every region (about 29,780.67
// on NTSC), so the remainder is accumulated across calls and the long-run
// average tracks the real rate.
func (b *Bus) Frame() {
	b.frameCycleBudget += region.For(b.region).CPUCyclesPerFrame()
	target := b.cpuCycles + uint64(b.frameCycleBudget)
	b.frameCycleBudget -= float64(uint64(b.frameCycleBudget))
	for b.cpuCycles < target {
		b.Step()
	}
}

// GetFrameRate returns the configured region's frame rate in Hz, derived
// from its CPU clock and cycles-per-frame.
func (b *Bus) GetFrameRate() float64 {
	timing := region.For(b.region)
	return timing.CPUClockHz / timing.CPUCyclesPerFrame()
}

// GetFrameBuffer returns the current PPU frame buffer of palette indices.
func (b *Bus) GetFrameBuffer() []uint16 {
	frameBuffer := b.PPU.GetFrameBuffer()
	return frameBuffer[:]
}

// GetAudioSamples returns the current audio samples from the APU.
func (b *Bus) GetAudioSamples() []float32 {
	return b.APU.GetSamples()
}

// SetAudioSampleRate sets the target audio sample rate for the APU.
func (b *Bus) SetAudioSampleRate(rate int) {
	b.APU.SetSampleRate(rate)
}

// GetCycleCount returns the current CPU cycle count.
func (b *Bus) GetCycleCount() uint64 { return b.cpuCycles }

// GetFrameCount returns the current frame count.
func (b *Bus) GetFrameCount() uint64 { return b.frameCount }

// IsDMAInProgress returns whether DMA/stall is currently in progress.
func (b *Bus) IsDMAInProgress() bool { return b.dmaInProgress }

func (b *Bus) isRenderingEnabled() bool {
	return b.PPU.IsRenderingEnabled()
}

// SetControllerButton sets the state of a single controller button.
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 0, 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all button states for a controller at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 0, 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// EnableInputDebug enables debug logging for the input system.
func (b *Bus) EnableInputDebug(enable bool) {
	b.Input.EnableDebug(enable)
}

// GetInputState returns the input state for direct access.
func (b *Bus) GetInputState() *input.InputState { return b.Input }

// GetCPUState returns a snapshot of CPU state, for debugger/status queries.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		PC:     b.CPU.PC,
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		Cycles: b.cpuCycles,
		Flags: CPUFlags{
			N: b.CPU.N,
			V: b.CPU.V,
			B: b.CPU.B,
			D: b.CPU.D,
			I: b.CPU.I,
			Z: b.CPU.Z,
			C: b.CPU.C,
		},
	}
}

// CPUState represents a CPU state snapshot for status queries/tests.
type CPUState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	Cycles  uint64
	Flags   CPUFlags
}

// CPUFlags represents CPU status flags in a status snapshot.
type CPUFlags struct {
	N, V, B, D, I, Z, C bool
}

// GetPPUState returns a snapshot of PPU state, for debugger/status queries.
// Reads the scanline/cycle/VBlank flag directly rather than through
// ReadRegister(0x2002), which has the hardware side effect of clearing VBL
// and the write-toggle latch — a snapshot query must not perturb state.
func (b *Bus) GetPPUState() PPUState {
	return PPUState{
		Scanline:    b.PPU.GetScanline(),
		Cycle:       b.PPU.GetCycle(),
		FrameCount:  b.frameCount,
		VBlankFlag:  b.PPU.IsVBlank(),
		RenderingOn: b.isRenderingEnabled(),
	}
}

// PPUState represents a PPU state snapshot for status queries/tests.
type PPUState struct {
	Scanline    int
	Cycle       int
	FrameCount  uint64
	VBlankFlag  bool
	RenderingOn bool
}

// AddMemoryWatchpoint adds a memory address to monitor for changes.
func (b *Bus) AddMemoryWatchpoint(address uint16) {
	if b.Memory != nil {
		b.memoryWatchpoints[address] = b.Memory.Read(address)
	}
}

// EnableWatchpointLogging enables/disables memory watchpoint change logging.
func (b *Bus) EnableWatchpointLogging(enabled bool) {
	b.watchpointLogging = enabled
}

// CheckMemoryWatchpoints checks all watchpoints for changes, updating their
// tracked value, and returns the changes it found.
func (b *Bus) CheckMemoryWatchpoints() []WatchpointChange {
	if b.Memory == nil {
		return nil
	}
	var changes []WatchpointChange
	for address, previous := range b.memoryWatchpoints {
		current := b.Memory.Read(address)
		if current != previous {
			changes = append(changes, WatchpointChange{Address: address, Previous: previous, Current: current})
			b.memoryWatchpoints[address] = current
		}
	}
	return changes
}

// WatchpointChange describes one observed watchpoint value change.
type WatchpointChange struct {
	Address  uint16
	Previous uint8
	Current  uint8
}

// EnableCPUDebug enables/disables CPU debug logging.
func (b *Bus) EnableCPUDebug(enable bool) {
	if b.CPU != nil {
		b.CPU.Debug = enable
	}
}
