// Package controldeck provides frame-level orchestration over the bus: ROM
// loading, power state, and the clock/clock_frame/clock_scanline/
// clock_seconds family of stepping operations.
package controldeck

import (
	"bytes"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/region"
)

// CPUClockRateNTSC is the NTSC 6502 clock rate in Hz.
const CPUClockRateNTSC = 1789773

// ControlDeck owns the bus (and, through it, the CPU/PPU/APU/cartridge) and
// presents the console-level operations a host shim drives: load a ROM,
// clock the system by instruction/frame/scanline/wall-clock time, and
// power/reset the machine.
type ControlDeck struct {
	Bus *bus.Bus

	poweredOn  bool
	ramPolicy  memory.RAMInitPolicy
	ramRand    func() uint8
	turboFrame uint64

	cycleBudget float64 // fractional CPU cycles owed by ClockSeconds
}

// New creates a ControlDeck with no cartridge loaded.
func New() *ControlDeck {
	return &ControlDeck{
		Bus: bus.New(),
	}
}

// SetRAMInitPolicy configures the RAM pattern PowerCycle reseeds with.
func (cd *ControlDeck) SetRAMInitPolicy(policy memory.RAMInitPolicy, rand func() uint8) {
	cd.ramPolicy = policy
	cd.ramRand = rand
	cd.Bus.SetRAMInitPolicy(policy, rand)
}

// LoadROM powers off, parses the iNES header and ROM payload, attaches the
// resulting cartridge to the bus, and powers back on.
func (cd *ControlDeck) LoadROM(name string, data []byte) error {
	cd.PowerOff()

	cart, err := cartridge.LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return err
	}

	cd.Bus.LoadCartridge(cart)
	cd.Bus.SetRAMInitPolicy(cd.ramPolicy, cd.ramRand)
	cd.PowerOn()
	return nil
}

// Clock executes one CPU step (instruction, or stall/DMA cycle) and returns
// the number of CPU cycles it consumed.
func (cd *ControlDeck) Clock() uint64 {
	before := cd.Bus.GetCycleCount()
	cd.Bus.Step()
	return cd.Bus.GetCycleCount() - before
}

// ClockFrame clocks the system until the PPU completes a frame.
func (cd *ControlDeck) ClockFrame() {
	startFrame := cd.Bus.GetFrameCount()
	for cd.Bus.GetFrameCount() == startFrame {
		cd.Clock()
	}
	cd.turboFrame++
}

// ClockScanline clocks the system until the PPU's scanline counter changes.
func (cd *ControlDeck) ClockScanline() {
	startScanline := cd.Bus.GetPPUState().Scanline
	for cd.Bus.GetPPUState().Scanline == startScanline {
		cd.Clock()
	}
}

// ClockSeconds accumulates a cycle budget of the configured region's CPU
// clock rate times secs and drains it, carrying any fractional remainder
// into the next call so repeated sub-frame-length calls stay in sync with
// wall-clock time.
func (cd *ControlDeck) ClockSeconds(secs float64) {
	cd.cycleBudget += secs * region.For(cd.Bus.Region()).CPUClockHz
	for cd.cycleBudget >= 1 {
		spent := cd.Clock()
		cd.cycleBudget -= float64(spent)
	}
}

// SetRegion selects the console timing standard (NTSC/PAL/Dendy).
func (cd *ControlDeck) SetRegion(r region.Region) {
	cd.Bus.SetRegion(r)
}

// PowerOn marks the deck running. A cartridge must already be loaded for
// clocking to do anything useful.
func (cd *ControlDeck) PowerOn() {
	cd.poweredOn = true
}

// PowerOff marks the deck stopped; Clock and its variants are no-ops while
// powered off is left to the caller to enforce (the bus itself has no
// concept of being "off").
func (cd *ControlDeck) PowerOff() {
	cd.poweredOn = false
}

// Reset performs a soft reset: equivalent to pressing the console's Reset
// button. RAM contents are left untouched.
func (cd *ControlDeck) Reset() {
	cd.Bus.Reset()
}

// PowerCycle performs a hard reset: RAM is reinitialized per the configured
// RAM-init policy and every component returns to its power-on state.
func (cd *ControlDeck) PowerCycle() {
	cd.Bus.PowerCycle()
}

// IsPoweredOn reports whether the deck is currently powered on.
func (cd *ControlDeck) IsPoweredOn() bool {
	return cd.poweredOn
}

// SetTurbo enables or disables autofire on a controller's A or B button.
// Turbo toggles on a 2-frame cycle, per spec.md §4.6, clocked by the bus
// from the PPU's frame-complete callback.
func (cd *ControlDeck) SetTurbo(controller int, button input.Button, enabled bool) {
	c := cd.controllerFor(controller)
	if c != nil {
		c.SetTurbo(button, enabled)
	}
}

// controllerFor maps a 1-based controller slot to its Controller.
func (cd *ControlDeck) controllerFor(controller int) *input.Controller {
	switch controller {
	case 1:
		return cd.Bus.Input.Controller1
	case 2:
		return cd.Bus.Input.Controller2
	default:
		return nil
	}
}
