// Package input implements controller and Zapper handling for the NES.
package input

import (
	"log"

	"gones/internal/ppu"
)

// Button represents NES controller buttons
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Convenience constants for shorter button names
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Controller represents a NES controller, including an optional turbo
// autofire assignment on the A/B buttons.
type Controller struct {
	// Current button states (8 buttons: A, B, Select, Start, Up, Down, Left, Right)
	buttons uint8

	// Shift register for serial reading
	shiftRegister uint8
	strobe        bool

	// Snapshot of button states when strobe was activated
	buttonSnapshot uint8

	// Bit position tracking for proper NES controller protocol
	bitPosition uint8 // Tracks which bit we're reading (0-7 for buttons, 8+ for extended reads)

	// Turbo autofire: A/B held buttons pulse on/off every 2 frames while
	// the corresponding turbo flag is set, rather than staying held.
	turboA, turboB   bool
	turboPhase       bool
	turboFrameCount  uint8

	readCount  uint64
	writeCount uint64

	// Debug gates verbose per-read/write logging.
	Debug bool
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a button (simplified approach like other NES emulators)
func (c *Controller) SetButton(button Button, pressed bool) {
	oldButtons := c.buttons

	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}

	if c.Debug {
		log.Printf("[BUTTON_DEBUG] SetButton: button=%d, pressed=%t, oldButtons=0x%02X, newButtons=0x%02X",
			uint8(button), pressed, oldButtons, c.buttons)
	}
}

// SetButtons sets all button states at once (array approach like ChibiNES/Fogleman NES)
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	if buttons[0] {
		c.buttons |= uint8(ButtonA)
	}
	if buttons[1] {
		c.buttons |= uint8(ButtonB)
	}
	if buttons[2] {
		c.buttons |= uint8(ButtonSelect)
	}
	if buttons[3] {
		c.buttons |= uint8(ButtonStart)
	}
	if buttons[4] {
		c.buttons |= uint8(ButtonUp)
	}
	if buttons[5] {
		c.buttons |= uint8(ButtonDown)
	}
	if buttons[6] {
		c.buttons |= uint8(ButtonLeft)
	}
	if buttons[7] {
		c.buttons |= uint8(ButtonRight)
	}

	if c.Debug {
		log.Printf("[BUTTON_DEBUG] SetButtons: [A:%t B:%t Sel:%t Start:%t U:%t D:%t L:%t R:%t] newButtons=0x%02X",
			buttons[0], buttons[1], buttons[2], buttons[3], buttons[4], buttons[5], buttons[6], buttons[7], c.buttons)
	}
}

// SetTurbo enables or disables autofire on the A or B button.
func (c *Controller) SetTurbo(button Button, enabled bool) {
	switch button {
	case ButtonA:
		c.turboA = enabled
	case ButtonB:
		c.turboB = enabled
	}
}

// TickTurboFrame advances the turbo autofire phase; call once per emulated
// frame. The phase flips every 2 frames, giving a 50% duty cycle autofire.
func (c *Controller) TickTurboFrame() {
	c.turboFrameCount++
	if c.turboFrameCount >= 2 {
		c.turboFrameCount = 0
		c.turboPhase = !c.turboPhase
	}
}

// effectiveButtons returns the button state to latch on strobe, with turbo
// autofire applied: a turbo-assigned button reads held only during the "on"
// half of the current phase.
func (c *Controller) effectiveButtons() uint8 {
	buttons := c.buttons
	if c.turboA && !c.turboPhase {
		buttons &^= uint8(ButtonA)
	}
	if c.turboB && !c.turboPhase {
		buttons &^= uint8(ButtonB)
	}
	return buttons
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// Write handles writes to the controller register ($4016)
func (c *Controller) Write(value uint8) {
	c.writeCount++
	wasStrobe := c.strobe
	c.strobe = (value & 1) != 0

	if c.strobe {
		c.buttonSnapshot = c.effectiveButtons()
		c.shiftRegister = c.buttonSnapshot
		c.bitPosition = 0
		if c.Debug {
			log.Printf("[CONTROLLER_DEBUG] Strobe activated: buttons=0x%02X, snapshot=0x%02X",
				c.buttons, c.buttonSnapshot)
		}
	} else if wasStrobe {
		c.buttonSnapshot = c.effectiveButtons()
		c.shiftRegister = c.buttonSnapshot
		c.bitPosition = 0
		if c.Debug {
			log.Printf("[CONTROLLER_DEBUG] Strobe deactivated: snapshot=0x%02X", c.buttonSnapshot)
		}
	}
}

// Read handles reads from the controller register ($4016/$4017)
func (c *Controller) Read() uint8 {
	c.readCount++

	if c.strobe {
		// While strobe is active, every read returns button A and never
		// advances the shift register.
		c.bitPosition = 0
		return c.buttonSnapshot & 1
	}

	var result uint8
	if c.bitPosition < 8 {
		result = c.shiftRegister & 1
		c.shiftRegister >>= 1
	} else {
		result = 1 // open-bus reads past bit 7 report high, matching most boards
	}
	c.bitPosition++

	if c.Debug {
		log.Printf("[CONTROLLER_DEBUG] Read bit %d: result=0x%02X", c.bitPosition-1, result)
	}
	return result
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.buttonSnapshot = 0
	c.bitPosition = 0
	c.readCount = 0
	c.writeCount = 0
	c.turboPhase = false
	c.turboFrameCount = 0
}

// EnableDebug enables debug logging for this controller
func (c *Controller) EnableDebug(enable bool) {
	c.Debug = enable
}

// GetBitPosition returns the current bit position (for testing)
func (c *Controller) GetBitPosition() uint8 {
	return c.bitPosition
}

// zapperLumaThreshold is the luma (ITU-R BT.601 weighting) above which a
// palette color reads as "bright" to the Zapper's photodiode.
const zapperLumaThreshold = 96

// zapperSenseWindowDots is how many PPU dots after a pixel was drawn the
// Zapper's phosphor-persistence window stays open.
const zapperSenseWindowDots = 26

// Zapper models the NES light-gun peripheral: a photodiode aimed at a
// point on the CRT, sensing the aimed pixel's brightness within a short
// window after the beam drew it, plus an edge-latched trigger.
type Zapper struct {
	X, Y int // aimed screen coordinate, or -1,-1 if off-screen

	triggerHeld  bool
	triggerLatch uint8 // frames remaining reporting the trigger pressed
}

// NewZapper creates a Zapper aimed off-screen with the trigger released.
func NewZapper() *Zapper {
	return &Zapper{X: -1, Y: -1}
}

// SetAim updates the Zapper's aimed screen coordinate.
func (z *Zapper) SetAim(x, y int) {
	z.X, z.Y = x, y
}

// Trigger reports a trigger press/release. A fresh press latches for a few
// frames so a single click survives the read timing of simple polling
// loops, mirroring tetanes' debounce behavior.
func (z *Zapper) Trigger(pressed bool) {
	if pressed && !z.triggerHeld {
		z.triggerLatch = 3
	}
	z.triggerHeld = pressed
}

// EndFrame decays the trigger latch; call once per emulated frame.
func (z *Zapper) EndFrame() {
	if z.triggerLatch > 0 {
		z.triggerLatch--
	}
}

// Sense reports the Zapper's $4017 bits given the PPU's rendered frame and
// its current beam position (scanline/cycle). Bit 3 (0x08) is the light
// sense line, active LOW (clear) when a bright pixel was just drawn at the
// aimed position; bit 4 (0x10) is the trigger, active HIGH while held or
// latched.
func (z *Zapper) Sense(frame [ppu.WIDTH * ppu.HEIGHT]uint16, beamScanline, beamCycle int) uint8 {
	result := uint8(0x08)

	if z.X >= 0 && z.Y >= 0 && z.X < ppu.WIDTH && z.Y < ppu.HEIGHT {
		drawnDot := z.Y*341 + z.X
		beamDot := beamScanline*341 + beamCycle
		if beamDot >= drawnDot && beamDot-drawnDot < zapperSenseWindowDots {
			colorIndex := uint8(frame[z.Y*ppu.WIDTH+z.X])
			if paletteLuma(colorIndex) > zapperLumaThreshold {
				result = 0
			}
		}
	}

	if z.triggerHeld || z.triggerLatch > 0 {
		result |= 0x10
	}
	return result
}

// paletteLuma converts an NES palette index to ITU-R BT.601 luma.
func paletteLuma(colorIndex uint8) uint32 {
	rgb := ppu.NESColorToRGB(colorIndex)
	r := (rgb >> 16) & 0xFF
	g := (rgb >> 8) & 0xFF
	b := rgb & 0xFF
	return (r*299 + g*587 + b*114) / 1000
}

// InputState represents the state of all input devices
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller

	// Zapper, when non-nil, replaces Controller2's $4017 reads.
	Zapper *Zapper

	// beamSource reports the PPU's current frame buffer and beam position,
	// wired by the bus so Zapper light sensing can be dot-accurate without
	// this package importing the bus.
	beamSource func() (frame [ppu.WIDTH * ppu.HEIGHT]uint16, scanline, cycle int)
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// AttachZapper plugs a Zapper into port 2, in place of Controller2.
func (is *InputState) AttachZapper(z *Zapper) {
	is.Zapper = z
}

// SetBeamSource wires the PPU frame buffer and beam position the Zapper
// senses against.
func (is *InputState) SetBeamSource(source func() (frame [ppu.WIDTH * ppu.HEIGHT]uint16, scanline, cycle int)) {
	is.beamSource = source
}

// DetachZapper removes the Zapper, if any, restoring Controller2 on port 2.
func (is *InputState) DetachZapper() {
	is.Zapper = nil
}

// TickTurboFrame advances turbo autofire phase for both controllers and
// decays the Zapper's trigger latch; call once per emulated frame.
func (is *InputState) TickTurboFrame() {
	is.Controller1.TickTurboFrame()
	is.Controller2.TickTurboFrame()
	if is.Zapper != nil {
		is.Zapper.EndFrame()
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// EnableDebug enables debug logging for all controllers
func (is *InputState) EnableDebug(enable bool) {
	is.Controller1.EnableDebug(enable)
	is.Controller2.EnableDebug(enable)
}

// SetButtons1 sets all button states for controller 1 (array approach)
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2 (array approach)
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// Read reads from controller ports
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		result := is.Controller1.Read()
		if is.Controller1.Debug {
			log.Printf("[INPUT_TRACE] $4016 read: result=0x%02X, readCount=%d", result, is.Controller1.readCount)
		}
		return result
	case 0x4017:
		if is.Zapper != nil {
			return is.zapperRead()
		}
		// Open-bus bit 6 set, per NES hardware behavior on this port.
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// zapperRead services a $4017 read when a Zapper is attached on port 2.
func (is *InputState) zapperRead() uint8 {
	if is.beamSource == nil {
		return is.Zapper.Sense([ppu.WIDTH * ppu.HEIGHT]uint16{}, 0, 0) | 0x40
	}
	frame, scanline, cycle := is.beamSource()
	return is.Zapper.Sense(frame, scanline, cycle) | 0x40
}

// Write writes to controller ports
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		if is.Controller1.Debug {
			log.Printf("[INPUT_TRACE] $4016 write: value=0x%02X, strobe=%t", value, (value&1) != 0)
		}
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
