// Package input implements controller handling for the NES.
package input

import "log"

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

// Convenience constants for shorter names used in host integrations.
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

// defaultTurboRateDivisor controls how many strobe cycles (roughly one per
// rendered frame, at 60 Hz) a turbo-enabled button stays pressed before
// releasing, absent an explicit SetTurboRate call; at 60 Hz this alternates
// at 10 Hz, matching the turbo rate most NES accessories and emulator
// front-ends use for the A/B buttons.
const defaultTurboRateDivisor = 3

// strobePulseHz approximates how often a game strobes the controller port
// to resample input, used by SetTurboRate to convert a requested on/off
// rate in Hz into a strobe-pulse divisor.
const strobePulseHz = 60

// Controller represents a single NES controller's button state and its
// $4016/$4017 serial shift-register protocol.
type Controller struct {
	buttons uint8

	// turboMask marks which buttons auto-fire while held, turboPhase
	// advances once per strobe pulse to derive their current on/off half,
	// and turboRateDivisor sets how many strobe pulses make up that half.
	turboMask        uint8
	turboPhase       uint16
	turboRateDivisor uint16

	shiftRegister uint8
	strobe        bool

	buttonSnapshot uint8
	bitPosition    uint8 // 0-7 for buttons, 8+ for the open-bus tail

	readCount    uint64
	writeCount   uint64
	debugEnabled bool
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{turboRateDivisor: defaultTurboRateDivisor}
}

// trace centralizes the controller's verbose per-access logging behind a
// single gate so call sites stay one line instead of repeating the
// debugEnabled check everywhere.
func (c *Controller) trace(format string, args ...interface{}) {
	if c.debugEnabled {
		log.Printf(format, args...)
	}
}

// effectiveButtons returns the held buttons with turbo-enabled ones
// forced off during the turbo-off half of their cycle.
func (c *Controller) effectiveButtons() uint8 {
	if c.turboMask == 0 {
		return c.buttons
	}
	if (c.turboPhase/c.turboRateDivisor)%2 == 1 {
		return c.buttons &^ c.turboMask
	}
	return c.buttons
}

// SetTurboRate sets how many times per second a turbo-enabled button
// toggles on and off, derived from config.Input.AutofireRate. Rates at or
// above half the strobe-pulse rate collapse to the fastest possible
// divisor (alternate every pulse) rather than disabling turbo outright.
func (c *Controller) SetTurboRate(hz int) {
	if hz <= 0 {
		c.turboRateDivisor = defaultTurboRateDivisor
		return
	}
	divisor := strobePulseHz / (2 * hz)
	if divisor < 1 {
		divisor = 1
	}
	c.turboRateDivisor = uint16(divisor)
}

// SetButton sets the held state of a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	old := c.buttons
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
	c.trace("[BUTTON_DEBUG] SetButton: button=%d, pressed=%t, oldButtons=0x%02X, newButtons=0x%02X",
		uint8(button), pressed, old, c.buttons)
}

// SetButtons sets all eight button states at once, in NES controller
// order: A, B, Select, Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	old := c.buttons
	c.buttons = 0
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(order[i])
		}
	}
	c.trace("[BUTTON_DEBUG] SetButtons: [A:%t B:%t Sel:%t Start:%t U:%t D:%t L:%t R:%t] oldButtons=0x%02X, newButtons=0x%02X",
		buttons[0], buttons[1], buttons[2], buttons[3], buttons[4], buttons[5], buttons[6], buttons[7], old, c.buttons)
}

// SetTurbo enables or disables auto-fire for a button. Auto-fire buttons
// alternate pressed/released every turboRateDivisor strobe pulses while
// SetButton/SetButtons report them held, instead of staying pressed solid.
func (c *Controller) SetTurbo(button Button, enabled bool) {
	if enabled {
		c.turboMask |= uint8(button)
	} else {
		c.turboMask &^= uint8(button)
	}
}

// IsPressed returns true if the button is currently held (ignoring turbo
// phase, since that only applies at the moment a read latches the state).
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// Write handles writes to the controller register ($4016). A rising strobe
// edge latches a fresh snapshot; the falling edge re-latches it and resets
// the shift register, matching real 4021-based controller hardware.
func (c *Controller) Write(value uint8) {
	c.writeCount++
	wasStrobe := c.strobe
	c.strobe = (value & 1) != 0

	if c.strobe {
		c.latch()
		c.trace("[CONTROLLER_DEBUG] Strobe activated: buttons=0x%02X, snapshot=0x%02X, bitPos=0",
			c.buttons, c.buttonSnapshot)
		return
	}
	if wasStrobe {
		c.turboPhase++
		c.latch()
		c.trace("[CONTROLLER_DEBUG] Strobe deactivated: captured buttons=0x%02X, snapshot=0x%02X, shiftRegister=0x%02X, bitPos=0",
			c.buttons, c.buttonSnapshot, c.shiftRegister)
	}
}

func (c *Controller) latch() {
	c.buttonSnapshot = c.effectiveButtons()
	c.shiftRegister = c.buttonSnapshot
	c.bitPosition = 0
}

// Read handles reads from the controller register ($4016/$4017), shifting
// one button bit out per read in bit 0 and returning 0 in bit 0 past the
// eighth until the next strobe latches a fresh snapshot. The upper three
// bits always read as 010 (0x40).
func (c *Controller) Read() uint8 {
	c.readCount++

	if c.strobe {
		// While strobe is held high, every read re-samples button A live.
		c.bitPosition = 0
		result := (c.effectiveButtons() & 1) | 0x40
		if c.debugEnabled && c.readCount%10 == 0 {
			c.trace("[CONTROLLER_DEBUG] Read during strobe: result=0x%02X, buttonSnapshot=0x%02X, bitPos reset to 0",
				result, c.buttonSnapshot)
		}
		return result
	}

	result := uint8(0x40)
	if c.bitPosition < 8 {
		result |= c.shiftRegister & 1
		c.shiftRegister >>= 1
		c.bitPosition++
		if c.debugEnabled && c.readCount%10 == 0 {
			c.trace("[CONTROLLER_DEBUG] Read bit %d: result=0x%02X, shiftRegister=0x%02X",
				c.bitPosition-1, result, c.shiftRegister)
		}
	} else {
		c.bitPosition++
		if c.debugEnabled && c.readCount%10 == 0 {
			c.trace("[CONTROLLER_DEBUG] Extended read (bit %d): result=0x40", c.bitPosition)
		}
	}
	return result
}

// Reset clears button state, the shift register, and turbo phase.
func (c *Controller) Reset() {
	c.buttons = 0
	c.turboPhase = 0
	c.shiftRegister = 0
	c.strobe = false
	c.buttonSnapshot = 0
	c.bitPosition = 0
	c.readCount = 0
	c.writeCount = 0
}

// EnableDebug enables debug logging for this controller
func (c *Controller) EnableDebug(enable bool) {
	c.debugEnabled = enable
}

// GetBitPosition returns the current bit position (for testing)
func (c *Controller) GetBitPosition() uint8 {
	return c.bitPosition
}

// InputState represents the state of all input devices
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
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

// Read reads from controller ports $4016/$4017.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		result := is.Controller1.Read()
		is.Controller1.trace("[INPUT_TRACE] $4016 read: result=0x%02X, readCount=%d", result, is.Controller1.readCount)
		return result
	case 0x4017:
		// Controller 2 is read and shifted independently of controller 1;
		// bit 6 is forced high, matching real open-bus behavior on this port.
		result := is.Controller2.Read() | 0x40
		is.Controller2.trace("[INPUT_TRACE] $4017 read: result=0x%02X, buttons=0x%02X, bitPos=%d",
			result, is.Controller2.buttons, is.Controller2.bitPosition)
		return result
	default:
		return 0
	}
}

// Write writes to controller ports. $4016's strobe bit drives both
// controllers' shift registers simultaneously, as on real hardware.
func (is *InputState) Write(address uint16, value uint8) {
	if address != 0x4016 {
		return
	}
	is.Controller1.trace("[INPUT_TRACE] $4016 write: value=0x%02X, strobe=%t, writeCount=%d",
		value, (value&1) != 0, is.Controller1.writeCount+1)
	is.Controller1.Write(value)
	is.Controller2.Write(value)
}
