// Package console provides a host-independent facade over the NES system
// bus: load a ROM, step one frame at a time, and read back pixels and
// audio. It has no dependency on ebiten or any particular windowing/audio
// backend, so non-interactive hosts (headless tooling, tests) can drive an
// emulated machine without pulling in a display stack.
package console

import (
	"fmt"
	"io"

	"github.com/jameskmurphy/nes/internal/bus"
	"github.com/jameskmurphy/nes/internal/cartridge"
)

// Console wraps a system bus with a ROM loaded and ready to run.
type Console struct {
	bus *bus.Bus
	rom *cartridge.Cartridge

	frame [256 * 240]uint32
}

// New loads an iNES ROM image from rom and returns a Console ready to run.
func New(rom io.Reader) (*Console, error) {
	cart, err := cartridge.LoadFromReader(rom)
	if err != nil {
		return nil, fmt.Errorf("console: load rom: %w", err)
	}

	b := bus.New()
	b.LoadCartridge(cart)

	return &Console{bus: b, rom: cart}, nil
}

// decomposeButtons turns a raw controller byte (bit 0 = A ... bit 7 =
// Right, the standard NES controller shift-register order) into the
// [8]bool shape the bus's controller snapshot expects.
func decomposeButtons(state uint8) [8]bool {
	var buttons [8]bool
	for i := range buttons {
		buttons[i] = state&(1<<uint(i)) != 0
	}
	return buttons
}

// RunFrame advances the machine by exactly one NTSC frame, feeding it the
// given controller snapshots, and returns the rendered frame buffer as
// packed RGB pixels in row-major order.
func (c *Console) RunFrame(controller1, controller2 uint8) *[256 * 240]uint32 {
	c.bus.SetControllerButtons(0, decomposeButtons(controller1))
	c.bus.SetControllerButtons(1, decomposeButtons(controller2))

	c.bus.Run(1)

	copy(c.frame[:], c.bus.GetFrameBuffer())
	return &c.frame
}

// GetAudio drains up to maxSamples pending PCM samples generated since the
// last call. A maxSamples of 0 drains everything pending.
func (c *Console) GetAudio(maxSamples int) []int16 {
	return c.bus.GetAudioSamples(maxSamples)
}

// SetSampleRate changes the APU's target output sample rate.
func (c *Console) SetSampleRate(rate int) {
	c.bus.SetAudioSampleRate(rate)
}

// Reset performs a soft reset, equivalent to pressing the console's reset
// button: the CPU reinitializes from the reset vector, the PPU, APU,
// controllers and bus timing counters are reset too, and CPU RAM and
// cartridge contents are left as-is.
func (c *Console) Reset() {
	c.bus.Reset()
}

// SaveState captures the full machine state - CPU, RAM, PPU, VRAM, APU and
// cartridge registers - as an opaque, versioned byte blob suitable for
// persisting to disk and restoring with LoadState.
func (c *Console) SaveState() ([]byte, error) {
	return c.bus.SaveState()
}

// LoadState restores machine state previously captured by SaveState.
func (c *Console) LoadState(data []byte) error {
	return c.bus.LoadState(data)
}
