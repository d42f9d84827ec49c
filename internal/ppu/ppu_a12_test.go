package ppu

import (
	"testing"

	"github.com/jameskmurphy/nes/internal/memory"
)

// irqCountingCartridge is a minimal CartridgeInterface that only tracks how
// many times its IRQTick was invoked, to verify the PPU forwards A12 rising
// edges rather than every access.
type irqCountingCartridge struct {
	ticks int
}

func (c *irqCountingCartridge) ReadPRG(address uint16) uint8         { return 0 }
func (c *irqCountingCartridge) WritePRG(address uint16, value uint8) {}
func (c *irqCountingCartridge) ReadCHR(address uint16) uint8         { return 0 }
func (c *irqCountingCartridge) WriteCHR(address uint16, value uint8) {}
func (c *irqCountingCartridge) IRQTick()                             { c.ticks++ }
func (c *irqCountingCartridge) IRQPending() bool                     { return false }
func (c *irqCountingCartridge) ClearIRQ()                            {}

func TestTrackA12_FiresOnlyOnRisingEdge(t *testing.T) {
	cart := &irqCountingCartridge{}
	ppuMem := memory.NewPPUMemory(cart, memory.MirrorHorizontal)

	p := New()
	p.SetMemory(ppuMem)

	// Low addresses (bit 12 clear) never raise the line.
	p.trackA12(0x0000)
	p.trackA12(0x0100)
	if cart.ticks != 0 {
		t.Fatalf("expected no ticks while A12 stays low, got %d", cart.ticks)
	}

	// Transition low -> high is a single rising edge.
	p.trackA12(0x1000)
	if cart.ticks != 1 {
		t.Fatalf("expected exactly one tick on the rising edge, got %d", cart.ticks)
	}

	// Staying high does not re-trigger.
	p.trackA12(0x1008)
	if cart.ticks != 1 {
		t.Fatalf("expected no additional tick while A12 stays high, got %d", cart.ticks)
	}

	// Falling then rising again produces a second edge.
	p.trackA12(0x0000)
	p.trackA12(0x1000)
	if cart.ticks != 2 {
		t.Fatalf("expected a second tick after another rising edge, got %d", cart.ticks)
	}
}

func TestTrackA12_NoPanicWithoutMemory(t *testing.T) {
	p := New()
	// p.memory is nil; trackA12 must guard against forwarding to it.
	p.trackA12(0x1000)
}
