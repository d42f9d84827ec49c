package console

import (
	"bytes"
	"testing"

	"github.com/jameskmurphy/nes/internal/cartridge"
)

func buildTestROM(t *testing.T) []byte {
	t.Helper()

	data, err := cartridge.NewTestROMBuilder().
		WithInstructions([]uint8{0xEA, 0x4C, 0x00, 0x80}). // NOP; JMP $8000
		WithResetVector(0x8000).
		Build()
	if err != nil {
		t.Fatalf("failed to build test rom: %v", err)
	}
	return data
}

func TestNewLoadsROM(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.bus == nil {
		t.Fatal("expected a bus to be constructed")
	}
}

func TestNewRejectsBadImage(t *testing.T) {
	if _, err := New(bytes.NewReader([]byte("not a rom"))); err == nil {
		t.Fatal("expected an error loading a non-iNES image")
	}
}

func TestRunFrameProducesFrameBuffer(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	frame := c.RunFrame(0, 0)
	if frame == nil {
		t.Fatal("expected a non-nil frame buffer")
	}
	if len(frame) != 256*240 {
		t.Fatalf("expected 256*240 pixels, got %d", len(frame))
	}
}

func TestRunFrameDecodesControllerBits(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// Bit 0 is A, bit 7 is Right; press A and Right on controller 1.
	c.RunFrame(0x81, 0)

	state := c.bus.GetCPUState()
	if state.Cycles == 0 {
		t.Fatal("expected the CPU to have executed at least one cycle")
	}
}

func TestGetAudioDrainsPendingSamples(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	c.RunFrame(0, 0)
	samples := c.GetAudio(0)
	if samples == nil {
		t.Fatal("expected a non-nil sample slice, even if empty")
	}
}

func TestSetSampleRate(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	c.SetSampleRate(44100)
}

func TestResetReinitializesCPU(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	c.RunFrame(0, 0)
	c.Reset()

	state := c.bus.GetCPUState()
	if state.PC != 0x8000 {
		t.Errorf("expected PC to reset to 0x8000, got 0x%04X", state.PC)
	}
}

func TestSaveStateThenLoadStateRoundTrips(t *testing.T) {
	c, err := New(bytes.NewReader(buildTestROM(t)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	c.RunFrame(0, 0)
	c.RunFrame(0, 0)

	saved := c.bus.GetCPUState()

	data, err := c.SaveState()
	if err != nil {
		t.Fatalf("SaveState returned error: %v", err)
	}

	// Advance further so state actually diverges before restoring.
	c.RunFrame(0, 0)
	c.RunFrame(0, 0)

	if err := c.LoadState(data); err != nil {
		t.Fatalf("LoadState returned error: %v", err)
	}

	restored := c.bus.GetCPUState()
	if restored.PC != saved.PC || restored.Cycles != saved.Cycles {
		t.Errorf("expected restored CPU state to match saved state, got PC=0x%04X cycles=%d, want PC=0x%04X cycles=%d",
			restored.PC, restored.Cycles, saved.PC, saved.Cycles)
	}
}
