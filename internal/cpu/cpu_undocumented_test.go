package cpu

import "testing"

// TestANC_ANDsThenCopiesNIntoCarry covers both ANC opcodes (0x0B, 0x2B),
// which behave identically.
func TestANC_ANDsThenCopiesNIntoCarry(t *testing.T) {
	for _, opcode := range []uint8{0x0B, 0x2B} {
		h := NewCPUTestHelper()
		h.SetupResetVector(0x8000)
		h.CPU.A = 0xFF
		h.LoadProgram(0x8000, opcode, 0x80)

		h.CPU.Step()

		if h.CPU.A != 0x80 {
			t.Errorf("opcode 0x%02X: expected A=0x80, got 0x%02X", opcode, h.CPU.A)
		}
		if !h.CPU.N || !h.CPU.C {
			t.Errorf("opcode 0x%02X: expected N and C set from bit 7, got N=%v C=%v", opcode, h.CPU.N, h.CPU.C)
		}
	}
}

func TestALR_ANDsThenShiftsRight(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x03
	h.LoadProgram(0x8000, 0x4B, 0x03) // AND 0x03 -> 0x03, LSR -> 0x01, C=1

	h.CPU.Step()

	if h.CPU.A != 0x01 {
		t.Errorf("expected A=0x01, got 0x%02X", h.CPU.A)
	}
	if !h.CPU.C {
		t.Error("expected carry set from the shifted-out bit")
	}
}

func TestARR_ANDsThenRotatesRightWithCarryIn(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0xFF
	h.CPU.C = true
	h.LoadProgram(0x8000, 0x6B, 0xFF)

	h.CPU.Step()

	if h.CPU.A != 0xFF {
		t.Errorf("expected A=0xFF (carry rotated into bit 7), got 0x%02X", h.CPU.A)
	}
	if !h.CPU.C {
		t.Error("expected carry set from bit 6 of the result")
	}
}

func TestLXA_LoadsAAndXFromANDedOperand(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x0F
	h.LoadProgram(0x8000, 0xAB, 0xFC)

	h.CPU.Step()

	if h.CPU.A != 0x0C || h.CPU.X != 0x0C {
		t.Errorf("expected A=X=0x0C, got A=0x%02X X=0x%02X", h.CPU.A, h.CPU.X)
	}
}

func TestAXS_SubtractsOperandFromAANDX(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0xFF
	h.CPU.X = 0x0F
	h.LoadProgram(0x8000, 0xCB, 0x01) // (A&X)=0x0F, 0x0F-0x01=0x0E

	h.CPU.Step()

	if h.CPU.X != 0x0E {
		t.Errorf("expected X=0x0E, got 0x%02X", h.CPU.X)
	}
	if !h.CPU.C {
		t.Error("expected carry set since no borrow occurred")
	}
}

func TestAXS_SetsCarryClearOnBorrow(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x01
	h.CPU.X = 0x01
	h.LoadProgram(0x8000, 0xCB, 0x02) // (A&X)=0x01, 0x01-0x02 borrows

	h.CPU.Step()

	if h.CPU.C {
		t.Error("expected carry clear on borrow")
	}
}

func TestLAS_ANDsOperandWithSPAndLoadsAllThree(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.SP = 0xFF
	h.Memory.SetByte(0x0300, 0x3C)
	h.CPU.Y = 0
	h.LoadProgram(0x8000, 0xBB, 0x00, 0x03) // Absolute,Y with Y=0

	h.CPU.Step()

	if h.CPU.A != 0x3C || h.CPU.X != 0x3C || h.CPU.SP != 0x3C {
		t.Errorf("expected A=X=SP=0x3C, got A=0x%02X X=0x%02X SP=0x%02X", h.CPU.A, h.CPU.X, h.CPU.SP)
	}
}

func TestSHX_StoresXANDedWithHighBytePlusOne(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.X = 0xFF
	h.CPU.Y = 0x00
	h.LoadProgram(0x8000, 0x9E, 0x00, 0x04) // Absolute,Y -> address 0x0400

	h.CPU.Step()

	got := h.Memory.Read(0x0400)
	want := uint8(0xFF & ((0x0400 >> 8) + 1))
	if got != want {
		t.Errorf("expected memory[0x0400]=0x%02X, got 0x%02X", want, got)
	}
}

func TestTAS_StoresAANDXIntoSPThenWritesMemory(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0xF0
	h.CPU.X = 0xFF
	h.CPU.Y = 0x00
	h.LoadProgram(0x8000, 0x9B, 0x00, 0x04)

	h.CPU.Step()

	if h.CPU.SP != 0xF0 {
		t.Errorf("expected SP=0xF0, got 0x%02X", h.CPU.SP)
	}
	want := uint8(0xF0 & ((0x0400 >> 8) + 1))
	if got := h.Memory.Read(0x0400); got != want {
		t.Errorf("expected memory[0x0400]=0x%02X, got 0x%02X", want, got)
	}
}

func TestXAA_LoadsAFromXANDedWithOperand(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.X = 0xF0
	h.LoadProgram(0x8000, 0x8B, 0xFF)

	h.CPU.Step()

	if h.CPU.A != 0xF0 {
		t.Errorf("expected A=0xF0, got 0x%02X", h.CPU.A)
	}
}

func TestSAX_DefaultDoesNotTouchFlags(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.A = 0x00
	h.CPU.X = 0x00
	h.CPU.N = true
	h.CPU.Z = false
	h.LoadProgram(0x8000, 0x87, 0x50) // SAX zero page

	h.CPU.Step()

	if h.Memory.Read(0x0050) != 0x00 {
		t.Errorf("expected memory[0x0050]=0x00, got 0x%02X", h.Memory.Read(0x0050))
	}
	if !h.CPU.N || h.CPU.Z {
		t.Error("expected SAX to leave flags untouched by default")
	}
}

func TestSAX_WithFlagsEnabledSetsZN(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.SetSAXSetsFlags(true)
	h.CPU.A = 0x00
	h.CPU.X = 0xFF
	h.CPU.N = false
	h.LoadProgram(0x8000, 0x87, 0x50)

	h.CPU.Step()

	if !h.CPU.Z {
		t.Error("expected Z set once SAX is toggled to update flags")
	}
}

func TestStrictStack_PanicsOnPushUnderflow(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.SetStrictStack(true)
	h.CPU.SP = 0x00

	defer func() {
		if recover() == nil {
			t.Error("expected a panic pushing with SP already at 0x00")
		}
	}()
	h.CPU.push(0x42)
}

func TestStrictStack_PanicsOnPopOverflow(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.SetStrictStack(true)
	h.CPU.SP = 0xFF

	defer func() {
		if recover() == nil {
			t.Error("expected a panic popping with SP already at 0xFF")
		}
	}()
	h.CPU.pop()
}

func TestStrictStack_OffByDefaultWrapsSilently(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.CPU.SP = 0x00

	h.CPU.push(0x42)

	if h.CPU.SP != 0xFF {
		t.Errorf("expected SP to wrap to 0xFF, got 0x%02X", h.CPU.SP)
	}
}
