package graphics

import "testing"

// TestTerminalWindow_CellGlyphRange verifies a black cell maps to the
// darkest ramp character and a white cell to the brightest.
func TestTerminalWindow_CellGlyphRange(t *testing.T) {
	w := &TerminalWindow{cols: 32, rows: 30}

	var black, white [256 * 240]uint32
	for i := range white {
		white[i] = 0xFFFFFF
	}

	blackGlyph := w.cellGlyph(black, 0, 0, 8, 8)
	whiteGlyph := w.cellGlyph(white, 0, 0, 8, 8)

	if blackGlyph != asciiRamp[0] {
		t.Errorf("expected black cell to map to %q, got %q", asciiRamp[0], blackGlyph)
	}
	if whiteGlyph != asciiRamp[len(asciiRamp)-1] {
		t.Errorf("expected white cell to map to %q, got %q", asciiRamp[len(asciiRamp)-1], whiteGlyph)
	}
}

// TestTerminalBackend_CreateWindow_DerivesGridFromSize verifies the
// character grid scales with the requested pixel dimensions instead of
// staying fixed.
func TestTerminalBackend_CreateWindow_DerivesGridFromSize(t *testing.T) {
	b := &TerminalBackend{}
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	small, err := b.CreateWindow("small", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow failed: %v", err)
	}
	large, err := b.CreateWindow("large", 1024, 960)
	if err != nil {
		t.Fatalf("CreateWindow failed: %v", err)
	}

	smallWin := small.(*TerminalWindow)
	largeWin := large.(*TerminalWindow)

	if largeWin.cols <= smallWin.cols || largeWin.rows <= smallWin.rows {
		t.Errorf("expected a larger window to produce a larger grid, got small=%dx%d large=%dx%d",
			smallWin.cols, smallWin.rows, largeWin.cols, largeWin.rows)
	}
}
