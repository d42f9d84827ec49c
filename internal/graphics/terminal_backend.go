package graphics

import "fmt"

// asciiRamp is a luminance gradient from darkest to brightest, sampled by
// TerminalWindow.RenderFrame to turn a pixel's brightness into a character
// instead of a flat "lit or not" test.
const asciiRamp = " .:-=+*#%@"

// TerminalBackend implements the Backend interface for rendering NES output
// as ASCII art directly to the controlling terminal. Useful over SSH or in
// environments with no framebuffer at all.
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow implements the Window interface for terminal rendering.
// cols/rows are the character grid derived from the requested window size,
// not the NES's native 256x240 pixel dimensions.
type TerminalWindow struct {
	title   string
	width   int
	height  int
	cols    int
	rows    int
	running bool
}

// terminalCellWidth/terminalCellHeight approximate a monospace cell's pixel
// footprint, used to size the ASCII grid from a requested pixel width/height
// so a larger configured window renders more detail.
const (
	terminalCellWidth  = 10
	terminalCellHeight = 20
)

// NewTerminalBackend creates a new terminal graphics backend
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

// Initialize initializes the terminal backend
func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a terminal "window"
func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	cols := width / terminalCellWidth
	if cols < 20 {
		cols = 20
	}
	rows := height / terminalCellHeight
	if rows < 15 {
		rows = 15
	}

	return &TerminalWindow{
		title:   title,
		width:   width,
		height:  height,
		cols:    cols,
		rows:    rows,
		running: true,
	}, nil
}

// Cleanup releases all terminal resources
func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns false (terminal has basic output)
func (b *TerminalBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *TerminalBackend) GetName() string {
	return "Terminal"
}

// TerminalWindow implementation

// SetTitle sets the window title (for terminal title)
func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
	fmt.Printf("\033]0;%s\007", title) // Set terminal title
}

// GetSize returns window dimensions
func (w *TerminalWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *TerminalWindow) ShouldClose() bool {
	return !w.running
}

// SwapBuffers does nothing for terminal
func (w *TerminalWindow) SwapBuffers() {
	// No-op for terminal
}

// PollEvents returns empty events list (no input handling for now)
func (w *TerminalWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame downsamples the 256x240 frame buffer to the terminal's
// character grid, averaging each cell's covered pixels into one luminance
// value and printing the matching asciiRamp glyph.
func (w *TerminalWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	fmt.Print("\033[2J\033[H") // clear screen, home cursor

	cellW := 256 / w.cols
	if cellW < 1 {
		cellW = 1
	}
	cellH := 240 / w.rows
	if cellH < 1 {
		cellH = 1
	}

	var row []byte
	for cy := 0; cy*cellH < 240; cy++ {
		row = row[:0]
		for cx := 0; cx*cellW < 256; cx++ {
			row = append(row, w.cellGlyph(frameBuffer, cx*cellW, cy*cellH, cellW, cellH))
		}
		row = append(row, '\n')
		fmt.Print(string(row))
	}

	return nil
}

// cellGlyph averages the luminance of the pixel block starting at (x0, y0)
// and maps it onto asciiRamp.
func (w *TerminalWindow) cellGlyph(frameBuffer [256 * 240]uint32, x0, y0, cellW, cellH int) byte {
	var total, count uint32
	for y := y0; y < y0+cellH && y < 240; y++ {
		for x := x0; x < x0+cellW && x < 256; x++ {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			// Rec. 601 luma weighting.
			total += (r*299 + g*587 + b*114) / 1000
			count++
		}
	}
	if count == 0 {
		return ' '
	}
	avg := total / count
	idx := int(avg) * (len(asciiRamp) - 1) / 255
	return asciiRamp[idx]
}

// Cleanup releases window resources
func (w *TerminalWindow) Cleanup() error {
	w.running = false
	return nil
}