// Package debug provides opt-in diagnostics for inspecting PPU output
// during development: a per-pixel rendering trace and a frame buffer
// dumper, both disabled unless explicitly turned on by the host.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RenderStage names a point in the pipeline that turns a palette index
// into an on-screen pixel.
type RenderStage string

const (
	StagePaletteIndex    RenderStage = "palette_index"
	StagePaletteRAM      RenderStage = "palette_ram_lookup"
	StageNESColorToRGB   RenderStage = "nes_color_to_rgb"
	StageFrameBufferWrite RenderStage = "frame_buffer_write"
)

// RenderTraceEvent records a single pixel's value at one pipeline stage.
type RenderTraceEvent struct {
	Timestamp   time.Time
	Frame       uint64
	Scanline    int
	Cycle       int
	PixelX      int
	PixelY      int
	Stage       RenderStage
	InputValue  uint32
	OutputValue uint32
	Description string
}

// PixelTraceDebugger records render-pipeline events for a filtered subset
// of pixels (a target color index, a target (x, y), or everything), so a
// developer can follow one pixel's value from palette index to RGB without
// drowning in the other 61,439 pixels in the frame.
type PixelTraceDebugger struct {
	enabled        bool
	targetColor    uint8
	hasTargetColor bool
	targetPixelX   int
	targetPixelY   int
	traceAllPixels bool
	maxEvents      int
	events         []RenderTraceEvent
	outputDir      string
}

// NewPixelTraceDebugger creates a disabled debugger writing reports under
// outputDir once enabled.
func NewPixelTraceDebugger(outputDir string) *PixelTraceDebugger {
	return &PixelTraceDebugger{
		targetPixelX: -1,
		targetPixelY: -1,
		maxEvents:    10000,
		outputDir:    outputDir,
	}
}

func (d *PixelTraceDebugger) Enable() {
	d.enabled = true
	os.MkdirAll(d.outputDir, 0755)
}

func (d *PixelTraceDebugger) Disable() { d.enabled = false }

func (d *PixelTraceDebugger) Enabled() bool { return d.enabled }

// SetTargetColor restricts tracing to pixels resolving to this palette
// index. Call with hasTarget=false to trace regardless of color.
func (d *PixelTraceDebugger) SetTargetColor(colorIndex uint8, hasTarget bool) {
	d.targetColor = colorIndex
	d.hasTargetColor = hasTarget
}

// SetTargetPixel restricts tracing to one (x, y); (-1, -1) clears it.
func (d *PixelTraceDebugger) SetTargetPixel(x, y int) {
	d.targetPixelX = x
	d.targetPixelY = y
}

func (d *PixelTraceDebugger) SetTraceAllPixels(enabled bool) { d.traceAllPixels = enabled }

// ShouldTrace reports whether an event for this pixel/color combination
// should be recorded, given the current filters.
func (d *PixelTraceDebugger) ShouldTrace(x, y int, colorIndex uint8) bool {
	if !d.enabled {
		return false
	}
	if d.traceAllPixels {
		return true
	}
	if d.hasTargetColor && colorIndex != d.targetColor {
		return false
	}
	if d.targetPixelX >= 0 && d.targetPixelY >= 0 {
		return x == d.targetPixelX && y == d.targetPixelY
	}
	return true
}

// Trace records one pipeline event if it passes the current filters.
func (d *PixelTraceDebugger) Trace(frame uint64, scanline, cycle, x, y int, stage RenderStage, input, output uint32, description string) {
	if !d.enabled {
		return
	}
	if len(d.events) >= d.maxEvents {
		copy(d.events, d.events[1000:])
		d.events = d.events[:len(d.events)-1000]
	}
	d.events = append(d.events, RenderTraceEvent{
		Timestamp:   time.Now(),
		Frame:       frame,
		Scanline:    scanline,
		Cycle:       cycle,
		PixelX:      x,
		PixelY:      y,
		Stage:       stage,
		InputValue:  input,
		OutputValue: output,
		Description: description,
	})
}

func (d *PixelTraceDebugger) Events() []RenderTraceEvent { return d.events }

func (d *PixelTraceDebugger) ClearEvents() { d.events = d.events[:0] }

// ExportEventsToFile writes all recorded events to a plain-text log under
// outputDir.
func (d *PixelTraceDebugger) ExportEventsToFile(filename string) error {
	if !d.enabled || len(d.events) == 0 {
		return fmt.Errorf("no events to export")
	}

	filePath := filepath.Join(d.outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create debug file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "Pixel render trace\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "Total events: %d\n\n", len(d.events))
	fmt.Fprintf(file, "%-20s %-8s %-4s %-4s %-4s %-4s %-20s %-10s %-10s %s\n",
		"Timestamp", "Frame", "Line", "Cyc", "X", "Y", "Stage", "Input", "Output", "Description")

	for _, e := range d.events {
		fmt.Fprintf(file, "%-20s %-8d %-4d %-4d %-4d %-4d %-20s 0x%08X 0x%08X %s\n",
			e.Timestamp.Format("15:04:05.000"), e.Frame, e.Scanline, e.Cycle, e.PixelX, e.PixelY,
			e.Stage, e.InputValue, e.OutputValue, e.Description)
	}
	return nil
}
