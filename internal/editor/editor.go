// Package editor turns pointer input and tool selection into cell mutations
// on a frame. It is the only code outside grid creation that writes cells.
package editor

import (
	"github.com/san-kum/pixanim/internal/frames"
	"github.com/san-kum/pixanim/internal/pixel"
)

// Tool is the active paint colour and eraser toggle.
type Tool struct {
	Color  pixel.Color
	Eraser bool
}

func NewTool(c pixel.Color) *Tool {
	return &Tool{Color: c}
}

// SetColor selects a paint colour and always leaves eraser mode.
func (t *Tool) SetColor(c pixel.Color) {
	t.Color = c
	t.Eraser = false
}

func (t *Tool) ToggleEraser() {
	t.Eraser = !t.Eraser
}

// Ink is the colour a stroke writes with the current settings.
func (t *Tool) Ink() pixel.Color {
	if t.Eraser {
		return pixel.Blank
	}
	return t.Color
}

// CellAt maps a device pixel to a cell by integer division. Negative pixels
// map to negative cells so they fall outside the grid.
func CellAt(px, py, cellSizePx int) (x, y int) {
	if cellSizePx <= 0 {
		return -1, -1
	}
	return floorDiv(px, cellSizePx), floorDiv(py, cellSizePx)
}

// PaintAt paints the cell under device pixel (px, py). Coordinates that map
// outside [0, gridDim) are ignored and report false.
func PaintAt(t *Tool, f *frames.Frame, px, py, cellSizePx, gridDim int) bool {
	x, y := CellAt(px, py, cellSizePx)
	if x < 0 || y < 0 || x >= gridDim || y >= gridDim {
		return false
	}
	return PaintCell(t, f, x, y)
}

// PaintCell paints one cell addressed directly by grid coordinates.
func PaintCell(t *Tool, f *frames.Frame, x, y int) bool {
	return f.Grid.Set(x, y, t.Ink())
}

// ClearFrame resets every cell to blank. Name and frame count are untouched.
func ClearFrame(f *frames.Frame) {
	f.Grid.Fill(pixel.Blank)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
