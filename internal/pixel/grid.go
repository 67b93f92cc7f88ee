package pixel

import (
	"fmt"
	"image"
)

const (
	MinDim = 8
	MaxDim = 64
)

// Grid is a square matrix of colours indexed as (x, y), x growing right.
type Grid struct {
	n     int
	cells []Color
}

// NewGrid returns an n×n grid with every cell set to fill.
func NewGrid(n int, fill Color) (*Grid, error) {
	if n < MinDim || n > MaxDim {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrDimension, n, MinDim, MaxDim)
	}
	g := &Grid{n: n, cells: make([]Color, n*n)}
	g.Fill(fill)
	return g, nil
}

// NewBlankGrid returns an n×n grid of Blank cells.
func NewBlankGrid(n int) (*Grid, error) {
	return NewGrid(n, Blank)
}

func (g *Grid) Dim() int { return g.n }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.n && y < g.n
}

// Set writes one cell. Out-of-range coordinates are ignored and report false.
func (g *Grid) Set(x, y int, c Color) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.n+x] = c
	return true
}

// Get reads one cell; ok is false for out-of-range coordinates.
func (g *Grid) Get(x, y int) (c Color, ok bool) {
	if !g.InBounds(x, y) {
		return Color{}, false
	}
	return g.cells[y*g.n+x], true
}

// At is Get for callers that already checked bounds. It returns Blank when
// the coordinates are outside the grid.
func (g *Grid) At(x, y int) Color {
	if c, ok := g.Get(x, y); ok {
		return c
	}
	return Blank
}

func (g *Grid) Fill(c Color) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

func (g *Grid) Clone() *Grid {
	c := &Grid{n: g.n, cells: make([]Color, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// CountNot returns the number of cells whose colour differs from c.
func (g *Grid) CountNot(c Color) int {
	count := 0
	for _, v := range g.cells {
		if v != c {
			count++
		}
	}
	return count
}

// Colors returns the distinct colours in first-seen row-major order.
func (g *Grid) Colors() []Color {
	seen := make(map[Color]struct{})
	out := make([]Color, 0, 16)
	for _, v := range g.cells {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Image renders the grid at one pixel per cell.
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.n, g.n))
	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			c := g.cells[y*g.n+x]
			off := img.PixOffset(x, y)
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = 0xff
		}
	}
	return img
}
