package encode

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/san-kum/pixanim/internal/pixel"
	xdraw "golang.org/x/image/draw"
)

const maxPaletteSize = 256

func checkGrid(g *pixel.Grid, cellSizePx int) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidInput)
	}
	if cellSizePx < 1 {
		return fmt.Errorf("%w: cell size %d", ErrInvalidInput, cellSizePx)
	}
	return nil
}

// magnify scales a one-pixel-per-cell image by cellSizePx without smoothing.
func magnify(dst xdraw.Image, src image.Image) {
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// rasterRGBA draws a grid at cellSizePx magnification.
func rasterRGBA(g *pixel.Grid, cellSizePx int) *image.RGBA {
	side := g.Dim() * cellSizePx
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	magnify(dst, g.Image())
	return dst
}

// rasterPaletted draws a grid into a paletted canvas using a precomputed
// colour→index table.
func rasterPaletted(g *pixel.Grid, cellSizePx int, pal color.Palette, index map[pixel.Color]uint8) *image.Paletted {
	n := g.Dim()
	small := image.NewPaletted(image.Rect(0, 0, n, n), pal)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			small.SetColorIndex(x, y, index[g.At(x, y)])
		}
	}
	if cellSizePx == 1 {
		return small
	}
	side := n * cellSizePx
	dst := image.NewPaletted(image.Rect(0, 0, side, side), pal)
	for y := 0; y < side; y++ {
		row := small.Pix[(y/cellSizePx)*small.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < side; x++ {
			out[x] = row[x/cellSizePx]
		}
	}
	return dst
}

// buildPalette returns a shared palette for all grids and the index of every
// colour that appears in them.
func buildPalette(grids []*pixel.Grid) (color.Palette, map[pixel.Color]uint8) {
	freq := make(map[pixel.Color]int)
	order := make([]pixel.Color, 0, 16)
	for _, g := range grids {
		n := g.Dim()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := g.At(x, y)
				if _, ok := freq[c]; !ok {
					order = append(order, c)
				}
				freq[c]++
			}
		}
	}

	kept := order
	if len(order) > maxPaletteSize {
		kept = append([]pixel.Color(nil), order...)
		sort.SliceStable(kept, func(i, j int) bool { return freq[kept[i]] > freq[kept[j]] })
		kept = kept[:maxPaletteSize]
	}

	pal := make(color.Palette, len(kept))
	index := make(map[pixel.Color]uint8, len(order))
	for i, c := range kept {
		pal[i] = c
		index[c] = uint8(i)
	}
	if len(kept) == len(order) {
		return pal, index
	}

	labs := make([][3]float64, len(kept))
	for i, c := range kept {
		labs[i] = lab(c)
	}
	for _, c := range order {
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = nearest(labs, lab(c))
	}
	return pal, index
}

func lab(c pixel.Color) [3]float64 {
	l, a, b := c.Colorful().Lab()
	return [3]float64{l, a, b}
}

func nearest(labs [][3]float64, target [3]float64) uint8 {
	best, bestDist := 0, -1.0
	for i, p := range labs {
		dl, da, db := p[0]-target[0], p[1]-target[1], p[2]-target[2]
		d := dl*dl + da*da + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
