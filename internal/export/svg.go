// Package export renders grids into text formats that need no image codec.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pixanim/internal/pixel"
)

// GridToSVG converts a grid to SVG, one rect per horizontal run of equal
// colour. The blank background is a single rect.
func GridToSVG(g *pixel.Grid, cellSizePx int) string {
	if g == nil || cellSizePx < 1 {
		return ""
	}

	side := g.Dim() * cellSizePx

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, side, side, side, side, pixel.Blank.Hex()))

	for y := 0; y < g.Dim(); y++ {
		x := 0
		for x < g.Dim() {
			c := g.At(x, y)
			run := 1
			for x+run < g.Dim() && g.At(x+run, y) == c {
				run++
			}
			if c != pixel.Blank {
				sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x*cellSizePx, y*cellSizePx, run*cellSizePx, cellSizePx, c.Hex()))
			}
			x += run
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
