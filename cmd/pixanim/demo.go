package main

import (
	"fmt"

	"github.com/san-kum/pixanim/internal/session"
)

// paintDemo fills a session with a square bouncing across the grid, one
// position per frame, each frame in the next palette colour.
func paintDemo(sess *session.Session, n, count int) {
	if count < 1 {
		count = 1
	}
	side := n / 4
	if side < 2 {
		side = 2
	}
	span := n - side
	swatches := len(sess.Swatches())

	for f := 0; f < count; f++ {
		if f > 0 {
			sess.AddFrame()
		}
		sess.RenameCurrent(fmt.Sprintf("bounce-%d", f+1))

		// triangle wave so the square comes back instead of jumping
		pos := f * 2 * span / count
		if pos > span {
			pos = 2*span - pos
		}
		// skip swatch 1 (white) so the square shows against blank cells
		sw := f % swatches
		if sw == 1 {
			sw = 0
		}
		sess.SelectSwatch(sw)
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				sess.PaintCell(pos+x, pos+y)
			}
		}
	}
}
