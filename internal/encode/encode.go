package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"time"

	"github.com/san-kum/pixanim/internal/pixel"
	"golang.org/x/sync/errgroup"
)

// DefaultDelay is the per-frame display time of animated exports.
const DefaultDelay = 300 * time.Millisecond

// EncodeStill renders one grid as PNG, each cell a cellSizePx square.
func EncodeStill(g *pixel.Grid, cellSizePx int) ([]byte, error) {
	if err := checkGrid(g, cellSizePx); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, rasterRGBA(g, cellSizePx)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeAnimated renders grids in order as a looping GIF where every frame
// is shown for delay. A non-positive delay means DefaultDelay.
func EncodeAnimated(grids []*pixel.Grid, cellSizePx int, delay time.Duration) ([]byte, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrInvalidInput)
	}
	for i, g := range grids {
		if err := checkGrid(g, cellSizePx); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if g.Dim() != grids[0].Dim() {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d",
				ErrInvalidInput, i, g.Dim(), g.Dim(), grids[0].Dim(), grids[0].Dim())
		}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	pal, index := buildPalette(grids)
	images := make([]*image.Paletted, len(grids))

	var eg errgroup.Group
	for i, g := range grids {
		i, g := i, g
		eg.Go(func() error {
			images[i] = rasterPaletted(g, cellSizePx, pal, index)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cs := Centiseconds(delay)
	anim := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		Disposal:  make([]byte, len(images)),
		LoopCount: 0,
	}
	for i := range images {
		anim.Delay[i] = cs
		anim.Disposal[i] = gif.DisposalNone
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// Centiseconds converts a delay to GIF units, rounding to nearest and never
// below one.
func Centiseconds(d time.Duration) int {
	cs := int((d + 5*time.Millisecond) / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	return cs
}
