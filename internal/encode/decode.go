package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"time"

	"github.com/san-kum/pixanim/internal/pixel"
)

// Info summarizes an exported image.
type Info struct {
	Format string
	Width  int
	Height int
	Frames int
	Delays []time.Duration
	Colors int
}

// Inspect reads the header (and for GIF every frame) of an export.
func Inspect(data []byte) (*Info, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	switch format {
	case "png":
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		b := img.Bounds()
		return &Info{Format: format, Width: b.Dx(), Height: b.Dy(), Frames: 1, Colors: countColors(img)}, nil
	case "gif":
		anim, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		info := &Info{
			Format: format,
			Width:  anim.Config.Width,
			Height: anim.Config.Height,
			Frames: len(anim.Image),
			Delays: make([]time.Duration, len(anim.Delay)),
		}
		for i, d := range anim.Delay {
			info.Delays[i] = time.Duration(d) * 10 * time.Millisecond
		}
		if len(anim.Image) > 0 {
			info.Colors = len(anim.Image[0].Palette)
		}
		return info, nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrDecode, format)
	}
}

// DecodeStill reads a PNG export back into a grid by sampling cell centres.
func DecodeStill(data []byte, cellSizePx int) (*pixel.Grid, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return sample(img, cellSizePx)
}

// DecodeAnimated reads a GIF export back into grids and per-frame delays.
func DecodeAnimated(data []byte, cellSizePx int) ([]*pixel.Grid, []time.Duration, error) {
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	grids := make([]*pixel.Grid, len(anim.Image))
	delays := make([]time.Duration, len(anim.Image))
	for i, frame := range anim.Image {
		g, err := sample(frame, cellSizePx)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %d: %w", i, err)
		}
		grids[i] = g
		delays[i] = time.Duration(anim.Delay[i]) * 10 * time.Millisecond
	}
	return grids, delays, nil
}

func sample(img image.Image, cellSizePx int) (*pixel.Grid, error) {
	if cellSizePx < 1 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidInput, cellSizePx)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx()%cellSizePx != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not a grid of %dpx cells", ErrDecode, b.Dx(), b.Dy(), cellSizePx)
	}
	g, err := pixel.NewBlankGrid(b.Dx() / cellSizePx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	half := cellSizePx / 2
	for y := 0; y < g.Dim(); y++ {
		for x := 0; x < g.Dim(); x++ {
			c := img.At(b.Min.X+x*cellSizePx+half, b.Min.Y+y*cellSizePx+half)
			g.Set(x, y, pixel.FromColor(c))
		}
	}
	return g, nil
}

func countColors(img image.Image) int {
	seen := make(map[pixel.Color]struct{})
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[pixel.FromColor(img.At(x, y))] = struct{}{}
		}
	}
	return len(seen)
}
