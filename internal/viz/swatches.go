package viz

import "github.com/san-kum/pixanim/internal/pixel"

// DefaultSwatches is the colour picker palette offered when the config
// does not name one.
var DefaultSwatches = []pixel.Color{
	pixel.MustParseHex("#000000"),
	pixel.MustParseHex("#ffffff"),
	pixel.MustParseHex("#ff0000"),
	pixel.MustParseHex("#00ff00"),
	pixel.MustParseHex("#0000ff"),
	pixel.MustParseHex("#ffff00"),
	pixel.MustParseHex("#ff00ff"),
	pixel.MustParseHex("#00ffff"),
	pixel.MustParseHex("#ff8800"),
	pixel.MustParseHex("#8800ff"),
	pixel.MustParseHex("#884400"),
	pixel.MustParseHex("#888888"),
	pixel.MustParseHex("#444444"),
	pixel.MustParseHex("#ff88aa"),
	pixel.MustParseHex("#88ccff"),
	pixel.MustParseHex("#226622"),
}

func DefaultSwatchHex() []string {
	out := make([]string, len(DefaultSwatches))
	for i, c := range DefaultSwatches {
		out[i] = c.Hex()
	}
	return out
}
