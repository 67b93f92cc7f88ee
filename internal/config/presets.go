package config

import "sort"

// Presets pair a grid dimension with a cell size that keeps the canvas
// around 320px.
var Presets = map[string]struct {
	GridDimension int
	CellSizePx    int
}{
	"small":  {8, 40},
	"medium": {16, 20},
	"large":  {32, 10},
	"huge":   {64, 5},
}

// GetPreset returns the default config resized to a preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.GridDimension = p.GridDimension
	cfg.CellSizePx = p.CellSizePx
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
