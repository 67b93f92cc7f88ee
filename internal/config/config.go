package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/pixanim/internal/pixel"
	"github.com/san-kum/pixanim/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGridDimension  = 16
	DefaultCellSizePx     = 20
	DefaultTheme          = "Dark"
	DefaultExportBaseName = "animation"
	DefaultFrameDelayMs   = 300
	DefaultExportDir      = "exports"

	MinGridDimension = pixel.MinDim
	MaxGridDimension = pixel.MaxDim
	GridStep         = 8
	MinCellSizePx    = 5
	MaxCellSizePx    = 40
	CellStep         = 5
)

// Config is everything the shell supplies at session start. It never
// changes while a session is running.
type Config struct {
	GridDimension  int      `yaml:"grid_dimension"`
	CellSizePx     int      `yaml:"cell_size_px"`
	Theme          string   `yaml:"theme"`
	ExportBaseName string   `yaml:"export_base_name"`
	FrameDelayMs   int      `yaml:"frame_delay_ms"`
	Palette        []string `yaml:"palette"`
	ExportDir      string   `yaml:"export_dir"`
}

// ConfigError reports a setting that cannot start a session.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func DefaultConfig() *Config {
	return &Config{
		GridDimension:  DefaultGridDimension,
		CellSizePx:     DefaultCellSizePx,
		Theme:          DefaultTheme,
		ExportBaseName: DefaultExportBaseName,
		FrameDelayMs:   DefaultFrameDelayMs,
		Palette:        viz.DefaultSwatchHex(),
		ExportDir:      DefaultExportDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field against the ranges the editor supports.
func (c *Config) Validate() error {
	if c.GridDimension < MinGridDimension || c.GridDimension > MaxGridDimension || c.GridDimension%GridStep != 0 {
		return &ConfigError{"grid_dimension", c.GridDimension,
			fmt.Sprintf("must be a multiple of %d in [%d, %d]", GridStep, MinGridDimension, MaxGridDimension)}
	}
	if c.CellSizePx < MinCellSizePx || c.CellSizePx > MaxCellSizePx || c.CellSizePx%CellStep != 0 {
		return &ConfigError{"cell_size_px", c.CellSizePx,
			fmt.Sprintf("must be a multiple of %d in [%d, %d]", CellStep, MinCellSizePx, MaxCellSizePx)}
	}
	if _, ok := viz.GetTheme(c.Theme); !ok {
		return &ConfigError{"theme", c.Theme, "unknown theme"}
	}
	if c.ExportBaseName == "" {
		return &ConfigError{"export_base_name", c.ExportBaseName, "must not be empty"}
	}
	if c.FrameDelayMs <= 0 {
		return &ConfigError{"frame_delay_ms", c.FrameDelayMs, "must be positive"}
	}
	if len(c.Palette) == 0 {
		return &ConfigError{"palette", c.Palette, "needs at least one colour"}
	}
	for _, h := range c.Palette {
		if _, err := pixel.ParseHex(h); err != nil {
			return &ConfigError{"palette", h, err.Error()}
		}
	}
	return nil
}

// Colors parses the palette. Call Validate first.
func (c *Config) Colors() []pixel.Color {
	out := make([]pixel.Color, 0, len(c.Palette))
	for _, h := range c.Palette {
		if col, err := pixel.ParseHex(h); err == nil {
			out = append(out, col)
		}
	}
	return out
}

func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// Clone copies the config including its palette slice.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Palette = append([]string(nil), c.Palette...)
	return &cp
}
