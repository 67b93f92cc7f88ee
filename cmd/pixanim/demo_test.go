package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/san-kum/pixanim/internal/config"
	"github.com/san-kum/pixanim/internal/pixel"
	"github.com/san-kum/pixanim/internal/session"
)

func TestPaintDemo(t *testing.T) {
	cfg := config.DefaultConfig()
	sess, err := session.New(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	paintDemo(sess, cfg.GridDimension, 6)

	v := sess.View()
	if v.Count != 6 {
		t.Fatalf("expected 6 frames, got %d", v.Count)
	}
	if v.Names[0] != "bounce-1" || v.Names[5] != "bounce-6" {
		t.Errorf("unexpected names %v", v.Names)
	}
	for i, p := range v.Painted {
		if p != 16 {
			t.Errorf("frame %d: expected a 4x4 square, got %d cells", i, p)
		}
	}
	// the last frame has moved back off the origin
	if v.Grid.At(0, 0) != pixel.Blank {
		t.Errorf("expected blank origin on last frame, got %s", v.Grid.At(0, 0))
	}
}

func TestLoadConfigFlags(t *testing.T) {
	defer func() { gridDim, cellSize, preset = 0, 0, "" }()

	preset = "small"
	cellSize = 35
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GridDimension != 8 || cfg.CellSizePx != 35 {
		t.Errorf("expected 8/35, got %d/%d", cfg.GridDimension, cfg.CellSizePx)
	}

	gridDim = 10
	if _, err := loadConfig(); err == nil {
		t.Error("expected validation error for grid 10")
	}

	gridDim = 0
	preset = "giant"
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadConfigPresetOverFile(t *testing.T) {
	defer func() { configFile, preset = "", "" }()

	cfg := config.DefaultConfig()
	cfg.GridDimension = 32
	cfg.CellSizePx = 10
	cfg.Theme = "Forest"
	configFile = filepath.Join(t.TempDir(), "pixanim.yaml")
	if err := config.Save(configFile, cfg); err != nil {
		t.Fatal(err)
	}

	preset = "small"
	got, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.GridDimension != 8 || got.CellSizePx != 40 {
		t.Errorf("expected preset 8/40, got %d/%d", got.GridDimension, got.CellSizePx)
	}
	if got.Theme != "Forest" {
		t.Errorf("expected theme from file, got %s", got.Theme)
	}
}
