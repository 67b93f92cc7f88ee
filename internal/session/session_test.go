package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/san-kum/pixanim/internal/config"
	"github.com/san-kum/pixanim/internal/encode"
	"github.com/san-kum/pixanim/internal/pixel"
	"github.com/san-kum/pixanim/internal/storage"
)

var red = pixel.RGB(255, 0, 0)

func newSession(t *testing.T, edit func(*config.Config)) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	if edit != nil {
		edit(cfg)
	}
	s, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GridDimension = 12
	_, err := New(context.Background(), cfg)
	var ce *config.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestNewSessionStartsBlank(t *testing.T) {
	s := newSession(t, nil)
	v := s.View()
	if v.Count != 1 || v.Index != 0 || v.Name != "Frame1" {
		t.Errorf("unexpected view %+v", v)
	}
	if v.Grid.CountNot(pixel.Blank) != 0 {
		t.Error("initial frame should be blank")
	}
	if v.Tool.Color != s.Swatches()[0] || v.Tool.Eraser {
		t.Errorf("expected first swatch selected, got %+v", v.Tool)
	}
}

func TestScenarioPaintInsertDelete(t *testing.T) {
	s := newSession(t, func(c *config.Config) { c.GridDimension = 16 })

	s.SelectColor(red)
	if !s.ClickPixel(5, 5) {
		t.Fatal("click inside cell (0,0) should paint")
	}
	if c := s.View().Grid.At(0, 0); c != red {
		t.Fatalf("expected red at (0,0), got %s", c)
	}

	s.AddFrame()
	v := s.View()
	if v.Count != 2 || v.Index != 1 || v.Grid.CountNot(pixel.Blank) != 0 {
		t.Fatalf("expected blank current frame 2 of 2, got %+v", v)
	}

	s.Prev()
	if !s.DeleteFrame() {
		t.Fatal("deleting frame 1 of 2 should succeed")
	}
	v = s.View()
	if v.Count != 1 || v.Name != "Frame2" || v.Grid.CountNot(pixel.Blank) != 0 {
		t.Errorf("expected only the blank Frame2 left, got %+v", v)
	}

	if s.DeleteFrame() {
		t.Error("deleting the last frame should be refused")
	}
	if s.View().Count != 1 {
		t.Error("frame count changed on refused delete")
	}
}

func TestClickOutsideIgnored(t *testing.T) {
	s := newSession(t, func(c *config.Config) { c.GridDimension = 8; c.CellSizePx = 10 })
	before := s.View().Grid
	for _, p := range [][2]int{{-1, 0}, {80, 0}, {0, 80}, {1000, -1000}} {
		if s.ClickPixel(p[0], p[1]) {
			t.Errorf("click %v should be ignored", p)
		}
	}
	if !s.View().Grid.Equal(before) {
		t.Error("grid changed")
	}
}

func TestEraserAndSwatches(t *testing.T) {
	s := newSession(t, nil)
	s.SelectColor(red)
	s.PaintCell(2, 2)

	if !s.ToggleEraser() {
		t.Fatal("expected eraser on")
	}
	s.PaintCell(2, 2)
	if c := s.View().Grid.At(2, 2); c != pixel.Blank {
		t.Errorf("expected erased cell, got %s", c)
	}

	if !s.SelectSwatch(2) {
		t.Fatal("swatch 2 should exist")
	}
	v := s.View()
	if v.Tool.Eraser {
		t.Error("selecting a swatch should leave eraser mode")
	}
	if v.Tool.Color != s.Swatches()[2] {
		t.Errorf("expected swatch colour %s, got %s", s.Swatches()[2], v.Tool.Color)
	}
	if s.SelectSwatch(99) || s.SelectSwatch(-1) {
		t.Error("out-of-range swatch should be ignored")
	}
}

func TestRenameAndClear(t *testing.T) {
	s := newSession(t, nil)
	s.PaintCell(0, 0)
	s.AddFrame()
	s.RenameCurrent("jump")
	s.PaintCell(1, 1)
	s.ClearCurrent()

	v := s.View()
	if v.Name != "jump" || v.Grid.CountNot(pixel.Blank) != 0 {
		t.Errorf("unexpected current frame %s", v.Name)
	}
	if v.Names[0] != "Frame1" {
		t.Errorf("other frame renamed: %v", v.Names)
	}
	if v.Painted[0] != 1 || v.Painted[1] != 0 {
		t.Errorf("unexpected painted counts %v", v.Painted)
	}
}

func TestRenameCancelsPlayback(t *testing.T) {
	s := newSession(t, nil)
	s.AddFrame()
	s.AddFrame()

	tok, _ := s.StartPlayback()
	if idx, _, ok := s.AdvancePlayback(tok); !ok || idx != 1 {
		t.Fatalf("expected playback at 1, got %d (ok=%v)", idx, ok)
	}
	s.RenameCurrent("walk")

	if s.Playing() {
		t.Error("rename should stop playback")
	}
	if _, _, ok := s.AdvancePlayback(tok); ok {
		t.Error("tick after rename should be dropped")
	}
	v := s.View()
	if v.Index != 1 {
		t.Errorf("expected cursor to stay on 1, got %d", v.Index)
	}
	want := []string{"Frame1", "walk", "Frame3"}
	for i, name := range want {
		if v.Names[i] != name {
			t.Errorf("frame %d: expected %s, got %s", i, name, v.Names[i])
		}
	}
}

func TestExportStill(t *testing.T) {
	s := newSession(t, func(c *config.Config) { c.CellSizePx = 10 })
	s.SelectColor(red)
	s.PaintCell(3, 4)
	s.RenameCurrent("hero/idle")

	a, err := s.ExportStill()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if a.Name != "hero_idle.png" || a.Kind != storage.KindStill {
		t.Errorf("unexpected artifact %s/%s", a.Name, a.Kind)
	}
	g, err := encode.DecodeStill(a.Data, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Equal(s.View().Grid) {
		t.Error("decoded still differs from the frame")
	}
}

func TestExportSVG(t *testing.T) {
	s := newSession(t, nil)
	s.SelectColor(red)
	s.PaintCell(0, 0)

	a, err := s.ExportSVG()
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "Frame1.svg" || a.Kind != storage.KindVector {
		t.Errorf("unexpected artifact %s/%s", a.Name, a.Kind)
	}
	if !strings.Contains(string(a.Data), `fill="#ff0000"`) {
		t.Error("svg missing painted cell")
	}
}

func TestExportAnimated(t *testing.T) {
	s := newSession(t, func(c *config.Config) { c.ExportBaseName = "walk" })
	s.PaintCell(0, 0)
	s.AddFrame()
	s.PaintCell(1, 1)
	s.AddFrame()

	a, err := s.ExportAnimated()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if a.Name != "walk.gif" || a.Frames != 3 {
		t.Errorf("unexpected artifact %s frames=%d", a.Name, a.Frames)
	}
	info, err := encode.Inspect(a.Data)
	if err != nil {
		t.Fatal(err)
	}
	if info.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", info.Frames)
	}
	for _, d := range info.Delays {
		if d != 300*time.Millisecond {
			t.Errorf("expected 300ms, got %v", d)
		}
	}
}

func TestExportAsyncUsesSnapshot(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, func(c *config.Config) { c.GridDimension = 32; c.CellSizePx = 20 })
	s.SelectColor(red)
	s.PaintCell(0, 0)

	results := s.ExportAnimatedAsync()
	for i := 0; i < 20; i++ {
		s.AddFrame()
		s.PaintCell(i, i)
	}

	var res Result
	g.Eventually(results, 10*time.Second).Should(Receive(&res))
	g.Expect(res.Err).NotTo(HaveOccurred())
	g.Expect(res.Artifact.Frames).To(Equal(1))

	grids, _, err := encode.DecodeAnimated(res.Artifact.Data, 20)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(grids).To(HaveLen(1))
	g.Expect(grids[0].At(0, 0)).To(Equal(red))
	g.Expect(grids[0].CountNot(pixel.Blank)).To(Equal(1))
}

func TestPlayThreeFrames(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, nil)
	s.AddFrame()
	s.AddFrame()

	var mu sync.Mutex
	var seen []int
	start := time.Now()
	finished := s.Play(context.Background(), func(i int) {
		mu.Lock()
		seen = append(seen, i)
		mu.Unlock()
	})
	g.Expect(s.View().Index).To(Equal(0))

	g.Eventually(finished, 2*time.Second).Should(BeClosed())
	elapsed := time.Since(start)
	g.Expect(elapsed).To(BeNumerically(">=", 550*time.Millisecond))

	mu.Lock()
	g.Expect(seen).To(Equal([]int{1, 2}))
	mu.Unlock()
	g.Expect(s.View().Index).To(Equal(2))
	g.Expect(s.Playing()).To(BeFalse())
}

func TestPlayTwiceSettlesOnLastFrame(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, func(c *config.Config) { c.FrameDelayMs = 20 })
	for i := 0; i < 4; i++ {
		s.AddFrame()
	}

	first := s.Play(context.Background(), nil)
	time.Sleep(25 * time.Millisecond)
	second := s.Play(context.Background(), nil)

	g.Eventually(first, time.Second).Should(BeClosed())
	g.Eventually(second, time.Second).Should(BeClosed())
	g.Expect(s.View().Index).To(Equal(4))
	g.Consistently(func() int { return s.View().Index }, 100*time.Millisecond).Should(Equal(4))
}

func TestEditingCancelsPlayback(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, func(c *config.Config) { c.FrameDelayMs = 20 })
	for i := 0; i < 9; i++ {
		s.AddFrame()
	}

	finished := s.Play(context.Background(), nil)
	time.Sleep(30 * time.Millisecond)
	s.Next()
	at := s.View().Index

	g.Eventually(finished, time.Second).Should(BeClosed())
	g.Consistently(func() int { return s.View().Index }, 100*time.Millisecond).Should(Equal(at))
}

func TestExternallyTickedPlayback(t *testing.T) {
	s := newSession(t, nil)
	s.AddFrame()
	s.AddFrame()

	tok, done := s.StartPlayback()
	if done || s.View().Index != 0 {
		t.Fatalf("expected playback at 0, got %d (done=%v)", s.View().Index, done)
	}
	restart, _ := s.StartPlayback()

	if _, _, ok := s.AdvancePlayback(tok); ok {
		t.Error("stale tick should be dropped")
	}
	idx, done, ok := s.AdvancePlayback(restart)
	if !ok || idx != 1 || done {
		t.Errorf("expected (1,false,true), got (%d,%v,%v)", idx, done, ok)
	}
	idx, done, _ = s.AdvancePlayback(restart)
	if idx != 2 || !done {
		t.Errorf("expected final frame 2, got %d (done=%v)", idx, done)
	}
	if s.View().Index != 2 {
		t.Errorf("expected display index 2, got %d", s.View().Index)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Frame1", "Frame1"},
		{"a/b\\c", "a_b_c"},
		{"  ", "fallback"},
		{"..", "fallback"},
		{"what?", "what_"},
		{"tab\there", "tabhere"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in, "fallback"); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestExportStillAsyncUsesSnapshot(t *testing.T) {
	g := NewWithT(t)
	s := newSession(t, func(c *config.Config) { c.CellSizePx = 10 })
	s.SelectColor(red)
	s.PaintCell(0, 0)

	results := s.ExportStillAsync()
	s.PaintCell(1, 1)
	s.RenameCurrent("later")

	var res Result
	g.Eventually(results, 5*time.Second).Should(Receive(&res))
	g.Expect(res.Err).NotTo(HaveOccurred())
	g.Expect(res.Artifact.Name).To(Equal("Frame1.png"))

	grid, err := encode.DecodeStill(res.Artifact.Data, 10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(grid.At(0, 0)).To(Equal(red))
	g.Expect(grid.CountNot(pixel.Blank)).To(Equal(1))
}
