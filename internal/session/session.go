package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/san-kum/pixanim/internal/config"
	"github.com/san-kum/pixanim/internal/editor"
	"github.com/san-kum/pixanim/internal/encode"
	"github.com/san-kum/pixanim/internal/export"
	"github.com/san-kum/pixanim/internal/frames"
	"github.com/san-kum/pixanim/internal/logger"
	"github.com/san-kum/pixanim/internal/pixel"
	"github.com/san-kum/pixanim/internal/playback"
	"github.com/san-kum/pixanim/internal/storage"
	"go.uber.org/zap"
)

type Session struct {
	mu       sync.Mutex
	cfg      *config.Config
	store    *frames.Store
	tool     *editor.Tool
	sched    *playback.Scheduler
	swatches []pixel.Color
	log      *zap.Logger
}

// View is a settled copy of what the shell needs to draw one screen.
type View struct {
	Grid    *pixel.Grid
	Index   int
	Count   int
	Name    string
	Names   []string
	Tool    editor.Tool
	Playing bool
	Painted []int
}

// Result is delivered by ExportStillAsync and ExportAnimatedAsync.
type Result struct {
	Artifact storage.Artifact
	Err      error
}

// New validates cfg and starts a session with one blank frame.
func New(ctx context.Context, cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := frames.New(cfg.GridDimension)
	if err != nil {
		return nil, err
	}
	swatches := cfg.Colors()
	s := &Session{
		cfg:      cfg.Clone(),
		store:    store,
		tool:     editor.NewTool(swatches[0]),
		sched:    playback.New(cfg.FrameDelay()),
		swatches: swatches,
		log:      logger.FromContext(ctx).Named("session"),
	}
	s.log.Debug("session started",
		zap.Int("grid", cfg.GridDimension),
		zap.Int("cell", cfg.CellSizePx),
		zap.String("theme", cfg.Theme))
	return s, nil
}

func (s *Session) Config() *config.Config { return s.cfg.Clone() }

func (s *Session) Swatches() []pixel.Color {
	return append([]pixel.Color(nil), s.swatches...)
}

// View returns copies of the current frame and tool for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.store.Current()
	painted := make([]int, s.store.Len())
	for i := range painted {
		painted[i] = s.store.At(i).Grid.CountNot(pixel.Blank)
	}
	return View{
		Grid:    f.Grid.Clone(),
		Index:   s.store.CurrentIndex(),
		Count:   s.store.Len(),
		Name:    f.Name,
		Names:   s.store.Names(),
		Tool:    *s.tool,
		Playing: s.sched.Playing(),
		Painted: painted,
	}
}

func (s *Session) SelectColor(c pixel.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool.SetColor(c)
}

// SelectSwatch picks palette entry i. Out-of-range indices are ignored.
func (s *Session) SelectSwatch(i int) bool {
	if i < 0 || i >= len(s.swatches) {
		return false
	}
	s.SelectColor(s.swatches[i])
	return true
}

func (s *Session) ToggleEraser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool.ToggleEraser()
	return s.tool.Eraser
}

// ClickPixel paints at a device-pixel coordinate of the canvas.
func (s *Session) ClickPixel(px, py int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	return editor.PaintAt(s.tool, s.store.Current(), px, py, s.cfg.CellSizePx, s.cfg.GridDimension)
}

// PaintCell paints a cell addressed by grid coordinates.
func (s *Session) PaintCell(x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	return editor.PaintCell(s.tool, s.store.Current(), x, y)
}

func (s *Session) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	editor.ClearFrame(s.store.Current())
	s.log.Debug("frame cleared", zap.Int("index", s.store.CurrentIndex()))
}

func (s *Session) RenameCurrent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	s.store.Rename(s.store.CurrentIndex(), name)
}

func (s *Session) Prev() int { return s.move(-1) }
func (s *Session) Next() int { return s.move(1) }

func (s *Session) move(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	return s.store.MoveCurrent(delta)
}

// AddFrame inserts a blank frame after the current one and selects it.
func (s *Session) AddFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	idx := s.store.InsertAfter(s.store.CurrentIndex())
	s.log.Debug("frame added", zap.Int("index", idx), zap.Int("count", s.store.Len()))
	return idx
}

// DeleteFrame removes the current frame. With one frame left it does nothing.
func (s *Session) DeleteFrame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
	ok := s.store.DeleteAt(s.store.CurrentIndex())
	s.log.Debug("frame delete", zap.Bool("deleted", ok), zap.Int("count", s.store.Len()))
	return ok
}

// StartPlayback begins an externally ticked playback from frame 0.
func (s *Session) StartPlayback() (tok playback.Token, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, first, done := s.sched.Start(s.store.Len())
	s.store.SetCurrent(first)
	return tok, done
}

// AdvancePlayback applies one tick of an externally ticked playback. Ticks
// from a replaced or cancelled run report ok=false and change nothing.
func (s *Session) AdvancePlayback(tok playback.Token) (index int, done, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, done, ok = s.sched.Advance(tok)
	if ok {
		s.store.SetCurrent(index)
	}
	return index, done, ok
}

// Play runs a self-timed playback. onFrame, if set, is called with the new
// index after each step while the session lock is released.
func (s *Session) Play(ctx context.Context, onFrame func(int)) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, finished := s.sched.Play(ctx, s.store.Len(), func(tok playback.Token, idx int) {
		s.mu.Lock()
		if !s.sched.Valid(tok) {
			s.mu.Unlock()
			return
		}
		s.store.SetCurrent(idx)
		s.mu.Unlock()
		if onFrame != nil {
			onFrame(idx)
		}
	})
	s.store.SetCurrent(0)
	return finished
}

func (s *Session) StopPlayback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Cancel()
}

func (s *Session) Playing() bool { return s.sched.Playing() }

// ExportStill encodes the current frame as <frameName>.png.
func (s *Session) ExportStill() (storage.Artifact, error) {
	grid, name := s.snapshotCurrent()
	return s.encodeStill(grid, name)
}

// ExportStillAsync snapshots the current frame now and encodes it in the
// background. The channel receives exactly one Result.
func (s *Session) ExportStillAsync() <-chan Result {
	grid, name := s.snapshotCurrent()
	out := make(chan Result, 1)
	go func() {
		a, err := s.encodeStill(grid, name)
		out <- Result{Artifact: a, Err: err}
	}()
	return out
}

func (s *Session) snapshotCurrent() (*pixel.Grid, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.store.Current()
	return f.Grid.Clone(), f.Name
}

func (s *Session) encodeStill(grid *pixel.Grid, name string) (storage.Artifact, error) {
	data, err := encode.EncodeStill(grid, s.cfg.CellSizePx)
	if err != nil {
		s.log.Error("still export failed", zap.Error(err))
		return storage.Artifact{}, fmt.Errorf("export %s: %w", name, err)
	}
	return storage.Artifact{
		Name:   FileName(name, frames.DefaultName(1)) + ".png",
		Kind:   storage.KindStill,
		Frames: 1,
		Data:   data,
	}, nil
}

// ExportSVG renders the current frame as <frameName>.svg.
func (s *Session) ExportSVG() (storage.Artifact, error) {
	grid, name := s.snapshotCurrent()

	return storage.Artifact{
		Name:   FileName(name, frames.DefaultName(1)) + ".svg",
		Kind:   storage.KindVector,
		Frames: 1,
		Data:   []byte(export.GridToSVG(grid, s.cfg.CellSizePx)),
	}, nil
}

// ExportAnimated encodes every frame as <exportBaseName>.gif.
func (s *Session) ExportAnimated() (storage.Artifact, error) {
	s.mu.Lock()
	grids := s.store.Snapshot()
	s.mu.Unlock()
	return s.encodeAnimated(grids)
}

// ExportAnimatedAsync snapshots now and encodes in the background. The
// channel receives exactly one Result.
func (s *Session) ExportAnimatedAsync() <-chan Result {
	s.mu.Lock()
	grids := s.store.Snapshot()
	s.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		a, err := s.encodeAnimated(grids)
		out <- Result{Artifact: a, Err: err}
	}()
	return out
}

func (s *Session) encodeAnimated(grids []*pixel.Grid) (storage.Artifact, error) {
	data, err := encode.EncodeAnimated(grids, s.cfg.CellSizePx, s.cfg.FrameDelay())
	if err != nil {
		s.log.Error("animated export failed", zap.Error(err), zap.Int("frames", len(grids)))
		return storage.Artifact{}, fmt.Errorf("export %s: %w", s.cfg.ExportBaseName, err)
	}
	return storage.Artifact{
		Name:   FileName(s.cfg.ExportBaseName, config.DefaultExportBaseName) + ".gif",
		Kind:   storage.KindAnimated,
		Frames: len(grids),
		Data:   data,
	}, nil
}

// FileName makes a display name safe to use as a file stem.
func FileName(name, fallback string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, ".")
	if clean == "" {
		return fallback
	}
	return clean
}
