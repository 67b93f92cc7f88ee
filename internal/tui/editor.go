package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pixanim/internal/logger"
	"github.com/san-kum/pixanim/internal/playback"
	"github.com/san-kum/pixanim/internal/session"
	"github.com/san-kum/pixanim/internal/storage"
	"github.com/san-kum/pixanim/internal/viz"
	"go.uber.org/zap"
)

// Grid origin on screen: three header lines, three columns of left padding,
// two terminal columns per cell.
const (
	gridTop   = 3
	gridLeft  = 3
	cellWidth = 2

	// rows below the grid needed by the tool lines, graph and key hints
	graphRows = 12
)

type mode int

const (
	modeEdit mode = iota
	modeRename
	modeHelp
)

type playTickMsg struct{ tok playback.Token }

type exportDoneMsg struct {
	path string
	err  error
}

type model struct {
	log    *zap.Logger
	sess   *session.Session
	out    *storage.Store
	styles viz.Styles
	tick   time.Duration
	dim    int
	cell   int

	cursorX, cursorY int
	mode             mode
	editBuf          string
	status           string
	statusErr        bool
	playTok          playback.Token
	showGraph        bool
	exporting        int

	width, height int
}

func newModel(ctx context.Context, sess *session.Session, out *storage.Store) model {
	cfg := sess.Config()
	theme, _ := viz.GetTheme(cfg.Theme)
	return model{
		log:       logger.FromContext(ctx).Named("tui"),
		sess:      sess,
		out:       out,
		styles:    viz.NewStyles(theme),
		tick:      cfg.FrameDelay(),
		dim:       cfg.GridDimension,
		cell:      cfg.CellSizePx,
		showGraph: true,
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) playTick(tok playback.Token) tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return playTickMsg{tok} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playTickMsg:
		_, done, ok := m.sess.AdvancePlayback(msg.tok)
		if !ok || done {
			return m, nil
		}
		return m, m.playTick(msg.tok)
	case exportDoneMsg:
		m.exporting--
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus("saved " + msg.path)
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.mode {
	case modeRename:
		return m.renameKey(msg)
	case modeHelp:
		m.mode = modeEdit
		return m, nil
	}
	return m.editKey(msg)
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.sess.StopPlayback()
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case " ", "enter":
		m.sess.PaintCell(m.cursorX, m.cursorY)
	case "e":
		if m.sess.ToggleEraser() {
			m.setStatus("eraser on")
		} else {
			m.setStatus("eraser off")
		}
	case "tab":
		m.sess.SelectSwatch((m.swatchIndex() + 1) % len(m.sess.Swatches()))
	case "shift+tab":
		n := len(m.sess.Swatches())
		m.sess.SelectSwatch((m.swatchIndex() + n - 1) % n)
	case "c":
		m.sess.ClearCurrent()
		m.setStatus("frame cleared")
	case "r":
		m.sess.StopPlayback()
		m.mode = modeRename
		m.editBuf = m.sess.View().Name
	case "[":
		m.sess.Prev()
	case "]":
		m.sess.Next()
	case "a":
		m.sess.AddFrame()
	case "x":
		// the last frame cannot be deleted; the refusal is silent
		m.sess.DeleteFrame()
	case "p":
		tok, done := m.sess.StartPlayback()
		m.playTok = tok
		if done {
			return m, nil
		}
		return m, m.playTick(tok)
	case "s":
		m.exporting++
		m.setStatus("exporting frame…")
		return m, m.exportStill()
	case "w":
		m.exporting++
		m.setStatus("exporting svg…")
		return m, m.exportSVG()
	case "g":
		m.exporting++
		m.setStatus("exporting animation…")
		return m, m.exportAnimated()
	case "t":
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme.Name))
	case "v":
		m.showGraph = !m.showGraph
	case "?":
		m.mode = modeHelp
	default:
		if i, ok := swatchKey(key); ok {
			m.sess.SelectSwatch(i)
		}
	}
	return m, nil
}

func (m model) renameKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if name := strings.TrimSpace(m.editBuf); name != "" {
			m.sess.RenameCurrent(name)
		}
		m.mode = modeEdit
		m.editBuf = ""
	case tea.KeyEsc:
		m.mode = modeEdit
		m.editBuf = ""
	case tea.KeyBackspace:
		if r := []rune(m.editBuf); len(r) > 0 {
			m.editBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.editBuf += " "
	case tea.KeyRunes:
		m.editBuf += string(msg.Runes)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	if m.mode != modeEdit || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return m, nil
	}
	// terminal cells become virtual device pixels so the click goes through
	// the same pixel-to-cell mapping as any other pointer
	px := (msg.X - gridLeft) * m.cell / cellWidth
	py := (msg.Y - gridTop) * m.cell
	if msg.X < gridLeft {
		px = -1
	}
	if msg.Y < gridTop {
		py = -1
	}
	if m.sess.ClickPixel(px, py) {
		m.cursorX, m.cursorY = px/m.cell, py/m.cell
	}
	return m, nil
}

func (m *model) moveCursor(dx, dy int) {
	m.cursorX = clamp(m.cursorX+dx, 0, m.dim-1)
	m.cursorY = clamp(m.cursorY+dy, 0, m.dim-1)
}

func (m model) swatchIndex() int {
	tool := m.sess.View().Tool
	for i, c := range m.sess.Swatches() {
		if c == tool.Color {
			return i
		}
	}
	return 0
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.log.Warn("export failed", zap.Error(err))
}

func (m model) exportStill() tea.Cmd {
	results := m.sess.ExportStillAsync()
	out, log := m.out, m.log
	return func() tea.Msg {
		res := <-results
		if res.Err != nil {
			return exportDoneMsg{err: res.Err}
		}
		path, err := out.Save(res.Artifact)
		if err == nil {
			log.Info("still exported", zap.String("path", path), zap.Int("bytes", len(res.Artifact.Data)))
		}
		return exportDoneMsg{path: path, err: err}
	}
}

// exportSVG renders on the update loop; SVG output is cheap text.
func (m model) exportSVG() tea.Cmd {
	a, err := m.sess.ExportSVG()
	out := m.out
	return func() tea.Msg {
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path, err := out.Save(a)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m model) exportAnimated() tea.Cmd {
	results := m.sess.ExportAnimatedAsync()
	out, log := m.out, m.log
	return func() tea.Msg {
		res := <-results
		if res.Err != nil {
			return exportDoneMsg{err: res.Err}
		}
		path, err := out.Save(res.Artifact)
		if err == nil {
			log.Info("animation exported", zap.String("path", path), zap.Int("frames", res.Artifact.Frames))
		}
		return exportDoneMsg{path: path, err: err}
	}
}

// swatchKey maps the number row to swatches 0-9 and the shifted row to 10-15.
func swatchKey(key string) (int, bool) {
	const plain = "1234567890"
	const shifted = "!@#$%^"
	if len(key) != 1 {
		return 0, false
	}
	if i := strings.IndexByte(plain, key[0]); i >= 0 {
		return i, true
	}
	if i := strings.IndexByte(shifted, key[0]); i >= 0 {
		return 10 + i, true
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m model) View() string {
	if m.mode == modeHelp {
		return m.viewHelp()
	}
	v := m.sess.View()
	s := m.styles
	var b strings.Builder

	// header: exactly gridTop lines
	title := viz.GradientText("pixanim", s.Theme.Accent, s.Theme.Foreground)
	state := s.KeyHint.Render("editing")
	if v.Playing {
		state = s.Active.Render("▶ playing")
	}
	b.WriteString(fmt.Sprintf("   %s  %s  %s\n", title, s.Value.Render(fmt.Sprintf("%dx%d", m.dim, m.dim)), state))
	b.WriteString("   " + m.frameStrip(v) + "\n")
	b.WriteString("\n")

	for y := 0; y < m.dim; y++ {
		b.WriteString(strings.Repeat(" ", gridLeft))
		for x := 0; x < m.dim; x++ {
			c := v.Grid.At(x, y)
			if x == m.cursorX && y == m.cursorY && !v.Playing {
				b.WriteString(viz.CursorCell(c))
			} else {
				b.WriteString(viz.Cell(c))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n   " + m.toolLine(v) + "\n")
	b.WriteString("   " + m.palette(v) + "\n")

	if m.mode == modeRename {
		b.WriteString("\n   " + s.Label.Render("rename") + s.Active.Render(m.editBuf+"▌") + "\n")
	}

	if m.showGraph && len(v.Painted) > 0 && m.graphFits() {
		b.WriteString("\n" + indent(activityGraph(v.Painted), "   ") + "\n")
	}

	if m.status != "" {
		st := s.Status
		if m.statusErr {
			st = s.Error
		}
		b.WriteString("\n   " + st.Render(m.status) + "\n")
	}

	b.WriteString("\n   " + s.Separator(m.width-2*gridLeft))
	b.WriteString("\n" + s.KeyHint.Render("   space paint  e eraser  1-0 colour  [ ] frame  a add  x del  p play  s png  w svg  g gif  ? help  q quit") + "\n")
	return b.String()
}

func (m model) frameStrip(v session.View) string {
	s := m.styles
	parts := make([]string, len(v.Names))
	for i, name := range v.Names {
		if i == v.Index {
			parts[i] = s.Selected.Render(" " + name + " ")
		} else {
			parts[i] = s.Value.Render(name)
		}
	}
	return s.Label.Render(fmt.Sprintf("%d/%d", v.Index+1, v.Count)) + strings.Join(parts, " ")
}

func (m model) toolLine(v session.View) string {
	s := m.styles
	tool := s.Label.Render("colour") + viz.Cell(v.Tool.Color) + " " + s.Value.Render(v.Tool.Color.Hex())
	if v.Tool.Eraser {
		tool += "  " + s.Active.Render("eraser")
	}
	if m.exporting > 0 {
		tool += "  " + s.KeyHint.Render("exporting")
	}
	return tool
}

func (m model) palette(v session.View) string {
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("palette"))
	for _, c := range m.sess.Swatches() {
		if c == v.Tool.Color && !v.Tool.Eraser {
			b.WriteString(viz.CursorCell(c))
		} else {
			b.WriteString(viz.Cell(c))
		}
	}
	return b.String()
}

func (m model) viewHelp() string {
	s := m.styles
	keys := [][2]string{
		{"arrows/hjkl", "move cursor"},
		{"space/enter", "paint cell"},
		{"mouse", "paint under pointer"},
		{"e", "toggle eraser"},
		{"1-0 !-^", "pick swatch"},
		{"tab", "next swatch"},
		{"c", "clear frame"},
		{"r", "rename frame"},
		{"[ ]", "previous / next frame"},
		{"a", "add frame after current"},
		{"x", "delete frame"},
		{"p", "play from first frame"},
		{"s", "export frame as png"},
		{"g", "export all frames as gif"},
		{"w", "export frame as svg"},
		{"t", "cycle theme"},
		{"v", "toggle activity graph"},
		{"q", "quit"},
	}
	var body strings.Builder
	body.WriteString(s.Title.Render("keys") + "\n\n")
	for i, k := range keys {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(s.Label.Width(14).Render(k[0]) + s.Value.Render(k[1]))
	}
	return "\n" + indent(s.Panel.Render(body.String()), "   ") +
		"\n\n   " + s.KeyHint.Render("any key to return") + "\n"
}

// graphFits reports whether the activity graph still fits below the grid
// in the current window height.
func (m model) graphFits() bool {
	return m.height >= gridTop+m.dim+graphRows
}

// activityGraph plots painted cells per frame.
func activityGraph(painted []int) string {
	data := make([]float64, len(painted))
	for i, p := range painted {
		data[i] = float64(p)
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(3),
		asciigraph.Caption("painted cells per frame"))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// Run starts the editor on the alternate screen and blocks until it quits.
func Run(ctx context.Context, sess *session.Session, out *storage.Store) error {
	p := tea.NewProgram(newModel(ctx, sess, out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	_, err := p.Run()
	sess.StopPlayback()
	return err
}
