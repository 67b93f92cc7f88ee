package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pixanim/internal/pixel"
)

// Styles are the lipgloss styles for one theme.
type Styles struct {
	Theme    Theme
	Title    lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Active   lipgloss.Style
	KeyHint  lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:   lipgloss.NewStyle().Foreground(t.Foreground),
		Active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Background).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")),
		Cursor: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Accent).
			Bold(true),
	}
}

// Cell renders one grid cell as two spaces on a background colour so cells
// come out roughly square in a terminal.
func Cell(c pixel.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// CursorCell renders a cell with a marker in a colour that contrasts with c.
func CursorCell(c pixel.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(Contrast(c).Hex())).
		Bold(true).
		Render("[]")
}

// Contrast picks black or white, whichever reads better on c.
func Contrast(c pixel.Color) pixel.Color {
	l, _, _ := c.Colorful().Lab()
	if l > 0.55 {
		return pixel.Black
	}
	return pixel.Blank
}

// GradientText creates a gradient effect on text using Lab interpolation
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := a.BlendLab(b, t).Clamped()
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return sb.String()
}

// Separator draws a decorative rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.KeyHint.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
