package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the chrome colours of the editor.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeLight = Theme{
		Name:       "Light",
		Background: lipgloss.Color("#ffffff"),
		Foreground: lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#0066cc"),
		Muted:      lipgloss.Color("#888888"),
	}

	ThemeDark = Theme{
		Name:       "Dark",
		Background: lipgloss.Color("#222222"),
		Foreground: lipgloss.Color("#eeeeee"),
		Accent:     lipgloss.Color("#4fc3f7"),
		Muted:      lipgloss.Color("#777777"),
	}

	ThemeRetro = Theme{
		Name:       "Retro",
		Background: lipgloss.Color("#f4f0e6"),
		Foreground: lipgloss.Color("#333333"),
		Accent:     lipgloss.Color("#c0392b"),
		Muted:      lipgloss.Color("#8a8172"),
	}

	ThemeSolarized = Theme{
		Name:       "Solarized",
		Background: lipgloss.Color("#fdf6e3"),
		Foreground: lipgloss.Color("#657b83"),
		Accent:     lipgloss.Color("#b58900"),
		Muted:      lipgloss.Color("#93a1a1"),
	}

	ThemeMonokai = Theme{
		Name:       "Monokai",
		Background: lipgloss.Color("#272822"),
		Foreground: lipgloss.Color("#f8f8f2"),
		Accent:     lipgloss.Color("#f92672"),
		Muted:      lipgloss.Color("#75715e"),
	}

	ThemePastel = Theme{
		Name:       "Pastel",
		Background: lipgloss.Color("#ffd1dc"),
		Foreground: lipgloss.Color("#355c7d"),
		Accent:     lipgloss.Color("#f67280"),
		Muted:      lipgloss.Color("#6c5b7b"),
	}

	ThemeNeon = Theme{
		Name:       "Neon",
		Background: lipgloss.Color("#000000"),
		Foreground: lipgloss.Color("#39ff14"),
		Accent:     lipgloss.Color("#ff073a"),
		Muted:      lipgloss.Color("#541388"),
	}

	ThemeCyberpunk = Theme{
		Name:       "Cyberpunk",
		Background: lipgloss.Color("#0f0f0f"),
		Foreground: lipgloss.Color("#e600ff"),
		Accent:     lipgloss.Color("#00ffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeForest = Theme{
		Name:       "Forest",
		Background: lipgloss.Color("#2b580c"),
		Foreground: lipgloss.Color("#e0f2e9"),
		Accent:     lipgloss.Color("#e9c46a"),
		Muted:      lipgloss.Color("#7fb77e"),
	}

	ThemeOcean = Theme{
		Name:       "Ocean",
		Background: lipgloss.Color("#023e8a"),
		Foreground: lipgloss.Color("#caf0f8"),
		Accent:     lipgloss.Color("#ffd700"),
		Muted:      lipgloss.Color("#90e0ef"),
	}

	// All available themes, in picker order
	Themes = []Theme{
		ThemeLight,
		ThemeDark,
		ThemeRetro,
		ThemeSolarized,
		ThemeMonokai,
		ThemePastel,
		ThemeNeon,
		ThemeCyberpunk,
		ThemeForest,
		ThemeOcean,
	}
)

// GetTheme looks a theme up by name, ignoring case.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return ThemeDark, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles to the theme after name.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
