package viz

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/wavelines/internal/render"
)

// Theme maps the two stroke colors onto terminal colors.
type Theme struct {
	Name     string
	Line     lipgloss.Color
	Emphasis lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

var (
	// ThemeClassic keeps the window colors.
	ThemeClassic = Theme{
		Name:     "classic",
		Line:     lipgloss.Color("#ffffff"),
		Emphasis: lipgloss.Color("#4d0000"),
		Text:     lipgloss.Color("252"),
		Muted:    lipgloss.Color("240"),
	}

	// ThemeEmber brightens the emphasis stroke for dark terminals.
	ThemeEmber = Theme{
		Name:     "ember",
		Line:     lipgloss.Color("#cccccc"),
		Emphasis: lipgloss.Color("#ff4444"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Line:     lipgloss.Color("#00cc00"),
		Emphasis: lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Line:     lipgloss.Color("#00a8cc"),
		Emphasis: lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeEmber,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// Ink maps a stroke color to the theme. Colors other than the two stroke
// colors pass through unchanged.
func (t Theme) Ink(c color.RGBA) lipgloss.Color {
	switch c {
	case render.White:
		return t.Line
	case render.DarkRed:
		return t.Emphasis
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
