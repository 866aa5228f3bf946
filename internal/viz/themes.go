package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the browser color scheme.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	// ThemeSilica is the default: cool blues of a glass fiber.
	ThemeSilica = Theme{
		Name:      "silica",
		Primary:   lipgloss.Color("#5fafff"),
		Secondary: lipgloss.Color("#87d7ff"),
		Accent:    lipgloss.Color("#d7ff87"),
		Muted:     lipgloss.Color("#5f7f9f"),
		Error:     lipgloss.Color("#ff5f5f"),
	}

	ThemeInfrared = Theme{
		Name:      "infrared",
		Primary:   lipgloss.Color("#ff5f00"),
		Secondary: lipgloss.Color("#ffaf5f"),
		Accent:    lipgloss.Color("#ffd75f"),
		Muted:     lipgloss.Color("#875f5f"),
		Error:     lipgloss.Color("#ff0087"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#d0d0d0"),
		Accent:    lipgloss.Color("#bcbcbc"),
		Muted:     lipgloss.Color("#6c6c6c"),
		Error:     lipgloss.Color("#ff8787"),
	}

	Themes = []Theme{ThemeSilica, ThemeInfrared, ThemeMono}
)

// GetTheme looks a theme up by name.
func GetTheme(name string) (Theme, bool) {
	if i := themeIndex(name); i >= 0 {
		return Themes[i], true
	}
	return ThemeSilica, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return -1
}
