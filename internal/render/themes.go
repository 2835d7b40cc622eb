// Package render provides color themes for the terminal surface.
package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme used by the terminal surface and the ANSI renderer
type Theme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Inline code span colors
	CodeText       lipgloss.Color
	CodeBackground lipgloss.Color
}

// Built-in themes
var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = Theme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		CodeText:       lipgloss.Color("#ff9e64"),
		CodeBackground: lipgloss.Color("#292e42"),
	}

	// CatppuccinMochaTheme is based on the Catppuccin Mocha palette
	CatppuccinMochaTheme = Theme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"), // Blue
		Secondary: lipgloss.Color("#a6e3a1"), // Green
		Accent:    lipgloss.Color("#cba6f7"), // Mauve
		Warning:   lipgloss.Color("#f9e2af"), // Yellow
		Error:     lipgloss.Color("#f38ba8"), // Red

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),

		CodeText:       lipgloss.Color("#fab387"), // Peach
		CodeBackground: lipgloss.Color("#181825"),
	}

	// PaperTheme is a light theme for bright terminals
	PaperTheme = Theme{
		Name:        "paper",
		Description: "Paper - Light theme with muted ink colors",

		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#eeeeee"),
		Border:     lipgloss.Color("#c8c8c8"),

		Primary:   lipgloss.Color("#3b5bdb"),
		Secondary: lipgloss.Color("#2b8a3e"),
		Accent:    lipgloss.Color("#862e9c"),
		Warning:   lipgloss.Color("#e67700"),
		Error:     lipgloss.Color("#c92a2a"),

		Text:     lipgloss.Color("#212529"),
		TextDim:  lipgloss.Color("#868e96"),
		TextMute: lipgloss.Color("#adb5bd"),

		CodeText:       lipgloss.Color("#c2255c"),
		CodeBackground: lipgloss.Color("#f1f3f5"),
	}
)

// DefaultThemeName is used when no theme is configured
const DefaultThemeName = "tokyonight"

var (
	themeMu      sync.RWMutex
	currentTheme = TokyoNightTheme
)

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTheme sets the active theme by name. Unknown names leave it unchanged.
func SetTheme(name string) bool {
	theme, ok := ThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// ThemeByName returns a theme by its name
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "tokyonight":
		return TokyoNightTheme, true
	case "catppuccin":
		return CatppuccinMochaTheme, true
	case "paper":
		return PaperTheme, true
	default:
		return Theme{}, false
	}
}

// AvailableThemes returns all built-in themes
func AvailableThemes() []Theme {
	return []Theme{
		TokyoNightTheme,
		CatppuccinMochaTheme,
		PaperTheme,
	}
}

// ThemeNames returns just the theme names for selection
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
