package render

import (
	"os"

	"github.com/diogo/chatwidget/internal/config"
)

// LoadOptionsFromConfig loads render options from user configuration.
// Environment variables take precedence over config file values.
func LoadOptionsFromConfig() Options {
	opts := DefaultOptions()

	cfg, err := config.LoadConfig()
	if err == nil && cfg.Theme != "" {
		opts.Theme = cfg.Theme
	}

	if theme := os.Getenv(config.EnvTheme); theme != "" {
		opts.Theme = theme
	}

	if _, ok := ThemeByName(opts.Theme); !ok {
		opts.Theme = DefaultThemeName
	}

	return opts
}

// LoadOptionsFromConfigWithWidth loads options from config with a specific width.
func LoadOptionsFromConfigWithWidth(width int) Options {
	opts := LoadOptionsFromConfig()
	opts.Width = width
	return opts
}
