package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/logging"
	"github.com/diogo/chatwidget/internal/render"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	endpoint string
	theme    string
	logFile  string
	verbose  bool
}

// loadSettings resolves the effective configuration: config file, then .env
// and environment, then flags.
func loadSettings(flags *globalFlags) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.ApplyEnv(cfg)

	if flags == nil {
		return cfg, nil
	}
	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if flags.theme != "" {
		if _, ok := render.ThemeByName(flags.theme); !ok {
			return config.Config{}, fmt.Errorf("unknown theme %q (available: %s)",
				flags.theme, strings.Join(render.ThemeNames(), ", "))
		}
		cfg.Theme = flags.theme
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// renderOptions builds render options for the configured theme
func renderOptions(cfg config.Config, width int) render.Options {
	opts := render.LoadOptionsFromConfigWithWidth(width)
	if _, ok := render.ThemeByName(cfg.Theme); ok {
		opts = opts.WithTheme(cfg.Theme)
	}
	return opts
}

// openLogger opens the diagnostic log. Failure to open it is reported and
// logging is disabled; it never stops the command.
func openLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, func()) {
	logger, closer, err := logging.New(logging.Options{
		File:    cfg.LogFile,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	return logger, func() { _ = closer.Close() }
}
