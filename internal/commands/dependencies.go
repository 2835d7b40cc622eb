package commands

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/chat"
	"github.com/diogo/chatwidget/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, service chat.Responder, opts tui.Options) error
}

// ClientFactory builds a Response Service client for an endpoint
type ClientFactory func(endpoint string, opts ...api.ClientOption) (api.ChatClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient creates the Response Service client.
	NewClient ClientFactory

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether input is interactive
	StdinIsTerminal func() bool
	// StdoutIsTerminal reports whether output is a terminal
	StdoutIsTerminal func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, service chat.Responder, opts tui.Options) error {
	return tui.RunChat(ctx, service, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(endpoint string, opts ...api.ClientOption) (api.ChatClientInterface, error) {
			return api.NewClient(endpoint, opts...)
		},
		TUI:    &DefaultTUI{},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		StdoutIsTerminal: isStdoutTTY,
	}
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
