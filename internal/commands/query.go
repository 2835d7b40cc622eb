package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/chat"
	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/render"
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// queryFlags holds the one-shot flags of the root command
type queryFlags struct {
	file   string
	format string
	copy   bool
}

// runQuery sends one message and prints the resulting transcript
func runQuery(ctx context.Context, deps *Dependencies, flags *globalFlags, query *queryFlags, message string) error {
	format, err := render.ParseFormat(query.format)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags)
	if err != nil {
		return err
	}

	logger, closeLog := openLogger(cfg, deps.Stderr)
	defer closeLog()

	client, err := deps.NewClient(cfg.Endpoint,
		api.WithTimeout(cfg.TimeoutSeconds),
		api.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	interactive := deps.StdoutIsTerminal()

	// Only wrap when a terminal width is known
	width := 0
	if format == render.FormatANSI && interactive {
		width = getTerminalWidth() - 4
		if width < 40 {
			width = 40
		}
		if width > 120 {
			width = 120
		}
	}
	opts := renderOptions(cfg, width).WithFormat(format)

	var indicator chat.Indicator
	if format == render.FormatANSI && interactive {
		indicator = newSpinner(deps.Stderr, "Waiting for a reply")
	}

	surface := chat.NewWriterSurface(deps.Stdout, opts, indicator)
	controller := chat.NewController(client, surface,
		chat.WithLogger(logger),
		chat.WithBlockWhilePending(cfg.BlockWhilePending),
	)

	if cfg.Verbose {
		logger.Debug().Str("endpoint", client.Endpoint()).Str("format", string(format)).Msg("one-shot send")
	}

	if !controller.SubmitAndWait(ctx, message) {
		return fmt.Errorf("message cannot be empty")
	}
	if err := surface.Err(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if query.copy || cfg.CopyToClipboard {
		copyLastReply(deps.Stderr, controller)
	}
	return nil
}

// copyLastReply puts the raw reply text on the clipboard. Failure is a warning.
func copyLastReply(stderr io.Writer, controller *chat.Controller) {
	reply, ok := controller.LastReply()
	if !ok {
		return
	}
	theme := render.CurrentTheme()
	if err := clipboardWrite(reply.Text); err != nil {
		fmt.Fprintln(stderr, fg(theme.Warning).Render("⚠ clipboard copy failed: "+err.Error()))
		return
	}
	fmt.Fprintln(stderr, fg(theme.Secondary).Render("✓ Copied to clipboard"))
}

// formatErrorMessage renders err for stderr under a short prefix, followed by
// whatever the structured error types expose and a hint for the common cases.
func formatErrorMessage(err error, prefix string) string {
	if err == nil {
		return ""
	}

	theme := render.CurrentTheme()
	detail := func(format string, args ...any) string {
		return fg(theme.TextDim).Render("  " + fmt.Sprintf(format, args...))
	}

	out := []string{fg(theme.Error).Render(fmt.Sprintf("✗ %s: %v", prefix, err))}
	if status := apierrors.GetHTTPStatus(err); status > 0 {
		out = append(out, detail("HTTP Status: %d", status))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		out = append(out, detail("Endpoint: %s", endpoint))
	}

	if body := apierrors.GetResponseBody(err); body != "" {
		out = append(out, "", detail("%s", strings.ReplaceAll(body, "\n", "\n  ")))
	} else if hint := errorHint(err); hint != "" {
		out = append(out, detail("Hint: %s", hint))
	}
	return strings.Join(out, "\n")
}

func errorHint(err error) string {
	switch {
	case apierrors.IsTimeoutError(err):
		return "Request timed out. Try again or raise timeout_seconds"
	case apierrors.IsNetworkError(err):
		return "Check that the backend is running (chatwidget health)"
	case apierrors.IsProtocolMismatch(err):
		return "The backend answered in an unexpected shape"
	}
	return ""
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
