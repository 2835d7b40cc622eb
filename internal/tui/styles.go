// Package tui provides the terminal chat widget.
package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/render"
)

// gradientColors cycle through the pending animation regardless of theme
var gradientColors = []lipgloss.Color{
	"#ff6b6b", "#feca57", "#48dbfb", "#ff9ff3",
	"#54a0ff", "#5f27cd", "#00d2d3", "#1dd1a1",
}

// styles is the full set of lipgloss styles derived from one theme
type styles struct {
	theme render.Theme

	header, title, subtitle, hint lipgloss.Style

	messages                        lipgloss.Style
	userLabel, userBubble           lipgloss.Style
	assistantLabel, assistantBubble lipgloss.Style
	fallbackBubble                  lipgloss.Style
	typing                          lipgloss.Style

	inputPanel, inputLabel, loading lipgloss.Style

	statusBar, statusKey, statusDesc lipgloss.Style
	notice, err                      lipgloss.Style

	welcome, welcomeTitle, welcomeIcon lipgloss.Style
}

func rounded(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(border)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func newStyles(t render.Theme) styles {
	assistantBubble := rounded(t.Primary).Foreground(t.Text).Padding(0, 1).MarginRight(4)

	return styles{
		theme: t,

		header:   rounded(t.Border).Padding(0, 2).MarginBottom(1),
		title:    fg(t.Primary).Bold(true),
		subtitle: fg(t.TextDim),
		hint:     fg(t.TextMute).Italic(true),

		messages:        rounded(t.Border).Padding(1),
		userLabel:       fg(t.Secondary).Bold(true).MarginLeft(4),
		userBubble:      rounded(t.Secondary).Padding(0, 1).MarginLeft(4),
		assistantLabel:  fg(t.Primary).Bold(true),
		assistantBubble: assistantBubble,
		// fallback replies keep the assistant layout in the warning color
		fallbackBubble: assistantBubble.BorderForeground(t.Warning).Foreground(t.Warning),
		typing:         fg(t.TextDim).PaddingLeft(2),

		inputPanel: rounded(t.Border).Padding(0, 1).MarginTop(1),
		inputLabel: fg(t.Primary).Bold(true).MarginRight(1),
		loading:    fg(t.Accent).Bold(true),

		statusBar:  fg(t.TextMute).MarginTop(1),
		statusKey:  fg(t.TextDim).Bold(true),
		statusDesc: fg(t.TextMute),
		notice:     fg(t.Secondary).Italic(true),
		err:        fg(t.Error).Bold(true),

		welcome:      fg(t.TextDim).Align(lipgloss.Center),
		welcomeTitle: fg(t.Primary).Bold(true).Align(lipgloss.Center),
		welcomeIcon:  fg(t.Accent).Align(lipgloss.Center),
	}
}

var (
	stylesMu      sync.RWMutex
	currentStyles = newStyles(render.CurrentTheme())
)

// UpdateTheme rebuilds the styles from the active render theme.
// Models created afterwards pick them up.
func UpdateTheme() {
	s := newStyles(render.CurrentTheme())
	stylesMu.Lock()
	currentStyles = s
	stylesMu.Unlock()
}

func activeStyles() styles {
	stylesMu.RLock()
	defer stylesMu.RUnlock()
	return currentStyles
}

// FormatError returns a styled error message with context pulled from the
// structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	theme := activeStyles().theme
	dim := fg(theme.TextDim)

	lines := []string{fg(theme.Error).Render("✗ " + err.Error())}

	if status := errors.GetHTTPStatus(err); status > 0 {
		lines = append(lines, dim.Render(fmt.Sprintf("  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		lines = append(lines, dim.Render("  Endpoint: "+endpoint))
	}

	if body := errors.GetResponseBody(err); body != "" {
		lines = append(lines, "", dim.Render("  "+strings.ReplaceAll(body, "\n", "\n  ")))
		return strings.Join(lines, "\n")
	}

	var hint string
	switch {
	case errors.IsTimeoutError(err):
		hint = "Request timed out. Raise timeout_seconds or check the server"
	case errors.IsNetworkError(err):
		hint = "Check that the server is running and the endpoint is correct"
	case errors.IsProtocolMismatch(err):
		hint = "The server replied without a response field"
	}
	if hint != "" {
		lines = append(lines, dim.Render("  Hint: "+hint))
	}

	return strings.Join(lines, "\n")
}
