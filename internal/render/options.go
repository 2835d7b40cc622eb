// Package render turns transcript messages into display output.
//
// Assistant text uses a limited markup with exactly three rules: a blank line
// is a paragraph break, **x** is strong and `x` is inline code. User text is
// always shown verbatim.
package render

import (
	"fmt"
	"strings"
)

// Format selects the output produced by the renderers
type Format string

const (
	// FormatANSI styles spans with terminal escape sequences
	FormatANSI Format = "ansi"
	// FormatHTML emits escaped HTML with <strong>, <code> and <br>
	FormatHTML Format = "html"
	// FormatPlain strips delimiters and emits bare text
	FormatPlain Format = "plain"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatANSI, FormatHTML, FormatPlain:
		return f, nil
	case "":
		return FormatANSI, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: ansi, html, plain)", name)
	}
}

// Options configures the renderer behavior.
type Options struct {
	// Width defines the maximum output width for wrapped output (0 disables wrapping)
	Width int

	// Theme names the color theme used for ANSI output
	Theme string

	// Format selects ANSI, HTML or plain output
	Format Format
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:  80,
		Theme:  DefaultThemeName,
		Format: FormatANSI,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithTheme returns Options with the specified theme.
func (o Options) WithTheme(theme string) Options {
	o.Theme = theme
	return o
}

// WithFormat returns Options with the specified output format.
func (o Options) WithFormat(format Format) Options {
	o.Format = format
	return o
}
