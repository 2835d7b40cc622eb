package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"github.com/diogo/chatwidget/internal/models"
)

// htmlBreak is what a paragraph break becomes in HTML output
const htmlBreak = "<br><br>"

// Message renders one transcript message in the requested format.
// Plain messages are never markup-interpreted; rendered output is cached.
func Message(msg models.Message, opts Options) string {
	key := cacheKey(opts, msg)
	if out, ok := globalCache.get(key); ok {
		return out
	}

	var out string
	if msg.RenderedAs == models.RenderLimitedMarkup {
		out = Markup(msg.Text, opts)
	} else {
		out = Verbatim(msg.Text, opts)
	}

	if opts.Format == FormatANSI && opts.Width > 0 {
		out = lipgloss.NewStyle().Width(opts.Width).Render(out)
	}

	globalCache.put(key, out)
	return out
}

// Markup renders limited-markup text in the requested format
func Markup(text string, opts Options) string {
	tokens := Tokenize(text)
	switch opts.Format {
	case FormatHTML:
		return HTML(tokens)
	case FormatPlain:
		return Plain(tokens)
	default:
		return ANSI(tokens, themeFor(opts))
	}
}

// Verbatim renders text without interpreting any markup.
// HTML output is still escaped so the text cannot become structure.
func Verbatim(text string, opts Options) string {
	if opts.Format == FormatHTML {
		return html.EscapeString(text)
	}
	return text
}

// HTML renders tokens as an HTML fragment
func HTML(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenBreak:
			sb.WriteString(htmlBreak)
		case TokenBold:
			sb.WriteString("<strong>")
			sb.WriteString(HTML(tok.Children))
			sb.WriteString("</strong>")
		case TokenCode:
			sb.WriteString("<code>")
			if tok.Children != nil {
				sb.WriteString(HTML(tok.Children))
			} else {
				sb.WriteString(html.EscapeString(tok.Text))
			}
			sb.WriteString("</code>")
		default:
			sb.WriteString(html.EscapeString(tok.Text))
		}
	}
	return sb.String()
}

// Plain renders tokens with delimiters removed and no styling
func Plain(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenBreak:
			sb.WriteString("\n\n")
		case TokenBold:
			sb.WriteString(Plain(tok.Children))
		case TokenCode:
			if tok.Children != nil {
				sb.WriteString(Plain(tok.Children))
			} else {
				sb.WriteString(tok.Text)
			}
		default:
			sb.WriteString(tok.Text)
		}
	}
	return sb.String()
}

// ANSI renders tokens with lipgloss styles from the given theme
func ANSI(tokens []Token, theme Theme) string {
	styles := newSpanStyles(theme)

	var sb strings.Builder
	writeANSI(&sb, tokens, styles, styles.text)
	return sb.String()
}

func writeANSI(sb *strings.Builder, tokens []Token, styles spanStyles, base lipgloss.Style) {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenBreak:
			sb.WriteString("\n\n")
		case TokenBold:
			writeANSI(sb, tok.Children, styles, styles.bold)
		case TokenCode:
			if tok.Children != nil {
				writeANSI(sb, tok.Children, styles, styles.code)
			} else {
				sb.WriteString(styles.code.Render(tok.Text))
			}
		default:
			sb.WriteString(renderLines(base, tok.Text))
		}
	}
}

// renderLines styles each line separately so newlines stay intact
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

type spanStyles struct {
	text lipgloss.Style
	bold lipgloss.Style
	code lipgloss.Style
}

func newSpanStyles(theme Theme) spanStyles {
	return spanStyles{
		text: lipgloss.NewStyle().Foreground(theme.Text),
		bold: lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		code: lipgloss.NewStyle().
			Foreground(theme.CodeText).
			Background(theme.CodeBackground),
	}
}

// themeFor resolves the theme named in opts, falling back to the active one.
// The cache key uses the resolved name so a theme switch is never served stale.
func themeFor(opts Options) Theme {
	if theme, ok := ThemeByName(opts.Theme); ok {
		return theme
	}
	return CurrentTheme()
}
