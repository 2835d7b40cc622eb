package chat

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/render"
)

// Indicator is a pending affordance outside the message stream, such as a
// stderr spinner.
type Indicator interface {
	Start()
	Stop()
}

// WriterSurface renders the transcript as a line-oriented stream.
// It has no input capture, so ClearInput does nothing.
type WriterSurface struct {
	out       io.Writer
	opts      render.Options
	indicator Indicator

	mu      sync.Mutex
	pending int
	err     error
}

// NewWriterSurface writes rendered messages to out. indicator may be nil.
func NewWriterSurface(out io.Writer, opts render.Options, indicator Indicator) *WriterSurface {
	return &WriterSurface{out: out, opts: opts, indicator: indicator}
}

// Ensure WriterSurface implements Surface
var _ Surface = (*WriterSurface)(nil)

func (s *WriterSurface) AppendMessage(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body := render.Message(msg, s.opts)

	var err error
	switch s.opts.Format {
	case render.FormatHTML:
		_, err = fmt.Fprintf(s.out, "<div class=\"message %s\"><div class=\"avatar\">%s</div><div class=\"content\">%s</div></div>\n",
			htmlClass(msg.Author), avatar(msg.Author), body)
	case render.FormatPlain:
		_, err = fmt.Fprintf(s.out, "%s: %s\n", label(msg.Author), body)
	default:
		_, err = fmt.Fprintf(s.out, "%s\n%s\n\n", labelStyle(msg.Author, s.opts).Render(label(msg.Author)), body)
	}
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *WriterSurface) ShowPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending++
	if s.pending == 1 && s.indicator != nil {
		s.indicator.Start()
	}
}

func (s *WriterSurface) HidePending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == 0 {
		return
	}
	s.pending--
	if s.pending == 0 && s.indicator != nil {
		s.indicator.Stop()
	}
}

func (s *WriterSurface) ClearInput() {}

// Err returns the first write error, if any
func (s *WriterSurface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func label(a models.Author) string {
	if a == models.AuthorUser {
		return "You"
	}
	return "Assistant"
}

func avatar(a models.Author) string {
	if a == models.AuthorUser {
		return "U"
	}
	return "AI"
}

func htmlClass(a models.Author) string {
	if a == models.AuthorUser {
		return "user"
	}
	return "ai"
}

func labelStyle(a models.Author, opts render.Options) lipgloss.Style {
	theme, ok := render.ThemeByName(opts.Theme)
	if !ok {
		theme = render.CurrentTheme()
	}
	color := theme.Secondary
	if a == models.AuthorUser {
		color = theme.Primary
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
