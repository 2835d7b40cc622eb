package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/diogo/chatwidget/internal/chat"
	"github.com/diogo/chatwidget/internal/render"
)

const (
	spinnerInterval = 80 * time.Millisecond
	hideCursor      = "\033[?25l"
	clearLine       = "\r\033[K"
	showCursor      = "\033[?25h"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// spinner is the pending indicator for line-oriented output. It satisfies
// chat.Indicator and can be started again after Stop.
type spinner struct {
	out     io.Writer
	message string

	mu    sync.Mutex
	frame int
	stop  chan struct{}
	done  chan struct{}
}

var _ chat.Indicator = (*spinner)(nil)

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{out: out, message: message}
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop, s.done = make(chan struct{}), make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	fmt.Fprint(s.out, hideCursor)
	for {
		select {
		case <-stop:
			fmt.Fprint(s.out, clearLine+showCursor)
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprint(s.out, clearLine+s.frameText(render.CurrentTheme()))
			s.frame++
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and waits for the line to be cleared
func (s *spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// frameText draws one frame: the glyph, the message and a row of dots that
// fills up and empties again
func (s *spinner) frameText(theme render.Theme) string {
	glyph := string(spinnerFrames[s.frame%len(spinnerFrames)])

	filled := (s.frame / 4) % 4
	dots := strings.Repeat("●", filled) + strings.Repeat("○", 3-filled)

	return fg(theme.Accent).Bold(true).Render(glyph) + " " +
		fg(theme.Text).Render(s.message) + " " +
		fg(theme.TextMute).Render(dots)
}

// stopWithSuccess stops the spinner and prints a check line
func (s *spinner) stopWithSuccess(message string) {
	s.Stop()
	fmt.Fprintln(s.out, fg(render.CurrentTheme().Secondary).Bold(true).Render("✓ "+message))
}

// stopWithError stops the spinner. The caller reports the error.
func (s *spinner) stopWithError() {
	s.Stop()
}
