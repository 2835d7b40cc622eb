package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/chatwidget/internal/chat"
	"github.com/diogo/chatwidget/internal/models"
	"github.com/diogo/chatwidget/internal/render"
)

const maxInputRunes = 4000

// Rows taken by everything around the message list: header with its margin,
// input panel, status bar and the notice line.
const chromeRows = 4 + 6 + 2 + 2

const minMessageRows = 5

type layout struct {
	width    int
	messages int
}

func computeLayout(width, height int) layout {
	return layout{
		width:    width - 4,
		messages: max(height-chromeRows, minMessageRows),
	}
}

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// Animation tick message
type animationTickMsg time.Time

// outcomeMsg carries a finished Task back to the UI goroutine
type outcomeMsg chat.Outcome

// Options configures the chat model
type Options struct {
	// Endpoint is shown in the header
	Endpoint string
	// BlockWhilePending refuses input while a reply is outstanding
	BlockWhilePending bool
	// Logger receives controller diagnostics
	Logger zerolog.Logger
	// Render selects the theme for assistant markup
	Render render.Options
}

// DefaultOptions returns Options with blocking enabled and logging off
func DefaultOptions() Options {
	return Options{
		Endpoint:          models.DefaultEndpoint,
		BlockWhilePending: true,
		Logger:            zerolog.Nop(),
		Render:            render.DefaultOptions(),
	}
}

// view holds the regions the controller writes to. Model is copied on every
// update, so the controller keeps a pointer to this instead.
type view struct {
	messages   []models.Message
	pending    int
	clearInput bool
}

// Ensure view implements chat.Surface
var _ chat.Surface = (*view)(nil)

func (v *view) AppendMessage(msg models.Message) { v.messages = append(v.messages, msg) }
func (v *view) ShowPending()                     { v.pending++ }
func (v *view) ClearInput()                      { v.clearInput = true }

func (v *view) HidePending() {
	if v.pending > 0 {
		v.pending--
	}
}

// Model represents the TUI state
type Model struct {
	ctx        context.Context
	controller *chat.Controller
	view       *view
	opts       Options
	styles     styles

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready          bool
	animationFrame int
	notice         string
	err            error

	width  int
	height int
}

// NewChatModel creates the chat model and the controller behind it
func NewChatModel(ctx context.Context, service chat.Responder, opts Options) Model {
	st := activeStyles()

	v := &view{}
	controller := chat.NewController(service, v,
		chat.WithLogger(opts.Logger),
		chat.WithBlockWhilePending(opts.BlockWhilePending),
	)

	return Model{
		ctx:        ctx,
		controller: controller,
		view:       v,
		opts:       opts,
		styles:     st,
		textarea:   newInput(st),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(st.loading)),
	}
}

// Controller exposes the session controller behind the model
func (m Model) Controller() *chat.Controller {
	return m.controller
}

// newInput builds the message box. Enter submits, so the box never grows
// past two lines.
func newInput(st styles) textarea.Model {
	in := textarea.New()
	in.Placeholder = "Ask something and press Enter"
	in.CharLimit = maxInputRunes
	in.ShowLineNumbers = false
	in.Prompt = "┃ "
	in.SetHeight(2)

	in.FocusedStyle.Base = fg(st.theme.Text)
	in.FocusedStyle.Placeholder = fg(st.theme.TextMute)
	in.FocusedStyle.CursorLine = lipgloss.NewStyle()
	in.BlurredStyle = in.FocusedStyle
	in.Focus()
	return in
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// runTask performs the call off the UI goroutine
func runTask(ctx context.Context, task *chat.Task) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(task.Run(ctx))
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		l := computeLayout(msg.Width, msg.Height)

		if m.ready {
			m.viewport.Width, m.viewport.Height = l.width, l.messages
		} else {
			m.viewport = viewport.New(l.width, l.messages)
			m.ready = true
		}
		m.textarea.SetWidth(l.width - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter", "ctrl+s":
			return m.submit()

		case "ctrl+y":
			m.copyLastReply()
			return m, nil
		}

	case outcomeMsg:
		m.controller.Resolve(chat.Outcome(msg))
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.view.pending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.view.pending > 0 {
			m.animationFrame++
			m.updateViewport()
			cmds = append(cmds, animationTick())
		}
	}

	// Only keys reach the textarea, and not while input is blocked
	if _, ok := msg.(tea.KeyMsg); ok && !m.inputBlocked() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the input to the controller and schedules the call
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.inputBlocked() {
		return m, nil
	}

	task := m.controller.Submit(m.textarea.Value())
	if task == nil {
		return m, nil
	}

	if m.view.clearInput {
		m.textarea.Reset()
		m.view.clearInput = false
	}
	m.err = nil
	m.notice = ""
	m.animationFrame = 0
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		runTask(m.ctx, task),
		m.spinner.Tick,
		animationTick(),
	)
}

func (m Model) inputBlocked() bool {
	return m.opts.BlockWhilePending && m.view.pending > 0
}

// copyLastReply puts the raw text of the latest assistant message on the clipboard
func (m *Model) copyLastReply() {
	reply, ok := m.controller.LastReply()
	if !ok {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := clipboardWrite(reply.Text); err != nil {
		m.err = fmt.Errorf("copy to clipboard: %w", err)
		return
	}
	m.err = nil
	m.notice = "Copied last reply to clipboard"
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.loading.Render("  Initializing...")
	}

	contentWidth := computeLayout(m.width, m.height).width
	var sections []string

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("✦ Chat"),
		m.styles.hint.Render("  •  "),
		m.styles.subtitle.Render(m.opts.Endpoint),
	)
	sections = append(sections, m.styles.header.Width(contentWidth).Render(headerContent))

	body := m.viewport.View()
	if len(m.view.messages) == 0 && m.view.pending == 0 {
		body = m.renderWelcome()
	}
	sections = append(sections, m.styles.messages.Width(contentWidth).Height(m.viewport.Height).Render(body))

	input := m.styles.inputLabel.Render("You") + "\n" + m.textarea.View()
	if m.view.pending > 0 {
		input = m.renderLoadingAnimation()
	}
	sections = append(sections, m.styles.inputPanel.Width(contentWidth).Render(input))

	sections = append(sections, m.renderStatusBar(contentWidth))

	switch {
	case m.err != nil:
		sections = append(sections, m.styles.err.Render("⚠ "+m.err.Error()))
	case m.notice != "":
		sections = append(sections, m.styles.notice.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome fills the empty message area with a vertically centered greeting
func (m Model) renderWelcome() string {
	w := m.viewport.Width - 4
	lines := []string{
		m.styles.welcomeIcon.Width(w).Render("✦"),
		m.styles.welcomeTitle.Width(w).Render("Welcome"),
		m.styles.welcome.Width(w).Render("Messages you send appear here, replies below them"),
	}
	block := strings.Join(lines, "\n\n")
	pad := max((m.viewport.Height-lipgloss.Height(block))/2, 0)
	return strings.Repeat("\n", pad) + block
}

// renderLoadingAnimation replaces the input with a pulse that sweeps across
// a track while a reply is outstanding
func (m Model) renderLoadingAnimation() string {
	const track = 24
	head := m.animationFrame % (track * 2)
	if head >= track {
		head = track*2 - 1 - head
	}

	var b strings.Builder
	for i := range track {
		dist := i - head
		if dist < 0 {
			dist = -dist
		}
		switch {
		case dist == 0:
			b.WriteString(fg(gradientColors[m.animationFrame/track%len(gradientColors)]).Render("●"))
		case dist <= 2:
			b.WriteString(fg(m.styles.theme.Accent).Render("•"))
		default:
			b.WriteString(fg(m.styles.theme.TextMute).Render("·"))
		}
	}

	return m.spinner.View() + " " + b.String() + " " + fg(m.styles.theme.Text).Render("Waiting for a reply")
}

// typingDots renders the typing affordance: three dots lit one at a time
func (m Model) typingDots() string {
	lit := (m.animationFrame / 4) % 3
	dots := make([]string, 3)
	for i := range dots {
		if i == lit {
			dots[i] = fg(m.styles.theme.Accent).Render("●")
		} else {
			dots[i] = fg(m.styles.theme.TextMute).Render("●")
		}
	}
	return m.styles.typing.Render(strings.Join(dots, " "))
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, m.styles.statusKey.Render(s.key)+m.styles.statusDesc.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	return m.styles.statusBar.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the message list. The typing affordance, when
// shown, is always the last element.
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}
	opts := m.opts.Render.WithFormat(render.FormatANSI).WithWidth(bubbleWidth - 4)

	for i, msg := range m.view.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Author == models.AuthorUser {
			label := m.styles.userLabel.Render("● You")
			bubble := m.styles.userBubble.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := m.styles.assistantLabel.Render("✦ Assistant")
			style := m.styles.assistantBubble
			if msg.RenderedAs == models.RenderPlain {
				style = m.styles.fallbackBubble
			}
			rendered := strings.TrimRight(render.Message(msg, opts), "\n")
			content.WriteString(label + "\n" + style.Width(bubbleWidth).Render(rendered))
		}
		content.WriteString("\n")
	}

	for i := 0; i < m.view.pending; i++ {
		if content.Len() > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.styles.assistantLabel.Render("✦ Assistant") + "\n" + m.typingDots() + "\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI and blocks until it exits
func RunChat(ctx context.Context, service chat.Responder, opts Options) error {
	m := NewChatModel(ctx, service, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
