package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/chat"
	"github.com/diogo/chatwidget/internal/config"
	"github.com/diogo/chatwidget/internal/tui"
)

// fakeTUI records the chat launch instead of opening a terminal program
type fakeTUI struct {
	called  bool
	service chat.Responder
	opts    tui.Options
	err     error
}

func (f *fakeTUI) RunChat(ctx context.Context, service chat.Responder, opts tui.Options) error {
	f.called = true
	f.service = service
	f.opts = opts
	return f.err
}

type testEnv struct {
	deps   *Dependencies
	mock   *api.MockClient
	tui    *fakeTUI
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	home   string
}

// newTestEnv isolates HOME and the environment and wires fakes into Dependencies
func newTestEnv(t *testing.T, mock *api.MockClient) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvTheme, "")
	t.Setenv(config.EnvLogFile, "")

	env := &testEnv{
		mock:   mock,
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		home:   home,
	}
	env.deps = &Dependencies{
		NewClient: func(endpoint string, opts ...api.ClientOption) (api.ChatClientInterface, error) {
			mock.BaseURL = endpoint
			return mock, nil
		},
		TUI:              env.tui,
		Stdin:            strings.NewReader(""),
		Stdout:           env.stdout,
		Stderr:           env.stderr,
		StdinIsTerminal:  func() bool { return false },
		StdoutIsTerminal: func() bool { return false },
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
