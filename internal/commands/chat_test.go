package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/config"
)

func TestChatCommand(t *testing.T) {
	cmd := NewChatCmd(NewDependencies(), &globalFlags{})

	if cmd.Use != "chat" {
		t.Errorf("Expected use 'chat', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("chat should reject positional arguments")
	}
}

func TestChatCommand_LaunchesWidget(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	if err := env.run("chat"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !env.tui.called {
		t.Fatal("expected TUI to be launched")
	}
	if env.tui.service != env.mock {
		t.Error("widget should talk to the configured client")
	}
	if env.tui.opts.Endpoint != config.DefaultConfig().Endpoint {
		t.Errorf("endpoint = %q", env.tui.opts.Endpoint)
	}
	if !env.tui.opts.BlockWhilePending {
		t.Error("blocking while pending should default to on")
	}
	if !env.mock.CloseCalled {
		t.Error("client should be closed when the widget exits")
	}
}

func TestChatCommand_ConfigFile(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	cfg := config.DefaultConfig()
	cfg.BlockWhilePending = false
	cfg.Endpoint = "http://saved:7000"
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if err := env.run("chat"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.tui.opts.BlockWhilePending {
		t.Error("config should disable blocking")
	}
	if env.tui.opts.Endpoint != "http://saved:7000" {
		t.Errorf("endpoint = %q", env.tui.opts.Endpoint)
	}
}

func TestChatCommand_Theme(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	if err := env.run("--theme", "paper", "chat"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.tui.opts.Render.Theme != "paper" {
		t.Errorf("theme = %q, want paper", env.tui.opts.Render.Theme)
	}

	env = newTestEnv(t, &api.MockClient{})
	err := env.run("--theme", "neon", "chat")
	if err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Errorf("expected unknown theme error, got %v", err)
	}
	if env.tui.called {
		t.Error("widget should not start with a bad theme")
	}

	// restore the default for other tests
	_ = env.run("--theme", "tokyonight", "chat")
}

func TestChatCommand_TUIError(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})
	env.tui.err = errors.New("no tty")

	if err := env.run("chat"); err == nil || err.Error() != "no tty" {
		t.Errorf("expected TUI error, got %v", err)
	}
}

func TestChatCommand_ClientError(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})
	env.deps.NewClient = func(endpoint string, opts ...api.ClientOption) (api.ChatClientInterface, error) {
		return nil, errors.New("bad endpoint")
	}

	err := env.run("chat")
	if err == nil || !strings.Contains(err.Error(), "failed to create client") {
		t.Errorf("expected client error, got %v", err)
	}
}
