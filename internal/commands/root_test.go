package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/chatwidget/internal/api"
	apierrors "github.com/diogo/chatwidget/internal/errors"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())
	if cmd.Use != "chatwidget [message]" {
		t.Errorf("Expected use 'chatwidget [message]', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"chat", "health", "config"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	if err := env.run("--version"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "chatwidget "+Version) {
		t.Errorf("unexpected version output: %q", env.stdout.String())
	}
	if env.mock.Calls() != 0 {
		t.Error("version should not contact the backend")
	}
}

func TestRootCommand_OneShot(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		args    []string
		want    string
		wantMsg string
	}{
		{
			name:    "markup reply",
			reply:   "**Hi** and `code`",
			args:    []string{"--format", "plain", "hello"},
			want:    "You: hello\nAssistant: Hi and code\n",
			wantMsg: "hello",
		},
		{
			name:    "protocol mismatch",
			err:     apierrors.NewProtocolMismatchError("http://127.0.0.1:8000/chat", "response"),
			args:    []string{"--format", "plain", "  hello  "},
			want:    "You: hello\nAssistant: Something went wrong.\n",
			wantMsg: "hello",
		},
		{
			name:    "transport failure",
			err:     apierrors.NewNetworkError("send message", "http://127.0.0.1:8000/chat", errors.New("connection refused")),
			args:    []string{"--format", "plain", "hello"},
			want:    "You: hello\nAssistant: Error connecting to the server.\n",
			wantMsg: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &api.MockClient{SendText: tt.reply, SendErr: tt.err})

			if err := env.run(tt.args...); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if env.stdout.String() != tt.want {
				t.Errorf("stdout = %q, want %q", env.stdout.String(), tt.want)
			}
			if env.mock.LastMessage != tt.wantMsg {
				t.Errorf("sent %q, want %q", env.mock.LastMessage, tt.wantMsg)
			}
			if !env.mock.CloseCalled {
				t.Error("client should be closed")
			}
		})
	}
}

func TestRootCommand_HTML(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{SendText: "a\n\nb"})

	if err := env.run("--format", "html", "<b>"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Errorf("user text should be escaped: %s", out)
	}
	if !strings.Contains(out, "a<br><br>b") {
		t.Errorf("paragraph break missing: %s", out)
	}
}

func TestRootCommand_InputSources(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{SendText: "ok"})
		path := filepath.Join(t.TempDir(), "q.md")
		if err := os.WriteFile(path, []byte("from file\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := env.run("--format", "plain", "-f", path); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if env.mock.LastMessage != "from file" {
			t.Errorf("sent %q", env.mock.LastMessage)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{SendText: "ok"})
		err := env.run("-f", filepath.Join(t.TempDir(), "nope.md"))
		if err == nil || !strings.Contains(err.Error(), "failed to read file") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{SendText: "ok"})
		env.deps.Stdin = strings.NewReader("from pipe\n")

		if err := env.run("--format", "plain"); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if env.mock.LastMessage != "from pipe" {
			t.Errorf("sent %q", env.mock.LastMessage)
		}
	})

	t.Run("argument wins over stdin", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{SendText: "ok"})
		env.deps.Stdin = strings.NewReader("from pipe")

		if err := env.run("--format", "plain", "from arg"); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if env.mock.LastMessage != "from arg" {
			t.Errorf("sent %q", env.mock.LastMessage)
		}
	})
}

func TestRootCommand_EmptyMessage(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{SendText: "ok"})

	err := env.run("   ")
	if err == nil || !strings.Contains(err.Error(), "message cannot be empty") {
		t.Errorf("expected empty message error, got %v", err)
	}
	if env.mock.Calls() != 0 {
		t.Error("blank input must not reach the backend")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("nothing should be rendered, got %q", env.stdout.String())
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{SendText: "ok"})

	if err := env.run("--format", "pdf", "hi"); err == nil {
		t.Error("expected error for unknown format")
	}
	if env.mock.Calls() != 0 {
		t.Error("backend should not be called with a bad format")
	}
}

func TestRootCommand_EndpointFlag(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{SendText: "ok"})

	if err := env.run("-e", "http://example.test:9000", "--format", "plain", "hi"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.mock.BaseURL != "http://example.test:9000" {
		t.Errorf("endpoint = %q", env.mock.BaseURL)
	}
}

func TestRootCommand_EndpointFromEnv(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{SendText: "ok"})
	t.Setenv("CHATWIDGET_ENDPOINT", "http://from-env:8080")

	if err := env.run("--format", "plain", "hi"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if env.mock.BaseURL != "http://from-env:8080" {
		t.Errorf("endpoint = %q", env.mock.BaseURL)
	}
}

func TestRootCommand_TransportFailureIsLogged(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{
		SendErr: apierrors.NewAPIError(500, "http://127.0.0.1:8000/chat", "chat request failed"),
	})
	logFile := filepath.Join(t.TempDir(), "diag.log")

	if err := env.run("--log-file", logFile, "--format", "plain", "hi"); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	log := string(data)
	if !strings.Contains(log, "transport failure") || !strings.Contains(log, `"status":500`) {
		t.Errorf("unexpected log contents: %s", log)
	}
	if strings.Contains(env.stdout.String(), "500") {
		t.Error("diagnostics must not leak into the transcript")
	}
}

func TestRootCommand_Copy(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWrite = orig }()

	env := newTestEnv(t, &api.MockClient{SendText: "**raw** reply"})

	if err := env.run("--format", "plain", "--copy", "hi"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if copied != "**raw** reply" {
		t.Errorf("copied %q, want the raw reply", copied)
	}
	if !strings.Contains(env.stderr.String(), "Copied to clipboard") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRootCommand_CopyFailureIsWarning(t *testing.T) {
	orig := clipboardWrite
	clipboardWrite = func(string) error { return errors.New("no display") }
	defer func() { clipboardWrite = orig }()

	env := newTestEnv(t, &api.MockClient{SendText: "reply"})

	if err := env.run("--format", "plain", "--copy", "hi"); err != nil {
		t.Fatalf("copy failure should not fail the command: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "no display") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRootCommand_NoInput(t *testing.T) {
	t.Run("terminal starts chat", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{})
		env.deps.StdinIsTerminal = func() bool { return true }
		env.deps.StdoutIsTerminal = func() bool { return true }

		if err := env.run(); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !env.tui.called {
			t.Error("expected the chat widget to start")
		}
	})

	t.Run("pipe shows help", func(t *testing.T) {
		env := newTestEnv(t, &api.MockClient{})

		if err := env.run(); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if env.tui.called {
			t.Error("chat should not start without a terminal")
		}
		if !strings.Contains(env.stdout.String(), "Usage:") {
			t.Errorf("expected help output, got %q", env.stdout.String())
		}
	})
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})
	if err := env.run("one", "two"); err == nil {
		t.Error("expected error for two positional arguments")
	}
}

func TestReadInput_Precedence(t *testing.T) {
	deps := &Dependencies{
		Stdin:           strings.NewReader(""),
		StdinIsTerminal: func() bool { return false },
	}

	if _, ok, err := readInput(deps, "", nil); ok || err != nil {
		t.Errorf("empty stdin should give no input, got ok=%v err=%v", ok, err)
	}

	msg, ok, err := readInput(deps, "", []string{"arg"})
	if err != nil || !ok || msg != "arg" {
		t.Errorf("readInput = %q, %v, %v", msg, ok, err)
	}
}

func TestReadInput_FileThenArgumentThenStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.txt")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatal(err)
	}
	piped := func() *Dependencies {
		return &Dependencies{
			Stdin:           strings.NewReader("from pipe"),
			StdinIsTerminal: func() bool { return false },
		}
	}

	tests := []struct {
		name string
		file string
		args []string
		want string
	}{
		{"file beats argument and stdin", path, []string{"from arg"}, "from file"},
		{"argument beats stdin", "", []string{"from arg"}, "from arg"},
		{"stdin last", "", nil, "from pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := readInput(piped(), tt.file, tt.args)
			if err != nil || !ok || got != tt.want {
				t.Errorf("readInput = %q, %v, %v; want %q", got, ok, err, tt.want)
			}
		})
	}
}
