package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/api"
	"github.com/diogo/chatwidget/internal/render"
	"github.com/diogo/chatwidget/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat widget",
		Long: `Start the interactive chat widget.

Enter or Ctrl+S sends the message, Ctrl+Y copies the last reply,
Esc or Ctrl+C quits. The transcript lives only for the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), deps, flags)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, flags *globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
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

	if render.SetTheme(cfg.Theme) {
		tui.UpdateTheme()
	}

	logger.Info().Str("endpoint", client.Endpoint()).Msg("chat session started")
	defer logger.Info().Msg("chat session ended")

	return deps.TUI.RunChat(ctx, client, tui.Options{
		Endpoint:          client.Endpoint(),
		BlockWhilePending: cfg.BlockWhilePending,
		Logger:            logger,
		Render:            renderOptions(cfg, 0),
	})
}
