package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/chatwidget/internal/api"
)

// NewHealthCmd creates the backend health check command
func NewHealthCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Long:  `Calls the backend health endpoint and reports whether it answered {"status":"ok"}.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd.Context(), deps, flags)
		},
	}
}

func runHealth(ctx context.Context, deps *Dependencies, flags *globalFlags) error {
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

	var spin *spinner
	if deps.StdoutIsTerminal() {
		spin = newSpinner(deps.Stderr, "Checking "+client.Endpoint())
		spin.Start()
	}

	if err := client.Health(ctx); err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		logger.Error().Err(err).Msg("health check failed")
		return fmt.Errorf("health check failed: %w", err)
	}

	if spin != nil {
		spin.stopWithSuccess("Backend is healthy")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "ok %s\n", client.Endpoint())
	return nil
}
