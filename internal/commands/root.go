// Package commands provides CLI commands for chatwidget.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd creates the root command and its subcommands
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &globalFlags{}
	query := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "chatwidget [message]",
		Short: "Minimal chat client for a /chat backend",
		Long: `chatwidget relays messages to a chat backend over a single
request/response exchange and renders the replies.

Examples:
  chatwidget chat                           Start the interactive widget
  chatwidget "What is Go?"                  Send a single message
  chatwidget -f question.md                 Read the message from a file
  cat question.md | chatwidget              Read the message from stdin
  chatwidget "Hi" --format html             Print the transcript as HTML
  chatwidget health                         Check the backend
  chatwidget -e http://localhost:9000 chat  Use another backend`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "chatwidget %s (built %s)\n", Version, BuildTime)
				return nil
			}

			message, ok, err := readInput(deps, query.file, args)
			if err != nil {
				return err
			}
			if ok {
				return runQuery(cmd.Context(), deps, flags, query, message)
			}

			// No input: an interactive terminal gets the widget
			if deps.StdinIsTerminal() && deps.StdoutIsTerminal() {
				return runChat(cmd.Context(), deps, flags)
			}
			return cmd.Help()
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&flags.endpoint, "endpoint", "e", "", "Backend base URL (default from config)")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Color theme")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Diagnostic log file")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log debug details")

	cmd.Flags().StringVarP(&query.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().StringVar(&query.format, "format", "ansi", "Output format: ansi, html or plain")
	cmd.Flags().BoolVar(&query.copy, "copy", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps, flags))
	cmd.AddCommand(NewHealthCmd(deps, flags))
	cmd.AddCommand(NewConfigCmd(deps, flags))

	return cmd
}

// readInput picks the message from --file, the argument or piped stdin, in
// that order. ok is false when none was given.
func readInput(deps *Dependencies, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if !deps.StdinIsTerminal() && deps.Stdin != nil {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > 0 {
			return string(data), true, nil
		}
	}

	return "", false, nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		stop()
		os.Exit(1)
	}
}
