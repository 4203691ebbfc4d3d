// Package commands provides CLI commands for storechat.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flag values of one command tree
type rootOptions struct {
	backendURL string
	verbose    bool
	logFile    string

	output  string
	file    string
	raw     bool
	version bool
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "storechat [question]",
		Short: "Terminal chat client for the storefront assistant",
		Long: `storechat talks to the storefront assistant backend. It sends your
question to the backend's /chat endpoint and shows the answer.

Examples:
  storechat                               Start the interactive chat
  storechat "Where is my order?"          Ask a single question
  storechat -f question.md                Read the question from a file
  echo "Do you ship abroad?" | storechat  Read the question from stdin
  storechat "Return policy?" -o answer.md Save the answer to a file
  storechat ping                          Check the backend is up
  storechat --backend-url http://shop:8000 chat`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(deps.Stdout, "storechat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			question, ok, err := readQuestion(opts, deps, args)
			if err != nil {
				return err
			}
			if !ok {
				return runChat(cmd.Context(), opts, deps)
			}
			return runQuery(cmd.Context(), opts, deps, question)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVar(&opts.backendURL, "backend-url", "", "Backend base URL (overrides environment and config)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Debug logging, mirrored to stderr outside the chat UI")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log file path (default ~/.storechat/storechat.log)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save answer to file")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read question from file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the answer without decoration")
	cmd.Flags().BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(
		NewChatCmd(opts, deps),
		NewPingCmd(opts, deps),
		NewConfigCmd(opts, deps),
		NewMockBackendCmd(opts, deps),
	)

	return cmd
}

// readQuestion picks the question from the file flag, the positional
// argument or piped stdin, in that order. ok is false when none is given.
func readQuestion(opts *rootOptions, deps *Dependencies, args []string) (string, bool, error) {
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	if deps.StdinIsPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	return "", false, nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := NewDependencies()
	if err := NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			fmt.Fprintln(deps.Stderr, errorStyle.Render("✗ "+err.Error()))
		}
		stop()
		os.Exit(1)
	}
}
