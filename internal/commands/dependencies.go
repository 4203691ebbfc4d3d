package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/storefront/storechat/internal/api"
	"github.com/storefront/storechat/internal/config"
	"github.com/storefront/storechat/internal/tui"
)

// TUIRunner runs the interactive chat widget.
type TUIRunner interface {
	Run(ctx context.Context, client api.BackendClient, opts tui.Options) error
}

// DefaultTUI is the production implementation of TUIRunner.
type DefaultTUI struct{}

// Run starts the bubbletea program
func (DefaultTUI) Run(ctx context.Context, client api.BackendClient, opts tui.Options) error {
	return tui.Run(ctx, client, opts)
}

// ClientFactory builds the backend client for a resolved base URL
type ClientFactory func(baseURL string, cfg config.Config, logger zerolog.Logger) (api.BackendClient, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	NewClient ClientFactory
	TUI       TUIRunner
	Clipboard func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	StdinIsPiped func() bool
	StdoutIsTTY  func() bool

	// WorkDir is where .env files are looked up
	WorkDir string
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:    defaultClient,
		TUI:          DefaultTUI{},
		Clipboard:    clipboard.WriteAll,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		StdinIsPiped: stdinIsPiped,
		StdoutIsTTY:  isStdoutTTY,
		WorkDir:      ".",
	}
}

func defaultClient(baseURL string, cfg config.Config, logger zerolog.Logger) (api.BackendClient, error) {
	return api.NewClient(baseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
