package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/storechat/internal/render"
	"github.com/storefront/storechat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(opts *rootOptions, deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat",
		Long: `Start the interactive chat widget.

Type a question and press Enter. While the assistant is answering the input
is disabled. Ctrl+Y copies the last answer, Esc or Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts, deps)
		},
	}
}

func runChat(ctx context.Context, opts *rootOptions, deps *Dependencies) error {
	env, err := prepare(opts, deps, false)
	if err != nil {
		return err
	}
	defer env.Close()

	client, err := deps.NewClient(env.baseURL, env.cfg, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	env.logger.Info().Str("backend_url", env.baseURL).Msg("chat started")
	defer env.logger.Info().Msg("chat ended")

	return deps.TUI.Run(ctx, client, tui.Options{
		Palette:   render.PaletteOrDefault(env.cfg.TUITheme),
		Render:    render.OptionsFromConfig(env.cfg.Markdown),
		Logger:    env.logger,
		Clipboard: deps.Clipboard,
	})
}
