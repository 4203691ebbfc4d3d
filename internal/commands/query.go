package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/storefront/storechat/internal/chat"
	"github.com/storefront/storechat/internal/render"
)

// runQuery runs one request cycle for question and prints the final
// assistant message. Output is decorated on a TTY unless --raw is set.
func runQuery(ctx context.Context, opts *rootOptions, deps *Dependencies, question string) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question cannot be empty")
	}

	rawOutput := opts.raw || !deps.StdoutIsTTY()

	env, err := prepare(opts, deps, true)
	if err != nil {
		return err
	}
	defer env.Close()

	client, err := deps.NewClient(env.baseURL, env.cfg, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	widget := chat.NewWidget(ctx, client, chat.WithLogger(env.logger))
	defer widget.Close()

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(deps.Stderr, "Asking the store assistant")
		spin.start()
	}

	msg, err := widget.Send(question)
	if err != nil {
		if !rawOutput {
			spin.stopWithError()
		}
		if errors.Is(err, chat.ErrClosed) || errors.Is(err, chat.ErrNotSubmitted) {
			return fmt.Errorf("request abandoned: %w", err)
		}
		if rawOutput {
			fmt.Fprintln(deps.Stderr, msg.Content)
		} else {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		}
		return reported(err)
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	text := msg.Content

	if rawOutput {
		if opts.output != "" {
			if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		fmt.Fprint(deps.Stdout, text)
		return nil
	}

	fmt.Fprintln(deps.Stderr)

	if env.cfg.CopyToClipboard {
		if err := deps.Clipboard(text); err != nil {
			fmt.Fprintln(deps.Stderr, errorStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintln(deps.Stderr, successStyle.Render(fmt.Sprintf("✓ Answer saved to %s", opts.output)))
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	renderOpts := render.OptionsFromConfig(env.cfg.Markdown).
		WithWidth(bubbleWidth - 4).
		WithCompact(true)

	fmt.Fprintln(deps.Stdout, assistantLabelStyle.Render("✦ "+msg.Role.Label()))
	fmt.Fprintln(deps.Stdout, assistantBubbleStyle.Width(bubbleWidth).Render(render.Message(text, renderOpts)))

	return nil
}
