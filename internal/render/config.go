package render

import (
	"os"

	"github.com/storefront/storechat/internal/config"
)

// StyleEnvVar overrides the configured markdown style
const StyleEnvVar = "GLAMOUR_STYLE"

// OptionsFromConfig builds render options from the markdown section of the
// user configuration. The GLAMOUR_STYLE environment variable takes
// precedence over the configured style.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()

	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines

	if style := os.Getenv(StyleEnvVar); style != "" {
		opts.Style = style
	}

	return opts
}
