package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/storechat/internal/config"
	"github.com/storefront/storechat/internal/models"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(opts *rootOptions, deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the configuration file",
		Long: fmt.Sprintf(`Inspect or edit ~/.storechat/config.json.

The backend URL is resolved from, in order: --backend-url, %v,
the config file backend_url, then %s.`, config.BackendURLEnvVars, models.DefaultBackendURL),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every setting and the effective backend URL",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.LoadDotEnv(deps.WorkDir); err != nil {
					fmt.Fprintln(deps.Stderr, warnStyle.Render("⚠ "+err.Error()))
				}
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}

				for _, key := range config.Keys() {
					value, _ := config.GetValue(cfg, key)
					if value == "" {
						value = dimStyle.Render("(unset)")
					}
					fmt.Fprintf(deps.Stdout, "%s = %s\n", keyStyle.Render(key), value)
				}
				fmt.Fprintf(deps.Stdout, "\n%s %s\n",
					dimStyle.Render("effective backend URL:"),
					config.ResolveBackendURL(opts.backendURL, cfg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.GetConfigPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(deps.Stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change one setting",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys(),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				if err := config.SetValue(&cfg, args[0], args[1]); err != nil {
					return err
				}
				if err := config.SaveConfig(cfg); err != nil {
					return err
				}

				value, _ := config.GetValue(cfg, args[0])
				fmt.Fprintln(deps.Stdout, successStyle.Render(fmt.Sprintf("✓ %s = %s", args[0], value)))
				return nil
			},
		},
	)

	return cmd
}
