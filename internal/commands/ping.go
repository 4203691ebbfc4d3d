package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCmd creates the backend health check command
func NewPingCmd(opts *rootOptions, deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			resp, err := client.Ping(cmd.Context())
			if err != nil {
				fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Ping "+env.baseURL))
				return reported(err)
			}

			fmt.Fprintf(deps.Stdout, "Backend says: %s\n", resp.Message)
			return nil
		},
	}
}
