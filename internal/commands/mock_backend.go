package commands

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/storefront/storechat/internal/logging"
	"github.com/storefront/storechat/internal/mockbackend"
)

// NewMockBackendCmd creates the command serving the stand-in backend
func NewMockBackendCmd(opts *rootOptions, deps *Dependencies) *cobra.Command {
	var (
		addr    string
		latency time.Duration
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Run a stand-in backend for demos",
		Long: `Serve GET /ping and POST /chat with canned storefront answers.

Ask "/status 503" to get that HTTP status back, or "/noanswer" for a reply
without an answer field.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if opts.verbose {
				level = "debug"
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			logger, closer, err := logging.New(logging.Options{
				File:    opts.logFile,
				Level:   level,
				Console: deps.Stderr,
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			srv := mockbackend.New(
				mockbackend.WithLogger(logger),
				mockbackend.WithLatency(latency),
				mockbackend.WithAllowedOrigins(origins...),
			)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", mockbackend.DefaultAddr, "Listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay every chat reply")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", mockbackend.DefaultAllowedOrigins, "CORS origins allowed to call the backend")

	return cmd
}
