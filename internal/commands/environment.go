package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/storefront/storechat/internal/config"
	"github.com/storefront/storechat/internal/logging"
)

// environment is the composition root shared by every command: resolved
// configuration, backend location and logger.
type environment struct {
	cfg     config.Config
	baseURL string
	logger  zerolog.Logger
	closer  io.Closer
}

func (e *environment) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// prepare loads .env files and the config file, resolves the backend URL
// and opens the logger. console mirrors logs to stderr when --verbose is set;
// it must be false while the terminal UI owns the screen.
func prepare(opts *rootOptions, deps *Dependencies, console bool) (*environment, error) {
	if err := config.LoadDotEnv(deps.WorkDir); err != nil {
		fmt.Fprintln(deps.Stderr, warnStyle.Render("⚠ "+err.Error()))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(deps.Stderr, warnStyle.Render(fmt.Sprintf("⚠ Using default configuration: %v", err)))
	}

	logFile := opts.logFile
	if logFile == "" {
		if path, err := config.GetLogPath(); err == nil {
			logFile = path
		}
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}

	logOpts := logging.Options{File: logFile, Level: level}
	if console && opts.verbose {
		logOpts.Console = deps.Stderr
	}

	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	env := &environment{
		cfg:     cfg,
		baseURL: config.ResolveBackendURL(opts.backendURL, cfg),
		logger:  logger,
		closer:  closer,
	}
	env.logger.Debug().Str("backend_url", env.baseURL).Msg("environment ready")
	return env, nil
}
