package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/storefront/storechat/internal/models"
)

// BackendURLEnvVars lists the environment overrides for the backend
// location, highest precedence first.
var BackendURLEnvVars = []string{
	"STORECHAT_BACKEND_URL",
	"BACKEND_URL",
	"NEXT_PUBLIC_BACKEND_URL",
}

// DotEnvFiles are loaded from the working directory by LoadDotEnv, in order.
var DotEnvFiles = []string{".env.local", ".env"}

// ResolveBackendURL is the single place the backend location is decided.
// Precedence: explicit flag value, environment overrides, config file,
// then models.DefaultBackendURL. Trailing slashes are dropped.
func ResolveBackendURL(flagValue string, cfg Config) string {
	candidates := []string{flagValue}
	for _, name := range BackendURLEnvVars {
		candidates = append(candidates, os.Getenv(name))
	}
	candidates = append(candidates, cfg.BackendURL)

	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return strings.TrimRight(c, "/")
		}
	}
	return models.DefaultBackendURL
}

// ValidateBackendURL checks that raw is an absolute http(s) URL
func ValidateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid backend URL %q: missing host", raw)
	}
	return nil
}

// LoadDotEnv loads DotEnvFiles from dir into the process environment.
// Variables already set are never overridden; missing files are skipped.
func LoadDotEnv(dir string) error {
	for _, name := range DotEnvFiles {
		path := filepath.Join(dir, name)
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}
