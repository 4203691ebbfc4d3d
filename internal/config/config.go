// Package config handles configuration and backend location for storechat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" mapstructure:"style"`                         // "dark", "light", "notty", ...
	EnableEmoji      bool   `json:"enable_emoji" mapstructure:"enable_emoji"`           // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" mapstructure:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// BackendURL is the base URL of the storefront backend. Empty means
	// "resolve from the environment, then fall back to the default".
	BackendURL string `json:"backend_url,omitempty" mapstructure:"backend_url"`
	// RequestTimeoutSeconds bounds a single request. 0 disables the bound.
	RequestTimeoutSeconds int            `json:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
	CopyToClipboard       bool           `json:"copy_to_clipboard" mapstructure:"copy_to_clipboard"`
	TUITheme              string         `json:"tui_theme,omitempty" mapstructure:"tui_theme"`
	LogLevel              string         `json:"log_level,omitempty" mapstructure:"log_level"`
	Markdown              MarkdownConfig `json:"markdown" mapstructure:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		RequestTimeoutSeconds: 0,
		CopyToClipboard:       false,
		TUITheme:              "tokyonight",
		LogLevel:              "info",
		Markdown:              DefaultMarkdownConfig(),
	}
}

// RequestTimeout returns the per-request bound, or 0 for none
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".storechat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the default log file path
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "storechat.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration from a specific file.
// A missing file yields the defaults without error.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to decode config file: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("backend_url", cfg.BackendURL)
	v.SetDefault("request_timeout_seconds", cfg.RequestTimeoutSeconds)
	v.SetDefault("copy_to_clipboard", cfg.CopyToClipboard)
	v.SetDefault("tui_theme", cfg.TUITheme)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("markdown.style", cfg.Markdown.Style)
	v.SetDefault("markdown.enable_emoji", cfg.Markdown.EnableEmoji)
	v.SetDefault("markdown.preserve_newlines", cfg.Markdown.PreserveNewLines)
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(filepath.Join(configDir, "config.json"), cfg)
}

// SaveConfigTo writes the configuration to a specific file
func SaveConfigTo(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
