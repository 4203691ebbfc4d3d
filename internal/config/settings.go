package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setting struct {
	get func(Config) string
	set func(*Config, string) error
}

var settings = map[string]setting{
	"backend_url": {
		get: func(c Config) string { return c.BackendURL },
		set: func(c *Config, v string) error {
			if v != "" {
				if err := ValidateBackendURL(v); err != nil {
					return err
				}
			}
			c.BackendURL = strings.TrimRight(v, "/")
			return nil
		},
	},
	"request_timeout_seconds": {
		get: func(c Config) string { return strconv.Itoa(c.RequestTimeoutSeconds) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("request_timeout_seconds must be a non-negative integer, got %q", v)
			}
			c.RequestTimeoutSeconds = n
			return nil
		},
	},
	"copy_to_clipboard": {
		get: func(c Config) string { return strconv.FormatBool(c.CopyToClipboard) },
		set: boolSetter(func(c *Config, b bool) { c.CopyToClipboard = b }),
	},
	"tui_theme": {
		get: func(c Config) string { return c.TUITheme },
		set: func(c *Config, v string) error { c.TUITheme = v; return nil },
	},
	"log_level": {
		get: func(c Config) string { return c.LogLevel },
		set: func(c *Config, v string) error { c.LogLevel = strings.ToLower(v); return nil },
	},
	"markdown.style": {
		get: func(c Config) string { return c.Markdown.Style },
		set: func(c *Config, v string) error { c.Markdown.Style = v; return nil },
	},
	"markdown.enable_emoji": {
		get: func(c Config) string { return strconv.FormatBool(c.Markdown.EnableEmoji) },
		set: boolSetter(func(c *Config, b bool) { c.Markdown.EnableEmoji = b }),
	},
	"markdown.preserve_newlines": {
		get: func(c Config) string { return strconv.FormatBool(c.Markdown.PreserveNewLines) },
		set: boolSetter(func(c *Config, b bool) { c.Markdown.PreserveNewLines = b }),
	},
}

func boolSetter(apply func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		apply(c, b)
		return nil
	}
}

// Keys returns the settable configuration keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetValue returns the string form of a configuration key
func GetValue(cfg Config, key string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return s.get(cfg), nil
}

// SetValue parses value and stores it under key
func SetValue(cfg *Config, key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return s.set(cfg, value)
}
