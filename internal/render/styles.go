package render

import (
	"sort"

	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Built-in glamour style names
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleNoTTY      = styles.NoTTYStyle
	StyleASCII      = styles.AsciiStyle
	StyleDracula    = styles.DraculaStyle
	StyleTokyoNight = styles.TokyoNightStyle
	StylePink       = styles.PinkStyle
)

// styleAliases maps palette names onto glamour style names
var styleAliases = map[string]string{
	"tokyonight": StyleTokyoNight,
}

func canonicalStyle(name string) string {
	if alias, ok := styleAliases[name]; ok {
		return alias
	}
	return name
}

// IsBuiltinStyle reports whether name is a glamour built-in style
func IsBuiltinStyle(name string) bool {
	_, ok := styles.DefaultStyles[canonicalStyle(name)]
	return ok
}

// StyleNames returns the built-in style names in sorted order
func StyleNames() []string {
	names := make([]string, 0, len(styles.DefaultStyles))
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinStyle returns a private copy of a built-in style config with the
// compact adjustments applied.
func builtinStyle(name string, compact bool) (ansi.StyleConfig, bool) {
	base, ok := styles.DefaultStyles[canonicalStyle(name)]
	if !ok || base == nil {
		return ansi.StyleConfig{}, false
	}

	cfg := *base
	if compact {
		margin := uint(0)
		cfg.Document.Margin = &margin
		cfg.Document.BlockPrefix = ""
		cfg.Document.BlockSuffix = ""
	}
	return cfg, true
}
