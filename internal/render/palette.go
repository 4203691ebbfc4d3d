package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme for the chat interface
type Palette struct {
	Name        string
	Description string

	Border lipgloss.Color

	// User colors the customer's messages, Assistant the replies
	User      lipgloss.Color
	Assistant lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// Built-in palettes
var (
	TokyoNightPalette = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Border: lipgloss.Color("#414868"),

		User:      lipgloss.Color("#7aa2f7"),
		Assistant: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:    lipgloss.Color("#c0caf5"),
		TextDim: lipgloss.Color("#565f89"),
	}

	CatppuccinPalette = Palette{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Border: lipgloss.Color("#45475a"),

		User:      lipgloss.Color("#89b4fa"),
		Assistant: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:    lipgloss.Color("#cdd6f4"),
		TextDim: lipgloss.Color("#6c7086"),
	}

	NordPalette = Palette{
		Name:        "nord",
		Description: "Nord - Arctic-inspired theme with cool tones",

		Border: lipgloss.Color("#4c566a"),

		User:      lipgloss.Color("#88c0d0"),
		Assistant: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:    lipgloss.Color("#eceff4"),
		TextDim: lipgloss.Color("#7b88a1"),
	}
)

var palettes = []Palette{TokyoNightPalette, CatppuccinPalette, NordPalette}

// PaletteByName looks up a built-in palette
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteOrDefault returns the named palette, or Tokyo Night when unknown
func PaletteOrDefault(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	return TokyoNightPalette
}

// PaletteNames returns the built-in palette names
func PaletteNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
