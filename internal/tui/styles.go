// Package tui provides the terminal chat widget for storechat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/storefront/storechat/internal/render"
)

// Styles holds the lipgloss styles derived from a palette
type Styles struct {
	palette render.Palette

	header   lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	hint     lipgloss.Style

	messagesArea lipgloss.Style

	userLabel       lipgloss.Style
	userBubble      lipgloss.Style
	assistantLabel  lipgloss.Style
	assistantBubble lipgloss.Style
	errorBubble     lipgloss.Style

	inputPanel   lipgloss.Style
	inputLabel   lipgloss.Style
	button       lipgloss.Style
	buttonBusy   lipgloss.Style
	loading      lipgloss.Style
	statusBar    lipgloss.Style
	statusKey    lipgloss.Style
	statusDesc   lipgloss.Style
	notice       lipgloss.Style
	backendOK    lipgloss.Style
	backendError lipgloss.Style

	welcomeTitle lipgloss.Style
	welcome      lipgloss.Style
}

// NewStyles builds the widget styles for p
func NewStyles(p render.Palette) Styles {
	s := Styles{palette: p}

	s.header = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 2)

	s.title = lipgloss.NewStyle().
		Foreground(p.User).
		Bold(true)

	s.subtitle = lipgloss.NewStyle().
		Foreground(p.TextDim)

	s.hint = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	s.messagesArea = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.userLabel = lipgloss.NewStyle().
		Foreground(p.User).
		Bold(true).
		MarginLeft(4)

	s.userBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.User).
		Foreground(p.Text).
		Padding(0, 1).
		MarginLeft(4)

	s.assistantLabel = lipgloss.NewStyle().
		Foreground(p.Assistant).
		Bold(true)

	s.assistantBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Assistant).
		Foreground(p.Text).
		Padding(0, 1).
		MarginRight(4)

	s.errorBubble = s.assistantBubble.
		BorderForeground(p.Error).
		Foreground(p.Error)

	s.inputPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.inputLabel = lipgloss.NewStyle().
		Foreground(p.User).
		Bold(true).
		MarginRight(1)

	s.button = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.User).
		Bold(true).
		Padding(0, 2)

	s.buttonBusy = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Background(p.Border).
		Padding(0, 2)

	s.loading = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.statusBar = lipgloss.NewStyle().
		Foreground(p.TextDim)

	s.statusKey = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)

	s.statusDesc = lipgloss.NewStyle().
		Foreground(p.TextDim)

	s.notice = lipgloss.NewStyle().
		Foreground(p.Warning)

	s.backendOK = lipgloss.NewStyle().
		Foreground(p.Assistant)

	s.backendError = lipgloss.NewStyle().
		Foreground(p.Error)

	s.welcomeTitle = lipgloss.NewStyle().
		Foreground(p.User).
		Bold(true).
		Align(lipgloss.Center)

	s.welcome = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Align(lipgloss.Center)

	return s
}
