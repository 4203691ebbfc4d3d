package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/storefront/storechat/internal/api"
	"github.com/storefront/storechat/internal/chat"
	apierrors "github.com/storefront/storechat/internal/errors"
	"github.com/storefront/storechat/internal/models"
	"github.com/storefront/storechat/internal/render"
)

// Submit control labels
const (
	sendLabel     = "Send"
	thinkingLabel = "Thinking…"
)

// Message types for the TUI
type (
	replyMsg struct {
		reply chat.Reply
	}
	pingMsg struct {
		resp models.PingResponse
		err  error
	}
)

// Options configures the chat widget
type Options struct {
	Palette render.Palette
	Render  render.Options
	Logger  zerolog.Logger
	// Clipboard copies text for ctrl+y and ctrl+t; defaults to the system clipboard
	Clipboard func(string) error
}

// Model is the bubbletea model of the chat widget
type Model struct {
	client api.BackendClient
	widget *chat.Widget
	conv   *chat.Conversation

	styles     Styles
	renderOpts render.Options
	copyText   func(string) error
	logger     zerolog.Logger

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	ready         bool
	backendStatus string
	backendErr    bool
	notice        string

	width  int
	height int
}

// NewModel creates the widget model. Its lifetime is bound to ctx; quitting
// closes the widget and cancels any request in flight.
func NewModel(ctx context.Context, client api.BackendClient, opts Options) Model {
	if opts.Palette.Name == "" {
		opts.Palette = render.TokyoNightPalette
	}
	if opts.Render.Style == "" {
		opts.Render = render.DefaultOptions()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	styles := NewStyles(opts.Palette)
	widget := chat.NewWidget(ctx, client, chat.WithLogger(opts.Logger))

	ti := textinput.New()
	ti.Placeholder = "Ask about products, orders or shipping..."
	ti.Prompt = ""
	ti.CharLimit = 4000
	ti.TextStyle = lipgloss.NewStyle().Foreground(opts.Palette.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(opts.Palette.TextDim)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = styles.loading

	return Model{
		client:     client,
		widget:     widget,
		conv:       widget.Conversation(),
		styles:     styles,
		renderOpts: opts.Render.WithCompact(true),
		copyText:   opts.Clipboard,
		logger:     opts.Logger,
		input:      ti,
		spinner:    s,
	}
}

// Conversation exposes the widget state
func (m Model) Conversation() *chat.Conversation {
	return m.conv
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.pingCmd(),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.widget.Close()
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "ctrl+y":
			m.copyLastAnswer()
			return m, nil

		case "ctrl+t":
			m.copyTranscript()
			return m, nil

		case "pgup", "pgdown", "up", "down":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.conv.InputEnabled() {
			m.notice = ""
			m.input, cmd = m.input.Update(msg)
			m.conv.SetInput(m.input.Value())
			cmds = append(cmds, cmd)
		}

	case replyMsg:
		if m.widget.Complete(msg.reply) {
			m.input.SetValue(m.conv.Input())
			cmds = append(cmds, m.input.Focus())
			m.updateViewport()
			m.viewport.GotoBottom()
		}

	case pingMsg:
		if msg.err != nil {
			m.backendErr = true
			m.backendStatus = "Backend unreachable: " + apierrors.Describe(msg.err)
		} else {
			m.backendErr = false
			m.backendStatus = "Backend says: " + msg.resp.Message
		}

	case spinner.TickMsg:
		if m.conv.Busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit admits the current input and issues the request
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.conv.SetInput(m.input.Value())
	p, ok := m.widget.Begin()
	if !ok {
		return m, nil
	}

	m.notice = ""
	m.input.SetValue(m.conv.Input())
	m.input.Blur()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendCmd(p), m.spinner.Tick)
}

// sendCmd performs the request for p off the update loop
func (m Model) sendCmd(p chat.Pending) tea.Cmd {
	widget := m.widget
	return func() tea.Msg {
		return replyMsg{reply: widget.Request(p)}
	}
}

// pingCmd checks the backend once at startup
func (m Model) pingCmd() tea.Cmd {
	client := m.client
	ctx := m.widget.Context()
	return func() tea.Msg {
		resp, err := client.Ping(ctx)
		return pingMsg{resp: resp, err: err}
	}
}

func (m *Model) copyLastAnswer() {
	msg, ok := m.conv.LastAssistant()
	if !ok {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := m.copyText(msg.Content); err != nil {
		m.logger.Warn().Err(err).Msg("clipboard copy failed")
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = "Copied last answer to clipboard"
}

func (m *Model) copyTranscript() {
	if m.conv.Len() == 0 {
		m.notice = "Nothing to copy yet"
		return
	}
	md, err := m.conv.Export(chat.ExportOptions{Format: chat.ExportFormatMarkdown, BackendURL: m.client.BaseURL()})
	if err == nil {
		err = m.copyText(md)
	}
	if err != nil {
		m.logger.Warn().Err(err).Msg("transcript copy failed")
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("Copied transcript (%d messages) to clipboard", m.conv.Len())
}

// layout sizes the child components from the window dimensions
func (m *Model) layout() {
	headerHeight := 4 // two lines plus border
	inputHeight := 3  // one line plus border
	statusHeight := 2 // notice and shortcuts
	borders := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
	if vpHeight < 3 {
		vpHeight = 3
	}

	contentWidth := m.contentWidth()
	inputWidth := contentWidth - lipgloss.Width(m.styles.inputLabel.Render("You")) -
		lipgloss.Width(m.styles.button.Render(thinkingLabel)) - 6
	if inputWidth < 10 {
		inputWidth = 10
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth-2, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	} else {
		m.viewport.Width = contentWidth - 2
		m.viewport.Height = vpHeight
	}
	m.input.Width = inputWidth
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// scrollKeys keeps printable keys out of the viewport so typing never scrolls
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
}

// submitLabel is the caption of the submit control
func (m Model) submitLabel() string {
	if m.conv.Busy() {
		return thinkingLabel
	}
	return sendLabel
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range m.conv.Transcript() {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.Role {
		case models.RoleUser:
			label := m.styles.userLabel.Render("● " + msg.Role.Label())
			bubble := m.styles.userBubble.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		default:
			label := m.styles.assistantLabel.Render("✦ " + msg.Role.Label())
			var bubble string
			if strings.HasPrefix(msg.Content, models.ErrorPrefix) {
				bubble = m.styles.errorBubble.Width(bubbleWidth).Render(msg.Content)
			} else {
				rendered := render.Message(msg.Content, m.renderOpts.WithWidth(bubbleWidth-4))
				bubble = m.styles.assistantBubble.Width(bubbleWidth).Render(rendered)
			}
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.loading.Render("  Initializing...")
	}

	contentWidth := m.contentWidth()
	sections := []string{
		m.renderHeader(contentWidth),
		m.renderMessages(contentWidth),
		m.renderInput(contentWidth),
	}

	if m.notice != "" {
		sections = append(sections, m.styles.notice.Render(m.notice))
	} else {
		sections = append(sections, "")
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("✦ Store Assistant"),
		m.styles.hint.Render("  •  "),
		m.styles.subtitle.Render(m.client.BaseURL()),
	)

	status := m.styles.hint.Render("Checking backend...")
	if m.backendStatus != "" {
		if m.backendErr {
			status = m.styles.backendError.Render(m.backendStatus)
		} else {
			status = m.styles.backendOK.Render(m.backendStatus)
		}
	}

	return m.styles.header.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, status))
}

func (m Model) renderMessages(width int) string {
	content := m.viewport.View()
	if m.conv.Len() == 0 {
		content = m.renderWelcome()
	}
	return m.styles.messagesArea.
		Width(width).
		Height(m.viewport.Height).
		Render(content)
}

// renderWelcome renders the empty-transcript screen
func (m Model) renderWelcome() string {
	width := m.viewport.Width
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.welcomeTitle.Width(width).Render("How can we help you today?"),
		"",
		m.styles.welcome.Width(width).Render("Ask a question below and press Enter"),
	)

	topPadding := (m.viewport.Height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderInput(width int) string {
	label := m.styles.inputLabel.Render("You")

	var field, button string
	if m.conv.Busy() {
		field = m.spinner.View() + m.styles.hint.Render(" waiting for the assistant")
		button = m.styles.buttonBusy.Render(m.submitLabel())
	} else {
		field = m.input.View()
		button = m.styles.button.Render(m.submitLabel())
	}

	gap := width - lipgloss.Width(label) - lipgloss.Width(field) - lipgloss.Width(button) - 4
	if gap < 1 {
		gap = 1
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, label, field, strings.Repeat(" ", gap), button)
	return m.styles.inputPanel.Width(width).Render(row)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+Y", "Copy answer"},
		{"Ctrl+T", "Copy transcript"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, m.styles.statusKey.Render(s.key)+m.styles.statusDesc.Render(" "+s.desc))
	}

	bar := strings.Join(items, m.styles.statusDesc.Render("  │  "))
	return m.styles.statusBar.Width(width).Align(lipgloss.Center).Render(bar)
}

// Run starts the chat widget and blocks until the user quits or ctx ends
func Run(ctx context.Context, client api.BackendClient, opts Options) error {
	m := NewModel(ctx, client, opts)
	defer m.widget.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat interface failed: %w", err)
	}
	return nil
}
