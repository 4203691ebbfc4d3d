package chat

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/storefront/storechat/internal/models"
)

// ExportFormat represents the format of an exported transcript
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ExportOptions configures how a transcript is exported
type ExportOptions struct {
	Format     ExportFormat
	Title      string
	BackendURL string
	// Now stamps the export; zero means time.Now
	Now time.Time
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format: ExportFormatMarkdown,
		Title:  "Store chat",
	}
}

// Export renders a snapshot of the transcript. The in-flight question is
// included as the last user entry; its reply is not.
func (c *Conversation) Export(opts ExportOptions) (string, error) {
	messages := c.Transcript()
	switch opts.Format {
	case ExportFormatMarkdown, "":
		return exportMarkdown(messages, opts), nil
	case ExportFormatJSON:
		return exportJSON(messages, opts)
	default:
		return "", fmt.Errorf("unknown export format %q", opts.Format)
	}
}

func exportTime(opts ExportOptions) time.Time {
	if opts.Now.IsZero() {
		return time.Now()
	}
	return opts.Now
}

func exportMarkdown(messages []models.Message, opts ExportOptions) string {
	var sb strings.Builder

	title := opts.Title
	if title == "" {
		title = DefaultExportOptions().Title
	}
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	if opts.BackendURL != "" {
		sb.WriteString("**Backend:** ")
		sb.WriteString(opts.BackendURL)
		sb.WriteString("\n")
	}
	sb.WriteString("**Exported:** ")
	sb.WriteString(exportTime(opts).Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n\n---\n\n", len(messages)))

	for i, msg := range messages {
		sb.WriteString("## ")
		sb.WriteString(msg.Role.Label())
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

func exportJSON(messages []models.Message, opts ExportOptions) (string, error) {
	type exportTranscript struct {
		Title      string           `json:"title,omitempty"`
		BackendURL string           `json:"backend_url,omitempty"`
		ExportedAt time.Time        `json:"exported_at"`
		Messages   []models.Message `json:"messages"`
	}

	data, err := json.MarshalIndent(exportTranscript{
		Title:      opts.Title,
		BackendURL: opts.BackendURL,
		ExportedAt: exportTime(opts),
		Messages:   messages,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return string(data), nil
}
