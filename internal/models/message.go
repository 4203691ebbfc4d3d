package models

// Role identifies the author of a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the display name used in transcripts
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Assistant"
}

// Message is one transcript entry
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-authored message
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-authored message
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
