// Package chat implements the chat widget contract independently of any
// user interface: a transcript, a pending input line and a busy flag that
// together form a two-state machine.
package chat

import (
	"strings"
	"sync"

	apierrors "github.com/storefront/storechat/internal/errors"
	"github.com/storefront/storechat/internal/models"
)

// State is the widget state
type State int

const (
	// StateIdle accepts submissions
	StateIdle State = iota
	// StateAwaitingReply has exactly one request in flight
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting-reply"
	default:
		return "unknown"
	}
}

// Pending identifies the request admitted by Submit
type Pending struct {
	ID       uint64
	Question string
}

// Conversation holds the state of one widget instance.
// It is safe for concurrent use; the zero value is not usable.
type Conversation struct {
	mu         sync.RWMutex
	transcript []models.Message
	input      string
	pending    *Pending
	nextID     uint64
}

// NewConversation returns an idle conversation with an empty transcript
func NewConversation() *Conversation {
	return &Conversation{transcript: []models.Message{}}
}

// SetInput replaces the pending input line. It is ignored while a reply is
// awaited, because the input field is disabled then.
func (c *Conversation) SetInput(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return false
	}
	c.input = s
	return true
}

// Input returns the pending input line
func (c *Conversation) Input() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.input
}

// Busy reports whether a request is in flight
func (c *Conversation) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending != nil
}

// InputEnabled reports whether the input field and submit control accept
// interaction. It is the negation of Busy.
func (c *Conversation) InputEnabled() bool {
	return !c.Busy()
}

// State returns the current state
func (c *Conversation) State() State {
	if c.Busy() {
		return StateAwaitingReply
	}
	return StateIdle
}

// Transcript returns a copy of the transcript
func (c *Conversation) Transcript() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Len returns the number of transcript entries
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.transcript)
}

// Last returns the final transcript entry
func (c *Conversation) Last() (models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.transcript) == 0 {
		return models.Message{}, false
	}
	return c.transcript[len(c.transcript)-1], true
}

// LastAssistant returns the most recent assistant entry
func (c *Conversation) LastAssistant() (models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].Role == models.RoleAssistant {
			return c.transcript[i], true
		}
	}
	return models.Message{}, false
}

// Pending returns the request in flight, if any
func (c *Conversation) Pending() (Pending, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.pending == nil {
		return Pending{}, false
	}
	return *c.pending, true
}

// Submit admits the pending input as a question. On success the input is
// cleared, a user message with the trimmed text is appended and the
// conversation becomes busy. An empty trimmed input, or a submission while
// busy, changes nothing and returns false.
func (c *Conversation) Submit() (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return Pending{}, false
	}

	question := strings.TrimSpace(c.input)
	if question == "" {
		return Pending{}, false
	}

	c.input = ""
	c.transcript = append(c.transcript, models.UserMessage(question))
	c.nextID++
	c.pending = &Pending{ID: c.nextID, Question: question}

	return *c.pending, true
}

// Settle completes the request p with either a response or a failure.
// Exactly one assistant message is appended and the conversation becomes
// idle. Settling anything other than the request in flight is ignored.
func (c *Conversation) Settle(p Pending, resp models.ChatResponse, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil || c.pending.ID != p.ID {
		return false
	}

	c.transcript = append(c.transcript, models.AssistantMessage(ReplyText(resp, err)))
	c.pending = nil
	return true
}

// ReplyText is the assistant content for a settled request
func ReplyText(resp models.ChatResponse, err error) string {
	if err != nil {
		return models.ErrorPrefix + apierrors.Describe(err)
	}
	return resp.Text()
}
