package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/storechat/internal/models"
)

// Asker sends one question to the backend
type Asker interface {
	Chat(ctx context.Context, question string) (models.ChatResponse, error)
}

// Reply is the outcome of a request, ready to be settled
type Reply struct {
	Pending  Pending
	Response models.ChatResponse
	Err      error
	Duration time.Duration
}

// Widget binds a Conversation to a backend and to a lifetime. Requests are
// issued under the lifetime context; once the widget is closed, in-flight
// requests are canceled and their replies are dropped.
type Widget struct {
	conv   *Conversation
	asker  Asker
	logger zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// WidgetOption configures a Widget
type WidgetOption func(*Widget)

// WithLogger sets the logger for submission tracing
func WithLogger(logger zerolog.Logger) WidgetOption {
	return func(w *Widget) {
		w.logger = logger
	}
}

// WithConversation makes the widget drive an existing conversation
func WithConversation(conv *Conversation) WidgetOption {
	return func(w *Widget) {
		w.conv = conv
	}
}

// NewWidget creates a widget whose lifetime ends when parent is done or
// Close is called.
func NewWidget(parent context.Context, asker Asker, opts ...WidgetOption) *Widget {
	ctx, cancel := context.WithCancel(parent)
	w := &Widget{
		asker:  asker,
		logger: zerolog.Nop(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.conv == nil {
		w.conv = NewConversation()
	}
	return w
}

// Conversation returns the state driven by the widget
func (w *Widget) Conversation() *Conversation {
	return w.conv
}

// Context is the widget lifetime, for auxiliary requests that must not
// outlive it.
func (w *Widget) Context() context.Context {
	return w.ctx
}

// Alive reports whether the widget lifetime is still active
func (w *Widget) Alive() bool {
	return w.ctx.Err() == nil
}

// Begin admits the current input; see Conversation.Submit
func (w *Widget) Begin() (Pending, bool) {
	if !w.Alive() {
		return Pending{}, false
	}
	p, ok := w.conv.Submit()
	if ok {
		w.logger.Debug().Uint64("pending_id", p.ID).Int("question_len", len(p.Question)).Msg("question submitted")
	}
	return p, ok
}

// Request performs the network call for p. It does not touch the
// conversation, so it may run off the goroutine that owns the UI.
func (w *Widget) Request(p Pending) Reply {
	start := time.Now()
	resp, err := w.asker.Chat(w.ctx, p.Question)
	return Reply{Pending: p, Response: resp, Err: err, Duration: time.Since(start)}
}

// Complete settles r into the conversation. Replies that arrive after the
// widget was closed are ignored and false is returned.
func (w *Widget) Complete(r Reply) bool {
	if !w.Alive() {
		w.logger.Debug().Uint64("pending_id", r.Pending.ID).Msg("reply dropped after close")
		return false
	}

	settled := w.conv.Settle(r.Pending, r.Response, r.Err)

	event := w.logger.Info()
	if r.Err != nil {
		event = w.logger.Warn().Err(r.Err)
	}
	event.Uint64("pending_id", r.Pending.ID).
		Bool("settled", settled).
		Dur("duration", r.Duration).
		Msg("reply received")

	return settled
}

// Errors returned by Send when no cycle completed
var (
	ErrNotSubmitted = errors.New("nothing to submit")
	ErrClosed       = errors.New("chat widget closed")
)

// Send runs one full cycle for input and returns the assistant message it
// produced. The error is the request failure already recorded in that
// message, or ErrNotSubmitted/ErrClosed when no message was produced.
func (w *Widget) Send(input string) (models.Message, error) {
	if !w.Alive() {
		return models.Message{}, ErrClosed
	}
	if !w.conv.SetInput(input) {
		return models.Message{}, ErrNotSubmitted
	}
	p, ok := w.Begin()
	if !ok {
		return models.Message{}, ErrNotSubmitted
	}

	reply := w.Request(p)
	if !w.Complete(reply) {
		return models.Message{}, ErrClosed
	}

	msg, _ := w.conv.Last()
	return msg, reply.Err
}

// Close ends the widget lifetime and cancels any request in flight
func (w *Widget) Close() {
	w.once.Do(w.cancel)
}
