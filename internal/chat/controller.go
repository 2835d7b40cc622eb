// Package chat implements the chat session controller.
//
// The controller owns the transcript and drives a Surface. A submission
// produces a Task whose Run performs the only blocking call; its Outcome is
// handed back to Resolve on the goroutine that owns the surface.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// Responder is the Response Service as seen by the controller
type Responder interface {
	Send(ctx context.Context, requestID, message string) (*models.Reply, error)
}

// Surface is the rendering target the controller writes to.
// Calls arrive in transcript order.
type Surface interface {
	// AppendMessage renders a message after all previously rendered ones
	AppendMessage(msg models.Message)
	// ShowPending renders the typing affordance as the last element
	ShowPending()
	// HidePending removes one typing affordance
	HidePending()
	// ClearInput empties the input capture
	ClearInput()
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the diagnostic logger used for transport failures
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger.With().Str("component", "chat").Logger()
	}
}

// WithBlockWhilePending refuses new submissions while a request is outstanding
func WithBlockWhilePending(block bool) Option {
	return func(c *Controller) {
		c.blockWhilePending = block
	}
}

// WithIDGenerator replaces the request ID source
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// Controller is the chat session controller
type Controller struct {
	service Responder
	surface Surface
	logger  zerolog.Logger

	blockWhilePending bool
	newID             func() string

	mu         sync.Mutex
	transcript models.Transcript
	pending    map[string]struct{}
}

// NewController wires a controller to its Response Service and surface
func NewController(service Responder, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		service:           service,
		surface:           surface,
		logger:            zerolog.Nop(),
		blockWhilePending: true,
		newID:             uuid.NewString,
		pending:           make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit starts a turn for raw input. It returns nil when the input is blank
// or a request is already outstanding and blocking is enabled; otherwise the
// user message has been rendered, the input cleared, the pending affordance
// shown, and the returned Task must be run and resolved.
func (c *Controller) Submit(raw string) *Task {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.blockWhilePending && len(c.pending) > 0 {
		c.mu.Unlock()
		c.logger.Debug().Msg("submission refused while a reply is pending")
		return nil
	}
	msg := models.UserMessage(text)
	c.transcript.Append(msg)
	id := c.newID()
	c.pending[id] = struct{}{}
	c.mu.Unlock()

	c.surface.AppendMessage(msg)
	c.surface.ClearInput()
	c.surface.ShowPending()

	c.logger.Debug().Str("request_id", id).Int("chars", len(text)).Msg("message submitted")

	return &Task{ID: id, Message: text, service: c.service}
}

// Resolve completes the turn started by the Task with the same request ID.
// Outcomes for unknown or already resolved IDs are ignored.
func (c *Controller) Resolve(out Outcome) {
	c.mu.Lock()
	if _, ok := c.pending[out.RequestID]; !ok {
		c.mu.Unlock()
		c.logger.Warn().Str("request_id", out.RequestID).Msg("outcome for unknown request ignored")
		return
	}
	delete(c.pending, out.RequestID)
	msg := c.replyFor(out)
	c.transcript.Append(msg)
	c.mu.Unlock()

	c.surface.HidePending()
	c.surface.AppendMessage(msg)
}

// replyFor maps an outcome to the assistant message shown for it
func (c *Controller) replyFor(out Outcome) models.Message {
	switch {
	case out.Err == nil && out.Reply != nil && out.Reply.Text != "":
		if status := out.Reply.Status; status >= 300 {
			c.logger.Warn().Str("request_id", out.RequestID).Int("status", status).Msg("reply shown despite error status")
		}
		return models.AssistantMessage(out.Reply.Text)

	case out.Err == nil || apierrors.IsProtocolMismatch(out.Err):
		event := c.logger.Info().Str("request_id", out.RequestID)
		if status := apierrors.GetHTTPStatus(out.Err); status > 0 {
			event = event.Int("status", status).Err(out.Err)
		}
		event.Msg("reply lacked a response field")
		return models.FallbackMessage(models.FallbackProtocolText)

	default:
		event := c.logger.Error().Err(out.Err).Str("request_id", out.RequestID)
		if status := apierrors.GetHTTPStatus(out.Err); status > 0 {
			event = event.Int("status", status)
		}
		if errors.Is(out.Err, context.Canceled) {
			event = event.Bool("canceled", true)
		}
		event.Msg("transport failure")
		return models.FallbackMessage(models.FallbackTransportText)
	}
}

// SubmitAndWait runs a whole turn on the calling goroutine.
// It reports whether a turn was started.
func (c *Controller) SubmitAndWait(ctx context.Context, raw string) bool {
	task := c.Submit(raw)
	if task == nil {
		return false
	}
	c.Resolve(task.Run(ctx))
	return true
}

// Busy reports whether any request is outstanding
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// Transcript returns a copy of the messages appended so far
func (c *Controller) Transcript() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.Messages()
}

// LastReply returns the most recent assistant message, if any
func (c *Controller) LastReply() (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript.LastFrom(models.AuthorAssistant)
}
