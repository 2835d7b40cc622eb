package chat

import (
	"context"

	"github.com/diogo/chatwidget/internal/models"
)

// Task is one outstanding call to the Response Service
type Task struct {
	ID      string
	Message string

	service Responder
}

// Outcome is the single resolution value of a Task
type Outcome struct {
	RequestID string
	Reply     *models.Reply
	Err       error
}

// Run performs the call. It blocks and is safe to call off the UI goroutine.
func (t *Task) Run(ctx context.Context) Outcome {
	reply, err := t.service.Send(ctx, t.ID, t.Message)
	return Outcome{RequestID: t.ID, Reply: reply, Err: err}
}
