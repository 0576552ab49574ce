// Package tasklist is the Task List Client: it runs list/create/toggle/delete
// against the Task Service and drives a UI adapter with the results.
package tasklist

import (
	"context"

	dom "Todo/internal/domain"
)

// Kind is the kind of a transient message.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
)

// TaskAPI is the network layer. *taskapi.Client implements it.
type TaskAPI interface {
	List(ctx context.Context) ([]dom.Task, error)
	Create(ctx context.Context, text string) (dom.Task, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}

// MessageSurface is the single shared slot for transient messages.
type MessageSurface interface {
	ShowMessage(text string, kind Kind)
	ClearMessage()
}

// View is the UI adapter. Implementations may be called from several goroutines
// (timer callbacks clear messages) and must synchronise themselves.
type View interface {
	MessageSurface
	// RenderList replaces the whole visible list.
	RenderList(rows []Row)
	ReadInput() string
	ClearInput()
}

// Confirmer asks the user a yes/no question. A cancelled ctx or an error
// counts as "no".
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Row is one rendered entry. A placeholder row has no task and nil actions.
type Row struct {
	ID          int64
	Text        string
	Completed   bool
	Placeholder bool

	// Toggle flips the completion flag on the server, Delete removes the task
	// after confirmation. Both refresh the list on success.
	Toggle func(ctx context.Context) error
	Delete func(ctx context.Context) error
}
