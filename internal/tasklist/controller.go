package tasklist

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"Todo/internal/utils"
)

var ErrEmptyText = errors.New("task text is empty")

const (
	msgLoadFailed   = "Failed to load tasks. Please try again."
	msgEmptyText    = "Task cannot be empty."
	msgAdded        = "Task added successfully!"
	msgAddFailed    = "Failed to add task. Please try again."
	msgUpdated      = "Task updated!"
	msgUpdateFailed = "Failed to update task. Please try again."
	msgDeleted      = "Task deleted!"
	msgDeleteFailed = "Failed to delete task. Please try again."

	// ConfirmDeletePrompt is asked before every delete.
	ConfirmDeletePrompt = "Are you sure you want to delete this task?"
)

// Controller runs the four operations. Network and server failures are logged
// to the diagnostic logger and shown as a fixed error message; the error is
// also returned so callers can tell what happened.
type Controller struct {
	api     TaskAPI
	view    View
	confirm Confirmer
	notes   *Notifier
	log     *log.Logger

	// seq numbers List calls; only the latest issued one may render.
	seq      atomic.Uint64
	renderMu sync.Mutex
}

// New wires a controller. A nil logger means log.Default(); a non-positive
// messageTTL means DefaultMessageTTL.
func New(api TaskAPI, view View, confirm Confirmer, logger *log.Logger, messageTTL time.Duration) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		api:     api,
		view:    view,
		confirm: confirm,
		notes:   NewNotifier(view, messageTTL),
		log:     logger,
	}
}

// Refresh fetches the list and re-renders it. A response that arrives after a
// newer Refresh was issued is dropped, whether it succeeded or not.
func (c *Controller) Refresh(ctx context.Context) error {
	seq := c.seq.Add(1)
	tasks, err := c.api.List(ctx)

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if latest := c.seq.Load(); seq != latest {
		c.log.Printf("list #%d superseded by #%d, dropping response (err=%v)", seq, latest, err)
		return nil
	}
	if err != nil {
		c.log.Printf("Error fetching tasks: %v", err)
		c.notes.Show(msgLoadFailed, Error)
		return err
	}
	c.view.RenderList(c.rows(tasks))
	return nil
}

// Create submits the current input. Blank input never reaches the network.
func (c *Controller) Create(ctx context.Context) error {
	text, ok := utils.NormalizeTaskText(c.view.ReadInput())
	if !ok {
		c.notes.Show(msgEmptyText, Warning)
		return ErrEmptyText
	}
	if _, err := c.api.Create(ctx, text); err != nil {
		c.log.Printf("Error adding task: %v", err)
		c.notes.Show(msgAddFailed, Error)
		return err
	}
	c.view.ClearInput()
	c.notes.Show(msgAdded, Success)
	return c.Refresh(ctx)
}

// Toggle sets the task's completion flag to !completed.
func (c *Controller) Toggle(ctx context.Context, id int64, completed bool) error {
	if err := c.api.SetCompleted(ctx, id, !completed); err != nil {
		c.log.Printf("Error updating task %d: %v", id, err)
		c.notes.Show(msgUpdateFailed, Error)
		return err
	}
	c.notes.Show(msgUpdated, Success)
	return c.Refresh(ctx)
}

// Delete removes the task after the user confirms. Declining, a cancelled ctx
// or a failing confirmer is a silent no-op.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	ok, err := c.confirm.Confirm(ctx, ConfirmDeletePrompt)
	if err != nil {
		c.log.Printf("delete %d: confirmation: %v", id, err)
		return nil
	}
	if !ok {
		return nil
	}
	if err := c.api.Delete(ctx, id); err != nil {
		c.log.Printf("Error deleting task %d: %v", id, err)
		c.notes.Show(msgDeleteFailed, Error)
		return err
	}
	c.notes.Show(msgDeleted, Success)
	return c.Refresh(ctx)
}
