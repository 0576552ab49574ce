package domain

import "time"

// Task is the server-owned record. ID is assigned by the server on create;
// Text never changes through the client after that.
type Task struct {
	ID        int64
	Text      string
	Completed bool
	CreatedAt time.Time
}
