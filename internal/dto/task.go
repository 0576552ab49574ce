package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "Todo/internal/domain"
)

// Timestamp decodes createdAt as RFC3339 or as a zone-less local date-time
// ("2006-01-02T15:04:05.000"), which some Task Service builds emit. Zone-less values are read as UTC.
type Timestamp struct{ time.Time }

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		ts.Time = time.Time{}
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			ts.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("createdAt: unsupported timestamp %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time)
}

// CreateTaskRequest is the JSON body for POST /api/todos.
type CreateTaskRequest struct {
	Text      string `json:"text" binding:"required"`
	Completed bool   `json:"completed"`
}

// UpdateTaskRequest is the JSON body for PUT /api/todos/{id}. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type TaskResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt Timestamp `json:"createdAt"`
}

func FromTask(t dom.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: Timestamp{t.CreatedAt},
	}
}

func FromTasks(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = FromTask(list[i])
	}
	return out
}

func (r TaskResponse) Task() dom.Task {
	return dom.Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt.Time,
	}
}
