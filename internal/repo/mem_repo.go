package repo

import (
	"context"
	"sync"
	"time"

	dom "Todo/internal/domain"
)

// MemTaskRepo is a TaskRepo held in process memory. Used when no Postgres DSN
// is configured; state lives only as long as the process.
type MemTaskRepo struct {
	mu     sync.Mutex
	tasks  map[int64]dom.Task
	order  []int64 // insertion order, which is also id order
	nextID int64
}

// NewMemTaskRepo creates an empty store. The first task gets id 1.
func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{tasks: make(map[int64]dom.Task), nextID: 1}
}

func (r *MemTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *MemTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, ErrNotFound
	}
	return t, nil
}

func (r *MemTaskRepo) List(_ context.Context) ([]dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]dom.Task, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.tasks[id])
	}
	return list, nil
}

// Update replaces text and completed. ID and CreatedAt are kept from the stored row.
func (r *MemTaskRepo) Update(_ context.Context, id int64, patch dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return dom.Task{}, ErrNotFound
	}
	t.Text = patch.Text
	t.Completed = patch.Completed
	r.tasks[id] = t
	return t, nil
}

func (r *MemTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
