package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"Todo/internal/cache"
	dom "Todo/internal/domain"
	"Todo/internal/repo"
	"Todo/internal/utils"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyText = errors.New("text must not be empty")
)

type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group

	// writes counts completed writes. A list read from storage is cached only
	// if no write finished while it was loading.
	writes atomic.Uint64
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create stores a new task. New tasks always start incomplete.
func (s *TaskService) Create(ctx context.Context, text string) (dom.Task, error) {
	text, ok := utils.NormalizeTaskText(text)
	if !ok {
		return dom.Task{}, ErrEmptyText
	}
	t, err := s.repo.Create(ctx, dom.Task{Text: text})
	if err != nil {
		return dom.Task{}, mapErr(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]dom.Task, error) {
	if s.cache == nil {
		list, err := s.repo.List(ctx)
		return list, mapErr(err)
	}
	// The shared load outlives any single caller that gives up.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do("list", func() (interface{}, error) {
		if list, err := s.cache.GetList(loadCtx); err == nil && list != nil {
			return list, nil
		} else if err != nil {
			log.Printf("task cache read: %v", err)
		}
		gen := s.writes.Load()
		list, err := s.repo.List(loadCtx)
		if err != nil {
			return nil, mapErr(err)
		}
		s.storeList(loadCtx, gen, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Task{}, mapErr(err)
	}
	return t, nil
}

// Update applies the non-nil fields of the patch. There is no version check:
// concurrent writers race and the last one wins.
func (s *TaskService) Update(ctx context.Context, id int64, text *string, completed *bool) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Task{}, mapErr(err)
	}
	patch := existing
	if text != nil {
		var ok bool
		if patch.Text, ok = utils.NormalizeTaskText(*text); !ok {
			return dom.Task{}, ErrEmptyText
		}
	}
	if completed != nil {
		patch.Completed = *completed
	}
	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dom.Task{}, mapErr(err)
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.invalidateCache(ctx)
	return nil
}

// storeList caches a list loaded when the write counter was gen. A write that
// lands around the Set either finds the entry and deletes it, or is seen by the
// re-check here.
func (s *TaskService) storeList(ctx context.Context, gen uint64, list []dom.Task) {
	if s.writes.Load() != gen {
		return
	}
	if err := s.cache.SetList(ctx, list); err != nil {
		log.Printf("task cache write: %v", err)
		return
	}
	if s.writes.Load() != gen {
		s.dropCachedList(ctx)
	}
}

// invalidateCache runs after every successful write. Later readers must not
// join a load that started before the write.
func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.writes.Add(1)
	s.sf.Forget("list")
	s.dropCachedList(ctx)
}

func (s *TaskService) dropCachedList(ctx context.Context) {
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		log.Printf("task cache invalidate: %v", err)
	}
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrNotFound
	case utils.IsPGCheckViolation(err):
		return ErrEmptyText
	case utils.IsPGUndefinedTable(err):
		return fmt.Errorf("tasks table missing, were migrations applied? %w", err)
	}
	return err
}
