package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "Todo/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Bump the version when the cached encoding changes.
const keyList = "tasks:v1:list"

// TaskCache keeps the full task list in Redis between writes.
type TaskCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewTaskCache(rdb redis.Cmdable, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list, or nil on a miss. An undecodable entry is
// dropped and reported as a miss.
func (c *TaskCache) GetList(ctx context.Context) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []dom.Task{}
	if err := json.Unmarshal(b, &list); err != nil {
		if derr := c.Invalidate(ctx); derr != nil {
			return nil, fmt.Errorf("decode cached list: %w (drop: %v)", err, derr)
		}
		return nil, nil
	}
	return list, nil
}

// SetList stores list. A nil list is stored as empty so a hit never yields nil.
func (c *TaskCache) SetList(ctx context.Context, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// Invalidate drops the cached list. Every write calls it.
func (c *TaskCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList).Err()
}
