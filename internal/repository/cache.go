package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/service/ports"
	"github.com/redis/go-redis/v9"
)

const eventListCacheKey = "events:list"

// EventCache wraps an EventRepo with Redis-backed caching for reads. Every
// write through it, and every Invalidate call, evicts the touched keys.
type EventCache struct {
	base  ports.EventRepo
	redis *redis.Client
	ttl   time.Duration
}

func NewEventCache(base ports.EventRepo, client *redis.Client, ttl time.Duration) *EventCache {
	if base == nil {
		panic("repository.NewEventCache: base repo is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &EventCache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
}

func (c *EventCache) Create(ctx context.Context, e *domain.Event) error {
	if err := c.base.Create(ctx, e); err != nil {
		return err
	}
	c.evict(ctx, eventListCacheKey)
	return nil
}

func (c *EventCache) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var cached domain.Event
	if c.load(ctx, eventCacheKey(id), &cached) {
		return &cached, nil
	}

	e, err := c.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, eventCacheKey(id), e)
	return e, nil
}

func (c *EventCache) List(ctx context.Context) ([]*domain.Event, error) {
	var cached []*domain.Event
	if c.load(ctx, eventListCacheKey, &cached) {
		return cached, nil
	}

	events, err := c.base.List(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, eventListCacheKey, events)
	return events, nil
}

func (c *EventCache) Update(ctx context.Context, id, ownerID string, in domain.UpdateEventInput) (*domain.Event, error) {
	e, err := c.base.Update(ctx, id, ownerID, in)
	if err != nil {
		return nil, err
	}
	c.evict(ctx, eventListCacheKey, eventCacheKey(id))
	return e, nil
}

func (c *EventCache) Delete(ctx context.Context, id, ownerID string) error {
	if err := c.base.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.evict(ctx, eventListCacheKey, eventCacheKey(id))
	return nil
}

func (c *EventCache) Invalidate(ctx context.Context, eventID string) {
	c.evict(ctx, eventListCacheKey, eventCacheKey(eventID))
}

func (c *EventCache) load(ctx context.Context, key string, dst any) bool {
	if c.redis == nil || c.ttl == 0 {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// On redis errors fall back to the store without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return false
	}
	if err = json.Unmarshal(data, dst); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *EventCache) store(ctx context.Context, key string, v any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *EventCache) evict(ctx context.Context, keys ...string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, keys...).Result()
}

func eventCacheKey(id string) string {
	return "event:" + id
}
