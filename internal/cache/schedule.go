// Package cache provides a small redis-backed cache for schedule
// responses. The schedule for a (date, room) pair is read far more often
// than it changes, so responses are kept until a booking or cancellation
// for that pair invalidates them.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the slice of the redis API the schedule cache uses.
// *redis.Client satisfies it; tests substitute an in-memory fake.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Schedule caches rendered schedule payloads keyed by (date, room). A nil
// *Schedule is valid and degrades to a no-op; callers with no redis
// simply keep the nil handle (see cmd/server).
type Schedule struct {
	rdb Client
	ttl time.Duration
}

// NewSchedule returns a schedule cache with the given entry lifetime.
func NewSchedule(rdb Client, ttl time.Duration) *Schedule {
	return &Schedule{rdb: rdb, ttl: ttl}
}

func scheduleKey(date, room string) string {
	return fmt.Sprintf("schedule:%s:%s", date, room)
}

// Get returns the cached payload for (date, room), if any.
func (s *Schedule) Get(ctx context.Context, date, room string) ([]byte, bool) {
	if s == nil || s.rdb == nil {
		return nil, false
	}
	b, err := s.rdb.Get(ctx, scheduleKey(date, room)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a payload for (date, room). Failures are ignored; the cache
// is an optimization, never a source of truth.
func (s *Schedule) Set(ctx context.Context, date, room string, payload []byte) {
	if s == nil || s.rdb == nil {
		return
	}
	_ = s.rdb.Set(ctx, scheduleKey(date, room), payload, s.ttl).Err()
}

// Invalidate drops the cached payload for (date, room). Called after every
// successful booking or cancellation.
func (s *Schedule) Invalidate(ctx context.Context, date, room string) {
	if s == nil || s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, scheduleKey(date, room)).Err()
}
