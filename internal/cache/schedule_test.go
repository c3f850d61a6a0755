package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis implements Client over a map, recording the keys it sees so
// tests can assert on key construction.
type memRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newMemRedis()
	s := NewSchedule(rdb, time.Minute)

	_, ok := s.Get(ctx, "2026-03-10", "4c")
	assert.False(t, ok, "cold cache must miss")

	payload := []byte(`[{"date":"2026-03-10","slot":8,"owner":"Alice"}]`)
	s.Set(ctx, "2026-03-10", "4c", payload)

	got, ok := s.Get(ctx, "2026-03-10", "4c")
	require.True(t, ok)
	assert.Equal(t, payload, got)

	// Keys are scoped per (date, room).
	assert.Contains(t, rdb.data, "schedule:2026-03-10:4c")
	assert.Equal(t, time.Minute, rdb.ttls["schedule:2026-03-10:4c"])
	_, ok = s.Get(ctx, "2026-03-10", "2a")
	assert.False(t, ok, "other room must not hit")
	_, ok = s.Get(ctx, "2026-03-11", "4c")
	assert.False(t, ok, "other date must not hit")
}

func TestScheduleInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewSchedule(newMemRedis(), time.Minute)

	s.Set(ctx, "2026-03-10", "4c", []byte("[]"))
	s.Set(ctx, "2026-03-10", "2a", []byte("[]"))
	s.Invalidate(ctx, "2026-03-10", "4c")

	_, ok := s.Get(ctx, "2026-03-10", "4c")
	assert.False(t, ok, "invalidated entry must miss")
	_, ok = s.Get(ctx, "2026-03-10", "2a")
	assert.True(t, ok, "other room must survive invalidation")
}

// Without redis the cache degrades to a no-op instead of panicking.
func TestScheduleNilDegradation(t *testing.T) {
	ctx := context.Background()
	for name, s := range map[string]*Schedule{
		"nil handle": nil,
		"nil client": NewSchedule(nil, time.Minute),
	} {
		_, ok := s.Get(ctx, "2026-03-10", "4c")
		assert.False(t, ok, name)
		s.Set(ctx, "2026-03-10", "4c", []byte("[]"))
		s.Invalidate(ctx, "2026-03-10", "4c")
		_, ok = s.Get(ctx, "2026-03-10", "4c")
		assert.False(t, ok, name)
	}
}
