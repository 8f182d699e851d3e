package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memCounter) Incr(ctx context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) Expire(ctx context.Context, key string, d time.Duration) error {
	m.expires[key] = d
	return nil
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	c := newMemCounter()
	rl := NewRateLimiter(c)
	key := UserCommandKey(7, "/rofex")

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, time.Minute, c.expires[key])
	assert.Equal(t, "rate_limit:7:/rofex", key)
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	rl := NewRateLimiter(newMemCounter())

	ok, _ := rl.Allow(ctx, UserCommandKey(1, "/dolar"), 1, time.Minute)
	assert.True(t, ok)
	ok, _ = rl.Allow(ctx, UserCommandKey(2, "/dolar"), 1, time.Minute)
	assert.True(t, ok)
}

func TestRateLimiter_Error(t *testing.T) {
	c := newMemCounter()
	c.err = errors.New("down")
	_, err := NewRateLimiter(c).Allow(context.Background(), "k", 1, time.Minute)
	require.Error(t, err)
}
