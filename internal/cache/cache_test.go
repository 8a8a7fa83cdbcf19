package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	keys   map[string]time.Duration
	failOn error
}

func (f *fakeClient) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.failOn != nil {
		return redis.NewIntResult(0, f.failOn)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, _ interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.failOn != nil {
		return redis.NewStatusResult("", f.failOn)
	}
	f.keys[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestEventCache(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{keys: map[string]time.Duration{}}
	cache := NewEventCache(client, time.Hour)

	seen, err := cache.Seen(ctx, "webhook:charge.success:PTX-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, cache.Remember(ctx, "webhook:charge.success:PTX-1"))
	assert.Equal(t, time.Hour, client.keys["webhook:charge.success:PTX-1"])

	seen, err = cache.Seen(ctx, "webhook:charge.success:PTX-1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestEventCacheErrors(t *testing.T) {
	ctx := context.Background()
	cache := NewEventCache(&fakeClient{failOn: errors.New("connection refused")}, time.Hour)

	seen, err := cache.Seen(ctx, "k")
	assert.Error(t, err)
	assert.False(t, seen)
	assert.Error(t, cache.Remember(ctx, "k"))
}

func TestNoop(t *testing.T) {
	var cache Noop
	require.NoError(t, cache.Remember(context.Background(), "k"))
	seen, err := cache.Seen(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, seen)
}
