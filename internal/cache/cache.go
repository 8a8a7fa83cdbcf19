// Package cache remembers processed webhook events in Redis so provider
// retries are answered without touching the database.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const processed = "1"

type Client interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	return rdb, nil
}

type EventCache struct {
	client Client
	ttl    time.Duration
}

func NewEventCache(client Client, ttl time.Duration) *EventCache {
	return &EventCache{client: client, ttl: ttl}
}

func (c *EventCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *EventCache) Remember(ctx context.Context, key string) error {
	return c.client.Set(ctx, key, processed, c.ttl).Err()
}

// Noop never reports an event as seen. Used when Redis is not configured.
type Noop struct{}

func (Noop) Seen(context.Context, string) (bool, error) { return false, nil }

func (Noop) Remember(context.Context, string) error { return nil }
