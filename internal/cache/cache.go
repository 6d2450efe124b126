// Package cache adapts Redis to the service layer's Cache and DraftStore ports.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/trip-builder/internal/observability"
)

// Cache is a JSON value cache on top of a Redis client.
type Cache struct {
	c *redis.Client
}

// NewClient opens a Redis client. It does not dial until first use.
func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// New wraps an existing client.
func New(c *redis.Client) *Cache {
	return &Cache{c: c}
}

// Get decodes the value at key into dst. A missing key is (false, nil).
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Get %s: %w", key, err)
	}
	observability.ObserveCache("redis", "hit")
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("cache.Get %s: decode: %w", key, err)
	}
	return true, nil
}

// Set stores v as JSON under key for ttl. A zero ttl means no expiry.
func (r *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache.Set %s: encode: %w", key, err)
	}
	observability.ObserveCache("redis", "set")
	if err := r.c.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set %s: %w", key, err)
	}
	return nil
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	if err := r.c.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache.Del %s: %w", key, err)
	}
	return nil
}
