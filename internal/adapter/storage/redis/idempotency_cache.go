package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyCache implements ports.IdempotencyCache. The first response
// stored under a key is kept until it expires; later writes are dropped.
type IdempotencyCache struct {
	client *goredis.Client
}

// NewIdempotencyCache creates a new Redis-backed idempotency cache.
func NewIdempotencyCache(client *goredis.Client) *IdempotencyCache {
	return &IdempotencyCache{client: client}
}

// Get returns the cached response for idemKey, or nil if none is stored.
func (c *IdempotencyCache) Get(ctx context.Context, idemKey string) ([]byte, error) {
	val, err := c.client.Get(ctx, key("idem", idemKey)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis idempotency get: %w", err)
	}
	return val, nil
}

// Set stores value under idemKey for ttl unless a response is already there.
func (c *IdempotencyCache) Set(ctx context.Context, idemKey string, value []byte, ttl time.Duration) error {
	if err := c.client.SetNX(ctx, key("idem", idemKey), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis idempotency set: %w", err)
	}
	return nil
}
