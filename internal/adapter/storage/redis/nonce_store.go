package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore implements ports.NonceStore. Relay proofs use the destination
// chain as scope and the destination tx hash as nonce, so a delivery can be
// claimed once per chain.
type NonceStore struct {
	client *goredis.Client
}

// NewNonceStore creates a new Redis-backed nonce store.
func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{client: client}
}

// CheckAndSet claims nonce within scope for ttl. It reports false when the
// nonce was already claimed.
func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, key("proof", scope, nonce), time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis proof nonce: %w", err)
	}
	return claimed, nil
}
