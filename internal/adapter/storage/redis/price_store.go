package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bitpesa-lending/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// publishScript stores a price unless a newer reading is already present.
var publishScript = goredis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'as_of')
if cur and tonumber(cur) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'value', ARGV[1], 'as_of', ARGV[2])
return 1
`)

// PriceStore implements ports.PriceStore on Redis hashes so every API
// replica reads the same feed.
type PriceStore struct {
	client *goredis.Client
}

// NewPriceStore creates a new Redis-backed price store.
func NewPriceStore(client *goredis.Client) *PriceStore {
	return &PriceStore{client: client}
}

// Latest returns the last published price of pair.
func (s *PriceStore) Latest(ctx context.Context, pair string) (domain.Price, error) {
	vals, err := s.client.HMGet(ctx, key("price", pair), "value", "as_of").Result()
	if err != nil {
		return domain.Price{}, fmt.Errorf("redis price get: %w", err)
	}
	rawValue, ok1 := vals[0].(string)
	rawAsOf, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return domain.Price{}, fmt.Errorf("no price published for %s", pair)
	}

	value, err := strconv.ParseUint(rawValue, 10, 64)
	if err != nil {
		return domain.Price{}, fmt.Errorf("redis price value: %w", err)
	}
	asOf, err := strconv.ParseInt(rawAsOf, 10, 64)
	if err != nil {
		return domain.Price{}, fmt.Errorf("redis price as_of: %w", err)
	}
	return domain.Price{Pair: pair, Value: value, AsOf: asOf}, nil
}

// Publish replaces the price of p.Pair unless a newer reading is stored.
func (s *PriceStore) Publish(ctx context.Context, p domain.Price) error {
	if p.Pair == "" {
		return errors.New("price pair is required")
	}
	err := publishScript.Run(ctx, s.client, []string{key("price", p.Pair)},
		strconv.FormatUint(p.Value, 10), strconv.FormatInt(p.AsOf, 10)).Err()
	if err != nil {
		return fmt.Errorf("redis price publish: %w", err)
	}
	return nil
}
