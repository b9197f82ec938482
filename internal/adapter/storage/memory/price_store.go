package memory

import (
	"context"
	"fmt"
	"sync"

	"bitpesa-lending/internal/core/domain"
)

// PriceStore implements ports.PriceStore in process memory.
type PriceStore struct {
	mu     sync.RWMutex
	prices map[string]domain.Price
}

// NewPriceStore creates an empty PriceStore.
func NewPriceStore() *PriceStore {
	return &PriceStore{prices: make(map[string]domain.Price)}
}

// Latest returns the last published price of pair.
func (s *PriceStore) Latest(ctx context.Context, pair string) (domain.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[pair]
	if !ok {
		return domain.Price{}, fmt.Errorf("no price published for %s", pair)
	}
	return p, nil
}

// Publish replaces the price of p.Pair unless a newer reading is stored.
func (s *PriceStore) Publish(ctx context.Context, p domain.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.prices[p.Pair]; ok && cur.AsOf > p.AsOf {
		return nil
	}
	s.prices[p.Pair] = p
	return nil
}
