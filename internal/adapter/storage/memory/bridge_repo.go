package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bitpesa-lending/internal/core/domain"

	"github.com/google/uuid"
)

// BridgeTransferRepo implements ports.BridgeTransferRepository in process memory.
type BridgeTransferRepo struct {
	mu        sync.RWMutex
	transfers map[uuid.UUID]*domain.BridgeTransfer
}

// NewBridgeTransferRepo creates an empty BridgeTransferRepo.
func NewBridgeTransferRepo() *BridgeTransferRepo {
	return &BridgeTransferRepo{transfers: make(map[uuid.UUID]*domain.BridgeTransfer)}
}

func (r *BridgeTransferRepo) Insert(ctx context.Context, t *domain.BridgeTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transfers[t.ID]; ok {
		return fmt.Errorf("bridge transfer %s already exists", t.ID)
	}
	r.transfers[t.ID] = t.Clone()
	return nil
}

func (r *BridgeTransferRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BridgeTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	return t.Clone(), nil
}

func (r *BridgeTransferRepo) Update(ctx context.Context, t *domain.BridgeTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transfers[t.ID]; !ok {
		return fmt.Errorf("bridge transfer %s not found", t.ID)
	}
	r.transfers[t.ID] = t.Clone()
	return nil
}

func (r *BridgeTransferRepo) ListPending(ctx context.Context, createdBefore int64) ([]domain.BridgeTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.BridgeTransfer
	for _, t := range r.transfers {
		if t.Status == domain.BridgeStatusPending && t.CreatedAt <= createdBefore {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}
