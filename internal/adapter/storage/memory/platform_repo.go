package memory

import (
	"context"
	"fmt"
	"sync"

	"bitpesa-lending/internal/core/domain"
)

// PlatformRepo implements ports.PlatformRepository in process memory.
type PlatformRepo struct {
	mu       sync.RWMutex
	platform domain.PlatformAccount
}

// NewPlatformRepo creates a PlatformRepo with zeroed aggregates for account.
func NewPlatformRepo(account domain.Account) *PlatformRepo {
	return &PlatformRepo{platform: domain.PlatformAccount{Account: account}}
}

func (r *PlatformRepo) Get(ctx context.Context) (*domain.PlatformAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.platform
	return &p, nil
}

func (r *PlatformRepo) Save(ctx context.Context, platform *domain.PlatformAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.platform.Version != platform.Version {
		return fmt.Errorf("platform %s: %w", platform.Account, domain.ErrVersionConflict)
	}
	platform.Version++
	r.platform = *platform
	return nil
}
