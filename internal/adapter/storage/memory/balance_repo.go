package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bitpesa-lending/internal/core/domain"
)

type balanceKey struct {
	account domain.Account
	asset   domain.Asset
}

// BalanceRepo implements ports.BalanceRepository in process memory.
type BalanceRepo struct {
	mu     sync.RWMutex
	rows   map[balanceKey]domain.Balance
	supply map[domain.Asset]domain.Supply
}

// NewBalanceRepo creates an empty BalanceRepo.
func NewBalanceRepo() *BalanceRepo {
	return &BalanceRepo{
		rows:   make(map[balanceKey]domain.Balance),
		supply: make(map[domain.Asset]domain.Supply),
	}
}

func (r *BalanceRepo) Get(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.rows[balanceKey{account, asset}]
	if !ok {
		return domain.Balance{Account: account, Asset: asset}, nil
	}
	return b, nil
}

func (r *BalanceRepo) ListByAccount(ctx context.Context, account domain.Account) ([]domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Balance
	for k, b := range r.rows {
		if k.account == account {
			out = append(out, b)
		}
	}
	sortBalances(out)
	return out, nil
}

func (r *BalanceRepo) ListByAsset(ctx context.Context, asset domain.Asset) ([]domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Balance
	for k, b := range r.rows {
		if k.asset == asset {
			out = append(out, b)
		}
	}
	sortBalances(out)
	return out, nil
}

func (r *BalanceRepo) Supply(ctx context.Context, asset domain.Asset) (domain.Supply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.supply[asset]
	if !ok {
		return domain.Supply{Asset: asset}, nil
	}
	return s, nil
}

// Apply checks every change against the stored rows and the supply
// counters under one lock, and writes only when all of them hold.
func (r *BalanceRepo) Apply(ctx context.Context, update domain.BalanceUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.supply[update.Asset]
	if !ok {
		s = domain.Supply{Asset: update.Asset}
	}
	if s.Issued, ok = domain.AddChecked(s.Issued, update.Issued); !ok {
		return fmt.Errorf("supply of %s: %w", update.Asset, domain.ErrArithmeticOverflow)
	}
	if s.Burned, ok = domain.AddChecked(s.Burned, update.Burned); !ok || s.Burned > s.Issued {
		return fmt.Errorf("burn of %d %s exceeds issued supply", update.Burned, update.Asset)
	}

	staged := make(map[balanceKey]domain.Balance, len(update.Changes))
	for _, c := range update.Changes {
		k := balanceKey{c.Account, c.Asset}
		b, ok := staged[k]
		if !ok {
			if b, ok = r.rows[k]; !ok {
				b = domain.Balance{Account: c.Account, Asset: c.Asset}
			}
		}
		next, err := b.Apply(c)
		if err != nil {
			return fmt.Errorf("balance %s/%s: %w", c.Account, c.Asset, err)
		}
		staged[k] = next
	}

	for k, b := range staged {
		r.rows[k] = b
	}
	if update.Issued > 0 || update.Burned > 0 {
		r.supply[update.Asset] = s
	}
	return nil
}

func sortBalances(bs []domain.Balance) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Account != bs[j].Account {
			return bs[i].Account < bs[j].Account
		}
		return bs[i].Asset < bs[j].Asset
	})
}
