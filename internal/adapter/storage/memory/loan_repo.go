package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
)

// LoanRepo implements ports.LoanRepository in process memory. Stored loans
// are copies; callers never share pointers with the table.
type LoanRepo struct {
	mu    sync.RWMutex
	next  uint64
	loans map[uint64]*domain.Loan
}

// NewLoanRepo creates an empty LoanRepo. Ids start at 1.
func NewLoanRepo() *LoanRepo {
	return &LoanRepo{loans: make(map[uint64]*domain.Loan)}
}

func (r *LoanRepo) NextID(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next, nil
}

func (r *LoanRepo) Insert(ctx context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[loan.ID]; ok {
		return fmt.Errorf("loan %d already exists", loan.ID)
	}
	r.loans[loan.ID] = loan.Clone()
	return nil
}

func (r *LoanRepo) Get(ctx context.Context, id uint64) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	return l.Clone(), nil
}

func (r *LoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.loans[loan.ID]
	if !ok {
		return fmt.Errorf("loan %d not found", loan.ID)
	}
	if stored.Version != loan.Version {
		return fmt.Errorf("loan %d: %w", loan.ID, domain.ErrVersionConflict)
	}
	loan.Version++
	r.loans[loan.ID] = loan.Clone()
	return nil
}

func (r *LoanRepo) List(ctx context.Context, params ports.LoanListParams) ([]domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Loan
	for _, l := range r.loans {
		if params.Borrower != nil && l.Borrower != *params.Borrower {
			continue
		}
		if params.Status != nil && l.Status() != *params.Status {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, params.Page, params.PageSize), nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
