package ports

import (
	"context"

	"bitpesa-lending/internal/core/domain"

	"github.com/google/uuid"
)

// BalanceRepository stores ledger rows keyed by (account, asset) and the
// per-asset supply counters. Absent rows read as zero balances.
type BalanceRepository interface {
	Get(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error)
	ListByAccount(ctx context.Context, account domain.Account) ([]domain.Balance, error)
	ListByAsset(ctx context.Context, asset domain.Asset) ([]domain.Balance, error)
	Supply(ctx context.Context, asset domain.Asset) (domain.Supply, error)
	// Apply checks every change against the stored row and moves supply in
	// one atomic step. A shortfall fails with domain.ErrInsufficientFunds and
	// writes nothing.
	Apply(ctx context.Context, update domain.BalanceUpdate) error
}

// LoanRepository is the append-only loan table. Get returns (nil, nil) when
// the id is unknown.
type LoanRepository interface {
	NextID(ctx context.Context) (uint64, error)
	Insert(ctx context.Context, loan *domain.Loan) error
	Get(ctx context.Context, id uint64) (*domain.Loan, error)
	// Update writes the mutable columns when the stored version still equals
	// loan.Version and advances loan.Version; otherwise it fails with
	// domain.ErrVersionConflict.
	Update(ctx context.Context, loan *domain.Loan) error
	List(ctx context.Context, params LoanListParams) ([]domain.Loan, error)
}

// LoanListParams holds filter + pagination for listing loans.
type LoanListParams struct {
	Borrower *domain.Account
	Status   *domain.LoanStatus
	Page     int
	PageSize int
}

// PlatformRepository persists the single PlatformAccount row.
type PlatformRepository interface {
	Get(ctx context.Context) (*domain.PlatformAccount, error)
	// Save is a compare-and-set on platform.Version like LoanRepository.Update.
	Save(ctx context.Context, platform *domain.PlatformAccount) error
}

// BridgeTransferRepository stores bridge transfers keyed by id. Get returns
// (nil, nil) when the id is unknown.
type BridgeTransferRepository interface {
	Insert(ctx context.Context, t *domain.BridgeTransfer) error
	Get(ctx context.Context, id uuid.UUID) (*domain.BridgeTransfer, error)
	Update(ctx context.Context, t *domain.BridgeTransfer) error
	// ListPending returns pending transfers created at or before createdBefore.
	ListPending(ctx context.Context, createdBefore int64) ([]domain.BridgeTransfer, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
