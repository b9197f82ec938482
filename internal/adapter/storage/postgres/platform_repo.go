package postgres

import (
	"context"
	"errors"
	"fmt"

	"bitpesa-lending/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// PlatformRepo implements ports.PlatformRepository over a single row keyed
// by the platform account.
type PlatformRepo struct {
	pool    Pool
	account domain.Account
}

// NewPlatformRepo creates a new PlatformRepo for account.
func NewPlatformRepo(pool Pool, account domain.Account) *PlatformRepo {
	return &PlatformRepo{pool: pool, account: account}
}

// Get returns the aggregates, zeroed when the row does not exist yet.
func (r *PlatformRepo) Get(ctx context.Context) (*domain.PlatformAccount, error) {
	query := `SELECT collateral_locked, principal_outstanding, protocol_fees, collateral_fees, active_loans, version
		FROM platform_accounts WHERE account = $1`

	p := &domain.PlatformAccount{Account: r.account}
	var locked, outstanding, fees, collFees, active, version int64
	err := r.pool.QueryRow(ctx, query, string(r.account)).Scan(&locked, &outstanding, &fees, &collFees, &active, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, nil
		}
		return nil, fmt.Errorf("get platform: %w", err)
	}
	if err := uints(
		[]*uint64{&p.CollateralLocked, &p.PrincipalOutstanding, &p.ProtocolFees, &p.CollateralFees, &p.ActiveLoans, &p.Version},
		locked, outstanding, fees, collFees, active, version,
	); err != nil {
		return nil, fmt.Errorf("get platform: %w", err)
	}
	return p, nil
}

// Save upserts the aggregates if the row is still at p.Version, and
// advances p.Version. A missing row counts as version 0.
func (r *PlatformRepo) Save(ctx context.Context, p *domain.PlatformAccount) error {
	v, err := bigints(p.CollateralLocked, p.PrincipalOutstanding, p.ProtocolFees, p.CollateralFees, p.ActiveLoans, p.Version)
	if err != nil {
		return err
	}
	query := `INSERT INTO platform_accounts
		(account, collateral_locked, principal_outstanding, protocol_fees, collateral_fees, active_loans, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7 + 1)
		ON CONFLICT (account) DO UPDATE SET
			collateral_locked = EXCLUDED.collateral_locked,
			principal_outstanding = EXCLUDED.principal_outstanding,
			protocol_fees = EXCLUDED.protocol_fees,
			collateral_fees = EXCLUDED.collateral_fees,
			active_loans = EXCLUDED.active_loans,
			version = EXCLUDED.version
		WHERE platform_accounts.version = $7`

	tag, err := r.pool.Exec(ctx, query, string(r.account), v[0], v[1], v[2], v[3], v[4], v[5])
	if err != nil {
		return fmt.Errorf("save platform: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save platform at version %d: %w", p.Version, domain.ErrVersionConflict)
	}
	p.Version++
	return nil
}
