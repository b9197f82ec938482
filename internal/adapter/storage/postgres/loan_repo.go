package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, borrower, collateral_amount, principal, interest_rate_bps, start_timestamp,
	duration_seconds, end_timestamp, active, liquidated, closed_at, amount_repaid, liquidator`

const loanSelectColumns = loanColumns + `, version`

// LoanRepo implements ports.LoanRepository. Loan rows are never deleted.
type LoanRepo struct {
	pool Pool
}

// NewLoanRepo creates a new LoanRepo.
func NewLoanRepo(pool Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// NextID draws the next id from loan_id_seq. Ids are never reused, even
// when the loan that drew one is never inserted.
func (r *LoanRepo) NextID(ctx context.Context) (uint64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('loan_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("next loan id: %w", err)
	}
	return fromBigint(id)
}

// Insert stores a new loan.
func (r *LoanRepo) Insert(ctx context.Context, l *domain.Loan) error {
	v, err := bigints(l.ID, l.CollateralAmount, l.Principal, l.InterestRateBps, l.AmountRepaid)
	if err != nil {
		return err
	}
	query := `INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = r.pool.Exec(ctx, query,
		v[0], string(l.Borrower), v[1], v[2], v[3], l.StartTimestamp,
		l.DurationSeconds, l.EndTimestamp, l.Active, l.Liquidated, l.ClosedAt, v[4], string(l.Liquidator),
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// Get fetches a loan by id.
func (r *LoanRepo) Get(ctx context.Context, id uint64) (*domain.Loan, error) {
	n, err := toBigint(id)
	if err != nil {
		return nil, nil
	}
	query := `SELECT ` + loanSelectColumns + ` FROM loans WHERE id = $1`

	l, err := scanLoan(r.pool.QueryRow(ctx, query, n))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return l, nil
}

// Update writes the mutable columns of a loan if its version is unchanged
// since it was read, and advances l.Version.
func (r *LoanRepo) Update(ctx context.Context, l *domain.Loan) error {
	v, err := bigints(l.ID, l.AmountRepaid, l.Version)
	if err != nil {
		return err
	}
	query := `UPDATE loans SET active = $2, liquidated = $3, closed_at = $4, amount_repaid = $5, liquidator = $6,
		version = version + 1
		WHERE id = $1 AND version = $7`

	tag, err := r.pool.Exec(ctx, query, v[0], l.Active, l.Liquidated, l.ClosedAt, v[1], string(l.Liquidator), v[2])
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update loan %d at version %d: %w", l.ID, l.Version, domain.ErrVersionConflict)
	}
	l.Version++
	return nil
}

// List returns loans matching params ordered by id.
func (r *LoanRepo) List(ctx context.Context, params ports.LoanListParams) ([]domain.Loan, error) {
	var (
		conds []string
		args  []any
	)
	if params.Borrower != nil {
		args = append(args, string(*params.Borrower))
		conds = append(conds, fmt.Sprintf("borrower = $%d", len(args)))
	}
	if params.Status != nil {
		switch *params.Status {
		case domain.LoanStatusActive:
			conds = append(conds, "active")
		case domain.LoanStatusRepaid:
			conds = append(conds, "NOT active AND NOT liquidated")
		case domain.LoanStatusLiquidated:
			conds = append(conds, "liquidated")
		}
	}

	query := `SELECT ` + loanSelectColumns + ` FROM loans`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		args = append(args, params.PageSize, (page-1)*params.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var out []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return out, nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		l                                                domain.Loan
		borrower, liquidator                             string
		id, collateral, principal, rate, repaid, version int64
	)
	err := row.Scan(
		&id, &borrower, &collateral, &principal, &rate, &l.StartTimestamp,
		&l.DurationSeconds, &l.EndTimestamp, &l.Active, &l.Liquidated, &l.ClosedAt, &repaid, &liquidator, &version,
	)
	if err != nil {
		return nil, err
	}
	if err := uints(
		[]*uint64{&l.ID, &l.CollateralAmount, &l.Principal, &l.InterestRateBps, &l.AmountRepaid, &l.Version},
		id, collateral, principal, rate, repaid, version,
	); err != nil {
		return nil, err
	}
	l.Borrower = domain.Account(borrower)
	l.Liquidator = domain.Account(liquidator)
	return &l, nil
}
