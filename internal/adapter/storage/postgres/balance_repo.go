package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bitpesa-lending/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// BalanceRepo implements ports.BalanceRepository. Apply locks every row it
// touches with SELECT ... FOR UPDATE and writes the rows and the supply
// delta in one transaction.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// Get returns the (account, asset) row, or a zero balance when absent.
func (r *BalanceRepo) Get(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error) {
	query := `SELECT spendable, locked FROM balances WHERE account = $1 AND asset = $2`

	b := domain.Balance{Account: account, Asset: asset}
	var spendable, locked int64
	err := r.pool.QueryRow(ctx, query, string(account), string(asset)).Scan(&spendable, &locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return domain.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	if err := uints([]*uint64{&b.Spendable, &b.Locked}, spendable, locked); err != nil {
		return domain.Balance{}, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// ListByAccount returns every row of account ordered by asset.
func (r *BalanceRepo) ListByAccount(ctx context.Context, account domain.Account) ([]domain.Balance, error) {
	query := `SELECT account, asset, spendable, locked FROM balances WHERE account = $1 ORDER BY asset`
	return r.list(ctx, query, string(account))
}

// ListByAsset returns every row of asset ordered by account.
func (r *BalanceRepo) ListByAsset(ctx context.Context, asset domain.Asset) ([]domain.Balance, error) {
	query := `SELECT account, asset, spendable, locked FROM balances WHERE asset = $1 ORDER BY account`
	return r.list(ctx, query, string(asset))
}

// Supply returns the issuance counters of asset.
func (r *BalanceRepo) Supply(ctx context.Context, asset domain.Asset) (domain.Supply, error) {
	query := `SELECT issued, burned FROM supply WHERE asset = $1`

	s := domain.Supply{Asset: asset}
	var issued, burned int64
	err := r.pool.QueryRow(ctx, query, string(asset)).Scan(&issued, &burned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, nil
		}
		return domain.Supply{}, fmt.Errorf("get supply: %w", err)
	}
	if err := uints([]*uint64{&s.Issued, &s.Burned}, issued, burned); err != nil {
		return domain.Supply{}, fmt.Errorf("get supply: %w", err)
	}
	return s, nil
}

// Apply locks the touched rows in (account, asset) order, applies each
// change to the locked row and increments the supply counters. Any
// shortfall rolls the whole transaction back.
func (r *BalanceRepo) Apply(ctx context.Context, update domain.BalanceUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin balance update: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	changes := make([]domain.BalanceChange, len(update.Changes))
	copy(changes, update.Changes)
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Account != changes[j].Account {
			return changes[i].Account < changes[j].Account
		}
		return changes[i].Asset < changes[j].Asset
	})

	for _, c := range changes {
		if err := r.applyChange(ctx, tx, c); err != nil {
			return err
		}
	}

	if update.Issued > 0 || update.Burned > 0 {
		v, err := bigints(update.Issued, update.Burned)
		if err != nil {
			return err
		}
		query := `INSERT INTO supply (asset, issued, burned)
			VALUES ($1, $2, $3)
			ON CONFLICT (asset) DO UPDATE SET issued = supply.issued + EXCLUDED.issued, burned = supply.burned + EXCLUDED.burned
			RETURNING issued, burned`
		var issued, burned int64
		if err := tx.QueryRow(ctx, query, string(update.Asset), v[0], v[1]).Scan(&issued, &burned); err != nil {
			return fmt.Errorf("update supply: %w", err)
		}
		if burned > issued {
			return fmt.Errorf("burn of %d %s exceeds issued supply", update.Burned, update.Asset)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit balance update: %w", err)
	}
	return nil
}

func (r *BalanceRepo) applyChange(ctx context.Context, tx pgx.Tx, c domain.BalanceChange) error {
	account, asset := string(c.Account), string(c.Asset)

	ensure := `INSERT INTO balances (account, asset, spendable, locked) VALUES ($1, $2, 0, 0) ON CONFLICT (account, asset) DO NOTHING`
	if _, err := tx.Exec(ctx, ensure, account, asset); err != nil {
		return fmt.Errorf("ensure balance: %w", err)
	}

	query := `SELECT spendable, locked FROM balances WHERE account = $1 AND asset = $2 FOR UPDATE`
	b := domain.Balance{Account: c.Account, Asset: c.Asset}
	var spendable, locked int64
	if err := tx.QueryRow(ctx, query, account, asset).Scan(&spendable, &locked); err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}
	if err := uints([]*uint64{&b.Spendable, &b.Locked}, spendable, locked); err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}

	next, err := b.Apply(c)
	if err != nil {
		return fmt.Errorf("balance %s/%s: %w", account, asset, err)
	}
	v, err := bigints(next.Spendable, next.Locked)
	if err != nil {
		return err
	}

	update := `UPDATE balances SET spendable = $3, locked = $4 WHERE account = $1 AND asset = $2`
	if _, err := tx.Exec(ctx, update, account, asset, v[0], v[1]); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

func (r *BalanceRepo) list(ctx context.Context, query string, arg string) ([]domain.Balance, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var out []domain.Balance
	for rows.Next() {
		var (
			account, asset    string
			spendable, locked int64
		)
		if err := rows.Scan(&account, &asset, &spendable, &locked); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		b := domain.Balance{Account: domain.Account(account), Asset: domain.Asset(asset)}
		if err := uints([]*uint64{&b.Spendable, &b.Locked}, spendable, locked); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balances: %w", err)
	}
	return out, nil
}
