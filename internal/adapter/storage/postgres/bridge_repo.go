package postgres

import (
	"context"
	"errors"
	"fmt"

	"bitpesa-lending/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bridgeColumns = `id, sender, recipient, source_chain, dest_chain, asset, amount, status, created_at, settled_at`

// BridgeTransferRepo implements ports.BridgeTransferRepository.
type BridgeTransferRepo struct {
	pool Pool
}

// NewBridgeTransferRepo creates a new BridgeTransferRepo.
func NewBridgeTransferRepo(pool Pool) *BridgeTransferRepo {
	return &BridgeTransferRepo{pool: pool}
}

// Insert stores a new transfer.
func (r *BridgeTransferRepo) Insert(ctx context.Context, t *domain.BridgeTransfer) error {
	amount, err := toBigint(t.Amount)
	if err != nil {
		return err
	}
	query := `INSERT INTO bridge_transfers (` + bridgeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.pool.Exec(ctx, query,
		t.ID, string(t.Sender), string(t.Recipient), t.SourceChain, t.DestChain,
		string(t.Asset), amount, string(t.Status), t.CreatedAt, t.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert bridge transfer: %w", err)
	}
	return nil
}

// Get fetches a transfer by id.
func (r *BridgeTransferRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BridgeTransfer, error) {
	query := `SELECT ` + bridgeColumns + ` FROM bridge_transfers WHERE id = $1`

	t, err := scanTransfer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bridge transfer: %w", err)
	}
	return t, nil
}

// Update writes the status and settlement time of a transfer.
func (r *BridgeTransferRepo) Update(ctx context.Context, t *domain.BridgeTransfer) error {
	query := `UPDATE bridge_transfers SET status = $2, settled_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, t.ID, string(t.Status), t.SettledAt)
	if err != nil {
		return fmt.Errorf("update bridge transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update bridge transfer: %s not found", t.ID)
	}
	return nil
}

// ListPending returns pending transfers created at or before createdBefore, oldest first.
func (r *BridgeTransferRepo) ListPending(ctx context.Context, createdBefore int64) ([]domain.BridgeTransfer, error) {
	query := `SELECT ` + bridgeColumns + ` FROM bridge_transfers
		WHERE status = $1 AND created_at <= $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, string(domain.BridgeStatusPending), createdBefore)
	if err != nil {
		return nil, fmt.Errorf("list pending transfers: %w", err)
	}
	defer rows.Close()

	var out []domain.BridgeTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bridge transfer: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bridge transfers: %w", err)
	}
	return out, nil
}

func scanTransfer(row pgx.Row) (*domain.BridgeTransfer, error) {
	var (
		t                                domain.BridgeTransfer
		sender, recipient, asset, status string
		amount                           int64
	)
	err := row.Scan(
		&t.ID, &sender, &recipient, &t.SourceChain, &t.DestChain,
		&asset, &amount, &status, &t.CreatedAt, &t.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	if t.Amount, err = fromBigint(amount); err != nil {
		return nil, err
	}
	t.Sender = domain.Account(sender)
	t.Recipient = domain.Account(recipient)
	t.Asset = domain.Asset(asset)
	t.Status = domain.BridgeStatus(status)
	return &t, nil
}
