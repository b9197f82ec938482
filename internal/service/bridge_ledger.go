package service

import (
	"context"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"

	"github.com/google/uuid"
)

// BridgeLedgerImpl implements ports.BridgeLedger.
//
// The source-side escrow is an ordinary ledger lock on the sender. Each
// transfer is serialized on its own id, so a confirmation racing a failure
// report settles the transfer exactly once.
type BridgeLedgerImpl struct {
	ledger    ports.AssetLedger
	transfers ports.BridgeTransferRepository
	verifier  ports.ProofVerifier
	clock     ports.Clock
	metrics   ports.Metrics
	chains    map[string]struct{}
	locks     *keyedMutex
}

// NewBridgeLedger creates a new BridgeLedgerImpl. An empty chains list
// accepts any chain id. metrics may be nil.
func NewBridgeLedger(
	ledger ports.AssetLedger,
	transfers ports.BridgeTransferRepository,
	verifier ports.ProofVerifier,
	clock ports.Clock,
	metrics ports.Metrics,
	chains []string,
) *BridgeLedgerImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	known := make(map[string]struct{}, len(chains))
	for _, c := range chains {
		known[c] = struct{}{}
	}
	return &BridgeLedgerImpl{
		ledger:    ledger,
		transfers: transfers,
		verifier:  verifier,
		clock:     clock,
		metrics:   metrics,
		chains:    known,
		locks:     newKeyedMutex(),
	}
}

// InitiateTransfer escrows amount on the sender and records a pending transfer.
func (b *BridgeLedgerImpl) InitiateTransfer(ctx context.Context, req ports.InitiateTransferRequest) (*domain.BridgeTransfer, error) {
	if err := b.validate(req); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	if err := b.ledger.Lock(ctx, req.Sender, req.Asset, req.Amount); err != nil {
		return nil, err
	}

	t := &domain.BridgeTransfer{
		ID:          uuid.New(),
		Sender:      req.Sender,
		Recipient:   req.Recipient,
		SourceChain: req.SourceChain,
		DestChain:   req.DestChain,
		Asset:       req.Asset,
		Amount:      req.Amount,
		Status:      domain.BridgeStatusPending,
		CreatedAt:   b.clock.Now(),
	}
	if err := b.transfers.Insert(ctx, t); err != nil {
		return nil, rollback(ctx, apperror.ErrStorage(err), []func(context.Context) error{
			func(ctx context.Context) error { return b.ledger.Unlock(ctx, req.Sender, req.Asset, req.Amount) },
		})
	}

	b.metrics.BridgeTransition(t.Status)
	return t, nil
}

// ConfirmDelivery settles a pending transfer on a valid relay proof: the
// sender's escrow is burned and the recipient is credited.
func (b *BridgeLedgerImpl) ConfirmDelivery(ctx context.Context, transferID uuid.UUID, proof ports.DeliveryProof) (*domain.BridgeTransfer, error) {
	release, err := b.locks.Lock(ctx, transferID.String())
	if err != nil {
		return nil, err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	t, err := b.get(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if t.Status != domain.BridgeStatusPending {
		return nil, apperror.ErrTransferNotPending(t.ID.String(), string(t.Status))
	}
	if err := b.verifier.Verify(ctx, t, proof); err != nil {
		return nil, err
	}

	prev := t.Clone()
	t.Status = domain.BridgeStatusDelivered
	t.SettledAt = b.clock.Now()
	if err := b.transfers.Update(ctx, t); err != nil {
		return nil, apperror.ErrStorage(err)
	}
	undo := []func(context.Context) error{
		func(ctx context.Context) error { return b.transfers.Update(ctx, prev) },
	}

	if err := b.ledger.BurnLocked(ctx, t.Sender, t.Asset, t.Amount); err != nil {
		return nil, rollback(ctx, err, undo)
	}
	undo = append(undo, func(ctx context.Context) error {
		if err := b.ledger.Credit(ctx, t.Sender, t.Asset, t.Amount); err != nil {
			return err
		}
		return b.ledger.Lock(ctx, t.Sender, t.Asset, t.Amount)
	})

	if err := b.ledger.Credit(ctx, t.Recipient, t.Asset, t.Amount); err != nil {
		return nil, rollback(ctx, err, undo)
	}

	b.metrics.BridgeTransition(t.Status)
	return t, nil
}

// ReportFailure fails a pending transfer and releases the escrow to the
// sender. Reporting an already failed transfer returns it unchanged.
func (b *BridgeLedgerImpl) ReportFailure(ctx context.Context, transferID uuid.UUID) (*domain.BridgeTransfer, error) {
	release, err := b.locks.Lock(ctx, transferID.String())
	if err != nil {
		return nil, err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	t, err := b.get(ctx, transferID)
	if err != nil {
		return nil, err
	}
	switch t.Status {
	case domain.BridgeStatusFailed:
		return t, nil
	case domain.BridgeStatusDelivered:
		return nil, apperror.ErrTransferNotPending(t.ID.String(), string(t.Status))
	}

	prev := t.Clone()
	t.Status = domain.BridgeStatusFailed
	t.SettledAt = b.clock.Now()
	if err := b.transfers.Update(ctx, t); err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if err := b.ledger.Unlock(ctx, t.Sender, t.Asset, t.Amount); err != nil {
		return nil, rollback(ctx, err, []func(context.Context) error{
			func(ctx context.Context) error { return b.transfers.Update(ctx, prev) },
		})
	}

	b.metrics.BridgeTransition(t.Status)
	return t, nil
}

// GetTransfer returns a transfer by id.
func (b *BridgeLedgerImpl) GetTransfer(ctx context.Context, transferID uuid.UUID) (*domain.BridgeTransfer, error) {
	return b.get(ctx, transferID)
}

// ListPending returns transfers that have been pending for at least olderThan.
func (b *BridgeLedgerImpl) ListPending(ctx context.Context, olderThan time.Duration) ([]domain.BridgeTransfer, error) {
	if olderThan < 0 {
		return nil, apperror.Validation("older_than must not be negative")
	}
	cutoff := b.clock.Now() - int64(olderThan/time.Second)
	out, err := b.transfers.ListPending(ctx, cutoff)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	return out, nil
}

func (b *BridgeLedgerImpl) get(ctx context.Context, id uuid.UUID) (*domain.BridgeTransfer, error) {
	t, err := b.transfers.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if t == nil {
		return nil, apperror.ErrTransferNotFound(id.String())
	}
	return t, nil
}

func (b *BridgeLedgerImpl) validate(req ports.InitiateTransferRequest) error {
	if req.Amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	if req.Sender == "" || req.Recipient == "" {
		return apperror.Validation("sender and recipient are required")
	}
	if _, err := domain.ParseAsset(string(req.Asset)); err != nil {
		return apperror.Validation(err.Error())
	}
	if req.SourceChain == "" || req.DestChain == "" {
		return apperror.Validation("source and destination chains are required")
	}
	if req.SourceChain == req.DestChain {
		return apperror.Validation("source and destination chains must differ")
	}
	if len(b.chains) > 0 {
		for _, c := range []string{req.SourceChain, req.DestChain} {
			if _, ok := b.chains[c]; !ok {
				return apperror.Validation("unsupported chain " + c)
			}
		}
	}
	return nil
}
