package domain

import "github.com/google/uuid"

// BridgeStatus is the state of a cross-chain transfer.
type BridgeStatus string

const (
	BridgeStatusPending   BridgeStatus = "PENDING"
	BridgeStatusDelivered BridgeStatus = "DELIVERED"
	BridgeStatusFailed    BridgeStatus = "FAILED"
)

// BridgeTransfer is a lock-on-source / release-on-destination movement.
// Pending moves to Delivered on a confirmed proof or to Failed, which
// returns the escrow to the sender. Both outcomes are terminal.
type BridgeTransfer struct {
	ID          uuid.UUID    `json:"id"`
	Sender      Account      `json:"sender"`
	Recipient   Account      `json:"recipient"`
	SourceChain string       `json:"source_chain"`
	DestChain   string       `json:"dest_chain"`
	Asset       Asset        `json:"asset"`
	Amount      uint64       `json:"amount"`
	Status      BridgeStatus `json:"status"`
	CreatedAt   int64        `json:"created_at"`
	SettledAt   int64        `json:"settled_at,omitempty"`
}

// IsTerminal returns true once the transfer has been delivered or failed.
func (t *BridgeTransfer) IsTerminal() bool {
	return t.Status == BridgeStatusDelivered || t.Status == BridgeStatusFailed
}

// Clone returns a copy safe to mutate.
func (t *BridgeTransfer) Clone() *BridgeTransfer {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
