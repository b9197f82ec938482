package domain

import "errors"

// Balance is the (account, asset) entry of the ledger, split into the
// spendable part and the part locked as loan collateral or bridge escrow.
type Balance struct {
	Account   Account `json:"account"`
	Asset     Asset   `json:"asset"`
	Spendable uint64  `json:"spendable"`
	Locked    uint64  `json:"locked"`
}

// Total returns spendable plus locked. Callers must have checked overflow
// when the entry was written.
func (b Balance) Total() uint64 {
	return b.Spendable + b.Locked
}

// Supply tracks issuance and burn of an asset inside the ledger.
// Conservation: Σ Balance.Total() over the asset == Issued - Burned.
type Supply struct {
	Asset  Asset  `json:"asset"`
	Issued uint64 `json:"issued"`
	Burned uint64 `json:"burned"`
}

// Outstanding returns the net supply tracked by the ledger.
func (s Supply) Outstanding() uint64 {
	return s.Issued - s.Burned
}

var (
	// ErrInsufficientFunds is returned when a change takes more out of a
	// part of a balance than it holds.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrVersionConflict is returned when a versioned row changed after it
	// was read.
	ErrVersionConflict = errors.New("version conflict")
)

// BalanceChange is a movement on one (account, asset) entry. Out amounts
// are checked against the stored balance before In amounts are added.
type BalanceChange struct {
	Account      Account
	Asset        Asset
	SpendableIn  uint64
	SpendableOut uint64
	LockedIn     uint64
	LockedOut    uint64
}

// Apply returns b with c applied, or ErrInsufficientFunds when an Out
// amount is not covered and ErrArithmeticOverflow when an In amount would
// overflow a part or the entry total.
func (b Balance) Apply(c BalanceChange) (Balance, error) {
	if b.Spendable < c.SpendableOut || b.Locked < c.LockedOut {
		return Balance{}, ErrInsufficientFunds
	}
	b.Spendable -= c.SpendableOut
	b.Locked -= c.LockedOut

	var ok bool
	if b.Spendable, ok = AddChecked(b.Spendable, c.SpendableIn); !ok {
		return Balance{}, ErrArithmeticOverflow
	}
	if b.Locked, ok = AddChecked(b.Locked, c.LockedIn); !ok {
		return Balance{}, ErrArithmeticOverflow
	}
	if _, ok = AddChecked(b.Spendable, b.Locked); !ok {
		return Balance{}, ErrArithmeticOverflow
	}
	return b, nil
}

// BalanceUpdate is the set of changes one ledger operation makes, plus the
// supply movement of Asset. Repositories apply it atomically against the
// stored rows; nothing is written when any change fails.
type BalanceUpdate struct {
	Changes []BalanceChange
	Asset   Asset
	Issued  uint64
	Burned  uint64
}
