package domain

// LoanStatus is the lifecycle state of a Loan.
type LoanStatus string

const (
	LoanStatusActive     LoanStatus = "ACTIVE"
	LoanStatusRepaid     LoanStatus = "REPAID"
	LoanStatusLiquidated LoanStatus = "LIQUIDATED"
)

// Loan is a collateralized quote loan. Records are never deleted.
type Loan struct {
	ID               uint64  `json:"id"`
	Borrower         Account `json:"borrower"`
	CollateralAmount uint64  `json:"collateral_amount"`
	Principal        uint64  `json:"principal"`
	InterestRateBps  uint64  `json:"interest_rate_bps"`
	StartTimestamp   int64   `json:"start_timestamp"`
	DurationSeconds  int64   `json:"duration_seconds"`
	EndTimestamp     int64   `json:"end_timestamp"`
	Active           bool    `json:"active"`
	Liquidated       bool    `json:"liquidated"`
	ClosedAt         int64   `json:"closed_at,omitempty"`
	AmountRepaid     uint64  `json:"amount_repaid,omitempty"`
	Liquidator       Account `json:"liquidator,omitempty"`

	// Version is the stored revision the loan was read at. Updates succeed
	// only against that revision and advance it.
	Version uint64 `json:"-"`
}

// Status derives the lifecycle state from the active/liquidated flags.
func (l *Loan) Status() LoanStatus {
	switch {
	case l.Active:
		return LoanStatusActive
	case l.Liquidated:
		return LoanStatusLiquidated
	default:
		return LoanStatusRepaid
	}
}

// Clone returns a copy safe to mutate.
func (l *Loan) Clone() *Loan {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// IsOverdue reports whether the term has elapsed at now.
func (l *Loan) IsOverdue(now int64) bool {
	return l.Active && now > l.EndTimestamp
}

// AccruedInterest is simple interest on the principal:
// elapsed * principal * rateBps / (SecondsPerYear * 10000), truncated once.
// For a closed loan the clock stops at ClosedAt.
func (l *Loan) AccruedInterest(now int64) (uint64, error) {
	end := now
	if !l.Active && l.ClosedAt != 0 {
		end = l.ClosedAt
	}
	if end <= l.StartTimestamp {
		return 0, nil
	}
	elapsed := uint64(end - l.StartTimestamp)
	return MulDiv(
		[]uint64{elapsed, l.Principal, l.InterestRateBps},
		[]uint64{SecondsPerYear, BasisPoints},
	)
}

// TotalDue returns principal plus accrued interest at now.
func (l *Loan) TotalDue(now int64) (principal, interest, total uint64, err error) {
	interest, err = l.AccruedInterest(now)
	if err != nil {
		return 0, 0, 0, err
	}
	total, ok := AddChecked(l.Principal, interest)
	if !ok {
		return 0, 0, 0, ErrArithmeticOverflow
	}
	return l.Principal, interest, total, nil
}
