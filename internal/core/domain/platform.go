package domain

// PlatformAccount holds the aggregate counters of the lending pool. They are
// maintained incrementally and must equal the sums over active loans.
type PlatformAccount struct {
	Account              Account `json:"account"`
	CollateralLocked     uint64  `json:"collateral_locked"`
	PrincipalOutstanding uint64  `json:"principal_outstanding"`
	ProtocolFees         uint64  `json:"protocol_fees"`   // quote units available to the treasury
	CollateralFees       uint64  `json:"collateral_fees"` // collateral kept from liquidations
	ActiveLoans          uint64  `json:"active_loans"`
	Version              uint64  `json:"-"` // stored revision, see Loan.Version
}

// Reconciliation compares the incremental aggregates against a recount.
type Reconciliation struct {
	Platform            PlatformAccount  `json:"platform"`
	SumActiveCollateral uint64           `json:"sum_active_collateral"`
	SumActivePrincipal  uint64           `json:"sum_active_principal"`
	CountActive         uint64           `json:"count_active"`
	SumBalances         map[Asset]uint64 `json:"sum_balances"`
	SupplyOutstanding   map[Asset]uint64 `json:"supply_outstanding"`
	LockedCollateral    uint64           `json:"locked_collateral"` // every locked collateral row
	PendingEscrow       uint64           `json:"pending_escrow"`    // collateral held by pending bridge transfers
}

// Consistent reports whether every invariant holds. Locked collateral is
// owned by active loans or by pending bridge escrow and nothing else.
func (r Reconciliation) Consistent() bool {
	if r.Platform.CollateralLocked != r.SumActiveCollateral ||
		r.Platform.PrincipalOutstanding != r.SumActivePrincipal ||
		r.Platform.ActiveLoans != r.CountActive {
		return false
	}
	if r.SumActiveCollateral > r.LockedCollateral ||
		r.LockedCollateral-r.SumActiveCollateral != r.PendingEscrow {
		return false
	}
	for asset, sum := range r.SumBalances {
		if r.SupplyOutstanding[asset] != sum {
			return false
		}
	}
	return true
}
