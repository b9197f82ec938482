package ports

import (
	"context"
	"time"

	"bitpesa-lending/internal/core/domain"

	"github.com/google/uuid"
)

// Clock supplies logical time in unix seconds.
type Clock interface {
	Now() int64
}

// PriceFeed is the raw source behind the oracle (aggregator snapshot, cache).
type PriceFeed interface {
	Latest(ctx context.Context, pair string) (domain.Price, error)
}

// PriceStore is a PriceFeed that feeders can publish into.
type PriceStore interface {
	PriceFeed
	Publish(ctx context.Context, price domain.Price) error
}

// PriceOracle returns a fresh price or fails with StalePrice / OracleUnavailable.
// It never retries.
type PriceOracle interface {
	GetPrice(ctx context.Context, pair string) (domain.Price, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(account domain.Account, roles []domain.Role) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Account domain.Account
	Roles   []domain.Role
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// ProofVerifier decides whether a delivery proof for t came from an
// authorized relay of t.DestChain.
type ProofVerifier interface {
	Verify(ctx context.Context, t *domain.BridgeTransfer, proof DeliveryProof) error
}

// DeliveryProof is what a relay submits after delivering on the destination chain.
type DeliveryProof struct {
	Relayer    string
	DestTxHash string
	IssuedAt   int64
	Signature  string
}

// AuditService records audit trail entries.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// Metrics receives engine events. Implementations must be safe for concurrent use.
type Metrics interface {
	LoanCreated(principal uint64)
	LoanRepaid(interest uint64)
	LoanLiquidated(collateral uint64)
	OracleFailure(reason string)
	BridgeTransition(status domain.BridgeStatus)
}

// --- Service Ports (Business Logic) ---

// AssetLedger tracks spendable and locked balances per (account, asset).
// Every operation is atomic and serialized per account.
type AssetLedger interface {
	Credit(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error
	Debit(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error
	Transfer(ctx context.Context, from, to domain.Account, asset domain.Asset, amount uint64) error
	Lock(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error
	Unlock(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error
	// Seize moves locked funds of from into the spendable balance of to.
	Seize(ctx context.Context, from, to domain.Account, asset domain.Asset, amount uint64) error
	// BurnLocked removes locked funds of account from circulation.
	BurnLocked(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error
	Balance(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error)
	Balances(ctx context.Context, account domain.Account) ([]domain.Balance, error)
	AssetBalances(ctx context.Context, asset domain.Asset) ([]domain.Balance, error)
	Supply(ctx context.Context, asset domain.Asset) (domain.Supply, error)
}

// CustodyService moves assets across the ledger boundary on behalf of the
// custodian that watches the chain.
type CustodyService interface {
	Deposit(ctx context.Context, caller domain.Caller, account domain.Account, asset domain.Asset, amount uint64) (domain.Balance, error)
	Withdraw(ctx context.Context, caller domain.Caller, account domain.Account, asset domain.Asset, amount uint64) (domain.Balance, error)
}

// LendingEngine manages the loan lifecycle against the ledger and oracle.
type LendingEngine interface {
	CreateLoan(ctx context.Context, req CreateLoanRequest) (*domain.Loan, error)
	CalculateAccruedInterest(ctx context.Context, loanID uint64) (uint64, error)
	RepayLoan(ctx context.Context, req RepayRequest) (*RepayResult, error)
	Liquidate(ctx context.Context, caller domain.Caller, loanID uint64) (*LiquidationResult, error)
	AddLiquidity(ctx context.Context, caller domain.Caller, amount uint64) error
	WithdrawFees(ctx context.Context, caller domain.Caller, req WithdrawFeesRequest) error
	GetLoan(ctx context.Context, loanID uint64) (*domain.Loan, error)
	ListLoans(ctx context.Context, params LoanListParams) ([]domain.Loan, error)
	MaxBorrowable(ctx context.Context, collateralAmount uint64) (*BorrowQuote, error)
	HealthRatio(ctx context.Context, loanID uint64) (*HealthReport, error)
	Platform(ctx context.Context) (*domain.PlatformAccount, error)
	Reconcile(ctx context.Context) (*domain.Reconciliation, error)
}

// CreateLoanRequest holds validated input for loan creation.
type CreateLoanRequest struct {
	Borrower         domain.Account
	CollateralAmount uint64
	Principal        uint64
	DurationSeconds  int64
}

// RepayRequest holds input for a full repayment. An empty Payer means the borrower pays.
type RepayRequest struct {
	LoanID uint64
	Payer  domain.Account
	Amount uint64
}

// RepayResult reports what was settled. Only TotalDue leaves the payer;
// Refund is the part of the offered amount that was never taken.
type RepayResult struct {
	Loan        *domain.Loan
	TotalDue    uint64
	Interest    uint64
	ProtocolFee uint64
	Refund      uint64
}

// LiquidationResult reports the outcome of a successful liquidation.
type LiquidationResult struct {
	Loan                   *domain.Loan
	Price                  domain.Price
	HealthRatioBps         uint64
	DebtRepaid             uint64 // quote paid in by the liquidator
	DebtWrittenOff         uint64 // debt extinguished without payment
	CollateralToLiquidator uint64
	CollateralToProtocol   uint64
}

// WithdrawFeesRequest moves accumulated protocol fees of Asset to To.
type WithdrawFeesRequest struct {
	Asset  domain.Asset
	Amount uint64
	To     domain.Account
}

// BorrowQuote is the borrow capacity of a collateral amount at the current price.
type BorrowQuote struct {
	CollateralAmount uint64
	MaxPrincipal     uint64
	Price            domain.Price
}

// HealthReport is the current health of an active loan.
type HealthReport struct {
	LoanID          uint64
	Debt            uint64
	CollateralValue uint64
	HealthRatioBps  uint64
	Liquidatable    bool
	Price           domain.Price
}

// BridgeLedger accounts for two-phase cross-chain transfers.
type BridgeLedger interface {
	InitiateTransfer(ctx context.Context, req InitiateTransferRequest) (*domain.BridgeTransfer, error)
	ConfirmDelivery(ctx context.Context, transferID uuid.UUID, proof DeliveryProof) (*domain.BridgeTransfer, error)
	ReportFailure(ctx context.Context, transferID uuid.UUID) (*domain.BridgeTransfer, error)
	GetTransfer(ctx context.Context, transferID uuid.UUID) (*domain.BridgeTransfer, error)
	ListPending(ctx context.Context, olderThan time.Duration) ([]domain.BridgeTransfer, error)
}

// InitiateTransferRequest holds input for a new bridge transfer.
type InitiateTransferRequest struct {
	Sender      domain.Account
	Recipient   domain.Account
	SourceChain string
	DestChain   string
	Asset       domain.Asset
	Amount      uint64
}
