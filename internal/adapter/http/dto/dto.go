package dto

import (
	"fmt"
	"math/big"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Amounts cross the API as whole-unit decimal strings ("1.5" COLLATERAL,
// "25000.000000" QUOTE) and are converted to smallest units at the edge.

// CreateLoanRequest is the request body for opening a loan.
type CreateLoanRequest struct {
	Collateral      string `json:"collateral" binding:"required,amount"`
	Principal       string `json:"principal" binding:"required,amount"`
	DurationSeconds int64  `json:"duration_seconds" binding:"required,gt=0"`
}

// RepayRequest is the request body for repaying a loan in full.
type RepayRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// AddLiquidityRequest is the request body for funding the pool with QUOTE.
type AddLiquidityRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// WithdrawFeesRequest is the request body for a treasury fee withdrawal.
type WithdrawFeesRequest struct {
	Asset  string `json:"asset" binding:"required,asset"`
	Amount string `json:"amount" binding:"required,amount"`
	To     string `json:"to" binding:"required,account"`
}

// CustodyRequest is the request body for deposits and withdrawals.
type CustodyRequest struct {
	Asset  string `json:"asset" binding:"required,asset"`
	Amount string `json:"amount" binding:"required,amount"`
}

// PublishPriceRequest is the request body a feeder posts. Price is quote
// whole units per whole collateral unit.
type PublishPriceRequest struct {
	Pair  string `json:"pair" binding:"required,pair"`
	Price string `json:"price" binding:"required,amount"`
	AsOf  int64  `json:"as_of" binding:"required,gt=0"`
}

// InitiateTransferRequest is the request body for a bridge transfer.
type InitiateTransferRequest struct {
	Recipient   string `json:"recipient" binding:"required,account"`
	SourceChain string `json:"source_chain" binding:"required,safe_id,max=64"`
	DestChain   string `json:"dest_chain" binding:"required,safe_id,max=64"`
	Asset       string `json:"asset" binding:"required,asset"`
	Amount      string `json:"amount" binding:"required,amount"`
}

// DeliveryProofRequest is what a relay posts to confirm a transfer.
type DeliveryProofRequest struct {
	DestTxHash string `json:"dest_tx_hash" binding:"required,safe_id,max=128"`
	IssuedAt   int64  `json:"issued_at" binding:"required,gt=0"`
	Signature  string `json:"signature" binding:"required,hexadecimal"`
}

// LoanListQuery holds the query string of GET /loans.
type LoanListQuery struct {
	Borrower string `form:"borrower" binding:"omitempty,account"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE REPAID LIQUIDATED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// QuoteQuery holds the query string of GET /loans/quote.
type QuoteQuery struct {
	Collateral string `form:"collateral" binding:"required,amount"`
}

// PendingQuery holds the query string of GET /bridge/transfers.
type PendingQuery struct {
	OlderThanSeconds int64 `form:"older_than" binding:"omitempty,min=0"`
}

// LoanResponse is a loan with amounts in whole units.
type LoanResponse struct {
	ID              uint64 `json:"id"`
	Borrower        string `json:"borrower"`
	Collateral      string `json:"collateral"`
	Principal       string `json:"principal"`
	InterestRateBps uint64 `json:"interest_rate_bps"`
	StartTimestamp  int64  `json:"start_timestamp"`
	DurationSeconds int64  `json:"duration_seconds"`
	EndTimestamp    int64  `json:"end_timestamp"`
	Status          string `json:"status"`
	ClosedAt        int64  `json:"closed_at,omitempty"`
	AmountRepaid    string `json:"amount_repaid,omitempty"`
	Liquidator      string `json:"liquidator,omitempty"`
}

// LoanListResponse wraps a page of loans.
type LoanListResponse struct {
	Items    []LoanResponse `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// InterestResponse is the accrued interest of a loan.
type InterestResponse struct {
	LoanID   uint64 `json:"loan_id"`
	Interest string `json:"interest"`
}

// RepayResponse reports a settled repayment.
type RepayResponse struct {
	Loan        LoanResponse `json:"loan"`
	TotalDue    string       `json:"total_due"`
	Interest    string       `json:"interest"`
	ProtocolFee string       `json:"protocol_fee"`
	Refund      string       `json:"refund"`
}

// LiquidationResponse reports a completed liquidation.
type LiquidationResponse struct {
	Loan                   LoanResponse  `json:"loan"`
	Price                  PriceResponse `json:"price"`
	HealthRatioBps         uint64        `json:"health_ratio_bps"`
	DebtRepaid             string        `json:"debt_repaid"`
	DebtWrittenOff         string        `json:"debt_written_off"`
	CollateralToLiquidator string        `json:"collateral_to_liquidator"`
	CollateralToProtocol   string        `json:"collateral_to_protocol"`
}

// QuoteResponse is the borrow capacity of a collateral amount.
type QuoteResponse struct {
	Collateral   string        `json:"collateral"`
	MaxPrincipal string        `json:"max_principal"`
	Price        PriceResponse `json:"price"`
}

// HealthResponse is the current health of a loan.
type HealthResponse struct {
	LoanID          uint64        `json:"loan_id"`
	Debt            string        `json:"debt"`
	CollateralValue string        `json:"collateral_value"`
	HealthRatioBps  uint64        `json:"health_ratio_bps"`
	Liquidatable    bool          `json:"liquidatable"`
	Price           PriceResponse `json:"price"`
}

// PriceResponse is an oracle reading.
type PriceResponse struct {
	Pair  string `json:"pair"`
	Price string `json:"price"`
	AsOf  int64  `json:"as_of"`
}

// BalanceResponse is one (account, asset) balance.
type BalanceResponse struct {
	Account   string `json:"account"`
	Asset     string `json:"asset"`
	Spendable string `json:"spendable"`
	Locked    string `json:"locked"`
}

// PlatformResponse is the lending pool aggregate.
type PlatformResponse struct {
	Account              string `json:"account"`
	CollateralLocked     string `json:"collateral_locked"`
	PrincipalOutstanding string `json:"principal_outstanding"`
	ProtocolFees         string `json:"protocol_fees"`
	CollateralFees       string `json:"collateral_fees"`
	ActiveLoans          uint64 `json:"active_loans"`
}

// ReconciliationResponse compares the aggregates against a recount.
type ReconciliationResponse struct {
	Consistent          bool              `json:"consistent"`
	Platform            PlatformResponse  `json:"platform"`
	SumActiveCollateral string            `json:"sum_active_collateral"`
	SumActivePrincipal  string            `json:"sum_active_principal"`
	CountActive         uint64            `json:"count_active"`
	LockedCollateral    string            `json:"locked_collateral"`
	PendingEscrow       string            `json:"pending_escrow"`
	SumBalances         map[string]string `json:"sum_balances"`
	SupplyOutstanding   map[string]string `json:"supply_outstanding"`
}

// TransferResponse is a bridge transfer.
type TransferResponse struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Recipient   string `json:"recipient"`
	SourceChain string `json:"source_chain"`
	DestChain   string `json:"dest_chain"`
	Asset       string `json:"asset"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	SettledAt   int64  `json:"settled_at,omitempty"`
}

// ParsePrice converts a whole-unit price string into domain.PriceScale fixed point.
func ParsePrice(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse price: %w", err)
	}
	scaled := d.Mul(decimal.NewFromBigInt(new(big.Int).SetUint64(domain.PriceScale), 0))
	if !scaled.IsInteger() || !scaled.IsPositive() {
		return 0, fmt.Errorf("price %s must be positive with at most 8 decimals", s)
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("price %s overflows", s)
	}
	return bi.Uint64(), nil
}

// FormatPrice renders a fixed-point price in whole quote units.
func FormatPrice(v uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -8).StringFixed(8)
}

func ToPriceResponse(p domain.Price) PriceResponse {
	return PriceResponse{Pair: p.Pair, Price: FormatPrice(p.Value), AsOf: p.AsOf}
}

func ToLoanResponse(l *domain.Loan) LoanResponse {
	resp := LoanResponse{
		ID:              l.ID,
		Borrower:        l.Borrower.String(),
		Collateral:      domain.AssetCollateral.Format(l.CollateralAmount),
		Principal:       domain.AssetQuote.Format(l.Principal),
		InterestRateBps: l.InterestRateBps,
		StartTimestamp:  l.StartTimestamp,
		DurationSeconds: l.DurationSeconds,
		EndTimestamp:    l.EndTimestamp,
		Status:          string(l.Status()),
		ClosedAt:        l.ClosedAt,
		Liquidator:      l.Liquidator.String(),
	}
	if l.AmountRepaid > 0 {
		resp.AmountRepaid = domain.AssetQuote.Format(l.AmountRepaid)
	}
	return resp
}

func ToRepayResponse(r *ports.RepayResult) RepayResponse {
	q := domain.AssetQuote
	return RepayResponse{
		Loan:        ToLoanResponse(r.Loan),
		TotalDue:    q.Format(r.TotalDue),
		Interest:    q.Format(r.Interest),
		ProtocolFee: q.Format(r.ProtocolFee),
		Refund:      q.Format(r.Refund),
	}
}

func ToLiquidationResponse(r *ports.LiquidationResult) LiquidationResponse {
	return LiquidationResponse{
		Loan:                   ToLoanResponse(r.Loan),
		Price:                  ToPriceResponse(r.Price),
		HealthRatioBps:         r.HealthRatioBps,
		DebtRepaid:             domain.AssetQuote.Format(r.DebtRepaid),
		DebtWrittenOff:         domain.AssetQuote.Format(r.DebtWrittenOff),
		CollateralToLiquidator: domain.AssetCollateral.Format(r.CollateralToLiquidator),
		CollateralToProtocol:   domain.AssetCollateral.Format(r.CollateralToProtocol),
	}
}

func ToQuoteResponse(q *ports.BorrowQuote) QuoteResponse {
	return QuoteResponse{
		Collateral:   domain.AssetCollateral.Format(q.CollateralAmount),
		MaxPrincipal: domain.AssetQuote.Format(q.MaxPrincipal),
		Price:        ToPriceResponse(q.Price),
	}
}

func ToHealthResponse(h *ports.HealthReport) HealthResponse {
	return HealthResponse{
		LoanID:          h.LoanID,
		Debt:            domain.AssetQuote.Format(h.Debt),
		CollateralValue: domain.AssetQuote.Format(h.CollateralValue),
		HealthRatioBps:  h.HealthRatioBps,
		Liquidatable:    h.Liquidatable,
		Price:           ToPriceResponse(h.Price),
	}
}

func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		Account:   b.Account.String(),
		Asset:     string(b.Asset),
		Spendable: b.Asset.Format(b.Spendable),
		Locked:    b.Asset.Format(b.Locked),
	}
}

func ToPlatformResponse(p *domain.PlatformAccount) PlatformResponse {
	return PlatformResponse{
		Account:              p.Account.String(),
		CollateralLocked:     domain.AssetCollateral.Format(p.CollateralLocked),
		PrincipalOutstanding: domain.AssetQuote.Format(p.PrincipalOutstanding),
		ProtocolFees:         domain.AssetQuote.Format(p.ProtocolFees),
		CollateralFees:       domain.AssetCollateral.Format(p.CollateralFees),
		ActiveLoans:          p.ActiveLoans,
	}
}

func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	resp := ReconciliationResponse{
		Consistent:          r.Consistent(),
		Platform:            ToPlatformResponse(&r.Platform),
		SumActiveCollateral: domain.AssetCollateral.Format(r.SumActiveCollateral),
		SumActivePrincipal:  domain.AssetQuote.Format(r.SumActivePrincipal),
		CountActive:         r.CountActive,
		LockedCollateral:    domain.AssetCollateral.Format(r.LockedCollateral),
		PendingEscrow:       domain.AssetCollateral.Format(r.PendingEscrow),
		SumBalances:         make(map[string]string, len(r.SumBalances)),
		SupplyOutstanding:   make(map[string]string, len(r.SupplyOutstanding)),
	}
	for asset, v := range r.SumBalances {
		resp.SumBalances[string(asset)] = asset.Format(v)
	}
	for asset, v := range r.SupplyOutstanding {
		resp.SupplyOutstanding[string(asset)] = asset.Format(v)
	}
	return resp
}

func ToTransferResponse(t *domain.BridgeTransfer) TransferResponse {
	return TransferResponse{
		ID:          t.ID.String(),
		Sender:      t.Sender.String(),
		Recipient:   t.Recipient.String(),
		SourceChain: t.SourceChain,
		DestChain:   t.DestChain,
		Asset:       string(t.Asset),
		Amount:      t.Asset.Format(t.Amount),
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		SettledAt:   t.SettledAt,
	}
}
