package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
)

const platformLockKey = "platform"

// LendingParams configures LendingEngineImpl.
type LendingParams struct {
	Pair                        string
	PlatformAccount             domain.Account
	RequiredCollateralRatioBps  uint64
	LiquidationThresholdBps     uint64
	LiquidationProtocolShareBps uint64
	ProtocolFeeBps              uint64
	MinDurationSeconds          int64
	MaxDurationSeconds          int64
	Rates                       domain.RateSchedule
	PermissionlessLiquidation   bool
	// LiquidatorRepaysDebt makes the liquidator pay the outstanding debt
	// into the pool. By default the pool writes the principal off and the
	// liquidator pays nothing.
	LiquidatorRepaysDebt bool
	OracleRetryBackoff   time.Duration
}

// LendingEngineImpl implements ports.LendingEngine.
//
// Lock order is always borrower account, then platform. Once both are held
// the operation runs to completion: state changes on the loan and platform
// rows are written before any ledger movement, and every failure after the
// first write is compensated before the error is returned.
type LendingEngineImpl struct {
	params       LendingParams
	oracle       ports.PriceOracle
	ledger       ports.AssetLedger
	loans        ports.LoanRepository
	platform     ports.PlatformRepository
	clock        ports.Clock
	metrics      ports.Metrics
	escrow       ports.BridgeTransferRepository
	accountLocks *keyedMutex
	platformLock *keyedMutex
}

// NewLendingEngine creates a new LendingEngineImpl. metrics may be nil.
func NewLendingEngine(
	params LendingParams,
	oracle ports.PriceOracle,
	ledger ports.AssetLedger,
	loans ports.LoanRepository,
	platform ports.PlatformRepository,
	clock ports.Clock,
	metrics ports.Metrics,
) *LendingEngineImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &LendingEngineImpl{
		params:       params,
		oracle:       oracle,
		ledger:       ledger,
		loans:        loans,
		platform:     platform,
		clock:        clock,
		metrics:      metrics,
		accountLocks: newKeyedMutex(),
		platformLock: newKeyedMutex(),
	}
}

// TrackBridgeEscrow makes Reconcile count collateral escrowed by pending
// bridge transfers in transfers as owned locked collateral.
func (e *LendingEngineImpl) TrackBridgeEscrow(transfers ports.BridgeTransferRepository) *LendingEngineImpl {
	e.escrow = transfers
	return e
}

// CreateLoan locks collateral, disburses principal from the platform pool
// and records the loan. No loan record exists on any failure path.
func (e *LendingEngineImpl) CreateLoan(ctx context.Context, req ports.CreateLoanRequest) (*domain.Loan, error) {
	if req.CollateralAmount == 0 || req.Principal == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Borrower == "" {
		return nil, apperror.Validation("borrower is required")
	}
	if req.DurationSeconds < e.params.MinDurationSeconds || req.DurationSeconds > e.params.MaxDurationSeconds {
		return nil, apperror.ErrInvalidLoanDuration(e.params.MinDurationSeconds, e.params.MaxDurationSeconds)
	}
	rate, ok := e.params.Rates.RateFor(req.DurationSeconds)
	if !ok {
		return nil, apperror.ErrInvalidLoanDuration(e.params.MinDurationSeconds, e.params.MaxDurationSeconds)
	}

	release, err := e.lockAccountAndPlatform(ctx, req.Borrower)
	if err != nil {
		return nil, err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	price, err := e.quotePrice(ctx)
	if err != nil {
		return nil, err
	}
	maxPrincipal, err := price.MaxPrincipal(req.CollateralAmount, e.params.RequiredCollateralRatioBps)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	if req.Principal > maxPrincipal {
		return nil, apperror.ErrLoanExceedsCollateralRatio(maxPrincipal)
	}

	id, err := e.loans.NextID(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}

	if err := e.ledger.Lock(ctx, req.Borrower, domain.AssetCollateral, req.CollateralAmount); err != nil {
		if apperror.Is(err, apperror.CodeInsufficientSpendableBalance) {
			return nil, apperror.ErrInsufficientCollateral(err)
		}
		return nil, err
	}
	undo := []func(context.Context) error{
		func(ctx context.Context) error {
			return e.ledger.Unlock(ctx, req.Borrower, domain.AssetCollateral, req.CollateralAmount)
		},
	}

	platform, err := e.platformState(ctx)
	if err != nil {
		return nil, rollback(ctx, err, undo)
	}
	available, err := e.availableLiquidity(ctx, platform)
	if err != nil {
		return nil, rollback(ctx, err, undo)
	}
	if available < req.Principal {
		return nil, rollback(ctx, apperror.ErrInsufficientPlatformLiquidity(), undo)
	}

	now := e.clock.Now()
	loan := &domain.Loan{
		ID:               id,
		Borrower:         req.Borrower,
		CollateralAmount: req.CollateralAmount,
		Principal:        req.Principal,
		InterestRateBps:  rate,
		StartTimestamp:   now,
		DurationSeconds:  req.DurationSeconds,
		EndTimestamp:     now + req.DurationSeconds,
		Active:           true,
	}
	next, err := openAggregates(platform, loan)
	if err != nil {
		return nil, rollback(ctx, err, undo)
	}

	if err := e.ledger.Transfer(ctx, e.params.PlatformAccount, req.Borrower, domain.AssetQuote, req.Principal); err != nil {
		if apperror.Is(err, apperror.CodeInsufficientBalance) {
			err = apperror.ErrInsufficientPlatformLiquidity()
		}
		return nil, rollback(ctx, err, undo)
	}
	undo = append(undo, func(ctx context.Context) error {
		return e.ledger.Transfer(ctx, req.Borrower, e.params.PlatformAccount, domain.AssetQuote, req.Principal)
	})

	if err := e.platform.Save(ctx, next); err != nil {
		return nil, rollback(ctx, writeErr(err), undo)
	}
	undo = append(undo, e.restorePlatform(platform, next))

	if err := e.loans.Insert(ctx, loan); err != nil {
		return nil, rollback(ctx, apperror.ErrStorage(err), undo)
	}

	e.metrics.LoanCreated(loan.Principal)
	return loan, nil
}

// CalculateAccruedInterest returns the simple interest accrued so far.
func (e *LendingEngineImpl) CalculateAccruedInterest(ctx context.Context, loanID uint64) (uint64, error) {
	loan, err := e.getLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	if !loan.Active {
		return 0, apperror.ErrLoanNotActive(loanID)
	}
	interest, err := loan.AccruedInterest(e.clock.Now())
	if err != nil {
		return 0, apperror.ErrAmountOverflow()
	}
	return interest, nil
}

// RepayLoan settles principal plus accrued interest in full and releases the
// collateral. Only the total due leaves the payer.
func (e *LendingEngineImpl) RepayLoan(ctx context.Context, req ports.RepayRequest) (*ports.RepayResult, error) {
	loan, err := e.getLoan(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}

	release, err := e.lockAccountAndPlatform(ctx, loan.Borrower)
	if err != nil {
		return nil, err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	if loan, err = e.getLoan(ctx, req.LoanID); err != nil {
		return nil, err
	}
	if !loan.Active {
		return nil, apperror.ErrLoanNotActive(loan.ID)
	}

	now := e.clock.Now()
	_, interest, totalDue, err := loan.TotalDue(now)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	if req.Amount < totalDue {
		return nil, apperror.ErrRepaymentTooLow(totalDue)
	}
	payer := req.Payer
	if payer == "" {
		payer = loan.Borrower
	}
	if err := e.requireSpendable(ctx, payer, domain.AssetQuote, totalDue); err != nil {
		return nil, err
	}
	fee, err := domain.MulDiv([]uint64{interest, e.params.ProtocolFeeBps}, []uint64{domain.BasisPoints})
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}

	platform, err := e.platformState(ctx)
	if err != nil {
		return nil, err
	}
	next, err := closeAggregates(platform, loan)
	if err != nil {
		return nil, err
	}
	if next.ProtocolFees, err = addFee(next.ProtocolFees, fee); err != nil {
		return nil, err
	}

	prev := loan.Clone()
	loan.Active = false
	loan.ClosedAt = now
	loan.AmountRepaid = totalDue

	undo, err := e.persistClose(ctx, prev, loan, platform, next)
	if err != nil {
		return nil, err
	}

	if err := e.ledger.Transfer(ctx, payer, e.params.PlatformAccount, domain.AssetQuote, totalDue); err != nil {
		return nil, rollback(ctx, err, undo)
	}
	undo = append(undo, func(ctx context.Context) error {
		return e.ledger.Transfer(ctx, e.params.PlatformAccount, payer, domain.AssetQuote, totalDue)
	})

	if err := e.ledger.Unlock(ctx, loan.Borrower, domain.AssetCollateral, loan.CollateralAmount); err != nil {
		return nil, rollback(ctx, err, undo)
	}

	e.metrics.LoanRepaid(interest)
	return &ports.RepayResult{
		Loan:        loan,
		TotalDue:    totalDue,
		Interest:    interest,
		ProtocolFee: fee,
		Refund:      req.Amount - totalDue,
	}, nil
}

// Liquidate force-closes an undercollateralized loan on a fresh price. The
// collateral is seized and split between the liquidator and the protocol,
// and the borrower's debt is extinguished. The pool absorbs the principal
// unless LiquidatorRepaysDebt is set, in which case the liquidator pays the
// debt in quote first.
func (e *LendingEngineImpl) Liquidate(ctx context.Context, caller domain.Caller, loanID uint64) (*ports.LiquidationResult, error) {
	if !e.params.PermissionlessLiquidation && !caller.Has(domain.RoleLiquidator) {
		return nil, apperror.ErrUnauthorized(string(domain.RoleLiquidator))
	}
	if caller.Account == "" {
		return nil, apperror.Validation("liquidator account is required")
	}

	loan, err := e.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	release, err := e.lockAccountAndPlatform(ctx, loan.Borrower)
	if err != nil {
		return nil, err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	if loan, err = e.getLoan(ctx, loanID); err != nil {
		return nil, err
	}
	if !loan.Active {
		return nil, apperror.ErrLoanNotActive(loanID)
	}

	price, err := e.oracle.GetPrice(ctx, e.params.Pair)
	if err != nil {
		e.metrics.OracleFailure(apperror.Code(err))
		return nil, apperror.ErrPriceOracleFailed(err)
	}

	now := e.clock.Now()
	_, interest, debt, err := loan.TotalDue(now)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	below, err := price.BelowThreshold(loan.CollateralAmount, debt, e.params.LiquidationThresholdBps)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	if !below {
		return nil, apperror.ErrLoanNotUndercollateralized()
	}
	health, err := price.HealthRatioBps(loan.CollateralAmount, debt)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}

	share, err := domain.MulDiv([]uint64{loan.CollateralAmount, e.params.LiquidationProtocolShareBps}, []uint64{domain.BasisPoints})
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	toLiquidator := loan.CollateralAmount - share

	var repaid, fee uint64
	if e.params.LiquidatorRepaysDebt {
		repaid = debt
		if fee, err = domain.MulDiv([]uint64{interest, e.params.ProtocolFeeBps}, []uint64{domain.BasisPoints}); err != nil {
			return nil, apperror.ErrAmountOverflow()
		}
		if err := e.requireSpendable(ctx, caller.Account, domain.AssetQuote, repaid); err != nil {
			return nil, err
		}
	}

	platform, err := e.platformState(ctx)
	if err != nil {
		return nil, err
	}
	next, err := closeAggregates(platform, loan)
	if err != nil {
		return nil, err
	}
	if next.ProtocolFees, err = addFee(next.ProtocolFees, fee); err != nil {
		return nil, err
	}
	if next.CollateralFees, err = addFee(next.CollateralFees, share); err != nil {
		return nil, err
	}

	prev := loan.Clone()
	loan.Active = false
	loan.Liquidated = true
	loan.ClosedAt = now
	loan.AmountRepaid = repaid
	loan.Liquidator = caller.Account

	undo, err := e.persistClose(ctx, prev, loan, platform, next)
	if err != nil {
		return nil, err
	}

	if repaid > 0 {
		if err := e.ledger.Transfer(ctx, caller.Account, e.params.PlatformAccount, domain.AssetQuote, repaid); err != nil {
			return nil, rollback(ctx, err, undo)
		}
		undo = append(undo, func(ctx context.Context) error {
			return e.ledger.Transfer(ctx, e.params.PlatformAccount, caller.Account, domain.AssetQuote, repaid)
		})
	}

	if toLiquidator > 0 {
		if err := e.ledger.Seize(ctx, loan.Borrower, caller.Account, domain.AssetCollateral, toLiquidator); err != nil {
			return nil, rollback(ctx, err, undo)
		}
		undo = append(undo, e.restoreSeized(caller.Account, loan.Borrower, toLiquidator))
	}
	if share > 0 {
		if err := e.ledger.Seize(ctx, loan.Borrower, e.params.PlatformAccount, domain.AssetCollateral, share); err != nil {
			return nil, rollback(ctx, err, undo)
		}
	}

	e.metrics.LoanLiquidated(loan.CollateralAmount)
	return &ports.LiquidationResult{
		Loan:                   loan,
		Price:                  price,
		HealthRatioBps:         health,
		DebtRepaid:             repaid,
		DebtWrittenOff:         debt - repaid,
		CollateralToLiquidator: toLiquidator,
		CollateralToProtocol:   share,
	}, nil
}

// AddLiquidity moves quote from the owner into the platform pool.
func (e *LendingEngineImpl) AddLiquidity(ctx context.Context, caller domain.Caller, amount uint64) error {
	if !caller.Has(domain.RoleOwner) {
		return apperror.ErrUnauthorized(string(domain.RoleOwner))
	}
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	release, err := e.platformLock.Lock(ctx, platformLockKey)
	if err != nil {
		return err
	}
	defer release()

	return e.ledger.Transfer(context.WithoutCancel(ctx), caller.Account, e.params.PlatformAccount, domain.AssetQuote, amount)
}

// WithdrawFees pays accumulated protocol fees out of the platform account.
func (e *LendingEngineImpl) WithdrawFees(ctx context.Context, caller domain.Caller, req ports.WithdrawFeesRequest) error {
	if !caller.Has(domain.RoleTreasury) {
		return apperror.ErrUnauthorized(string(domain.RoleTreasury))
	}
	if req.Amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	if _, err := domain.ParseAsset(string(req.Asset)); err != nil {
		return apperror.Validation(err.Error())
	}
	to := req.To
	if to == "" {
		to = caller.Account
	}

	release, err := e.platformLock.Lock(ctx, platformLockKey)
	if err != nil {
		return err
	}
	defer release()
	ctx = context.WithoutCancel(ctx)

	platform, err := e.platformState(ctx)
	if err != nil {
		return err
	}
	next := *platform
	counter := &next.ProtocolFees
	if req.Asset == domain.AssetCollateral {
		counter = &next.CollateralFees
	}
	if *counter < req.Amount {
		return apperror.ErrInsufficientBalance()
	}
	*counter -= req.Amount

	if err := e.platform.Save(ctx, &next); err != nil {
		return writeErr(err)
	}
	if err := e.ledger.Transfer(ctx, e.params.PlatformAccount, to, req.Asset, req.Amount); err != nil {
		return rollback(ctx, err, []func(context.Context) error{e.restorePlatform(platform, &next)})
	}
	return nil
}

// GetLoan returns a loan by id.
func (e *LendingEngineImpl) GetLoan(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	return e.getLoan(ctx, loanID)
}

// ListLoans returns loans matching params.
func (e *LendingEngineImpl) ListLoans(ctx context.Context, params ports.LoanListParams) ([]domain.Loan, error) {
	loans, err := e.loans.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	return loans, nil
}

// MaxBorrowable quotes the largest principal collateralAmount can back now.
func (e *LendingEngineImpl) MaxBorrowable(ctx context.Context, collateralAmount uint64) (*ports.BorrowQuote, error) {
	if collateralAmount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	price, err := e.oracle.GetPrice(ctx, e.params.Pair)
	if err != nil {
		e.metrics.OracleFailure(apperror.Code(err))
		return nil, apperror.ErrPriceOracleFailed(err)
	}
	maxPrincipal, err := price.MaxPrincipal(collateralAmount, e.params.RequiredCollateralRatioBps)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	return &ports.BorrowQuote{CollateralAmount: collateralAmount, MaxPrincipal: maxPrincipal, Price: price}, nil
}

// HealthRatio reports the current health of an active loan.
func (e *LendingEngineImpl) HealthRatio(ctx context.Context, loanID uint64) (*ports.HealthReport, error) {
	loan, err := e.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.Active {
		return nil, apperror.ErrLoanNotActive(loanID)
	}
	price, err := e.oracle.GetPrice(ctx, e.params.Pair)
	if err != nil {
		e.metrics.OracleFailure(apperror.Code(err))
		return nil, apperror.ErrPriceOracleFailed(err)
	}
	_, _, debt, err := loan.TotalDue(e.clock.Now())
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	value, err := price.CollateralValue(loan.CollateralAmount)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	health, err := price.HealthRatioBps(loan.CollateralAmount, debt)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	below, err := price.BelowThreshold(loan.CollateralAmount, debt, e.params.LiquidationThresholdBps)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	return &ports.HealthReport{
		LoanID:          loanID,
		Debt:            debt,
		CollateralValue: value,
		HealthRatioBps:  health,
		Liquidatable:    below,
		Price:           price,
	}, nil
}

// Platform returns the current pool aggregates.
func (e *LendingEngineImpl) Platform(ctx context.Context) (*domain.PlatformAccount, error) {
	return e.platformState(ctx)
}

// Reconcile recounts active loans and ledger balances under the platform
// lock and reports them next to the incremental aggregates.
func (e *LendingEngineImpl) Reconcile(ctx context.Context) (*domain.Reconciliation, error) {
	release, err := e.platformLock.Lock(ctx, platformLockKey)
	if err != nil {
		return nil, err
	}
	defer release()

	platform, err := e.platformState(ctx)
	if err != nil {
		return nil, err
	}
	active := domain.LoanStatusActive
	loans, err := e.loans.List(ctx, ports.LoanListParams{Status: &active})
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}

	r := &domain.Reconciliation{
		Platform:          *platform,
		SumBalances:       make(map[domain.Asset]uint64),
		SupplyOutstanding: make(map[domain.Asset]uint64),
	}
	for _, l := range loans {
		r.SumActiveCollateral += l.CollateralAmount
		r.SumActivePrincipal += l.Principal
		r.CountActive++
	}
	for _, asset := range domain.Assets {
		rows, err := e.ledger.AssetBalances(ctx, asset)
		if err != nil {
			return nil, err
		}
		var sum uint64
		for _, b := range rows {
			sum += b.Total()
			if asset == domain.AssetCollateral {
				r.LockedCollateral += b.Locked
			}
		}
		supply, err := e.ledger.Supply(ctx, asset)
		if err != nil {
			return nil, err
		}
		r.SumBalances[asset] = sum
		r.SupplyOutstanding[asset] = supply.Outstanding()
	}
	if e.escrow != nil {
		pending, err := e.escrow.ListPending(ctx, math.MaxInt64)
		if err != nil {
			return nil, apperror.ErrStorage(err)
		}
		for _, t := range pending {
			if t.Asset == domain.AssetCollateral {
				r.PendingEscrow += t.Amount
			}
		}
	}
	return r, nil
}

// quotePrice reads the oracle for loan creation, retrying a retryable
// failure exactly once after the configured backoff.
func (e *LendingEngineImpl) quotePrice(ctx context.Context) (domain.Price, error) {
	price, err := e.oracle.GetPrice(ctx, e.params.Pair)
	if err == nil {
		return price, nil
	}
	e.metrics.OracleFailure(apperror.Code(err))
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && !appErr.Retryable() {
		return domain.Price{}, apperror.ErrPriceOracleFailed(err)
	}

	if e.params.OracleRetryBackoff > 0 {
		time.Sleep(e.params.OracleRetryBackoff)
	}
	price, err = e.oracle.GetPrice(ctx, e.params.Pair)
	if err != nil {
		e.metrics.OracleFailure(apperror.Code(err))
		return domain.Price{}, apperror.ErrPriceOracleFailed(err)
	}
	return price, nil
}

func (e *LendingEngineImpl) lockAccountAndPlatform(ctx context.Context, account domain.Account) (func(), error) {
	releaseAccount, err := e.accountLocks.Lock(ctx, string(account))
	if err != nil {
		return nil, err
	}
	releasePlatform, err := e.platformLock.Lock(ctx, platformLockKey)
	if err != nil {
		releaseAccount()
		return nil, err
	}
	return func() {
		releasePlatform()
		releaseAccount()
	}, nil
}

func (e *LendingEngineImpl) getLoan(ctx context.Context, id uint64) (*domain.Loan, error) {
	loan, err := e.loans.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if loan == nil {
		return nil, apperror.ErrLoanNotFound(id)
	}
	return loan, nil
}

func (e *LendingEngineImpl) platformState(ctx context.Context) (*domain.PlatformAccount, error) {
	p, err := e.platform.Get(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	if p == nil {
		p = &domain.PlatformAccount{}
	}
	if p.Account == "" {
		p.Account = e.params.PlatformAccount
	}
	return p, nil
}

// availableLiquidity is the platform's spendable quote minus fees owed to the treasury.
func (e *LendingEngineImpl) availableLiquidity(ctx context.Context, platform *domain.PlatformAccount) (uint64, error) {
	b, err := e.ledger.Balance(ctx, e.params.PlatformAccount, domain.AssetQuote)
	if err != nil {
		return 0, err
	}
	if b.Spendable <= platform.ProtocolFees {
		return 0, nil
	}
	return b.Spendable - platform.ProtocolFees, nil
}

func (e *LendingEngineImpl) requireSpendable(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	b, err := e.ledger.Balance(ctx, account, asset)
	if err != nil {
		return err
	}
	if b.Spendable < amount {
		return apperror.ErrInsufficientBalance()
	}
	return nil
}

// persistClose writes the closed loan and the new aggregates, returning the
// compensations that restore both.
func (e *LendingEngineImpl) persistClose(
	ctx context.Context,
	prevLoan, loan *domain.Loan,
	prevPlatform, nextPlatform *domain.PlatformAccount,
) ([]func(context.Context) error, error) {
	if err := e.loans.Update(ctx, loan); err != nil {
		return nil, writeErr(err)
	}
	undo := []func(context.Context) error{
		func(ctx context.Context) error {
			restored := prevLoan.Clone()
			restored.Version = loan.Version
			return e.loans.Update(ctx, restored)
		},
	}
	if err := e.platform.Save(ctx, nextPlatform); err != nil {
		return nil, rollback(ctx, writeErr(err), undo)
	}
	undo = append(undo, e.restorePlatform(prevPlatform, nextPlatform))
	return undo, nil
}

// restorePlatform writes prev's aggregates back over the revision next was
// saved at.
func (e *LendingEngineImpl) restorePlatform(prev, next *domain.PlatformAccount) func(context.Context) error {
	return func(ctx context.Context) error {
		restored := *prev
		restored.Version = next.Version
		return e.platform.Save(ctx, &restored)
	}
}

// restoreSeized returns collateral seized by to back into from's locked balance.
func (e *LendingEngineImpl) restoreSeized(to, from domain.Account, amount uint64) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := e.ledger.Transfer(ctx, to, from, domain.AssetCollateral, amount); err != nil {
			return err
		}
		return e.ledger.Lock(ctx, from, domain.AssetCollateral, amount)
	}
}

func openAggregates(p *domain.PlatformAccount, loan *domain.Loan) (*domain.PlatformAccount, error) {
	next := *p
	var ok bool
	if next.CollateralLocked, ok = domain.AddChecked(next.CollateralLocked, loan.CollateralAmount); !ok {
		return nil, apperror.ErrAmountOverflow()
	}
	if next.PrincipalOutstanding, ok = domain.AddChecked(next.PrincipalOutstanding, loan.Principal); !ok {
		return nil, apperror.ErrAmountOverflow()
	}
	next.ActiveLoans++
	return &next, nil
}

func closeAggregates(p *domain.PlatformAccount, loan *domain.Loan) (*domain.PlatformAccount, error) {
	if p.CollateralLocked < loan.CollateralAmount || p.PrincipalOutstanding < loan.Principal || p.ActiveLoans == 0 {
		return nil, apperror.InternalError(fmt.Errorf("platform aggregates below loan %d", loan.ID))
	}
	next := *p
	next.CollateralLocked -= loan.CollateralAmount
	next.PrincipalOutstanding -= loan.Principal
	next.ActiveLoans--
	return &next, nil
}

// writeErr maps a failed loan or platform write. A version conflict means
// another process changed the row first; the request can be retried.
func writeErr(err error) error {
	if errors.Is(err, domain.ErrVersionConflict) {
		return apperror.ErrConcurrentUpdate(err)
	}
	return apperror.ErrStorage(err)
}

func addFee(counter, fee uint64) (uint64, error) {
	sum, ok := domain.AddChecked(counter, fee)
	if !ok {
		return 0, apperror.ErrAmountOverflow()
	}
	return sum, nil
}

// rollback runs compensations newest first. The original cause is returned
// unless a compensation itself fails.
func rollback(ctx context.Context, cause error, undo []func(context.Context) error) error {
	var errs []error
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return cause
	}
	return apperror.InternalError(fmt.Errorf("rollback after %v: %w", cause, errors.Join(errs...)))
}

type nopMetrics struct{}

func (nopMetrics) LoanCreated(uint64) {}
func (nopMetrics) LoanRepaid(uint64) {}
func (nopMetrics) LoanLiquidated(uint64) {}
func (nopMetrics) OracleFailure(string) {}
func (nopMetrics) BridgeTransition(domain.BridgeStatus) {}
