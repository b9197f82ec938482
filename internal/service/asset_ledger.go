package service

import (
	"context"
	"errors"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
)

// AssetLedgerImpl implements ports.AssetLedger.
//
// Every operation is expressed as a domain.BalanceUpdate of guarded changes
// and handed to BalanceRepository.Apply in one call. The repository checks
// each change against the stored row inside its own transaction, so an
// operation is either fully applied or not at all, also when several ledger
// instances share one store. The per-account lock only serializes callers
// inside this process.
type AssetLedgerImpl struct {
	repo  ports.BalanceRepository
	locks *keyedMutex
}

// NewAssetLedger creates a new AssetLedgerImpl.
func NewAssetLedger(repo ports.BalanceRepository) *AssetLedgerImpl {
	return &AssetLedgerImpl{repo: repo, locks: newKeyedMutex()}
}

// Credit issues amount into the spendable balance of account.
func (l *AssetLedgerImpl) Credit(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, account); err != nil {
		return err
	}
	return l.run(ctx, []domain.Account{account}, domain.BalanceUpdate{
		Changes: []domain.BalanceChange{{Account: account, Asset: asset, SpendableIn: amount}},
		Asset:   asset,
		Issued:  amount,
	}, apperror.ErrInsufficientBalance)
}

// Debit burns amount from the spendable balance of account.
func (l *AssetLedgerImpl) Debit(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, account); err != nil {
		return err
	}
	return l.run(ctx, []domain.Account{account}, domain.BalanceUpdate{
		Changes: []domain.BalanceChange{{Account: account, Asset: asset, SpendableOut: amount}},
		Asset:   asset,
		Burned:  amount,
	}, apperror.ErrInsufficientBalance)
}

// Transfer moves amount of spendable balance from one account to another.
// The debit side is checked first; on failure neither row changes. A
// transfer to self still requires the amount to be covered.
func (l *AssetLedgerImpl) Transfer(ctx context.Context, from, to domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, from, to); err != nil {
		return err
	}
	changes := []domain.BalanceChange{{Account: from, Asset: asset, SpendableOut: amount}}
	if from == to {
		changes[0].SpendableIn = amount
	} else {
		changes = append(changes, domain.BalanceChange{Account: to, Asset: asset, SpendableIn: amount})
	}
	return l.run(ctx, []domain.Account{from, to}, domain.BalanceUpdate{Changes: changes, Asset: asset},
		apperror.ErrInsufficientBalance)
}

// Lock moves amount from the spendable to the locked part of a balance.
func (l *AssetLedgerImpl) Lock(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, account); err != nil {
		return err
	}
	return l.run(ctx, []domain.Account{account}, domain.BalanceUpdate{
		Changes: []domain.BalanceChange{{Account: account, Asset: asset, SpendableOut: amount, LockedIn: amount}},
		Asset:   asset,
	}, apperror.ErrInsufficientSpendableBalance)
}

// Unlock moves amount from the locked back to the spendable part.
func (l *AssetLedgerImpl) Unlock(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, account); err != nil {
		return err
	}
	return l.run(ctx, []domain.Account{account}, domain.BalanceUpdate{
		Changes: []domain.BalanceChange{{Account: account, Asset: asset, LockedOut: amount, SpendableIn: amount}},
		Asset:   asset,
	}, apperror.ErrInsufficientBalance)
}

// Seize moves locked funds of from into the spendable balance of to.
func (l *AssetLedgerImpl) Seize(ctx context.Context, from, to domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, from, to); err != nil {
		return err
	}
	changes := []domain.BalanceChange{{Account: from, Asset: asset, LockedOut: amount}}
	if from == to {
		changes[0].SpendableIn = amount
	} else {
		changes = append(changes, domain.BalanceChange{Account: to, Asset: asset, SpendableIn: amount})
	}
	return l.run(ctx, []domain.Account{from, to}, domain.BalanceUpdate{Changes: changes, Asset: asset},
		apperror.ErrInsufficientBalance)
}

// BurnLocked removes locked funds of account from circulation.
func (l *AssetLedgerImpl) BurnLocked(ctx context.Context, account domain.Account, asset domain.Asset, amount uint64) error {
	if err := validateEntry(asset, amount, account); err != nil {
		return err
	}
	return l.run(ctx, []domain.Account{account}, domain.BalanceUpdate{
		Changes: []domain.BalanceChange{{Account: account, Asset: asset, LockedOut: amount}},
		Asset:   asset,
		Burned:  amount,
	}, apperror.ErrInsufficientBalance)
}

// Balance returns the (account, asset) entry; absent entries are zero.
func (l *AssetLedgerImpl) Balance(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error) {
	return l.get(ctx, account, asset)
}

// Balances returns every entry held by account.
func (l *AssetLedgerImpl) Balances(ctx context.Context, account domain.Account) ([]domain.Balance, error) {
	out, err := l.repo.ListByAccount(ctx, account)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	return out, nil
}

// AssetBalances returns every entry of asset.
func (l *AssetLedgerImpl) AssetBalances(ctx context.Context, asset domain.Asset) ([]domain.Balance, error) {
	out, err := l.repo.ListByAsset(ctx, asset)
	if err != nil {
		return nil, apperror.ErrStorage(err)
	}
	return out, nil
}

// Supply returns the issuance counters of asset.
func (l *AssetLedgerImpl) Supply(ctx context.Context, asset domain.Asset) (domain.Supply, error) {
	s, err := l.repo.Supply(ctx, asset)
	if err != nil {
		return domain.Supply{}, apperror.ErrStorage(err)
	}
	return s, nil
}

func (l *AssetLedgerImpl) get(ctx context.Context, account domain.Account, asset domain.Asset) (domain.Balance, error) {
	b, err := l.repo.Get(ctx, account, asset)
	if err != nil {
		return domain.Balance{}, apperror.ErrStorage(err)
	}
	b.Account = account
	b.Asset = asset
	return b, nil
}

// run applies update while holding the process-local locks of accounts.
// Repository shortfalls map to shortfall, overflows to AmountOverflow.
func (l *AssetLedgerImpl) run(ctx context.Context, accounts []domain.Account, update domain.BalanceUpdate, shortfall func() *apperror.AppError) error {
	keys := make([]string, len(accounts))
	for i, a := range accounts {
		keys[i] = string(a)
	}
	release, err := l.locks.Lock(ctx, keys...)
	if err != nil {
		return err
	}
	defer release()

	err = l.repo.Apply(ctx, update)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInsufficientFunds):
		return shortfall()
	case errors.Is(err, domain.ErrArithmeticOverflow):
		return apperror.ErrAmountOverflow()
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.ErrStorage(err)
}

func validateEntry(asset domain.Asset, amount uint64, accounts ...domain.Account) error {
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	if _, err := domain.ParseAsset(string(asset)); err != nil {
		return apperror.Validation(err.Error())
	}
	for _, a := range accounts {
		if a == "" {
			return apperror.Validation("account is required")
		}
	}
	return nil
}
