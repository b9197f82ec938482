package service

import (
	"context"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
)

// CustodyServiceImpl implements ports.CustodyService on top of the ledger.
// Deposits issue supply, withdrawals burn it.
type CustodyServiceImpl struct {
	ledger ports.AssetLedger
}

// NewCustodyService creates a new CustodyServiceImpl.
func NewCustodyService(ledger ports.AssetLedger) *CustodyServiceImpl {
	return &CustodyServiceImpl{ledger: ledger}
}

// Deposit credits account with funds that arrived on chain.
func (s *CustodyServiceImpl) Deposit(ctx context.Context, caller domain.Caller, account domain.Account, asset domain.Asset, amount uint64) (domain.Balance, error) {
	if !caller.Has(domain.RoleCustodian) {
		return domain.Balance{}, apperror.ErrUnauthorized(string(domain.RoleCustodian))
	}
	if err := s.ledger.Credit(ctx, account, asset, amount); err != nil {
		return domain.Balance{}, err
	}
	return s.ledger.Balance(ctx, account, asset)
}

// Withdraw debits spendable funds of account that leave for the chain.
func (s *CustodyServiceImpl) Withdraw(ctx context.Context, caller domain.Caller, account domain.Account, asset domain.Asset, amount uint64) (domain.Balance, error) {
	if !caller.Has(domain.RoleCustodian) {
		return domain.Balance{}, apperror.ErrUnauthorized(string(domain.RoleCustodian))
	}
	if err := s.ledger.Debit(ctx, account, asset, amount); err != nil {
		return domain.Balance{}, err
	}
	return s.ledger.Balance(ctx, account, asset)
}
