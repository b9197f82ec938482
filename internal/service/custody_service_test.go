package service

import (
	"context"
	"testing"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports/mocks"
	"bitpesa-lending/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var custodian = domain.Caller{Account: "custodian", Roles: []domain.Role{domain.RoleCustodian}}

func TestCustodyService_DepositWithdraw(t *testing.T) {
	ledger := newTestLedger()
	svc := NewCustodyService(ledger)
	ctx := context.Background()

	b, err := svc.Deposit(ctx, custodian, alice, domain.AssetCollateral, 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), b.Spendable)

	b, err = svc.Withdraw(ctx, custodian, alice, domain.AssetCollateral, 2_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000), b.Spendable)

	_, err = svc.Withdraw(ctx, custodian, alice, domain.AssetCollateral, 3_001)
	assert.Equal(t, apperror.CodeInsufficientBalance, apperror.Code(err))
	assertConserved(t, ledger)
}

func TestCustodyService_Withdraw_LockedFundsStay(t *testing.T) {
	ledger := newTestLedger()
	svc := NewCustodyService(ledger)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, custodian, alice, domain.AssetCollateral, 1_000)
	require.NoError(t, err)
	require.NoError(t, ledger.Lock(ctx, alice, domain.AssetCollateral, 700))

	_, err = svc.Withdraw(ctx, custodian, alice, domain.AssetCollateral, 301)
	assert.Equal(t, apperror.CodeInsufficientBalance, apperror.Code(err))
}

func TestCustodyService_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ledger calls are expected.
	svc := NewCustodyService(mocks.NewMockAssetLedger(ctrl))
	borrowerCaller := domain.Caller{Account: alice, Roles: []domain.Role{domain.RoleBorrower}}

	_, err := svc.Deposit(context.Background(), borrowerCaller, alice, domain.AssetQuote, 1)
	assert.Equal(t, apperror.CodeUnauthorized, apperror.Code(err))

	_, err = svc.Withdraw(context.Background(), borrowerCaller, alice, domain.AssetQuote, 1)
	assert.Equal(t, apperror.CodeUnauthorized, apperror.Code(err))
}
