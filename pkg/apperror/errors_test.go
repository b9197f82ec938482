package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("LEDG_001", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[LEDG_001] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsComparesCodes(t *testing.T) {
	err := fmt.Errorf("create loan: %w", ErrLoanNotFound(7))

	assert.True(t, errors.Is(err, ErrLoanNotFound(0)))
	assert.False(t, errors.Is(err, ErrLoanNotActive(7)))
}

func TestIs_WalksWrappedAppErrors(t *testing.T) {
	stale := ErrStalePrice(4000, 3600)
	err := ErrPriceOracleFailed(stale)

	assert.True(t, Is(err, CodePriceOracleFailed))
	assert.True(t, Is(err, CodeStalePrice))
	assert.False(t, Is(err, CodeOracleUnavailable))
	assert.False(t, Is(nil, CodeStalePrice))
	assert.Equal(t, CodePriceOracleFailed, Code(err))
	assert.Equal(t, "", Code(errors.New("plain")))
}

func TestRetryable(t *testing.T) {
	assert.True(t, ErrPriceOracleFailed(ErrOracleUnavailable(errors.New("down"))).Retryable())
	assert.True(t, ErrInsufficientPlatformLiquidity().Retryable())
	assert.False(t, ErrLoanExceedsCollateralRatio(10).Retryable())
	assert.False(t, ErrRepaymentTooLow(10).Retryable())
	assert.False(t, ErrUnauthorized("owner").Retryable())
	assert.False(t, ErrInvalidProof().Retryable())
}

func TestLendingErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAmount", ErrInvalidAmount(), CodeInvalidAmount, 400},
		{"InvalidLoanDuration", ErrInvalidLoanDuration(1, 2), CodeInvalidLoanDuration, 400},
		{"InsufficientCollateral", ErrInsufficientCollateral(nil), CodeInsufficientCollateral, 402},
		{"InsufficientPlatformLiquidity", ErrInsufficientPlatformLiquidity(), CodeInsufficientPlatformLiquidity, 503},
		{"LoanExceedsCollateralRatio", ErrLoanExceedsCollateralRatio(5), CodeLoanExceedsCollateralRatio, 422},
		{"LoanNotFound", ErrLoanNotFound(1), CodeLoanNotFound, 404},
		{"LoanNotActive", ErrLoanNotActive(1), CodeLoanNotActive, 409},
		{"LoanNotUndercollateralized", ErrLoanNotUndercollateralized(), CodeLoanNotUndercollateralized, 409},
		{"RepaymentTooLow", ErrRepaymentTooLow(3), CodeRepaymentTooLow, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestLedgerAndBridgeErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InsufficientBalance", ErrInsufficientBalance(), CodeInsufficientBalance, 402},
		{"InsufficientSpendableBalance", ErrInsufficientSpendableBalance(), CodeInsufficientSpendableBalance, 402},
		{"AmountOverflow", ErrAmountOverflow(), CodeAmountOverflow, 422},
		{"TransferNotFound", ErrTransferNotFound("x"), CodeTransferNotFound, 404},
		{"InvalidProof", ErrInvalidProof(), CodeInvalidProof, 403},
		{"ProofReplayed", ErrProofReplayed(), CodeProofReplayed, 403},
		{"TransferNotPending", ErrTransferNotPending("x", "DELIVERED"), CodeTransferNotPending, 409},
		{"Unauthorized", ErrUnauthorized("owner"), CodeUnauthorized, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	storageErr := ErrStorage(inner)
	assert.Equal(t, "SYS_003", storageErr.Code)
	assert.Equal(t, 500, storageErr.HTTPStatus)
	assert.True(t, errors.Is(storageErr, inner))

	lockErr := ErrLockTimeout(inner)
	assert.Equal(t, "SYS_002", lockErr.Code)
	assert.Equal(t, 503, lockErr.HTTPStatus)

	conflict := ErrConcurrentUpdate(inner)
	assert.Equal(t, "SYS_004", conflict.Code)
	assert.Equal(t, 409, conflict.HTTPStatus)
	assert.True(t, conflict.Retryable())

	internal := InternalError(inner)
	assert.Equal(t, "SYS_001", internal.Code)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Price")
	assert.Contains(t, err.Message, "Price")
	assert.Equal(t, CodeNotFound, err.Code)
}
