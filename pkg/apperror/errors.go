package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped cause (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Retryable reports whether the caller may resubmit the same request later
// without changing its parameters.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case CodePriceOracleFailed, CodeStalePrice, CodeOracleUnavailable,
		CodeInsufficientPlatformLiquidity, CodeLockTimeout, CodeConcurrentUpdate:
		return true
	}
	return false
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Is reports whether err (or anything it wraps) is an AppError carrying code.
func Is(err error, code string) bool {
	var appErr *AppError
	for err != nil {
		if errors.As(err, &appErr) {
			if appErr.Code == code {
				return true
			}
			err = appErr.Err
			continue
		}
		return false
	}
	return false
}

// Code returns the code of the outermost AppError in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

const (
	CodeInvalidAmount                 = "LEND_001"
	CodeInvalidLoanDuration           = "LEND_002"
	CodeInsufficientCollateral        = "LEND_003"
	CodeInsufficientPlatformLiquidity = "LEND_004"
	CodeLoanExceedsCollateralRatio    = "LEND_005"
	CodeLoanNotFound                  = "LEND_006"
	CodeLoanNotActive                 = "LEND_007"
	CodeLoanNotUndercollateralized    = "LEND_008"
	CodeRepaymentTooLow               = "LEND_009"

	CodeInsufficientBalance          = "LEDG_001"
	CodeInsufficientSpendableBalance = "LEDG_002"
	CodeAmountOverflow               = "LEDG_003"

	CodePriceOracleFailed = "ORCL_001"
	CodeStalePrice        = "ORCL_002"
	CodeOracleUnavailable = "ORCL_003"

	CodeTransferNotFound   = "BRDG_001"
	CodeInvalidProof       = "BRDG_002"
	CodeProofReplayed      = "BRDG_003"
	CodeTransferNotPending = "BRDG_004"

	CodeUnauthorized      = "AUTH_001"
	CodeInvalidToken      = "AUTH_002"
	CodeRateLimitExceeded = "RATE_001"
	CodeValidation        = "REQ_001"
	CodeNotFound          = "REQ_002"

	CodeInternal         = "SYS_001"
	CodeLockTimeout      = "SYS_002"
	CodeStorageFailure   = "SYS_003"
	CodeConcurrentUpdate = "SYS_004"
	CodeUnknownInternal  = "SYS_000"
)

// ---- Lending engine (LEND) ----

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidLoanDuration(min, max int64) *AppError {
	return New(CodeInvalidLoanDuration,
		fmt.Sprintf("Loan duration must be between %d and %d seconds", min, max),
		http.StatusBadRequest)
}

func ErrInsufficientCollateral(err error) *AppError {
	return Wrap(CodeInsufficientCollateral, "Insufficient spendable collateral", http.StatusPaymentRequired, err)
}

func ErrInsufficientPlatformLiquidity() *AppError {
	return New(CodeInsufficientPlatformLiquidity, "Insufficient platform liquidity", http.StatusServiceUnavailable)
}

func ErrLoanExceedsCollateralRatio(maxPrincipal uint64) *AppError {
	return New(CodeLoanExceedsCollateralRatio,
		fmt.Sprintf("Requested principal exceeds maximum of %d", maxPrincipal),
		http.StatusUnprocessableEntity)
}

func ErrLoanNotFound(id uint64) *AppError {
	return New(CodeLoanNotFound, fmt.Sprintf("Loan %d not found", id), http.StatusNotFound)
}

func ErrLoanNotActive(id uint64) *AppError {
	return New(CodeLoanNotActive, fmt.Sprintf("Loan %d is not active", id), http.StatusConflict)
}

func ErrLoanNotUndercollateralized() *AppError {
	return New(CodeLoanNotUndercollateralized, "Loan is not undercollateralized", http.StatusConflict)
}

func ErrRepaymentTooLow(totalDue uint64) *AppError {
	return New(CodeRepaymentTooLow,
		fmt.Sprintf("Repayment must cover total due of %d", totalDue),
		http.StatusUnprocessableEntity)
}

// ---- Asset ledger (LEDG) ----

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance", http.StatusPaymentRequired)
}

func ErrInsufficientSpendableBalance() *AppError {
	return New(CodeInsufficientSpendableBalance, "Insufficient spendable balance", http.StatusPaymentRequired)
}

func ErrAmountOverflow() *AppError {
	return New(CodeAmountOverflow, "Amount overflow", http.StatusUnprocessableEntity)
}

// ---- Price oracle (ORCL) ----

func ErrStalePrice(age, maxStaleness int64) *AppError {
	return New(CodeStalePrice,
		fmt.Sprintf("Price is %ds old, max staleness is %ds", age, maxStaleness),
		http.StatusServiceUnavailable)
}

func ErrOracleUnavailable(err error) *AppError {
	return Wrap(CodeOracleUnavailable, "Price oracle unavailable", http.StatusServiceUnavailable, err)
}

// ErrPriceOracleFailed wraps a StalePrice or OracleUnavailable cause.
func ErrPriceOracleFailed(cause error) *AppError {
	return Wrap(CodePriceOracleFailed, "Price oracle failed", http.StatusServiceUnavailable, cause)
}

// ---- Bridge (BRDG) ----

func ErrTransferNotFound(id string) *AppError {
	return New(CodeTransferNotFound, fmt.Sprintf("Bridge transfer %s not found", id), http.StatusNotFound)
}

func ErrTransferNotPending(id string, status string) *AppError {
	return New(CodeTransferNotPending,
		fmt.Sprintf("Bridge transfer %s is %s, not pending", id, status),
		http.StatusConflict)
}

func ErrInvalidProof() *AppError {
	return New(CodeInvalidProof, "Invalid delivery proof", http.StatusForbidden)
}

func ErrProofReplayed() *AppError {
	return New(CodeProofReplayed, "Delivery proof has already been used", http.StatusForbidden)
}

// ---- Authorization (AUTH) ----

func ErrUnauthorized(capability string) *AppError {
	return New(CodeUnauthorized, fmt.Sprintf("Caller lacks the %s role", capability), http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Request (REQ) ----

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorage(err error) *AppError {
	return Wrap(CodeStorageFailure, "Storage failure", http.StatusInternalServerError, err)
}

func ErrConcurrentUpdate(err error) *AppError {
	return Wrap(CodeConcurrentUpdate, "Record was modified concurrently", http.StatusConflict, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap(CodeLockTimeout, "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
