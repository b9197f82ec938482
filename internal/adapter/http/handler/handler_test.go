package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitpesa-lending/internal/adapter/http/middleware"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/internal/core/ports/mocks"
	"bitpesa-lending/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const alice domain.Account = "alice"

func init() {
	gin.SetMode(gin.TestMode)
}

// serve mounts h on route behind a fake authenticated caller and performs one request.
func serve(method, route, path string, body interface{}, h gin.HandlerFunc, roles ...domain.Role) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		c.Set(middleware.CtxCaller, domain.Caller{Account: alice, Roles: roles})
		c.Next()
	}, h)
	return do(r, method, path, body)
}

func serveAnonymous(method, route, path string, body interface{}, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)
	return do(r, method, path, body)
}

func do(r http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

var testPrice = domain.Price{Pair: "BTC/USD", Value: 60_000 * domain.PriceScale, AsOf: 1_700_000_000}

func activeLoan(id uint64) *domain.Loan {
	return &domain.Loan{
		ID:               id,
		Borrower:         alice,
		CollateralAmount: 150_000_000,
		Principal:        1_000_000_000,
		InterestRateBps:  500,
		StartTimestamp:   1_700_000_000,
		DurationSeconds:  2_592_000,
		EndTimestamp:     1_702_592_000,
		Active:           true,
	}
}

// --- Loan Handler Tests ---

func TestCreateLoan_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().CreateLoan(gomock.Any(), ports.CreateLoanRequest{
		Borrower:         alice,
		CollateralAmount: 150_000_000,
		Principal:        1_000_000_000,
		DurationSeconds:  2_592_000,
	}).Return(activeLoan(1), nil)

	w := serve(http.MethodPost, "/loans", "/loans", map[string]interface{}{
		"collateral":       "1.5",
		"principal":        "1000",
		"duration_seconds": 2_592_000,
	}, h.CreateLoan, domain.RoleBorrower)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "1.50000000", data["collateral"])
	assert.Equal(t, "1000.000000", data["principal"])
	assert.Equal(t, "ACTIVE", data["status"])
}

func TestCreateLoan_BadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", "{}"},
		{"malformed json", "{"},
		{"negative collateral", map[string]interface{}{"collateral": "-1", "principal": "1", "duration_seconds": 60}},
		{"principal beyond quote precision", map[string]interface{}{"collateral": "1", "principal": "1.1234567", "duration_seconds": 60}},
		{"collateral beyond precision", map[string]interface{}{"collateral": "0.123456789", "principal": "1", "duration_seconds": 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(http.MethodPost, "/loans", "/loans", tt.body, h.CreateLoan, domain.RoleBorrower)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apperror.CodeValidation, decodeErrorCode(t, w))
		})
	}
}

func TestCreateLoan_EngineErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"zero amount", apperror.ErrInvalidAmount(), http.StatusBadRequest, apperror.CodeInvalidAmount},
		{"short collateral", apperror.ErrInsufficientCollateral(nil), http.StatusPaymentRequired, apperror.CodeInsufficientCollateral},
		{"over ratio", apperror.ErrLoanExceedsCollateralRatio(5), http.StatusUnprocessableEntity, apperror.CodeLoanExceedsCollateralRatio},
		{"pool dry", apperror.ErrInsufficientPlatformLiquidity(), http.StatusServiceUnavailable, apperror.CodeInsufficientPlatformLiquidity},
		{"stale price", apperror.ErrStalePrice(7200, 3600), http.StatusServiceUnavailable, apperror.CodeStalePrice},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apperror.CodeUnknownInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			engine := mocks.NewMockLendingEngine(ctrl)
			h := NewLoanHandler(engine)
			engine.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := serve(http.MethodPost, "/loans", "/loans", map[string]interface{}{
				"collateral": "1", "principal": "1", "duration_seconds": 60,
			}, h.CreateLoan, domain.RoleBorrower)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeErrorCode(t, w))
		})
	}
}

func TestCreateLoan_NoCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewLoanHandler(mocks.NewMockLendingEngine(ctrl))
	w := serveAnonymous(http.MethodPost, "/loans", "/loans", "{}", h.CreateLoan)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeInvalidToken, decodeErrorCode(t, w))
}

func TestListLoans_DefaultsAndFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	active := domain.LoanStatusActive
	engine.EXPECT().ListLoans(gomock.Any(), ports.LoanListParams{
		Borrower: ptr(alice),
		Status:   &active,
		Page:     1,
		PageSize: defaultPageSize,
	}).Return([]domain.Loan{*activeLoan(1), *activeLoan(2)}, nil)

	w := serve(http.MethodGet, "/loans", "/loans?borrower=alice&status=ACTIVE", nil, h.ListLoans)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Len(t, data["items"], 2)
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(defaultPageSize), data["page_size"])
}

func TestListLoans_RejectsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewLoanHandler(mocks.NewMockLendingEngine(ctrl))
	w := serve(http.MethodGet, "/loans", "/loans?status=PENDING", nil, h.ListLoans)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListLoans_RejectsInvalidBorrower(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewLoanHandler(mocks.NewMockLendingEngine(ctrl))
	w := serve(http.MethodGet, "/loans", "/loans?borrower=0x1234", nil, h.ListLoans)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeErrorCode(t, w))
}

func TestGetLoan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().GetLoan(gomock.Any(), uint64(7)).Return(activeLoan(7), nil)
	engine.EXPECT().GetLoan(gomock.Any(), uint64(8)).Return(nil, apperror.ErrLoanNotFound(8))

	w := serve(http.MethodGet, "/loans/:id", "/loans/7", nil, h.GetLoan)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decodeData(t, w)["id"])

	w = serve(http.MethodGet, "/loans/:id", "/loans/8", nil, h.GetLoan)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeLoanNotFound, decodeErrorCode(t, w))

	for _, bad := range []string{"abc", "0", "-1"} {
		w = serve(http.MethodGet, "/loans/:id", "/loans/"+bad, nil, h.GetLoan)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestQuote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().MaxBorrowable(gomock.Any(), uint64(100_000_000)).Return(&ports.BorrowQuote{
		CollateralAmount: 100_000_000,
		MaxPrincipal:     40_000_000_000,
		Price:            testPrice,
	}, nil)

	w := serve(http.MethodGet, "/loans/quote", "/loans/quote?collateral=1", nil, h.Quote)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "40000.000000", data["max_principal"])
	price := data["price"].(map[string]interface{})
	assert.Equal(t, "60000.00000000", price["price"])
}

func TestInterest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().CalculateAccruedInterest(gomock.Any(), uint64(3)).Return(uint64(1_234_567), nil)

	w := serve(http.MethodGet, "/loans/:id/interest", "/loans/3/interest", nil, h.Interest)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["loan_id"])
	assert.Equal(t, "1.234567", data["interest"])
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().HealthRatio(gomock.Any(), uint64(3)).Return(&ports.HealthReport{
		LoanID:          3,
		Debt:            1_000_000_000,
		CollateralValue: 1_200_000_000,
		HealthRatioBps:  12_000,
		Liquidatable:    true,
		Price:           testPrice,
	}, nil)

	w := serve(http.MethodGet, "/loans/:id/health", "/loans/3/health", nil, h.Health)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(12_000), data["health_ratio_bps"])
	assert.Equal(t, true, data["liquidatable"])
}

func TestRepay_CallerPays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	repaid := activeLoan(4)
	repaid.Active = false
	repaid.AmountRepaid = 1_010_000_000
	engine.EXPECT().RepayLoan(gomock.Any(), ports.RepayRequest{
		LoanID: 4,
		Payer:  alice,
		Amount: 1_010_000_000,
	}).Return(&ports.RepayResult{
		Loan:        repaid,
		TotalDue:    1_010_000_000,
		Interest:    10_000_000,
		ProtocolFee: 1_000_000,
	}, nil)

	w := serve(http.MethodPost, "/loans/:id/repay", "/loans/4/repay", map[string]string{"amount": "1010"}, h.Repay)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "10.000000", data["interest"])
	assert.Equal(t, "REPAID", data["loan"].(map[string]interface{})["status"])
}

func TestRepay_TooLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().RepayLoan(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrRepaymentTooLow(1_010_000_000))

	w := serve(http.MethodPost, "/loans/:id/repay", "/loans/4/repay", map[string]string{"amount": "1"}, h.Repay)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeRepaymentTooLow, decodeErrorCode(t, w))
}

func TestLiquidate_PassesCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	caller := domain.Caller{Account: alice, Roles: []domain.Role{domain.RoleLiquidator}}
	closed := activeLoan(5)
	closed.Active = false
	closed.Liquidated = true
	closed.Liquidator = alice
	engine.EXPECT().Liquidate(gomock.Any(), caller, uint64(5)).Return(&ports.LiquidationResult{
		Loan:                   closed,
		Price:                  testPrice,
		HealthRatioBps:         11_000,
		DebtWrittenOff:         1_000_000_000,
		CollateralToLiquidator: 142_500_000,
		CollateralToProtocol:   7_500_000,
	}, nil)

	w := serve(http.MethodPost, "/loans/:id/liquidate", "/loans/5/liquidate", nil, h.Liquidate, domain.RoleLiquidator)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "1.42500000", data["collateral_to_liquidator"])
	assert.Equal(t, "0.000000", data["debt_repaid"])
	assert.Equal(t, "1000.000000", data["debt_written_off"])
	assert.Equal(t, "LIQUIDATED", data["loan"].(map[string]interface{})["status"])
}

func TestLiquidate_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewLoanHandler(engine)

	engine.EXPECT().Liquidate(gomock.Any(), gomock.Any(), uint64(5)).Return(nil, apperror.ErrLoanNotUndercollateralized())

	w := serve(http.MethodPost, "/loans/:id/liquidate", "/loans/5/liquidate", nil, h.Liquidate)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeLoanNotUndercollateralized, decodeErrorCode(t, w))
}

// --- Platform Handler Tests ---

func TestAddLiquidity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewPlatformHandler(engine)

	owner := domain.Caller{Account: alice, Roles: []domain.Role{domain.RoleOwner}}
	gomock.InOrder(
		engine.EXPECT().AddLiquidity(gomock.Any(), owner, uint64(5_000_000_000)).Return(nil),
		engine.EXPECT().Platform(gomock.Any()).Return(&domain.PlatformAccount{Account: "platform"}, nil),
	)

	w := serve(http.MethodPost, "/platform/liquidity", "/platform/liquidity", map[string]string{"amount": "5000"}, h.AddLiquidity, domain.RoleOwner)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "platform", decodeData(t, w)["account"])
}

func TestAddLiquidity_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewPlatformHandler(engine)

	engine.EXPECT().AddLiquidity(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperror.ErrUnauthorized("owner"))

	w := serve(http.MethodPost, "/platform/liquidity", "/platform/liquidity", map[string]string{"amount": "1"}, h.AddLiquidity)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWithdrawFees(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewPlatformHandler(engine)

	engine.EXPECT().WithdrawFees(gomock.Any(), gomock.Any(), ports.WithdrawFeesRequest{
		Asset:  domain.AssetCollateral,
		Amount: 50_000,
		To:     "treasury-vault",
	}).Return(nil)
	engine.EXPECT().Platform(gomock.Any()).Return(&domain.PlatformAccount{Account: "platform"}, nil)

	w := serve(http.MethodPost, "/platform/fees/withdraw", "/platform/fees/withdraw", map[string]string{
		"asset": "COLLATERAL", "amount": "0.0005", "to": "treasury-vault",
	}, h.WithdrawFees, domain.RoleTreasury)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithdrawFees_RejectsInvalidDestination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPlatformHandler(mocks.NewMockLendingEngine(ctrl))

	for _, to := range []string{"   ", "0xnothex", strings.Repeat("t", 129)} {
		w := serve(http.MethodPost, "/platform/fees/withdraw", "/platform/fees/withdraw", map[string]string{
			"asset": "COLLATERAL", "amount": "0.0005", "to": to,
		}, h.WithdrawFees, domain.RoleTreasury)

		assert.Equal(t, http.StatusBadRequest, w.Code, "to=%q", to)
	}
}

func TestReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockLendingEngine(ctrl)
	h := NewPlatformHandler(engine)

	engine.EXPECT().Reconcile(gomock.Any()).Return(&domain.Reconciliation{
		Platform:    domain.PlatformAccount{Account: "platform", ActiveLoans: 1},
		CountActive: 1,
	}, nil)

	w := serve(http.MethodGet, "/platform/reconcile", "/platform/reconcile", nil, h.Reconcile, domain.RoleOwner)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["consistent"])
}

// --- Price Handler Tests ---

func TestGetPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	oracle := mocks.NewMockPriceOracle(ctrl)
	h := NewPriceHandler(oracle, mocks.NewMockPriceStore(ctrl), mocks.NewMockClock(ctrl))

	oracle.EXPECT().GetPrice(gomock.Any(), "BTC/USD").Return(testPrice, nil)
	oracle.EXPECT().GetPrice(gomock.Any(), "BTC/EUR").Return(domain.Price{}, apperror.ErrStalePrice(7200, 3600))

	w := serve(http.MethodGet, "/prices/*pair", "/prices/BTC/USD", nil, h.GetPrice)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BTC/USD", decodeData(t, w)["pair"])

	w = serve(http.MethodGet, "/prices/*pair", "/prices/BTC/EUR", nil, h.GetPrice)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperror.CodeStalePrice, decodeErrorCode(t, w))
}

func TestPublishPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockPriceStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	h := NewPriceHandler(mocks.NewMockPriceOracle(ctrl), store, clock)

	clock.EXPECT().Now().Return(int64(1_700_000_000)).AnyTimes()
	store.EXPECT().Publish(gomock.Any(), domain.Price{
		Pair:  "BTC/USD",
		Value: 6_500_050_000_000,
		AsOf:  1_700_000_000,
	}).Return(nil)

	w := serve(http.MethodPost, "/prices", "/prices", map[string]interface{}{
		"pair": "BTC/USD", "price": "65000.5", "as_of": 1_700_000_000,
	}, h.PublishPrice, domain.RoleFeeder)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "65000.50000000", decodeData(t, w)["price"])

	w = serve(http.MethodPost, "/prices", "/prices", map[string]interface{}{
		"pair": "BTC/USD", "price": "65000", "as_of": 1_700_000_000 + 3600,
	}, h.PublishPrice, domain.RoleFeeder)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.MethodPost, "/prices", "/prices", map[string]interface{}{
		"pair": "btc-usd", "price": "65000", "as_of": 1_700_000_000,
	}, h.PublishPrice, domain.RoleFeeder)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishPrice_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockPriceStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	h := NewPriceHandler(mocks.NewMockPriceOracle(ctrl), store, clock)

	clock.EXPECT().Now().Return(int64(1_700_000_000))
	store.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	w := serve(http.MethodPost, "/prices", "/prices", map[string]interface{}{
		"pair": "BTC/USD", "price": "1", "as_of": 1_700_000_000,
	}, h.PublishPrice, domain.RoleFeeder)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeStorageFailure, decodeErrorCode(t, w))
}

// --- Account Handler Tests ---

func TestBalances_Access(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockAssetLedger(ctrl)
	h := NewAccountHandler(ledger, mocks.NewMockCustodyService(ctrl))

	ledger.EXPECT().Balances(gomock.Any(), alice).Return([]domain.Balance{
		{Account: alice, Asset: domain.AssetCollateral, Spendable: 100_000_000, Locked: 50_000_000},
	}, nil)
	ledger.EXPECT().Balances(gomock.Any(), domain.Account("bob")).Return(nil, nil)

	w := serve(http.MethodGet, "/accounts/:account/balances", "/accounts/alice/balances", nil, h.Balances)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "0.50000000", resp.Data[0]["locked"])

	w = serve(http.MethodGet, "/accounts/:account/balances", "/accounts/bob/balances", nil, h.Balances)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(http.MethodGet, "/accounts/:account/balances", "/accounts/bob/balances", nil, h.Balances, domain.RoleCustodian)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	custody := mocks.NewMockCustodyService(ctrl)
	h := NewAccountHandler(mocks.NewMockAssetLedger(ctrl), custody)

	caller := domain.Caller{Account: alice, Roles: []domain.Role{domain.RoleCustodian}}
	custody.EXPECT().Deposit(gomock.Any(), caller, domain.Account("bob"), domain.AssetQuote, uint64(2_500_000)).
		Return(domain.Balance{Account: "bob", Asset: domain.AssetQuote, Spendable: 2_500_000}, nil)

	w := serve(http.MethodPost, "/accounts/:account/deposits", "/accounts/bob/deposits",
		map[string]string{"asset": "QUOTE", "amount": "2.5"}, h.Deposit, domain.RoleCustodian)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2.500000", decodeData(t, w)["spendable"])
}

func TestWithdraw_Insufficient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	custody := mocks.NewMockCustodyService(ctrl)
	h := NewAccountHandler(mocks.NewMockAssetLedger(ctrl), custody)

	custody.EXPECT().Withdraw(gomock.Any(), gomock.Any(), domain.Account("bob"), domain.AssetCollateral, uint64(1)).
		Return(domain.Balance{}, apperror.ErrInsufficientSpendableBalance())

	w := serve(http.MethodPost, "/accounts/:account/withdrawals", "/accounts/bob/withdrawals",
		map[string]string{"asset": "COLLATERAL", "amount": "0.00000001"}, h.Withdraw, domain.RoleCustodian)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, apperror.CodeInsufficientSpendableBalance, decodeErrorCode(t, w))
}

// --- Bridge Handler Tests ---

func testTransfer(status domain.BridgeStatus) *domain.BridgeTransfer {
	return &domain.BridgeTransfer{
		ID:          uuid.MustParse("6f1c2a6e-7c53-4a53-9a0e-2d3f4b5c6d7e"),
		Sender:      alice,
		Recipient:   "bob",
		SourceChain: "bitcoin",
		DestChain:   "ethereum",
		Asset:       domain.AssetCollateral,
		Amount:      100_000_000,
		Status:      status,
		CreatedAt:   1_700_000_000,
	}
}

func TestInitiateTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := mocks.NewMockBridgeLedger(ctrl)
	h := NewBridgeHandler(bridge)

	bridge.EXPECT().InitiateTransfer(gomock.Any(), ports.InitiateTransferRequest{
		Sender:      alice,
		Recipient:   "bob",
		SourceChain: "bitcoin",
		DestChain:   "ethereum",
		Asset:       domain.AssetCollateral,
		Amount:      100_000_000,
	}).Return(testTransfer(domain.BridgeStatusPending), nil)

	w := serve(http.MethodPost, "/bridge/transfers", "/bridge/transfers", map[string]string{
		"recipient": "bob", "source_chain": "bitcoin", "dest_chain": "ethereum", "asset": "COLLATERAL", "amount": "1",
	}, h.Initiate)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "1.00000000", data["amount"])
}

func TestInitiateTransfer_RecipientTooLongAfterSanitizing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewBridgeHandler(mocks.NewMockBridgeLedger(ctrl))

	// 128 bytes on the wire, 132 once "&" is escaped
	recipient := strings.Repeat("a", 127) + "&"
	w := serve(http.MethodPost, "/bridge/transfers", "/bridge/transfers", map[string]string{
		"recipient": recipient, "source_chain": "bitcoin", "dest_chain": "ethereum", "asset": "COLLATERAL", "amount": "1",
	}, h.Initiate)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, decodeErrorCode(t, w))
}

func TestConfirmDelivery_RelayerIsCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := mocks.NewMockBridgeLedger(ctrl)
	h := NewBridgeHandler(bridge)
	tr := testTransfer(domain.BridgeStatusDelivered)

	bridge.EXPECT().ConfirmDelivery(gomock.Any(), tr.ID, ports.DeliveryProof{
		Relayer:    string(alice),
		DestTxHash: "0xfeed",
		IssuedAt:   1_700_000_100,
		Signature:  "abcdef",
	}).Return(tr, nil)

	w := serve(http.MethodPost, "/bridge/transfers/:id/confirm", "/bridge/transfers/"+tr.ID.String()+"/confirm",
		map[string]interface{}{"dest_tx_hash": "0xfeed", "issued_at": 1_700_000_100, "signature": "abcdef"},
		h.Confirm, domain.RoleRelayer)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DELIVERED", decodeData(t, w)["status"])
}

func TestConfirmDelivery_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := mocks.NewMockBridgeLedger(ctrl)
	h := NewBridgeHandler(bridge)
	id := uuid.New()
	proof := map[string]interface{}{"dest_tx_hash": "0xfeed", "issued_at": 1, "signature": "ab"}

	w := serve(http.MethodPost, "/bridge/transfers/:id/confirm", "/bridge/transfers/not-a-uuid/confirm", proof, h.Confirm)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.MethodPost, "/bridge/transfers/:id/confirm", "/bridge/transfers/"+id.String()+"/confirm",
		map[string]interface{}{"dest_tx_hash": "0xfeed", "issued_at": 1, "signature": "zz"}, h.Confirm)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bridge.EXPECT().ConfirmDelivery(gomock.Any(), id, gomock.Any()).Return(nil, apperror.ErrProofReplayed())
	w = serve(http.MethodPost, "/bridge/transfers/:id/confirm", "/bridge/transfers/"+id.String()+"/confirm", proof, h.Confirm)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeProofReplayed, decodeErrorCode(t, w))
}

func TestReportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := mocks.NewMockBridgeLedger(ctrl)
	h := NewBridgeHandler(bridge)
	tr := testTransfer(domain.BridgeStatusFailed)

	bridge.EXPECT().ReportFailure(gomock.Any(), tr.ID).Return(tr, nil)

	w := serve(http.MethodPost, "/bridge/transfers/:id/fail", "/bridge/transfers/"+tr.ID.String()+"/fail", nil, h.Fail, domain.RoleRelayer)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FAILED", decodeData(t, w)["status"])
}

func TestListPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := mocks.NewMockBridgeLedger(ctrl)
	h := NewBridgeHandler(bridge)

	bridge.EXPECT().ListPending(gomock.Any(), time.Hour).Return([]domain.BridgeTransfer{*testTransfer(domain.BridgeStatusPending)}, nil)
	bridge.EXPECT().ListPending(gomock.Any(), time.Duration(0)).Return(nil, nil)

	w := serve(http.MethodGet, "/bridge/transfers", "/bridge/transfers?older_than=3600", nil, h.ListPending, domain.RoleRelayer)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	w = serve(http.MethodGet, "/bridge/transfers", "/bridge/transfers", nil, h.ListPending, domain.RoleRelayer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(http.MethodGet, "/bridge/transfers", "/bridge/transfers?older_than=-5", nil, h.ListPending, domain.RoleRelayer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Router Tests ---

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockLendingEngine, *mocks.MockTokenService) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockLendingEngine(ctrl)
	tokens := mocks.NewMockTokenService(ctrl)

	r := SetupRouter(RouterDeps{
		Engine:     engine,
		Bridge:     mocks.NewMockBridgeLedger(ctrl),
		Ledger:     mocks.NewMockAssetLedger(ctrl),
		Custody:    mocks.NewMockCustodyService(ctrl),
		Oracle:     mocks.NewMockPriceOracle(ctrl),
		PriceStore: mocks.NewMockPriceStore(ctrl),
		Clock:      mocks.NewMockClock(ctrl),
		TokenSvc:   tokens,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("bitpesa_up 1\n"))
		}),
		Logger: zerolog.Nop(),
	})
	return r, engine, tokens
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bitpesa_up")
}

func TestRouter_RequiresToken(t *testing.T) {
	r, _, tokens := setupTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/loans/1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokens.EXPECT().Validate("expired").Return(nil, errors.New("token is expired"))
	w = do(r, http.MethodGet, "/api/v1/loans/1", nil, "Authorization", "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RoleGates(t *testing.T) {
	r, engine, tokens := setupTestRouter(t)

	tokens.EXPECT().Validate("borrower").Return(&ports.TokenClaims{
		Account: alice,
		Roles:   []domain.Role{domain.RoleBorrower},
	}, nil).AnyTimes()
	auth := []string{"Authorization", "Bearer borrower", "X-Request-ID", "req-1"}

	w := do(r, http.MethodPost, "/api/v1/prices", map[string]string{}, auth...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/v1/platform/liquidity", map[string]string{"amount": "1"}, auth...)
	assert.Equal(t, http.StatusForbidden, w.Code)

	engine.EXPECT().MaxBorrowable(gomock.Any(), uint64(100_000_000)).Return(&ports.BorrowQuote{Price: testPrice}, nil)
	w = do(r, http.MethodGet, "/api/v1/loans/quote?collateral=1", nil, auth...)
	assert.Equal(t, http.StatusOK, w.Code)

	engine.EXPECT().GetLoan(gomock.Any(), uint64(9)).Return(activeLoan(9), nil)
	w = do(r, http.MethodGet, "/api/v1/loans/9", nil, auth...)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp["request_id"])
}

func ptr[T any](v T) *T { return &v }
