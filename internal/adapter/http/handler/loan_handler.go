package handler

import (
	"bitpesa-lending/internal/adapter/http/dto"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

// LoanHandler handles loan lifecycle endpoints.
type LoanHandler struct {
	engine ports.LendingEngine
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(engine ports.LendingEngine) *LoanHandler {
	return &LoanHandler{engine: engine}
}

// CreateLoan handles POST /api/v1/loans. The caller is the borrower.
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	collateral, ok := parseAmount(c, domain.AssetCollateral, "collateral", req.Collateral)
	if !ok {
		return
	}
	principal, ok := parseAmount(c, domain.AssetQuote, "principal", req.Principal)
	if !ok {
		return
	}

	loan, err := h.engine.CreateLoan(c.Request.Context(), ports.CreateLoanRequest{
		Borrower:         caller.Account,
		CollateralAmount: collateral,
		Principal:        principal,
		DurationSeconds:  req.DurationSeconds,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLoanResponse(loan))
}

// ListLoans handles GET /api/v1/loans.
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var q dto.LoanListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	params := ports.LoanListParams{Page: q.Page, PageSize: q.PageSize}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = defaultPageSize
	}
	if q.Borrower != "" {
		b, err := domain.ParseAccount(q.Borrower)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		params.Borrower = &b
	}
	if q.Status != "" {
		s := domain.LoanStatus(q.Status)
		params.Status = &s
	}

	loans, err := h.engine.ListLoans(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LoanResponse, 0, len(loans))
	for i := range loans {
		items = append(items, dto.ToLoanResponse(&loans[i]))
	}
	response.OK(c, dto.LoanListResponse{Items: items, Page: params.Page, PageSize: params.PageSize})
}

// GetLoan handles GET /api/v1/loans/:id.
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	loan, err := h.engine.GetLoan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToLoanResponse(loan))
}

// Quote handles GET /api/v1/loans/quote?collateral=.
func (h *LoanHandler) Quote(c *gin.Context) {
	var q dto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	collateral, ok := parseAmount(c, domain.AssetCollateral, "collateral", q.Collateral)
	if !ok {
		return
	}

	quote, err := h.engine.MaxBorrowable(c.Request.Context(), collateral)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToQuoteResponse(quote))
}

// Interest handles GET /api/v1/loans/:id/interest.
func (h *LoanHandler) Interest(c *gin.Context) {
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	interest, err := h.engine.CalculateAccruedInterest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.InterestResponse{LoanID: id, Interest: domain.AssetQuote.Format(interest)})
}

// Health handles GET /api/v1/loans/:id/health.
func (h *LoanHandler) Health(c *gin.Context) {
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	report, err := h.engine.HealthRatio(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToHealthResponse(report))
}

// Repay handles POST /api/v1/loans/:id/repay. The caller pays.
func (h *LoanHandler) Repay(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	var req dto.RepayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, ok := parseAmount(c, domain.AssetQuote, "amount", req.Amount)
	if !ok {
		return
	}

	result, err := h.engine.RepayLoan(c.Request.Context(), ports.RepayRequest{
		LoanID: id,
		Payer:  caller.Account,
		Amount: amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToRepayResponse(result))
}

// Liquidate handles POST /api/v1/loans/:id/liquidate.
func (h *LoanHandler) Liquidate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := loanIDParam(c)
	if !ok {
		return
	}

	result, err := h.engine.Liquidate(c.Request.Context(), caller, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToLiquidationResponse(result))
}
