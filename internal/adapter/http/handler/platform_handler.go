package handler

import (
	"bitpesa-lending/internal/adapter/http/dto"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
)

// PlatformHandler handles pool administration endpoints.
type PlatformHandler struct {
	engine ports.LendingEngine
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(engine ports.LendingEngine) *PlatformHandler {
	return &PlatformHandler{engine: engine}
}

// GetPlatform handles GET /api/v1/platform.
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	p, err := h.engine.Platform(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToPlatformResponse(p))
}

// Reconcile handles GET /api/v1/platform/reconcile.
func (h *PlatformHandler) Reconcile(c *gin.Context) {
	r, err := h.engine.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToReconciliationResponse(r))
}

// AddLiquidity handles POST /api/v1/platform/liquidity.
func (h *PlatformHandler) AddLiquidity(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.AddLiquidityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, ok := parseAmount(c, domain.AssetQuote, "amount", req.Amount)
	if !ok {
		return
	}

	if err := h.engine.AddLiquidity(c.Request.Context(), caller, amount); err != nil {
		response.Error(c, err)
		return
	}
	h.respondPlatform(c)
}

// WithdrawFees handles POST /api/v1/platform/fees/withdraw.
func (h *PlatformHandler) WithdrawFees(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.WithdrawFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	asset := domain.Asset(req.Asset)
	amount, ok := parseAmount(c, asset, "amount", req.Amount)
	if !ok {
		return
	}
	to, err := domain.ParseAccount(req.To)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err = h.engine.WithdrawFees(c.Request.Context(), caller, ports.WithdrawFeesRequest{
		Asset:  asset,
		Amount: amount,
		To:     to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respondPlatform(c)
}

// respondPlatform answers a successful write with the updated pool.
func (h *PlatformHandler) respondPlatform(c *gin.Context) {
	p, err := h.engine.Platform(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToPlatformResponse(p))
}
