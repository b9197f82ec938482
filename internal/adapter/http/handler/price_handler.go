package handler

import (
	"strings"

	"bitpesa-lending/internal/adapter/http/dto"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxFutureSkew bounds how far ahead of the server clock a reading may be stamped.
const maxFutureSkew int64 = 30

// PriceHandler serves oracle readings and accepts feeder updates.
type PriceHandler struct {
	oracle ports.PriceOracle
	store  ports.PriceStore
	clock  ports.Clock
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(oracle ports.PriceOracle, store ports.PriceStore, clock ports.Clock) *PriceHandler {
	return &PriceHandler{oracle: oracle, store: store, clock: clock}
}

// GetPrice handles GET /api/v1/prices/*pair. Stale readings surface as errors.
func (h *PriceHandler) GetPrice(c *gin.Context) {
	pair := strings.TrimPrefix(c.Param("pair"), "/")
	if pair == "" {
		response.Error(c, apperror.Validation("pair is required"))
		return
	}

	price, err := h.oracle.GetPrice(c.Request.Context(), pair)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPriceResponse(price))
}

// PublishPrice handles POST /api/v1/prices.
func (h *PriceHandler) PublishPrice(c *gin.Context) {
	var req dto.PublishPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	value, err := dto.ParsePrice(req.Price)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if req.AsOf > h.clock.Now()+maxFutureSkew {
		response.Error(c, apperror.Validation("as_of is in the future"))
		return
	}

	price := domain.Price{Pair: req.Pair, Value: value, AsOf: req.AsOf}
	if err := h.store.Publish(c.Request.Context(), price); err != nil {
		response.Error(c, apperror.ErrStorage(err))
		return
	}

	response.Created(c, dto.ToPriceResponse(price))
}
