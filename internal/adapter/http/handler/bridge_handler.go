package handler

import (
	"time"

	"bitpesa-lending/internal/adapter/http/dto"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
)

// BridgeHandler handles cross-chain transfer endpoints.
type BridgeHandler struct {
	bridge ports.BridgeLedger
}

// NewBridgeHandler creates a new BridgeHandler.
func NewBridgeHandler(bridge ports.BridgeLedger) *BridgeHandler {
	return &BridgeHandler{bridge: bridge}
}

// Initiate handles POST /api/v1/bridge/transfers. The caller is the sender.
func (h *BridgeHandler) Initiate(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.InitiateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	asset := domain.Asset(req.Asset)
	amount, ok := parseAmount(c, asset, "amount", req.Amount)
	if !ok {
		return
	}
	// sanitizing can lengthen the recipient past the account limit
	recipient, err := domain.ParseAccount(req.Recipient)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	t, err := h.bridge.InitiateTransfer(c.Request.Context(), ports.InitiateTransferRequest{
		Sender:      caller.Account,
		Recipient:   recipient,
		SourceChain: req.SourceChain,
		DestChain:   req.DestChain,
		Asset:       asset,
		Amount:      amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToTransferResponse(t))
}

// Get handles GET /api/v1/bridge/transfers/:id.
func (h *BridgeHandler) Get(c *gin.Context) {
	id, ok := transferIDParam(c)
	if !ok {
		return
	}

	t, err := h.bridge.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToTransferResponse(t))
}

// ListPending handles GET /api/v1/bridge/transfers?older_than=.
func (h *BridgeHandler) ListPending(c *gin.Context) {
	var q dto.PendingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	transfers, err := h.bridge.ListPending(c.Request.Context(), time.Duration(q.OlderThanSeconds)*time.Second)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		out = append(out, dto.ToTransferResponse(&transfers[i]))
	}
	response.OK(c, out)
}

// Confirm handles POST /api/v1/bridge/transfers/:id/confirm. The caller is the relay.
func (h *BridgeHandler) Confirm(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := transferIDParam(c)
	if !ok {
		return
	}

	var req dto.DeliveryProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	t, err := h.bridge.ConfirmDelivery(c.Request.Context(), id, ports.DeliveryProof{
		Relayer:    string(caller.Account),
		DestTxHash: req.DestTxHash,
		IssuedAt:   req.IssuedAt,
		Signature:  req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToTransferResponse(t))
}

// Fail handles POST /api/v1/bridge/transfers/:id/fail.
func (h *BridgeHandler) Fail(c *gin.Context) {
	id, ok := transferIDParam(c)
	if !ok {
		return
	}

	t, err := h.bridge.ReportFailure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToTransferResponse(t))
}
