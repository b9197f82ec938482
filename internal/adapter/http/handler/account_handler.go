package handler

import (
	"context"

	"bitpesa-lending/internal/adapter/http/dto"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler exposes ledger balances and the custody boundary.
type AccountHandler struct {
	ledger  ports.AssetLedger
	custody ports.CustodyService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger ports.AssetLedger, custody ports.CustodyService) *AccountHandler {
	return &AccountHandler{ledger: ledger, custody: custody}
}

// Balances handles GET /api/v1/accounts/:account/balances. An account may
// read its own balances; custodians and owners may read any.
func (h *AccountHandler) Balances(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	account, ok := accountParam(c)
	if !ok {
		return
	}
	if account != caller.Account && !caller.Has(domain.RoleCustodian) && !caller.Has(domain.RoleOwner) {
		response.Error(c, apperror.ErrUnauthorized("read balances of "+string(account)))
		return
	}

	balances, err := h.ledger.Balances(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.ToBalanceResponse(b))
	}
	response.OK(c, out)
}

// Deposit handles POST /api/v1/accounts/:account/deposits.
func (h *AccountHandler) Deposit(c *gin.Context) {
	h.custodyMove(c, h.custody.Deposit)
}

// Withdraw handles POST /api/v1/accounts/:account/withdrawals.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	h.custodyMove(c, h.custody.Withdraw)
}

type custodyFunc func(ctx context.Context, caller domain.Caller, account domain.Account, asset domain.Asset, amount uint64) (domain.Balance, error)

func (h *AccountHandler) custodyMove(c *gin.Context, move custodyFunc) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	account, ok := accountParam(c)
	if !ok {
		return
	}

	var req dto.CustodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	asset := domain.Asset(req.Asset)
	amount, ok := parseAmount(c, asset, "amount", req.Amount)
	if !ok {
		return
	}

	balance, err := move(c.Request.Context(), caller, account, asset, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToBalanceResponse(balance))
}

func accountParam(c *gin.Context) (domain.Account, bool) {
	account, err := domain.ParseAccount(c.Param("account"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return "", false
	}
	return account, true
}
