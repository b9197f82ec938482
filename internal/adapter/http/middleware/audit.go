package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type auditRoute struct {
	action       domain.AuditAction
	resourceType string
	idParam      string
}

// auditRoutes maps POST route templates to audit actions.
var auditRoutes = map[string]auditRoute{
	"/api/v1/loans":                         {domain.AuditActionCreateLoan, "loan", ""},
	"/api/v1/loans/:id/repay":               {domain.AuditActionRepayLoan, "loan", "id"},
	"/api/v1/loans/:id/liquidate":           {domain.AuditActionLiquidate, "loan", "id"},
	"/api/v1/platform/liquidity":            {domain.AuditActionAddLiquidity, "platform", ""},
	"/api/v1/platform/fees/withdraw":        {domain.AuditActionWithdrawFees, "platform", ""},
	"/api/v1/accounts/:account/deposits":    {domain.AuditActionDeposit, "balance", "account"},
	"/api/v1/accounts/:account/withdrawals": {domain.AuditActionWithdraw, "balance", "account"},
	"/api/v1/prices":                        {domain.AuditActionPublishPrice, "price", ""},
	"/api/v1/bridge/transfers":              {domain.AuditActionBridgeInitiate, "bridge_transfer", ""},
	"/api/v1/bridge/transfers/:id/confirm":  {domain.AuditActionBridgeConfirm, "bridge_transfer", "id"},
	"/api/v1/bridge/transfers/:id/fail":     {domain.AuditActionBridgeFail, "bridge_transfer", "id"},
}

// AuditLog creates an audit middleware that records successful write operations.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}
		route, ok := auditRoutes[c.FullPath()]
		if !ok {
			return
		}

		var account *domain.Account
		if caller, ok := CallerFrom(c); ok {
			account = &caller.Account
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(CtxRequestID),
		})

		var resourceID string
		if route.idParam != "" {
			resourceID = c.Param(route.idParam)
		}

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Account:      account,
			Action:       route.action,
			ResourceType: route.resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}
