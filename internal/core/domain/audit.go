package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateLoan     AuditAction = "CREATE_LOAN"
	AuditActionRepayLoan      AuditAction = "REPAY_LOAN"
	AuditActionLiquidate      AuditAction = "LIQUIDATE"
	AuditActionAddLiquidity   AuditAction = "ADD_LIQUIDITY"
	AuditActionWithdrawFees   AuditAction = "WITHDRAW_FEES"
	AuditActionDeposit        AuditAction = "DEPOSIT"
	AuditActionWithdraw       AuditAction = "WITHDRAW"
	AuditActionPublishPrice   AuditAction = "PUBLISH_PRICE"
	AuditActionBridgeInitiate AuditAction = "BRIDGE_INITIATE"
	AuditActionBridgeConfirm  AuditAction = "BRIDGE_CONFIRM"
	AuditActionBridgeFail     AuditAction = "BRIDGE_FAIL"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Account      *Account    `json:"account,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
