package handler

import (
	"net/http"
	"time"

	"bitpesa-lending/internal/adapter/http/middleware"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Engine         ports.LendingEngine
	Bridge         ports.BridgeLedger
	Ledger         ports.AssetLedger
	Custody        ports.CustodyService
	Oracle         ports.PriceOracle
	PriceStore     ports.PriceStore
	Clock          ports.Clock
	TokenSvc       ports.TokenService
	IdemCache      ports.IdempotencyCache   // nil = idempotency keys ignored
	IdemTTL        time.Duration
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	Observer       middleware.RequestObserver // nil = no request metrics
	MetricsHandler http.Handler               // nil = metrics not mounted
	MetricsPath    string                     // defaults to /metrics
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Observer != nil {
		r.Use(middleware.Metrics(deps.Observer))
	}
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.MetricsHandler))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	idem := func(c *gin.Context) { c.Next() }
	if deps.IdemCache != nil {
		idem = middleware.Idempotency(deps.IdemCache, deps.IdemTTL, deps.Logger)
	}
	role := middleware.RequireRole

	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	priceHandler := NewPriceHandler(deps.Oracle, deps.PriceStore, deps.Clock)
	prices := v1.Group("/prices")
	{
		prices.GET("/*pair", rl("read"), priceHandler.GetPrice)
		prices.POST("", role(domain.RoleFeeder), rl("prices_publish"), priceHandler.PublishPrice)
	}

	accountHandler := NewAccountHandler(deps.Ledger, deps.Custody)
	accounts := v1.Group("/accounts/:account")
	{
		accounts.GET("/balances", rl("read"), accountHandler.Balances)
		accounts.POST("/deposits", role(domain.RoleCustodian), rl("custody"), idem, accountHandler.Deposit)
		accounts.POST("/withdrawals", role(domain.RoleCustodian), rl("custody"), idem, accountHandler.Withdraw)
	}

	loanHandler := NewLoanHandler(deps.Engine)
	loans := v1.Group("/loans")
	{
		loans.POST("", role(domain.RoleBorrower), rl("loans_create"), idem, loanHandler.CreateLoan)
		loans.GET("", rl("read"), loanHandler.ListLoans)
		loans.GET("/quote", rl("read"), loanHandler.Quote)
		loans.GET("/:id", rl("read"), loanHandler.GetLoan)
		loans.GET("/:id/interest", rl("read"), loanHandler.Interest)
		loans.GET("/:id/health", rl("read"), loanHandler.Health)
		loans.POST("/:id/repay", rl("loans_repay"), idem, loanHandler.Repay)
		loans.POST("/:id/liquidate", rl("liquidate"), idem, loanHandler.Liquidate)
	}

	platformHandler := NewPlatformHandler(deps.Engine)
	platform := v1.Group("/platform")
	{
		platform.GET("", rl("read"), platformHandler.GetPlatform)
		platform.GET("/reconcile", role(domain.RoleOwner, domain.RoleTreasury), rl("platform"), platformHandler.Reconcile)
		platform.POST("/liquidity", role(domain.RoleOwner), rl("platform"), idem, platformHandler.AddLiquidity)
		platform.POST("/fees/withdraw", role(domain.RoleTreasury), rl("platform"), idem, platformHandler.WithdrawFees)
	}

	bridgeHandler := NewBridgeHandler(deps.Bridge)
	transfers := v1.Group("/bridge/transfers")
	{
		transfers.POST("", rl("bridge"), idem, bridgeHandler.Initiate)
		transfers.GET("", role(domain.RoleRelayer, domain.RoleOwner), rl("read"), bridgeHandler.ListPending)
		transfers.GET("/:id", rl("read"), bridgeHandler.Get)
		transfers.POST("/:id/confirm", role(domain.RoleRelayer), rl("bridge_relay"), bridgeHandler.Confirm)
		transfers.POST("/:id/fail", role(domain.RoleRelayer), rl("bridge_relay"), bridgeHandler.Fail)
	}

	return r
}
