package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitpesa-lending/config"
	httpHandler "bitpesa-lending/internal/adapter/http/handler"
	"bitpesa-lending/internal/adapter/metrics"
	memStorage "bitpesa-lending/internal/adapter/storage/memory"
	pgStorage "bitpesa-lending/internal/adapter/storage/postgres"
	redisStorage "bitpesa-lending/internal/adapter/storage/redis"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/internal/service"
	"bitpesa-lending/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const idempotencyTTL = 24 * time.Hour

// repositories groups the storage ports chosen by storage.driver.
type repositories struct {
	balances  ports.BalanceRepository
	loans     ports.LoanRepository
	platform  ports.PlatformRepository
	transfers ports.BridgeTransferRepository
	audit     ports.AuditRepository // nil for the memory driver
	health    []ports.HealthChecker
	close     func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("BPL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithFile(cfg.Log.Level, cfg.Log.Pretty, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting BitPesa lending service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer repos.close()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize Redis stores
	priceStore := redisStorage.NewPriceStore(rdb)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	nonceStore := redisStorage.NewNonceStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	clock := service.SystemClock{}
	var prom *metrics.Prometheus
	var engineMetrics ports.Metrics
	if cfg.Metrics.Enabled {
		prom = metrics.New()
		engineMetrics = prom
	}

	params, err := lendingParams(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid lending parameters")
	}

	oracle := service.NewPriceOracle(priceStore, clock, cfg.Oracle.MaxStaleness)
	ledger := service.NewAssetLedger(repos.balances)
	custody := service.NewCustodyService(ledger)
	engine := service.NewLendingEngine(params, oracle, ledger, repos.loans, repos.platform, clock, engineMetrics).
		TrackBridgeEscrow(repos.transfers)
	verifier := service.NewHMACProofVerifier(cfg.Bridge.RelaySecrets, nonceStore, clock, cfg.Bridge.ProofTTL)
	bridge := service.NewBridgeLedger(ledger, repos.transfers, verifier, clock, engineMetrics, bridgeChains(cfg.Bridge))
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	var auditSvc ports.AuditService
	if repos.audit != nil {
		auditSvc = service.NewAuditService(repos.audit, log)
	}

	deps := httpHandler.RouterDeps{
		Engine:         engine,
		Bridge:         bridge,
		Ledger:         ledger,
		Custody:        custody,
		Oracle:         oracle,
		PriceStore:     priceStore,
		Clock:          clock,
		TokenSvc:       tokenSvc,
		IdemCache:      idempotencyCache,
		IdemTTL:        idempotencyTTL,
		RateLimitStore: rateLimitStore,
		HealthCheckers: append(repos.health, redisStorage.NewHealthCheck(rdb)),
		AuditSvc:       auditSvc,
		Logger:         log,
	}
	if prom != nil {
		deps.Observer = prom
		deps.MetricsHandler = prom.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}
	router := httpHandler.SetupRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server exited")
}

// openStorage builds the repositories for cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	platformAccount := domain.Account(cfg.Lending.PlatformAccount)

	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("Using in-memory storage, state is lost on restart")
		return &repositories{
			balances:  memStorage.NewBalanceRepo(),
			loans:     memStorage.NewLoanRepo(),
			platform:  memStorage.NewPlatformRepo(platformAccount),
			transfers: memStorage.NewBridgeTransferRepo(),
			close:     func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pgStorage.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	return &repositories{
		balances:  pgStorage.NewBalanceRepo(pool),
		loans:     pgStorage.NewLoanRepo(pool),
		platform:  pgStorage.NewPlatformRepo(pool, platformAccount),
		transfers: pgStorage.NewBridgeTransferRepo(pool),
		audit:     pgStorage.NewAuditRepository(pool),
		health:    []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
		close:     pool.Close,
	}, nil
}

func lendingParams(cfg *config.Config) (service.LendingParams, error) {
	l := cfg.Lending
	tiers := make([]domain.RateTier, 0, len(l.RateSchedule))
	for _, t := range l.RateSchedule {
		tiers = append(tiers, domain.RateTier{
			MaxDurationSeconds: int64(t.MaxDuration / time.Second),
			RateBps:            t.RateBps,
		})
	}
	rates, err := domain.NewRateSchedule(tiers)
	if err != nil {
		return service.LendingParams{}, err
	}

	return service.LendingParams{
		Pair:                        cfg.Oracle.Pair,
		RequiredCollateralRatioBps:  l.RequiredCollateralRatioBps,
		LiquidationThresholdBps:     l.LiquidationThresholdBps,
		LiquidationProtocolShareBps: l.LiquidationProtocolShareBps,
		ProtocolFeeBps:              l.ProtocolFeeBps,
		MinDurationSeconds:          int64(l.MinDuration / time.Second),
		MaxDurationSeconds:          int64(l.MaxDuration / time.Second),
		Rates:                       rates,
		PermissionlessLiquidation:   l.PermissionlessLiquidation,
		LiquidatorRepaysDebt:        l.LiquidatorRepaysDebt,
		OracleRetryBackoff:          l.OracleRetryBackoff,
		PlatformAccount:             domain.Account(l.PlatformAccount),
	}, nil
}

// bridgeChains is the local chain plus every chain with a relay secret.
func bridgeChains(cfg config.BridgeConfig) []string {
	chains := []string{cfg.LocalChain}
	for chain := range cfg.RelaySecrets {
		if chain != cfg.LocalChain {
			chains = append(chains, chain)
		}
	}
	return chains
}
