package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Lending  LendingConfig  `mapstructure:"lending"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Bridge   BridgeConfig   `mapstructure:"bridge"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, postgres
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Pretty     bool   `mapstructure:"pretty"` // human-readable output (dev only)
	File       string `mapstructure:"file"`   // optional rotated log file
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RateTier maps loans up to MaxDuration to an annual rate in basis points.
type RateTier struct {
	MaxDuration time.Duration `mapstructure:"max_duration"`
	RateBps     uint64        `mapstructure:"rate_bps"`
}

type LendingConfig struct {
	RequiredCollateralRatioBps  uint64        `mapstructure:"required_collateral_ratio_bps"`
	LiquidationThresholdBps     uint64        `mapstructure:"liquidation_threshold_bps"`
	LiquidationProtocolShareBps uint64        `mapstructure:"liquidation_protocol_share_bps"`
	ProtocolFeeBps              uint64        `mapstructure:"protocol_fee_bps"`
	MinDuration                 time.Duration `mapstructure:"min_duration"`
	MaxDuration                 time.Duration `mapstructure:"max_duration"`
	RateSchedule                []RateTier    `mapstructure:"rate_schedule"`
	PermissionlessLiquidation   bool          `mapstructure:"permissionless_liquidation"`
	LiquidatorRepaysDebt        bool          `mapstructure:"liquidator_repays_debt"`
	OracleRetryBackoff          time.Duration `mapstructure:"oracle_retry_backoff"`
	PlatformAccount             string        `mapstructure:"platform_account"`
}

type OracleConfig struct {
	Pair         string        `mapstructure:"pair"`
	MaxStaleness time.Duration `mapstructure:"max_staleness"`
}

type BridgeConfig struct {
	LocalChain   string            `mapstructure:"local_chain"`
	RelaySecrets map[string]string `mapstructure:"relay_secrets"` // destination chain -> HMAC secret
	ProofTTL     time.Duration     `mapstructure:"proof_ttl"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BPL_.
// Nested keys use underscore: BPL_DATABASE_HOST, BPL_ORACLE_MAX_STALENESS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "bitpesa_lending")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "1s")
	v.SetDefault("redis.write_timeout", "1s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "bitpesa-lending")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("lending.required_collateral_ratio_bps", 15000)
	v.SetDefault("lending.liquidation_threshold_bps", 12500)
	v.SetDefault("lending.liquidation_protocol_share_bps", 500)
	v.SetDefault("lending.protocol_fee_bps", 1000)
	v.SetDefault("lending.min_duration", "24h")
	v.SetDefault("lending.max_duration", "8760h")
	v.SetDefault("lending.rate_schedule", []map[string]interface{}{
		{"max_duration": 30 * 24 * time.Hour, "rate_bps": 800},
		{"max_duration": 90 * 24 * time.Hour, "rate_bps": 1000},
		{"max_duration": 180 * 24 * time.Hour, "rate_bps": 1200},
		{"max_duration": 365 * 24 * time.Hour, "rate_bps": 1500},
	})
	v.SetDefault("lending.permissionless_liquidation", false)
	v.SetDefault("lending.liquidator_repays_debt", false)
	v.SetDefault("lending.oracle_retry_backoff", "200ms")
	v.SetDefault("lending.platform_account", "platform")
	v.SetDefault("oracle.pair", "BTC/USD")
	v.SetDefault("oracle.max_staleness", "1h")
	v.SetDefault("bridge.local_chain", "bitpesa-l1")
	v.SetDefault("bridge.proof_ttl", "24h")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BPL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints the lending engine relies on.
func (c *Config) Validate() error {
	l := c.Lending
	if l.RequiredCollateralRatioBps < 10000 {
		return errors.New("lending.required_collateral_ratio_bps must be at least 10000")
	}
	if l.LiquidationThresholdBps == 0 || l.LiquidationThresholdBps > l.RequiredCollateralRatioBps {
		return errors.New("lending.liquidation_threshold_bps must be in (0, required_collateral_ratio_bps]")
	}
	if l.LiquidationProtocolShareBps > 10000 || l.ProtocolFeeBps > 10000 {
		return errors.New("lending bps shares must not exceed 10000")
	}
	if l.MinDuration <= 0 || l.MaxDuration < l.MinDuration {
		return errors.New("lending.min_duration must be positive and not exceed max_duration")
	}
	if len(l.RateSchedule) == 0 {
		return errors.New("lending.rate_schedule must not be empty")
	}
	if c.Oracle.MaxStaleness <= 0 {
		return errors.New("oracle.max_staleness must be positive")
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	return nil
}
