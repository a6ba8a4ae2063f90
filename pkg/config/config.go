package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SMARTSORT"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names used by tests and deploy tooling.
const (
	EnvAppEnv       = "SMARTSORT_APP_ENV"
	EnvPort         = "SMARTSORT_APP_PORT"
	EnvDBDSN        = "SMARTSORT_DB_DSN"
	EnvRedisURL     = "SMARTSORT_REDIS_URL"
	EnvSendgridKey  = "SMARTSORT_SENDGRID_API_KEY"
	EnvSendgridFrom = "SMARTSORT_SENDGRID_FROM_EMAIL"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Reorder      ReorderConfig
	Sendgrid     SendgridConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTSORT_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTSORT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTSORT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTSORT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SMARTSORT_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SMARTSORT_DB_DSN"`
	Driver string `envconfig:"SMARTSORT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMARTSORT_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTSORT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTSORT_DB_USER"`
	LegacyPassword string `envconfig:"SMARTSORT_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTSORT_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTSORT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTSORT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTSORT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTSORT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTSORT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN backfills DSN from the individual legacy variables when they are
// the only thing configured.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("database configuration incomplete: set %s or the SMARTSORT_DB_HOST/USER/NAME variables", EnvDBDSN)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   "/" + d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSORT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTSORT_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSORT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSORT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSORT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSORT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSORT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSORT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSORT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ReorderConfig drives the low-stock scan worker.
type ReorderConfig struct {
	ScanInterval        time.Duration `envconfig:"SMARTSORT_REORDER_SCAN_INTERVAL" default:"1h"`
	LowStockThreshold   int           `envconfig:"SMARTSORT_REORDER_LOW_STOCK_THRESHOLD" default:"5"`
	HighDemandThreshold int           `envconfig:"SMARTSORT_REORDER_HIGH_DEMAND_THRESHOLD" default:"10"`
	NotifyTimeout       time.Duration `envconfig:"SMARTSORT_REORDER_NOTIFY_TIMEOUT" default:"10s"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"SMARTSORT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"SMARTSORT_SENDGRID_FROM_EMAIL"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SMARTSORT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SMARTSORT_AUTO_MIGRATE" default:"false"`
}
