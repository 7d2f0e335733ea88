package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// PGDSN is optional: empty means the catalog runs on the in-memory
	// repositories seeded from SeedData, the transient mode of a single
	// terminal session.
	PGDSN string `envconfig:"PG_DSN" default:""`

	// RedisAddr is optional: empty disables the product list cache and the
	// low-stock alert queue, falling back to the log notifier.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	ProductCacheTTL time.Duration `envconfig:"PRODUCT_CACHE_TTL" default:"5m"`

	TaxRate      float64       `envconfig:"TAX_RATE" default:"0.08"`
	PaymentDelay time.Duration `envconfig:"PAYMENT_DELAY" default:"1500ms"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return nil, errors.New("tax rate must be in [0, 1)")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
