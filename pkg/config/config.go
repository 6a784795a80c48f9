package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App         AppConfig
	Cart        CartConfig
	Search      SearchConfig
	Catalog     CatalogConfig
	Persistence PersistenceConfig
	Redis       RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Persistence.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CartConfig carries the pricing inputs for cart aggregate recomputation.
type CartConfig struct {
	TaxRate               float64 `envconfig:"SHOPFRONT_CART_TAX_RATE" default:"0.08"`
	ShippingFee           float64 `envconfig:"SHOPFRONT_CART_SHIPPING_FEE" default:"9.99"`
	FreeShippingThreshold float64 `envconfig:"SHOPFRONT_CART_FREE_SHIPPING_THRESHOLD" default:"100"`
}

// TaxRateDecimal returns the tax rate as an exact decimal.
func (c CartConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate)
}

// ShippingFeeDecimal returns the flat shipping fee as an exact decimal.
func (c CartConfig) ShippingFeeDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.ShippingFee)
}

// FreeShippingThresholdDecimal returns the subtotal at which shipping is waived.
func (c CartConfig) FreeShippingThresholdDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.FreeShippingThreshold)
}

type SearchConfig struct {
	DebounceWindow time.Duration `envconfig:"SHOPFRONT_SEARCH_DEBOUNCE_WINDOW" default:"300ms"`
	PageSize       int           `envconfig:"SHOPFRONT_SEARCH_PAGE_SIZE" default:"12"`
}

type CatalogConfig struct {
	BaseURL  string        `envconfig:"SHOPFRONT_CATALOG_BASE_URL" default:"http://127.0.0.1:8000/api"`
	Timeout  time.Duration `envconfig:"SHOPFRONT_CATALOG_TIMEOUT" default:"10s"`
	PageSize int           `envconfig:"SHOPFRONT_CATALOG_PAGE_SIZE" default:"12"`
}

type PersistenceConfig struct {
	Driver     string `envconfig:"SHOPFRONT_PERSISTENCE_DRIVER" default:"redis"`
	SQLitePath string `envconfig:"SHOPFRONT_PERSISTENCE_SQLITE_PATH" default:"shopfront.db"`
}

func (p PersistenceConfig) validate() error {
	switch p.Driver {
	case PersistenceDriverRedis, PersistenceDriverSQLite, PersistenceDriverMemory:
		return nil
	}
	return fmt.Errorf("unknown persistence driver %q", p.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPFRONT_REDIS_URL"`
	Address      string        `envconfig:"SHOPFRONT_REDIS_ADDR" default:"127.0.0.1:6379"`
	Password     string        `envconfig:"SHOPFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}
