package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	BackOffice BackOfficeConfig
	Redis      RedisConfig
	Catalog    CatalogConfig
	Checkout   CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KUSINA_APP_ENV" required:"true"`
	Port         string `envconfig:"KUSINA_APP_PORT" required:"true"`
	TerminalName string `envconfig:"KUSINA_TERMINAL_NAME" default:"terminal-1"`
	LogLevel     string `envconfig:"KUSINA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KUSINA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackOfficeConfig locates the REST service that owns catalog and orders.
type BackOfficeConfig struct {
	BaseURL string        `envconfig:"KUSINA_BACKOFFICE_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"KUSINA_BACKOFFICE_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KUSINA_REDIS_URL"`
	Address      string        `envconfig:"KUSINA_REDIS_ADDR"`
	Password     string        `envconfig:"KUSINA_REDIS_PASSWORD"`
	DB           int           `envconfig:"KUSINA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KUSINA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KUSINA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KUSINA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KUSINA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KUSINA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a catalog cache backend is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"KUSINA_CATALOG_CACHE_TTL" default:"5m"`
}

type CheckoutConfig struct {
	ConfirmationTTL time.Duration `envconfig:"KUSINA_CHECKOUT_CONFIRMATION_TTL" default:"5s"`
}
