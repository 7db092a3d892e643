package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Billing BillingConfig
	Metrics MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Billing.TaxRate.IsNegative() {
		return fmt.Errorf("invalid config: %s must be >= 0", EnvTaxRate)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"POS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"POS_LOG_FORMAT" default:"console" validate:"oneof=json console"`
	LogWarnStack bool   `envconfig:"POS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Driver      string `envconfig:"POS_STORAGE_DRIVER" default:"file" validate:"oneof=file postgres"`
	CatalogPath string `envconfig:"POS_CATALOG_PATH" default:"data/Record.json" validate:"required_if=Driver file"`
	JournalPath string `envconfig:"POS_JOURNAL_PATH" default:"data/Sales.txt" validate:"required_if=Driver file"`
	DSN         string `envconfig:"POS_DB_DSN" validate:"required_if=Driver postgres"`
	AutoMigrate bool   `envconfig:"POS_DB_AUTO_MIGRATE" default:"false"`
}

func (s StorageConfig) UsesPostgres() bool {
	return s.Driver == DriverPostgres
}

type BillingConfig struct {
	TaxRate       decimal.Decimal `envconfig:"POS_TAX_RATE" default:"0.025"`
	CurrencyLabel string          `envconfig:"POS_CURRENCY_LABEL" default:"Rs"`
}

type MetricsConfig struct {
	TextfilePath string `envconfig:"POS_METRICS_TEXTFILE"`
}
