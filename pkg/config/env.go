package config

const EnvPrefix = "POS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv          = "POS_APP_ENV"
	EnvLogLevel        = "POS_LOG_LEVEL"
	EnvLogFormat       = "POS_LOG_FORMAT"
	EnvLogWarnStack    = "POS_LOG_WARN_STACK"
	EnvStorageDriver   = "POS_STORAGE_DRIVER"
	EnvCatalogPath     = "POS_CATALOG_PATH"
	EnvJournalPath     = "POS_JOURNAL_PATH"
	EnvDBDSN           = "POS_DB_DSN"
	EnvDBAutoMigrate   = "POS_DB_AUTO_MIGRATE"
	EnvTaxRate         = "POS_TAX_RATE"
	EnvCurrencyLabel   = "POS_CURRENCY_LABEL"
	EnvMetricsTextfile = "POS_METRICS_TEXTFILE"
)
