package config

const (
	EnvPrefix = "PROMOCHECK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv       = "PROMOCHECK_APP_ENV"
	EnvPort         = "PROMOCHECK_APP_PORT"
	EnvLogLevel     = "PROMOCHECK_LOG_LEVEL"
	EnvDBDSN        = "PROMOCHECK_DB_DSN"
	EnvDBDriver     = "PROMOCHECK_DB_DRIVER"
	EnvDBHost       = "PROMOCHECK_DB_HOST"
	EnvDBPort       = "PROMOCHECK_DB_PORT"
	EnvDBUser       = "PROMOCHECK_DB_USER"
	EnvDBPassword   = "PROMOCHECK_DB_PASSWORD"
	EnvDBName       = "PROMOCHECK_DB_NAME"
	EnvRedisURL     = "PROMOCHECK_REDIS_URL"
	EnvRedisAddr    = "PROMOCHECK_REDIS_ADDR"
	EnvCacheTTL     = "PROMOCHECK_PROMOTIONS_CACHE_TTL"
	EnvAutoMigrate  = "PROMOCHECK_AUTO_MIGRATE"
	EnvLogFormat    = "PROMOCHECK_LOG_FORMAT"
	LogFormatJSON   = "json"
	LogFormatPretty = "console"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
