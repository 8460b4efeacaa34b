package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Promotions PromotionsConfig
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
	Env          string `envconfig:"PROMOCHECK_APP_ENV" required:"true"`
	Port         string `envconfig:"PROMOCHECK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROMOCHECK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PROMOCHECK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PROMOCHECK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PROMOCHECK_DB_DSN"`
	Driver string `envconfig:"PROMOCHECK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PROMOCHECK_DB_HOST"`
	Port     int    `envconfig:"PROMOCHECK_DB_PORT" default:"5432"`
	User     string `envconfig:"PROMOCHECK_DB_USER"`
	Password string `envconfig:"PROMOCHECK_DB_PASSWORD"`
	Name     string `envconfig:"PROMOCHECK_DB_NAME"`
	SSLMode  string `envconfig:"PROMOCHECK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROMOCHECK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROMOCHECK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROMOCHECK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROMOCHECK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"PROMOCHECK_DB_SLOW_QUERY" default:"200ms"`
}

// IsSQLite reports whether the DSN should be opened with the sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"PROMOCHECK_REDIS_URL"`
	Address      string        `envconfig:"PROMOCHECK_REDIS_ADDR"`
	Password     string        `envconfig:"PROMOCHECK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROMOCHECK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROMOCHECK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROMOCHECK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROMOCHECK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROMOCHECK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROMOCHECK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured. Without one the
// promotion cache is bypassed.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PromotionsConfig struct {
	CacheTTL    time.Duration `envconfig:"PROMOCHECK_PROMOTIONS_CACHE_TTL" default:"60s"`
	AutoMigrate bool          `envconfig:"PROMOCHECK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
