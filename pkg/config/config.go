package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Auth         AuthConfig
	Stock        StockConfig
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
	Env          string   `envconfig:"KELVIN_APP_ENV" required:"true"`
	Port         string   `envconfig:"KELVIN_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"KELVIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"KELVIN_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"KELVIN_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KELVIN_DB_DSN"`
	Driver string `envconfig:"KELVIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"KELVIN_DB_HOST"`
	LegacyPort     int    `envconfig:"KELVIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KELVIN_DB_USER"`
	LegacyPassword string `envconfig:"KELVIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"KELVIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"KELVIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KELVIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KELVIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KELVIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KELVIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KELVIN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"KELVIN_REDIS_ADDR"`
	Password     string        `envconfig:"KELVIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"KELVIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KELVIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KELVIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KELVIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KELVIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KELVIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"KELVIN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"KELVIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"KELVIN_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"KELVIN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KELVIN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KELVIN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KELVIN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KELVIN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KELVIN_ARGON_KEY_LEN" default:"32"`
}

// AuthConfig pins the single provisioned admin account.
type AuthConfig struct {
	AdminEmail string `envconfig:"KELVIN_ADMIN_EMAIL" default:"admin@inventaris.com"`
}

// StockConfig tunes stock accounting behavior.
//
// UpdateRebase selects how a transaction update re-validates stock: false
// keeps the historical behavior (check the new quantity against present
// stock and overwrite fields only), true reverses the old effect and applies
// the new one atomically.
type StockConfig struct {
	UpdateRebase      bool `envconfig:"KELVIN_TXN_UPDATE_REBASE" default:"false"`
	LowStockThreshold int  `envconfig:"KELVIN_LOW_STOCK_THRESHOLD" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KELVIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
