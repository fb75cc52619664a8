package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "KELVIN"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "KELVIN_APP_ENV"
	EnvPort       = "KELVIN_APP_PORT"
	EnvDBDSN      = "KELVIN_DB_DSN"
	EnvDBHost     = "KELVIN_DB_HOST"
	EnvDBUser     = "KELVIN_DB_USER"
	EnvDBName     = "KELVIN_DB_NAME"
	EnvRedisURL   = "KELVIN_REDIS_URL"
	EnvJWTSecret  = "KELVIN_JWT_SECRET"
	EnvJWTIssuer  = "KELVIN_JWT_ISSUER"
	EnvJWTExpMins = "KELVIN_JWT_EXPIRATION_MINUTES"
	EnvAdminEmail = "KELVIN_ADMIN_EMAIL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
