package config

// EnvPrefix namespaces every ParcelFlow environment variable.
const EnvPrefix = "PARCELFLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "PARCELFLOW_APP_ENV"
	EnvPort       = "PARCELFLOW_APP_PORT"
	EnvDBDSN      = "PARCELFLOW_DB_DSN"
	EnvDBHost     = "PARCELFLOW_DB_HOST"
	EnvDBUser     = "PARCELFLOW_DB_USER"
	EnvDBName     = "PARCELFLOW_DB_NAME"
	EnvRedisURL   = "PARCELFLOW_REDIS_URL"
	EnvJWTSecret  = "PARCELFLOW_JWT_SECRET"
	EnvJWTIssuer  = "PARCELFLOW_JWT_ISSUER"
	EnvJWTExpMins = "PARCELFLOW_JWT_EXPIRATION_MINUTES"
	EnvStripeKey  = "PARCELFLOW_STRIPE_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
