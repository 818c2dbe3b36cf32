package config

// EnvPrefix is the envconfig prefix shared by every IdeaHub variable.
const EnvPrefix = "IDEAHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "IDEAHUB_APP_ENV"
	EnvPort     = "IDEAHUB_APP_PORT"
	EnvDBDSN    = "IDEAHUB_DB_DSN"
	EnvDBHost   = "IDEAHUB_DB_HOST"
	EnvDBUser   = "IDEAHUB_DB_USER"
	EnvDBName   = "IDEAHUB_DB_NAME"
	EnvRedisURL = "IDEAHUB_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
