package config

// EnvPrefix is the envconfig prefix shared by every variable below.
const EnvPrefix = "INVENTRA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "INVENTRA_APP_ENV"
	EnvPort   = "INVENTRA_APP_PORT"

	EnvDBDSN  = "INVENTRA_DB_DSN"
	EnvDBHost = "INVENTRA_DB_HOST"
	EnvDBUser = "INVENTRA_DB_USER"
	EnvDBName = "INVENTRA_DB_NAME"

	EnvRedisURL = "INVENTRA_REDIS_URL"

	EnvJWTSecret              = "INVENTRA_JWT_SECRET"
	EnvJWTIssuer              = "INVENTRA_JWT_ISSUER"
	EnvJWTExpMins             = "INVENTRA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "INVENTRA_REFRESH_TOKEN_TTL_MINUTES"

	EnvGCPProjectID = "INVENTRA_GCP_PROJECT_ID"
	EnvGCSBucket    = "INVENTRA_GCS_BUCKET_NAME"

	EnvWarrantyBaseURL  = "INVENTRA_WARRANTY_BASE_URL"
	EnvWarrantyUsername = "INVENTRA_WARRANTY_USERNAME"
	EnvWarrantyPassword = "INVENTRA_WARRANTY_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
