package config

// EnvPrefix is passed to envconfig; every field carries an explicit envconfig
// tag so the prefix only matters for untagged fields.
const EnvPrefix = "TENUE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	GCSAccessPublic = "public"
	GCSAccessSigned = "signed"
)

const (
	EnvAppEnv   = "TENUE_APP_ENV"
	EnvPort     = "TENUE_APP_PORT"
	EnvLogLevel = "TENUE_LOG_LEVEL"

	EnvDBDSN  = "TENUE_DB_DSN"
	EnvDBHost = "TENUE_DB_HOST"
	EnvDBUser = "TENUE_DB_USER"
	EnvDBName = "TENUE_DB_NAME"

	EnvRedisURL  = "TENUE_REDIS_URL"
	EnvJWTSecret = "TENUE_JWT_SECRET"
	EnvGCSBucket = "TENUE_GCS_BUCKET_NAME"

	EnvSheetsServiceEmail = "TENUE_SHEETS_SERVICE_EMAIL"
	EnvSheetsPrivateKey   = "TENUE_SHEETS_PRIVATE_KEY"
	EnvSheetsSheetID      = "TENUE_SHEETS_SHEET_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
