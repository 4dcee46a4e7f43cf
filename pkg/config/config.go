package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App             AppConfig
	DB              DBConfig
	Redis           RedisConfig
	JWT             JWTConfig
	IntakeRateLimit IntakeRateLimitConfig
	FeatureFlags    FeatureFlagsConfig
	GCP             GCPConfig
	GCS             GCSConfig
	Sheets          SheetsConfig
	Orders          OrdersConfig
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
	Env          string   `envconfig:"TENUE_APP_ENV" required:"true"`
	Port         string   `envconfig:"TENUE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"TENUE_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"TENUE_LOG_FORMAT" default:"json"`
	LogWarnStack bool     `envconfig:"TENUE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"TENUE_CORS_ORIGINS" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"TENUE_DB_DSN"`

	LegacyHost     string `envconfig:"TENUE_DB_HOST"`
	LegacyPort     int    `envconfig:"TENUE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TENUE_DB_USER"`
	LegacyPassword string `envconfig:"TENUE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TENUE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TENUE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TENUE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"TENUE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"TENUE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TENUE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TENUE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"TENUE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TENUE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TENUE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TENUE_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"TENUE_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// JWTConfig describes the tokens minted by the external identity provider.
// Only verification happens here.
type JWTConfig struct {
	Secret string `envconfig:"TENUE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"TENUE_JWT_ISSUER"`
}

// IntakeRateLimitConfig throttles order submissions per client IP before the
// order gate runs its own per-phone check.
type IntakeRateLimitConfig struct {
	Window  time.Duration `envconfig:"TENUE_INTAKE_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"TENUE_INTAKE_RATE_LIMIT_IP_LIMIT" default:"20"`
	// TrustedProxyHops counts the reverse proxies that append to
	// X-Forwarded-For. Zero keys the throttle on the peer address.
	TrustedProxyHops int `envconfig:"TENUE_TRUSTED_PROXY_HOPS" default:"0"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool   `envconfig:"TENUE_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"TENUE_GCS_ACCESS_MODE" default:"public"`
}

// SignedMedia reports whether image URLs must be signed rather than public.
func (f FeatureFlagsConfig) SignedMedia() bool {
	return strings.EqualFold(strings.TrimSpace(f.GCSAccessMode), GCSAccessSigned)
}

type GCPConfig struct {
	CredentialsJSON        string `envconfig:"TENUE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TENUE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"TENUE_GCS_BUCKET_NAME" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"TENUE_GCS_DOWNLOAD_URL_EXPIRY" default:"24h"`
}

// SheetsConfig holds the service account used to mirror orders into a Google
// spreadsheet. Any missing value disables the push.
type SheetsConfig struct {
	ServiceEmail string        `envconfig:"TENUE_SHEETS_SERVICE_EMAIL"`
	PrivateKey   string        `envconfig:"TENUE_SHEETS_PRIVATE_KEY"`
	SheetID      string        `envconfig:"TENUE_SHEETS_SHEET_ID"`
	Tab          string        `envconfig:"TENUE_SHEETS_TAB" default:"Orders"`
	TimeZone     string        `envconfig:"TENUE_SHEETS_TIMEZONE" default:"Africa/Algiers"`
	PushTimeout  time.Duration `envconfig:"TENUE_SHEETS_PUSH_TIMEOUT" default:"30s"`
}

// Configured reports whether all credentials needed for a push are present.
func (s SheetsConfig) Configured() bool {
	return strings.TrimSpace(s.ServiceEmail) != "" &&
		strings.TrimSpace(s.PrivateKey) != "" &&
		strings.TrimSpace(s.SheetID) != ""
}

// Location resolves the configured time zone, falling back to UTC.
func (s SheetsConfig) Location() *time.Location {
	name := strings.TrimSpace(s.TimeZone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type OrdersConfig struct {
	MinFillTime      time.Duration `envconfig:"TENUE_ORDERS_MIN_FILL_TIME" default:"150ms"`
	PhoneWindow      time.Duration `envconfig:"TENUE_ORDERS_PHONE_WINDOW" default:"15m"`
	PhoneLimit       int           `envconfig:"TENUE_ORDERS_PHONE_LIMIT" default:"3"`
	DefaultListLimit int           `envconfig:"TENUE_ORDERS_DEFAULT_LIST_LIMIT" default:"100"`
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
