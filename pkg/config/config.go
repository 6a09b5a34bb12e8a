package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Admin     AdminConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Twilio    TwilioConfig
	LoginRate LoginRateLimitConfig
	Features  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" && !cfg.Features.UseSQLite {
		return nil, fmt.Errorf("%s is required when sqlite is disabled", EnvDBDSN)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHECKPIX_APP_ENV" required:"true"`
	Port         string `envconfig:"CHECKPIX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CHECKPIX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHECKPIX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AdminConfig carries the shared admin secret. An empty Token disables all
// admin authentication: login rejects everything and the route guard fails
// closed.
type AdminConfig struct {
	Token string `envconfig:"CHECKPIX_ADMIN_TOKEN"`
}

func (a AdminConfig) Configured() bool {
	return strings.TrimSpace(a.Token) != ""
}

type DBConfig struct {
	DSN    string `envconfig:"CHECKPIX_DB_DSN"`
	Driver string `envconfig:"CHECKPIX_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"CHECKPIX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHECKPIX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHECKPIX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHECKPIX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; the login rate limiter is disabled when URL and
// Address are both empty.
type RedisConfig struct {
	URL          string        `envconfig:"CHECKPIX_REDIS_URL"`
	Address      string        `envconfig:"CHECKPIX_REDIS_ADDR"`
	Password     string        `envconfig:"CHECKPIX_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHECKPIX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHECKPIX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHECKPIX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHECKPIX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHECKPIX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHECKPIX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CHECKPIX_CORS_ORIGINS" default:"http://localhost:3000"`
}

// StorageConfig points at the public asset root that holds rendered QR codes
// and uploaded product images.
type StorageConfig struct {
	PublicDir   string `envconfig:"CHECKPIX_PUBLIC_DIR" default:"public"`
	QRCodeDir   string `envconfig:"CHECKPIX_QRCODE_DIR" default:"qrcodes"`
	UploadsDir  string `envconfig:"CHECKPIX_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"CHECKPIX_MAX_UPLOAD_MB" default:"10"`
}

type TwilioConfig struct {
	BaseURL string        `envconfig:"CHECKPIX_TWILIO_BASE_URL" default:"https://api.twilio.com"`
	Timeout time.Duration `envconfig:"CHECKPIX_TWILIO_TIMEOUT" default:"10s"`
}

type LoginRateLimitConfig struct {
	Window  time.Duration `envconfig:"CHECKPIX_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"CHECKPIX_LOGIN_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"CHECKPIX_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"CHECKPIX_SQLITE_PATH" default:"checkpix.db"`
	AutoMigrate bool   `envconfig:"CHECKPIX_AUTO_MIGRATE" default:"false"`
}
