package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Operator  OperatorConfig
	Crop      CropConfig
	S3        S3Config
	NATS      NATSConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

// DatabaseConfig is optional. When enabled the service reads and writes
// PostGIS tables and records export history.
type DatabaseConfig struct {
	Enabled         bool          `envconfig:"DB_ENABLED" default:"false"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type JWTConfig struct {
	SecretKey      string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"8h"`
}

// OperatorConfig holds the single operator allowed to drive sessions.
// PasswordHash is a bcrypt hash.
type OperatorConfig struct {
	Name         string `envconfig:"OPERATOR_NAME" default:"operator"`
	PasswordHash string `envconfig:"OPERATOR_PASSWORD_HASH" required:"true"`
}

type CropConfig struct {
	OutputDir     string        `envconfig:"CROP_OUTPUT_DIR" default:"."`
	ExportWorkers int           `envconfig:"CROP_EXPORT_WORKERS" default:"1"`
	Overwrite     bool          `envconfig:"CROP_OVERWRITE" default:"true"`
	SessionTTL    time.Duration `envconfig:"CROP_SESSION_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"CROP_SWEEP_INTERVAL" default:"5m"`
}

type S3Config struct {
	Enabled         bool          `envconfig:"S3_ENABLED" default:"false"`
	Endpoint        string        `envconfig:"S3_ENDPOINT"`
	Region          string        `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string        `envconfig:"S3_BUCKET"`
	AccessKeyID     string        `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string        `envconfig:"S3_PUBLIC_URL"`
	KeyPrefix       string        `envconfig:"S3_KEY_PREFIX" default:"crops"`
	SignedURLTTL    time.Duration `envconfig:"S3_SIGNED_URL_TTL" default:"0s"`
}

type NATSConfig struct {
	URL string `envconfig:"NATS_URL"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RateLimitConfig struct {
	Enabled         bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMin  int           `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"300"`
	BurstSize       int           `envconfig:"RATE_LIMIT_BURST_SIZE" default:"30"`
	CleanupInterval time.Duration `envconfig:"RATE_LIMIT_CLEANUP_INTERVAL" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Enabled && (c.Database.User == "" || c.Database.Name == "") {
		return fmt.Errorf("DB_USER and DB_NAME are required when DB_ENABLED is set")
	}
	if c.S3.Enabled && (c.S3.Bucket == "" || c.S3.AccessKeyID == "" || c.S3.SecretAccessKey == "") {
		return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required when S3_ENABLED is set")
	}
	if c.Crop.ExportWorkers < 1 {
		return fmt.Errorf("CROP_EXPORT_WORKERS must be at least 1, got %d", c.Crop.ExportWorkers)
	}
	if c.Crop.SweepInterval < 0 {
		return fmt.Errorf("CROP_SWEEP_INTERVAL must not be negative, got %s", c.Crop.SweepInterval)
	}
	return nil
}
