package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Resume   ResumeConfig
	Workflow WorkflowConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
}

type DatabaseConfig struct {
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPassword  string
	DBSSLMode   string
	AutoMigrate bool

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	CacheTTL time.Duration
	DraftTTL time.Duration
}

type JWTConfig struct {
	Secret string
}

type ResumeConfig struct {
	AnthropicAPIKey string
	Model           string
	MaxBytes        int64
}

type WorkflowConfig struct {
	BulkConcurrency int
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set win over .env.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT", ""),
	}

	cfg.Database = DatabaseConfig{
		DBHost:      opt("DB_HOST", "localhost"),
		DBPort:      opt("DB_PORT", "5432"),
		DBName:      opt("DB_NAME", "talent_hub"),
		DBUser:      opt("DB_USER", "postgres"),
		DBPassword:  opt("DB_PASSWORD", ""),
		DBSSLMode:   opt("DB_SSL_MODE", "disable"),
		AutoMigrate: optBool("DB_AUTO_MIGRATE", false),

		ConnectTimeout:      optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32(optInt("DB_MAX_CONNS", 10)),
		PoolMinConns:        int32(optInt("DB_MIN_CONNS", 0)),
		PoolMaxConnLifetime: optDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime: optDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		CacheTTL: time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
		DraftTTL: optDuration("DRAFT_TTL", 7*24*time.Hour),
	}

	cfg.JWT = JWTConfig{Secret: req("JWT_SECRET")}

	cfg.Resume = ResumeConfig{
		AnthropicAPIKey: opt("ANTHROPIC_API_KEY", ""),
		Model:           opt("RESUME_MODEL", "claude-3-7-sonnet-latest"),
		MaxBytes:        int64(optInt("RESUME_MAX_BYTES", 5<<20)),
	}

	cfg.Workflow = WorkflowConfig{BulkConcurrency: optInt("BULK_CONCURRENCY", 8)}

	cfg.Log = LogConfig{
		Level:  opt("LOG_LEVEL", "info"),
		Format: opt("LOG_FORMAT", "json"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
