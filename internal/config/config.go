package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Store        StoreConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	HelpCenter   HelpCenterConfig
	Notification NotificationConfig
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig selects the snapshot store backend.
type StoreConfig struct {
	// Backend is one of "postgres", "redis", "memory".
	Backend string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines operator console authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	OperatorUsername      string
	OperatorPassword      string
}

// HelpCenterConfig tunes the conversational assistant and ticket workflow.
type HelpCenterConfig struct {
	EscalationWindowHours  int
	ResponsePollSpec       string
	EscalationPollSpec     string
	SupportContactName     string
	SupportContactPhone    string
	CSATEndpoint           string
	TranscriptClearDelayMS int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpcenter-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "postgres"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			OperatorUsername:      getEnv("OPERATOR_USERNAME", "operator"),
			OperatorPassword:      getEnv("OPERATOR_PASSWORD", "operator"),
		},
		HelpCenter: HelpCenterConfig{
			EscalationWindowHours:  getEnvAsInt("HELPCENTER_ESCALATION_WINDOW_HOURS", 24),
			ResponsePollSpec:       getEnv("HELPCENTER_RESPONSE_POLL_SPEC", "@every 5s"),
			EscalationPollSpec:     getEnv("HELPCENTER_ESCALATION_POLL_SPEC", "@every 1m"),
			SupportContactName:     getEnv("HELPCENTER_SUPPORT_CONTACT_NAME", "Sankalp"),
			SupportContactPhone:    getEnv("HELPCENTER_SUPPORT_CONTACT_PHONE", "+91 78220 71695"),
			CSATEndpoint:           getEnv("HELPCENTER_CSAT_ENDPOINT", "http://127.0.0.1:8081/api/support/csat"),
			TranscriptClearDelayMS: getEnvAsInt("HELPCENTER_TRANSCRIPT_CLEAR_DELAY_MS", 2000),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@parkseva.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// EscalationWindow returns the deadline offset applied to escalating tickets.
func (h HelpCenterConfig) EscalationWindow() time.Duration {
	if h.EscalationWindowHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(h.EscalationWindowHours) * time.Hour
}

// TranscriptClearDelay returns how long to wait before clearing the transcript
// after a positive satisfaction rating.
func (h HelpCenterConfig) TranscriptClearDelay() time.Duration {
	if h.TranscriptClearDelayMS < 0 {
		return 0
	}
	return time.Duration(h.TranscriptClearDelayMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
