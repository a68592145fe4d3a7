package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Cache     CacheConfig
	Messaging MessagingConfig
	Dashboard DashboardConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

// DevSessionSecret signs session cookies when SESSION_SECRET is unset.
// Validate refuses it in production.
const DevSessionSecret = "insight-center-dev-secret"

type SessionConfig struct {
	Store      string // "memory" or "redis"
	TTL        time.Duration
	Secret     string
	CookieName string
	RedisURL   string
}

type CacheConfig struct {
	DatasetTTL      time.Duration
	CleanupInterval time.Duration
}

type MessagingConfig struct {
	NatsURL          string
	NatsEnabled      bool
	SearchAuditTopic string
}

type DashboardConfig struct {
	DeepLinkForcesAnalysis bool
	PolicyTopN             int
	TopSearchedLimit       int
	HealthBroadcastPeriod  time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/live.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", "memory"),
			TTL:        getEnvAsDuration("SESSION_TTL", 2*time.Hour),
			Secret:     getEnv("SESSION_SECRET", DevSessionSecret),
			CookieName: getEnv("SESSION_COOKIE_NAME", "insight_session"),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Cache: CacheConfig{
			DatasetTTL:      getEnvAsDuration("DATASET_CACHE_TTL", 6*time.Hour),
			CleanupInterval: getEnvAsDuration("DATASET_CACHE_CLEANUP", 12*time.Hour),
		},
		Messaging: MessagingConfig{
			NatsURL:          getEnv("NATS_URL", "nats://localhost:4222"),
			NatsEnabled:      getEnvAsBool("NATS_ENABLED", false),
			SearchAuditTopic: getEnv("SEARCH_AUDIT_TOPIC", "SEARCH_AUDIT"),
		},
		Dashboard: DashboardConfig{
			DeepLinkForcesAnalysis: getEnvAsBool("DEEP_LINK_FORCES_ANALYSIS", true),
			PolicyTopN:             getEnvAsInt("POLICY_TOP_N", 100),
			TopSearchedLimit:       getEnvAsInt("TOP_SEARCHED_LIMIT", 10),
			HealthBroadcastPeriod:  getEnvAsDuration("HEALTH_BROADCAST_PERIOD", 30*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Connection == "" {
		errs = append(errs, errors.New("DB_CONNECTION_STRING is not set"))
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.IsProduction() && c.Session.Secret == DevSessionSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	if c.Dashboard.PolicyTopN <= 0 {
		errs = append(errs, errors.New("POLICY_TOP_N must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAs parses key with parse, falling back when unset or malformed.
func getEnvAs[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	return getEnvAs(key, fallback, strconv.Atoi)
}

func getEnvAsBool(key string, fallback bool) bool {
	return getEnvAs(key, fallback, strconv.ParseBool)
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	return getEnvAs(key, fallback, time.ParseDuration)
}
