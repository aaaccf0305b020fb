package app

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration, sourced from environment
// variables.
type Config struct {
	// Env is the deployment environment name ("dev" enables source
	// locations in logs).
	Env string

	// Port the HTTP server listens on.
	Port string

	// DatabaseFile is the SQLite database path.
	DatabaseFile string

	// PepperFile is where the password pepper lives; generated on first
	// start when absent.
	PepperFile string

	// JWTSecret enables bearer-token caller identity when set.
	JWTSecret string

	// DefaultOwnerID is the fallback owner for unauthenticated task
	// creation. On a fresh database this is the seeded admin.
	DefaultOwnerID int64

	// AdminPassword seeds the first-run admin account; generated when
	// empty.
	AdminPassword string

	LogLevel  string
	LogFormat string

	// ShutdownGracePeriod bounds how long in-flight requests may run during
	// shutdown.
	ShutdownGracePeriod time.Duration
}

// LoadConfig reads the configuration from the environment, applying
// defaults suitable for local development.
func LoadConfig() Config {
	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		Port:                getEnvOrDefault("TASKHUB_PORT", "8080"),
		DatabaseFile:        getEnvOrDefault("TASKHUB_DATABASE_FILE", "taskhub.db"),
		PepperFile:          getEnvOrDefault("TASKHUB_PEPPER_FILE", "taskhub.pepper"),
		JWTSecret:           os.Getenv("TASKHUB_JWT_SECRET"),
		DefaultOwnerID:      getEnvInt64OrDefault("TASKHUB_DEFAULT_OWNER_ID", 1),
		AdminPassword:       os.Getenv("TASKHUB_ADMIN_PASSWORD"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64OrDefault(key string, def int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return def
}
