// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Tracker  TrackerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds database configuration.
// URL accepts a postgres:// / postgresql:// DSN or a sqlite path
// (optionally prefixed with sqlite://).
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuthConfig holds the single-user HTTP Basic credential.
// When PasswordHash is set it takes precedence over Password and is
// verified with bcrypt.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

// TrackerConfig holds domain policy configuration.
type TrackerConfig struct {
	// AllowedSources is the closed set of source tags accepted on
	// transactions and fuel logs.
	AllowedSources []string
	// FoldFuelByDefault controls whether reports include fuel costs when
	// the request does not say otherwise.
	FoldFuelByDefault bool
	// AllowNegativeAmounts permits negative transaction amounts and fuel
	// costs (refunds, corrections).
	AllowNegativeAmounts bool
	// DefaultCategories is seeded into an empty category table at startup.
	DefaultCategories []string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "sqlite://tracker.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			Username:     getEnv("APP_USER", ""),
			Password:     getEnv("APP_PASS", ""),
			PasswordHash: getEnv("APP_PASS_HASH", ""),
		},
		Tracker: TrackerConfig{
			AllowedSources:       getEnvAsSlice("TRACKER_SOURCES", []string{"rental", "work", "personal"}),
			FoldFuelByDefault:    getEnvAsBool("TRACKER_FOLD_FUEL", true),
			AllowNegativeAmounts: getEnvAsBool("TRACKER_ALLOW_NEGATIVE_AMOUNTS", false),
			DefaultCategories: getEnvAsSlice("TRACKER_DEFAULT_CATEGORIES", []string{
				"Rental Income",
				"Repairs & Maintenance",
				"Utilities",
				"Condo Fees",
				"Insurance",
				"Property Tax",
				"Office Supplies",
				"Fuel",
				"Meals",
				"Parking",
				"Phone/Internet",
				"Tools",
			}),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
