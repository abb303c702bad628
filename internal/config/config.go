// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Cache
	CachePath string        // SQLite file for resolved lookups; empty keeps the cache in memory
	CacheTTL  time.Duration // How long a resolved lookup stays cached

	// Reading sources
	DailyOfficePath  string        // Root of a Daily Office dataset checkout; empty disables the tier
	LectServeURL     string        // Base URL of the remote lectionary service; empty disables the tier
	LectServeTimeout time.Duration // Bound on one remote request

	// Calendar authority
	CalendarAuthorityURL     string        // Empty uses the built-in calendar only
	CalendarAuthorityTimeout time.Duration // Bound on one authority request

	// Authentication
	APIKey string // API key for admin endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Defaults
const (
	DefaultPort                     = 8080
	DefaultCachePath                = "./data/cache.db"
	DefaultCacheTTL                 = 7 * 24 * time.Hour
	DefaultLectServeURL             = "https://lectserve.com"
	DefaultLectServeTimeout         = 10 * time.Second
	DefaultCalendarAuthorityTimeout = 5 * time.Second
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// A missing .env file is fine; production sets variables directly.
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", DefaultPort)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Cache
	cfg.CachePath = getEnvAllowEmpty("CACHE_PATH", DefaultCachePath)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", DefaultCacheTTL, &errs)

	// Reading sources
	cfg.DailyOfficePath = getEnv("DAILY_OFFICE_PATH", "")
	cfg.LectServeURL = getEnvAllowEmpty("LECTSERVE_URL", DefaultLectServeURL)
	cfg.LectServeTimeout = getEnvDuration("LECTSERVE_TIMEOUT", DefaultLectServeTimeout, &errs)

	// Calendar authority
	cfg.CalendarAuthorityURL = getEnv("CALENDAR_AUTHORITY_URL", "")
	cfg.CalendarAuthorityTimeout = getEnvDuration("CALENDAR_AUTHORITY_TIMEOUT", DefaultCalendarAuthorityTimeout, &errs)

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}
	if c.LectServeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LECTSERVE_TIMEOUT must be positive, got %s", c.LectServeTimeout))
	}
	if c.CalendarAuthorityTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CALENDAR_AUTHORITY_TIMEOUT must be positive, got %s", c.CalendarAuthorityTimeout))
	}

	for name, raw := range map[string]string{
		"LECTSERVE_URL":          c.LectServeURL,
		"CALENDAR_AUTHORITY_URL": c.CalendarAuthorityURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty is getEnv, except that a variable set to "" stays empty.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration reads a Go duration ("36h", "500ms"). A malformed value
// is recorded in errs and the default is returned.
func getEnvDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}
