// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Redis holds draft sessions and the catalog cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DraftTTL is how long an untouched draft session survives.
	DraftTTL time.Duration

	// CacheTTL bounds how stale a cached catalog read can be.
	CacheTTL time.Duration

	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64

	// SubmitRPS is the sustained rate of draft submissions allowed per client.
	SubmitRPS float64

	// MetricsAddr, when set, serves /metrics on a dedicated listener.
	MetricsAddr string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set or that
// hold values which do not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
	}

	var errs []error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("required environment variables not set: DATABASE_URL"))
	}

	p := parser{errs: &errs}
	cfg.RedisDB = p.intVar("REDIS_DB", 0)
	cfg.DraftTTL = p.durationVar("DRAFT_TTL", 24*time.Hour)
	cfg.CacheTTL = p.durationVar("CACHE_TTL", 15*time.Minute)
	cfg.MaxBodyBytes = int64(p.intVar("MAX_BODY_BYTES", 1<<20))
	cfg.SubmitRPS = p.floatVar("SUBMIT_RPS", 5)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser reads typed variables, collecting one error per bad value.
type parser struct {
	errs *[]error
}

func (p parser) intVar(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*p.errs = append(*p.errs, fmt.Errorf("%s: %q is not a non-negative integer", key, v))
		return fallback
	}
	return n
}

func (p parser) floatVar(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		*p.errs = append(*p.errs, fmt.Errorf("%s: %q is not a positive number", key, v))
		return fallback
	}
	return f
}

func (p parser) durationVar(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*p.errs = append(*p.errs, fmt.Errorf("%s: %q is not a positive duration", key, v))
		return fallback
	}
	return d
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
