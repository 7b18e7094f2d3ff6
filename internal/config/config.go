package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Backend BackendConfig
	Cache   CacheConfig
	Logger  LoggerConfig
}

// BackendConfig holds the restaurant backend endpoint configuration.
type BackendConfig struct {
	// BaseURL is the backend address as host:port, without a scheme.
	BaseURL string
	// RequestTimeout bounds every backend call, in milliseconds.
	RequestTimeout int
}

// CacheConfig holds the local device cache configuration.
type CacheConfig struct {
	// Path is the SQLite file location. ":memory:" keeps the cache
	// in-process only.
	Path string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_ADDR", "192.168.0.102:5000"),
			RequestTimeout: getEnvAsInt("BACKEND_TIMEOUT_MS", 5000),
		},
		Cache: CacheConfig{
			Path: getEnv("CACHE_PATH", "pub-pocket.db"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend address is required")
	}

	if strings.Contains(c.Backend.BaseURL, "://") {
		return fmt.Errorf("backend address must not carry a scheme: %s", c.Backend.BaseURL)
	}

	// The observed backend timeouts sit between 500ms and 5s; anything
	// shorter trips on normal latency.
	if c.Backend.RequestTimeout < 100 {
		return fmt.Errorf("backend timeout too short: %dms", c.Backend.RequestTimeout)
	}

	if c.Cache.Path == "" {
		return fmt.Errorf("cache path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
