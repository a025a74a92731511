// Package config handles application configuration from a YAML file,
// a .env file and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Env             string `yaml:"env" validate:"required"`
	StationsFile    string `yaml:"stationsFile"`
	TripsFile       string `yaml:"tripsFile"`
	LogLevel        string `yaml:"logLevel" validate:"oneof=debug info warn error"`
	CacheTTLSeconds int    `yaml:"cacheTTLSeconds" validate:"gte=0"`
	CacheMaxEntries int    `yaml:"cacheMaxEntries" validate:"gte=0"`
	MetricsFile     string `yaml:"metricsFile"`
	Color           bool   `yaml:"color"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Env:             "development",
		LogLevel:        "warn",
		CacheTTLSeconds: 120,
		CacheMaxEntries: 64,
	}
}

// Load builds the configuration. Values from the YAML file at path (or
// DIVVY_CONFIG when path is empty) override the defaults, and environment
// variables, including those from an optional .env file, override both.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("DIVVY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.StationsFile = getEnv("DIVVY_STATIONS_FILE", cfg.StationsFile)
	cfg.TripsFile = getEnv("DIVVY_TRIPS_FILE", cfg.TripsFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CacheTTLSeconds = getIntEnv("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.CacheMaxEntries = getIntEnv("CACHE_MAX_ENTRIES", cfg.CacheMaxEntries)
	cfg.MetricsFile = getEnv("DIVVY_METRICS_FILE", cfg.MetricsFile)
	cfg.Color = getBoolEnv("DIVVY_COLOR", cfg.Color)

	return cfg, nil
}

// CacheTTL returns the command output cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
