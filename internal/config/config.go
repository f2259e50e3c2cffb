package config

import (
	"os"
	"strconv"

	"inferkit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Defaults DefaultsConfig
	Paths    PathConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the analysis-ledger connection settings. The URL is
// optional: without it the in-memory ledger is used.
type DatabaseConfig struct {
	URL string
}

// DefaultsConfig holds calculator defaults applied when a request omits them
type DefaultsConfig struct {
	Confidence float64
	Alpha      float64
}

// PathConfig holds file system paths
type PathConfig struct {
	DataFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Defaults: DefaultsConfig{
			Confidence: getEnvFloat("DEFAULT_CONFIDENCE", 0.95),
			Alpha:      getEnvFloat("DEFAULT_ALPHA", 0.05),
		},
		Paths: PathConfig{
			DataFile: os.Getenv("DATA_FILE"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// validateConfig ensures the loaded values are usable
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Defaults.Confidence <= 0 || config.Defaults.Confidence >= 1 {
		return errors.ConfigInvalid("DEFAULT_CONFIDENCE must be in (0, 1)")
	}
	if config.Defaults.Alpha <= 0 || config.Defaults.Alpha >= 1 {
		return errors.ConfigInvalid("DEFAULT_ALPHA must be in (0, 1)")
	}
	return nil
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as a float or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
