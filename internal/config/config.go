package config

import (
	"os"
	"strconv"

	"github.com/jamesyinbaare/rmps-sub007/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Reports  ReportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	OpsPort string
	GinMode string
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	OutputDir string
	Workers   int64
}

// Load builds the configuration from environment variables. The caller
// is expected to have loaded any .env file first.
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			OpsPort: getEnvOrDefault("OPS_PORT", "9090"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Reports: ReportConfig{
			OutputDir: getEnvOrDefault("REPORT_DIR", "./reports"),
			Workers:   int64(getEnvIntOrDefault("REPORT_WORKERS", 4)),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if cfg.Reports.Workers < 1 {
		return errors.ConfigInvalid("REPORT_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
