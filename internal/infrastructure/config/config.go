// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	driver := cfg.Storage.Driver
//	port := cfg.Server.Port
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Checkout      CheckoutConfig      `yaml:"checkout"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP API server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration. Driver selects the backing
// store: "sqlite" uses DatabasePath, "postgres" uses DSN.
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DatabasePath string `yaml:"database_path"`
	DSN          string `yaml:"dsn"`
}

// CheckoutConfig holds checkout flow settings
type CheckoutConfig struct {
	Currency      string `yaml:"currency"`
	DefaultLocale string `yaml:"default_locale"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${STOREFRONT_DSN})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("STOREFRONT_PORT", 8080),
			AllowedOrigins: splitEnv("STOREFRONT_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			Driver:       getEnv("STOREFRONT_DB_DRIVER", "sqlite"),
			DatabasePath: getEnv("STOREFRONT_DB_PATH", "storefront.db"),
			DSN:          os.Getenv("STOREFRONT_DSN"),
		},
		Checkout: CheckoutConfig{
			Currency:      getEnv("STOREFRONT_CURRENCY", "EGP"),
			DefaultLocale: getEnv("STOREFRONT_LOCALE", "ar"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "storefront.db"
	}
	if c.Checkout.Currency == "" {
		c.Checkout.Currency = "EGP"
	}
	if c.Checkout.DefaultLocale == "" {
		c.Checkout.DefaultLocale = "ar"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// splitEnv parses a comma-separated environment variable into a slice
func splitEnv(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
