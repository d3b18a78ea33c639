// Package config handles loading and validating runtime configuration for the States API.
// Configuration values (like the database URL and port) are read from environment variables
// rather than being hardcoded, so the same binary runs unchanged in development and production.
package config

import (
	"errors"
	"fmt"

	// env binds environment variables onto struct fields using `env:"..."` tags,
	// including defaults, so we don't need an os.Getenv + if-empty block per setting.
	"github.com/caarlos0/env/v11"
	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	// Handy in development; in production real environment variables are used instead.
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres" // Fun facts are persisted in PostgreSQL (default)
	DriverMemory   = "memory"   // Fun facts live in process memory and vanish on restart
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string `env:"PORT" envDefault:"3000"`                        // TCP port the HTTP server listens on
	DatabaseURL    string `env:"DATABASE_URL"`                                  // PostgreSQL connection string; required for the postgres driver
	StoreDriver    string `env:"STORE_DRIVER" envDefault:"postgres"`            // "postgres" or "memory"
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"` // Source URL for golang-migrate
	Env            string `env:"ENV" envDefault:"development"`                  // "development", "staging", or "production"
}

// Load reads configuration from the environment (after an optional .env file) and validates it.
func Load() (*Config, error) {
	// Missing .env is fine: real environment variables are set by the deployment platform.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings make sense together.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case DriverMemory:
		// No external dependencies
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", c.StoreDriver, DriverPostgres, DriverMemory)
	}
	return nil
}
