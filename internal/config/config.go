// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the path to the sqlite database file.
	DBPath string `env:"DB_PATH" envDefault:"spendlog.db"`

	// SessionSecret signs session cookies. Required; there is deliberately
	// no default so a secret can never ship hardcoded.
	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`

	// SessionTTL is how long a login session lasts.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// SecureCookie marks session cookies Secure (HTTPS-only deployments).
	SecureCookie bool `env:"SECURE_COOKIE" envDefault:"false"`

	// Debug enables debug-level logging.
	Debug bool `env:"DEBUG" envDefault:"true"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
