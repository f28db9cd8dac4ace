// internal/config/config.go
//
// Server configuration, read from the environment (and .env in development).
//
// Environment variables:
//   PORT                listen port (default 5175)
//   LOG_LEVEL           zerolog level name (default info)
//   LOG_PRETTY          human-readable console logs instead of JSON
//   CLIENT_ORIGIN       allowed CORS origin (default http://localhost:5173)
//   NODE_ENV            "production" enables Secure / SameSite=None cookies
//   SESSION_SECRET      HMAC key for session tokens (required in production)
//   SESSION_TTL         idle time before a session is dropped (default 24h)
//   SESSION_SWEEP       interval between idle-session sweeps (default 5m)
//   WORDS_CATALOG_FILE  optional catalog file; embedded default otherwise
//   DAILY_SALT          salt for the daily word selection

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const devSecret = "dev_secret_change_me"

// Config holds all server settings.
type Config struct {
	Port         string        `env:"PORT" envDefault:"5175"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool          `env:"LOG_PRETTY" envDefault:"false"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment  string        `env:"NODE_ENV" envDefault:"development"`
	SessionKey   string        `env:"SESSION_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SweepEvery   time.Duration `env:"SESSION_SWEEP" envDefault:"5m"`
	CatalogFile  string        `env:"WORDS_CATALOG_FILE"`
	DailySalt    string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionKey == "" && !cfg.Production() {
		cfg.SessionKey = devSecret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Production reports whether NODE_ENV=production.
func (c Config) Production() bool { return c.Environment == "production" }

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.SweepEvery <= 0 {
		return errors.New("config: SESSION_SWEEP must be positive")
	}
	if c.Production() && (c.SessionKey == "" || c.SessionKey == devSecret) {
		return errors.New("config: SESSION_SECRET must be set in production")
	}
	if c.SessionKey == "" {
		return errors.New("config: SESSION_SECRET is empty")
	}
	return nil
}
