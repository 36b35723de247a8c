// Package config handles configuration for the vault engine, including
// defaults, JSON overlay, and command-line flags. The resulting Config is
// built once and passed by reference; there is no mutable global state.
package config

import (
	"time"

	"github.com/dmitrijs2005/passvault/internal/dbx"
)

// Config holds runtime settings for the vault engine.
//
// Fields:
//   - BackendKind: storage backend ("sqlite", "postgres" or "mysql").
//   - DatabaseDSN: driver DSN (file path or ":memory:" for sqlite).
//   - KeyFilePath: location of the deployment encryption key, outside the DB.
//   - SessionSecret: HMAC secret for signing session tokens (HS256).
//     Do not use test defaults in prod.
//   - SessionTokenValidityDuration: lifetime of login session tokens.
//   - ResetCodeValidityDuration: window in which a reset code validates.
type Config struct {
	BackendKind                  dbx.Kind
	DatabaseDSN                  string
	KeyFilePath                  string
	SessionSecret                string
	SessionTokenValidityDuration time.Duration
	ResetCodeValidityDuration    time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.BackendKind = dbx.KindSQLite
	c.DatabaseDSN = "passvault.db"
	c.KeyFilePath = "data/master.key"
	c.SessionSecret = "secretKey"
	c.SessionTokenValidityDuration = 30 * time.Minute
	c.ResetCodeValidityDuration = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
