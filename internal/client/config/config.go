package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the tablebook CLI.
//
// Fields:
//   - BaseURL: scheme://host[:port] of the backend REST API.
//   - RequestTimeout: per-request deadline applied by the gateway.
//   - DataDir: directory holding the credential database and device key.
//   - LogLevel: minimum level for structured logs (debug, info, warn, error).
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DataDir        string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults. The data directory lands
// under the user's home when one is known, next to the binary otherwise.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.DataDir = filepath.Join(home, ".tablebook")
}

// LoadConfig constructs a Config by applying defaults, then overlaying JSON,
// environment and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
