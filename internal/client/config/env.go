package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with TABLEBOOK_* environment variables. A .env file
// in the working directory is loaded first when present; real environment
// variables win over it, which is godotenv's default.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TABLEBOOK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TABLEBOOK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("TABLEBOOK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TABLEBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
