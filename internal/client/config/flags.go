package config

import (
	"flag"
	"os"
	"time"

	"github.com/tablebook/tablebook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-t int      per-request timeout in seconds (default from Config)
//	-d string   data directory (default from Config)
//	-l string   log level (default from Config)
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, so it never trips over flags owned by other layers
// (such as -c/-config handled by the JSON loader).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend API")
	timeoutSecs := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "per-request timeout (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory for local data")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSecs) * time.Second
}
