// Package config loads runtime configuration for the tablebook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Environment variables (TABLEBOOK_*), with an optional .env file
//     loaded first.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      per-request timeout (seconds)
//	-d string   directory for the local credential database and device key
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.tablebook.example",
//	  "request_timeout": "15s",
//	  "data_dir": "/home/me/.tablebook",
//	  "log_level": "info"
//	}
package config
