// Package config loads runtime configuration for the VitalSync client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed VITALSYNC_, with an optional dotenv
//     file selected by -e or -env. Real environment variables win over the
//     file.
//  3. Optional JSON file selected by -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-p string     preference database path (":memory:" for a throwaway one)
//	-l float      latency scale applied to the mock API (0 disables delays)
//	-f float      probability in [0,1] that a mock request fails
//	-s string     secret used to sign mock tokens
//	-g string     log backend: slog or zap
//	-v string     log level: debug, info, warn, error
//	-t duration   per-command timeout
//
// # JSON schema
//
//	{
//	  "prefs_path": "~/.vitalsync/prefs.db",
//	  "latency_scale": 1,
//	  "failure_rate": 0,
//	  "token_secret": "change-me",
//	  "log_backend": "slog",
//	  "log_level": "info",
//	  "request_timeout": "10s"
//	}
//
// Invalid values panic, the same as a malformed JSON file.
package config
