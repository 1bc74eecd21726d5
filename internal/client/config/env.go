package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/vitalsync/internal/flagx"
)

const EnvPrefix = "VITALSYNC_"

// Lookup resolves an environment variable.
type Lookup func(key string) (string, bool)

// EnvLookup returns a Lookup over the process environment, falling back to
// the dotenv file at path when it is not empty. An unreadable file panics.
func EnvLookup(path string) Lookup {
	var file map[string]string
	if path != "" {
		var err error
		if file, err = godotenv.Read(path); err != nil {
			panic(err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// ApplyEnv overlays the VITALSYNC_* variables found by lookup.
func (c *Config) ApplyEnv(lookup Lookup) {
	get := func(name string) (string, bool) { return lookup(EnvPrefix + name) }

	if v, ok := get("PREFS_PATH"); ok {
		c.PrefsPath = v
	}
	if v, ok := get("LATENCY_SCALE"); ok {
		c.LatencyScale = mustFloat(v)
	}
	if v, ok := get("FAILURE_RATE"); ok {
		c.FailureRate = mustFloat(v)
	}
	if v, ok := get("TOKEN_SECRET"); ok {
		c.TokenSecret = v
	}
	if v, ok := get("LOG_BACKEND"); ok {
		c.LogBackend = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		c.RequestTimeout = d
	}
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return f
}

func parseEnv(cfg *Config) {
	cfg.ApplyEnv(EnvLookup(flagx.EnvFileFlag()))
}
