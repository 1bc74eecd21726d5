package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// Config holds runtime settings shared by the REPL and the web shell.
type Config struct {
	PrefsPath      string
	LatencyScale   float64
	FailureRate    float64
	TokenSecret    string
	LogBackend     string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults suitable for a local demo.
func (c *Config) LoadDefaults() {
	c.PrefsPath = "data/prefs.db"
	c.LatencyScale = 1
	c.FailureRate = 0
	c.TokenSecret = "vitalsync-dev-secret"
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "warn"
	c.RequestTimeout = 10 * time.Second
}

func (c *Config) Validate() error {
	if c.LatencyScale < 0 {
		return fmt.Errorf("latency scale must not be negative: %v", c.LatencyScale)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be within [0,1]: %v", c.FailureRate)
	}
	if c.LogBackend != logging.BackendSlog && c.LogBackend != logging.BackendZap {
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	if c.TokenSecret == "" {
		return fmt.Errorf("token secret must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %v", c.RequestTimeout)
	}
	return nil
}

// LoadConfig applies defaults, environment, JSON and flags in that order and
// panics if the result is invalid.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}
