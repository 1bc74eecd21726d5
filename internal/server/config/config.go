// Package config handles configuration for the web shell: the client
// settings it hosts plus the listener addresses of its HTTP and gRPC
// endpoints.
package config

import (
	"fmt"
	"time"

	client "github.com/dmitrijs2005/vitalsync/internal/client/config"
)

// Config holds runtime settings for the web shell.
//
// Fields:
//   - Config: the embedded client settings (preference path, mock API
//     behaviour, token secret, logging).
//   - HTTPAddr: bind address for the HTTP routes.
//   - GRPCAddr: bind address for the gRPC health endpoint.
//   - ShutdownTimeout: how long a graceful stop may take.
type Config struct {
	client.Config
	HTTPAddr        string
	GRPCAddr        string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Config.LoadDefaults()
	c.PrefsPath = "data/web-prefs.db"
	c.LogLevel = "info"
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.ShutdownTimeout = 5 * time.Second
}

func (c *Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address must not be empty")
	}
	if c.GRPCAddr == "" {
		return fmt.Errorf("grpc address must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive: %v", c.ShutdownTimeout)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the environment, an
// optional JSON file and finally command-line flags. It panics if the
// result is invalid.
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
