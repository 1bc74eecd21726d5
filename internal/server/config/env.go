package config

import (
	"time"

	client "github.com/dmitrijs2005/vitalsync/internal/client/config"
	"github.com/dmitrijs2005/vitalsync/internal/flagx"
)

// ApplyEnv overlays the client variables and the web shell's own
// VITALSYNC_HTTP_ADDR, VITALSYNC_GRPC_ADDR and VITALSYNC_SHUTDOWN_TIMEOUT.
func (c *Config) ApplyEnv(lookup client.Lookup) {
	c.Config.ApplyEnv(lookup)

	if v, ok := lookup(client.EnvPrefix + "HTTP_ADDR"); ok {
		c.HTTPAddr = v
	}
	if v, ok := lookup(client.EnvPrefix + "GRPC_ADDR"); ok {
		c.GRPCAddr = v
	}
	if v, ok := lookup(client.EnvPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		c.ShutdownTimeout = d
	}
}

func parseEnv(cfg *Config) {
	cfg.ApplyEnv(client.EnvLookup(flagx.EnvFileFlag()))
}
