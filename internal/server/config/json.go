package config

import (
	client "github.com/dmitrijs2005/vitalsync/internal/client/config"
	"github.com/dmitrijs2005/vitalsync/internal/flagx"
	"github.com/dmitrijs2005/vitalsync/internal/timex"
)

// JsonConfig extends the client DTO with the listener settings. The client
// keys sit at the top level of the same file.
type JsonConfig struct {
	client.JsonConfig
	HTTPAddr        *string         `json:"http_addr"`
	GRPCAddr        *string         `json:"grpc_addr"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

func (c *Config) ApplyJSON(jc JsonConfig) {
	c.Config.ApplyJSON(jc.JsonConfig)
	if jc.HTTPAddr != nil {
		c.HTTPAddr = *jc.HTTPAddr
	}
	if jc.GRPCAddr != nil {
		c.GRPCAddr = *jc.GRPCAddr
	}
	if jc.ShutdownTimeout != nil {
		c.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
}

// parseJson loads the file named by -c/-config, if any.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	var jc JsonConfig
	client.ReadJSON(path, &jc)
	cfg.ApplyJSON(jc)
}
