package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vitalsync/internal/flagx"
	"github.com/dmitrijs2005/vitalsync/internal/timex"
)

// JsonConfig is the DTO for the JSON file. Absent keys stay nil and leave
// the corresponding Config field alone.
type JsonConfig struct {
	PrefsPath      *string         `json:"prefs_path"`
	LatencyScale   *float64        `json:"latency_scale"`
	FailureRate    *float64        `json:"failure_rate"`
	TokenSecret    *string         `json:"token_secret"`
	LogBackend     *string         `json:"log_backend"`
	LogLevel       *string         `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

func (c *Config) ApplyJSON(jc JsonConfig) {
	if jc.PrefsPath != nil {
		c.PrefsPath = *jc.PrefsPath
	}
	if jc.LatencyScale != nil {
		c.LatencyScale = *jc.LatencyScale
	}
	if jc.FailureRate != nil {
		c.FailureRate = *jc.FailureRate
	}
	if jc.TokenSecret != nil {
		c.TokenSecret = *jc.TokenSecret
	}
	if jc.LogBackend != nil {
		c.LogBackend = *jc.LogBackend
	}
	if jc.LogLevel != nil {
		c.LogLevel = *jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		c.RequestTimeout = jc.RequestTimeout.Duration
	}
}

// ReadJSON unmarshals the file at path into v, panicking on any error.
func ReadJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	var jc JsonConfig
	ReadJSON(path, &jc)
	cfg.ApplyJSON(jc)
}
