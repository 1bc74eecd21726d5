package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/vitalsync/internal/flagx"
)

// FlagNames lists the flags RegisterFlags defines, for flagx.FilterArgs.
var FlagNames = []string{"-p", "-l", "-f", "-s", "-g", "-v", "-t"}

// RegisterFlags binds the client flags to c, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.PrefsPath, "p", c.PrefsPath, "preference database path")
	fs.Float64Var(&c.LatencyScale, "l", c.LatencyScale, "mock API latency scale (0 disables delays)")
	fs.Float64Var(&c.FailureRate, "f", c.FailureRate, "mock API failure probability")
	fs.StringVar(&c.TokenSecret, "s", c.TokenSecret, "token signing secret")
	fs.StringVar(&c.LogBackend, "g", c.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&c.LogLevel, "v", c.LogLevel, "log level")
	fs.DurationVar(&c.RequestTimeout, "t", c.RequestTimeout, "per-command timeout")
}

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], FlagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
