package config

import (
	"flag"
	"os"

	client "github.com/dmitrijs2005/vitalsync/internal/client/config"
	"github.com/dmitrijs2005/vitalsync/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
// Besides the client flags (-p -l -f -s -g -v -t) the web shell accepts:
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-r string     gRPC health bind address (e.g. ":50051")
//	-w duration   graceful shutdown timeout
func parseFlags(cfg *Config) {
	names := append([]string{"-a", "-r", "-w"}, client.FlagNames...)
	args := flagx.FilterArgs(os.Args[1:], names)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to serve HTTP on")
	fs.StringVar(&cfg.GRPCAddr, "r", cfg.GRPCAddr, "address and port to serve gRPC health on")
	fs.DurationVar(&cfg.ShutdownTimeout, "w", cfg.ShutdownTimeout, "graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
