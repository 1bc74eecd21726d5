package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vitalsync/internal/buildinfo"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
	"github.com/dmitrijs2005/vitalsync/internal/server"
	"github.com/dmitrijs2005/vitalsync/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
