package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/devpulse/internal/app"
	"github.com/dmitrijs2005/devpulse/internal/buildinfo"
	"github.com/dmitrijs2005/devpulse/internal/config"
	"github.com/dmitrijs2005/devpulse/internal/logging"
	"github.com/dmitrijs2005/devpulse/internal/remote"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if cfg.Provision {
		if cfg.RemoteDSN == "" {
			log.Fatal("-provision requires a remote DSN (-r)")
		}
		db, err := remote.Open(cfg.RemoteDSN)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer func() { _ = db.Close() }()
		if err := remote.Provision(ctx, db); err != nil {
			log.Fatalf("provisioning remote schema: %v", err)
		}
		logger.Info(ctx, "remote schema provisioned")
		return
	}

	a, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a.Run(ctx)
}
