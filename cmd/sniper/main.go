package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/supesu/raydium-sniper/internal"
	"github.com/supesu/raydium-sniper/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration, build the logger and wire every component
	app, err := internal.InitializeContainer(configPath)
	if err != nil {
		logger.New("info", "production").WithError(err).Fatal("Failed to initialize application")
	}
	cfg, log := app.Config, app.Logger

	// Cancelled on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(map[string]interface{}{
		"environment": cfg.Environment,
		"rpc_url":     cfg.Solana.RPC,
		"ws_endpoint": cfg.Solana.WSEndpoint,
		"relay":       cfg.BlockEngineURL(),
	}).Info("Starting Raydium pool sniper")

	runErr := app.Run(ctx)
	app.Shutdown()

	if runErr != nil {
		log.WithError(runErr).Fatal("Sniper stopped")
	}
	log.Info("Sniper shutdown complete")
}
