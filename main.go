package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fairway-social/outing-engine/app"
	"github.com/fairway-social/outing-engine/config"
	"github.com/fairway-social/outing-engine/internal/observability"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()
	if env := os.Getenv("OUTING_CONFIG"); env != "" {
		*configPath = env
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.Init(observability.Config{
		ServiceName:    "outing-engine",
		Environment:    cfg.Observability.Environment,
		MetricsAddress: cfg.Observability.MetricsAddress,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		<-interrupt
		obs.Logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		obs.Logger.Error("Application stopped with error", "error", err)
	}

	if err := application.Close(context.Background()); err != nil {
		obs.Logger.Error("Shutdown finished with error", "error", err)
	}
}
