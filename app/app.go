// Package app assembles the outing engine: database, event bus, watermill
// router, module, and HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/fairway-social/outing-engine/api"
	"github.com/fairway-social/outing-engine/app/modules/outing"
	"github.com/fairway-social/outing-engine/config"
	"github.com/fairway-social/outing-engine/db/bundb"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// App holds the running application.
type App struct {
	Config          *config.Config
	Observability   *observability.Observability
	DB              *bun.DB
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	OutingModule    *outing.Module
	HTTPServer      *http.Server

	helpers utils.Helpers
	wg      sync.WaitGroup
}

// Initialize wires every component. Nothing starts running until Run.
func (a *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	a.Config = cfg
	a.Observability = obs
	a.helpers = utils.NewHelpers()

	db, err := bundb.NewBunDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, obs.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	a.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(obs.Logger))
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	a.WatermillRouter = router

	module, err := outing.NewModule(ctx, cfg, obs, db, bus, router, a.helpers)
	if err != nil {
		return fmt.Errorf("failed to initialize outing module: %w", err)
	}
	a.OutingModule = module

	httpAPI := api.NewServer(module.Service, obs.Logger, cfg.HTTP)
	a.HTTPServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpAPI.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

// Run starts the router, module, and HTTP server, then blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	a.wg.Add(1)
	go a.OutingModule.Run(ctx, &a.wg)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		logger.Info("Starting HTTP API", attr.String("addr", a.HTTPServer.Addr))
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", attr.Error(err))
		}
	}()

	a.Observability.ServeMetrics(a.Config.Observability.MetricsAddress)

	logger.Info("Starting watermill router")
	if err := a.WatermillRouter.Run(ctx); err != nil {
		return fmt.Errorf("watermill router stopped: %w", err)
	}
	return nil
}

// Close shuts everything down in reverse order of startup.
func (a *App) Close(ctx context.Context) error {
	logger := a.Observability.Logger
	logger.Info("Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", attr.Error(err))
	}
	if err := a.OutingModule.Close(); err != nil {
		logger.Error("Failed to close outing module", attr.Error(err))
	}
	if err := a.WatermillRouter.Close(); err != nil {
		logger.Error("Failed to close watermill router", attr.Error(err))
	}
	if err := a.EventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("Failed to close database", attr.Error(err))
	}
	if err := a.Observability.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to stop metrics endpoint", attr.Error(err))
	}

	a.wg.Wait()
	logger.Info("Application shut down gracefully")
	return nil
}
