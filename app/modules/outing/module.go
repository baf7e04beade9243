// Package outing wires the outing module's repository, service, queue, and
// router together.
package outing

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingqueue "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/queue"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	outingrouter "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/router"
	"github.com/fairway-social/outing-engine/config"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// Module represents the outing module.
type Module struct {
	EventBus     eventbus.EventBus
	Service      outingservice.Service
	Queue        *outingqueue.Service
	OutingRouter *outingrouter.OutingRouter
	Metrics      outingmetrics.OutingMetrics

	obs        *observability.Observability
	cancelFunc context.CancelFunc
}

// NewModule builds and configures the outing module on the shared router.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	obs.Logger.Info("outing.NewModule called")

	metrics := outingmetrics.NewPrometheusMetrics(obs.Registry)
	repo := outingdb.NewRepository(db)

	queue, err := outingqueue.NewService(ctx, db, obs.Logger, cfg.Postgres.DSN, repo, eventBus, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize outing queue: %w", err)
	}

	service := outingservice.NewOutingService(repo, eventBus, queue, obs.Logger, metrics, obs.Tracer, db)

	if err := eventBus.EnsureStream(ctx, outingevents.Stream, []string{"outing.>"}); err != nil {
		return nil, fmt.Errorf("failed to ensure outing stream: %w", err)
	}

	moduleRouter := outingrouter.NewOutingRouter(obs.Logger, router, eventBus, eventBus, cfg, helpers, obs.Tracer, obs.Registry)
	if err := moduleRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure outing router: %w", err)
	}

	return &Module{
		EventBus:     eventBus,
		Service:      service,
		Queue:        queue,
		OutingRouter: moduleRouter,
		Metrics:      metrics,
		obs:          obs,
	}, nil
}

// Run starts the queue workers and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.obs.Logger.Info("Starting outing module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		m.obs.Logger.Error("Failed to start outing queue", "error", err)
		return
	}

	<-ctx.Done()
	m.obs.Logger.Info("Outing module goroutine stopped")
}

func (m *Module) Close() error {
	m.obs.Logger.Info("Stopping outing module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	if err := m.Queue.Stop(context.Background()); err != nil {
		m.obs.Logger.Error("Failed to stop outing queue", "error", err)
	}

	m.obs.Logger.Info("Outing module stopped")
	return nil
}
