// Package outinghandlers translates outing events into service calls and
// routes the outcomes back onto the bus.
package outinghandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// OutingHandlers handles outing-related events.
type OutingHandlers struct {
	service outingservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics outingmetrics.OutingMetrics
	helpers utils.Helpers
}

// NewOutingHandlers creates a new OutingHandlers.
func NewOutingHandlers(
	service outingservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics outingmetrics.OutingMetrics,
) Handlers {
	return &OutingHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: metrics,
	}
}

var _ Handlers = (*OutingHandlers)(nil)
