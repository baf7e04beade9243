// Package outingrouter binds outing event topics to their handlers on a
// watermill router.
package outingrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outinghandlers "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/handlers"
	"github.com/fairway-social/outing-engine/config"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

type OutingRouter struct {
	logger           *slog.Logger
	Router           *message.Router
	subscriber       eventbus.EventBus
	publisher        eventbus.EventBus
	config           *config.Config
	helper           utils.Helpers
	tracer           trace.Tracer
	middlewareHelper utils.MiddlewareHelpers
	metricsBuilder   *metrics.PrometheusMetricsBuilder
	metricsEnabled   bool
}

func NewOutingRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	cfg *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *OutingRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &OutingRouter{
		logger:           logger,
		Router:           router,
		subscriber:       subscriber,
		publisher:        publisher,
		config:           cfg,
		helper:           helper,
		tracer:           tracer,
		middlewareHelper: utils.NewMiddlewareHelper(),
		metricsBuilder:   metricsBuilder,
		metricsEnabled:   prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure sets up middleware and registers all outing event handlers on the
// router held by the OutingRouter.
func (r *OutingRouter) Configure(
	routerCtx context.Context,
	service outingservice.Service,
	outingMetrics outingmetrics.OutingMetrics,
) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - either in test environment or metrics not configured")
	}

	handlers := outinghandlers.NewOutingHandlers(service, r.logger, r.tracer, r.helper, outingMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		r.middlewareHelper.CommonMetadataMiddleware("outing"),
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers, outingMetrics); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers binds the versioned inbound topics to their handlers.
func (r *OutingRouter) RegisterHandlers(ctx context.Context, handlers outinghandlers.Handlers, outingMetrics outingmetrics.OutingMetrics) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		outingevents.GroupAssignmentRequestedV1: handlerwrapper.Wrap(
			"outing."+outingevents.GroupAssignmentRequestedV1,
			func() any { return &outingevents.GroupAssignmentRequestedPayloadV1{} },
			func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
				return handlers.HandleGroupAssignmentRequested(ctx, payload.(*outingevents.GroupAssignmentRequestedPayloadV1))
			},
			r.logger, outingMetrics, r.tracer, r.helper,
		),
		outingevents.PlayerMoveRequestedV1: handlerwrapper.Wrap(
			"outing."+outingevents.PlayerMoveRequestedV1,
			func() any { return &outingevents.PlayerMoveRequestedPayloadV1{} },
			func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
				return handlers.HandlePlayerMoveRequested(ctx, payload.(*outingevents.PlayerMoveRequestedPayloadV1))
			},
			r.logger, outingMetrics, r.tracer, r.helper,
		),
		outingevents.MarkerReassignRequestedV1: handlerwrapper.Wrap(
			"outing."+outingevents.MarkerReassignRequestedV1,
			func() any { return &outingevents.MarkerReassignRequestedPayloadV1{} },
			func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
				return handlers.HandleMarkerReassignRequested(ctx, payload.(*outingevents.MarkerReassignRequestedPayloadV1))
			},
			r.logger, outingMetrics, r.tracer, r.helper,
		),
		outingevents.LiveScoresUpdatedV1: handlerwrapper.Wrap(
			"outing."+outingevents.LiveScoresUpdatedV1,
			func() any { return &outingevents.LiveScoresUpdatedPayloadV1{} },
			func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
				return handlers.HandleLiveScoresUpdated(ctx, payload.(*outingevents.LiveScoresUpdatedPayloadV1))
			},
			r.logger, outingMetrics, r.tracer, r.helper,
		),
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("outing.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Any("error", err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get("topic")
					if publishTopic == "" {
						r.logger.Error("router failed to resolve publish topic - MESSAGE DROPPED",
							attr.String("handler", handlerName),
							attr.String("msg_uuid", m.UUID),
							attr.String("correlation_id", m.Metadata.Get("correlation_id")),
						)
						continue
					}

					r.logger.InfoContext(ctx, "publishing message",
						attr.String("topic", publishTopic),
						attr.String("handler", handlerName),
						attr.String("correlation_id", m.Metadata.Get("correlation_id")),
					)

					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *OutingRouter) Close() error {
	return r.Router.Close()
}
