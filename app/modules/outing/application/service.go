package outingservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/results"
)

// OutingService implements the Service interface.
type OutingService struct {
	repo      outingdb.Repository
	EventBus  eventbus.EventBus
	scheduler Scheduler
	logger    *slog.Logger
	metrics   outingmetrics.OutingMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewOutingService creates a new OutingService.
func NewOutingService(
	repo outingdb.Repository,
	eventBus eventbus.EventBus,
	scheduler Scheduler,
	logger *slog.Logger,
	metrics outingmetrics.OutingMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *OutingService {
	return &OutingService{
		repo:      repo,
		EventBus:  eventBus,
		scheduler: scheduler,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

var _ Service = (*OutingService)(nil)

// operationFunc is the signature of a wrapped service operation.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *OutingService) withTelemetry(
	ctx context.Context,
	operationName string,
	outingID uuid.UUID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("outing_id", outingID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.UUIDValue("outing_id", outingID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.UUIDValue("outing_id", outingID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UUIDValue("outing_id", outingID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UUIDValue("outing_id", outingID),
			attr.Any("failure_payload", result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.UUIDValue("outing_id", outingID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func (s *OutingService) runInTx(
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult, error),
) (results.OperationResult, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
