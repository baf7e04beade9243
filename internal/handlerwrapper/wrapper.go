// Package handlerwrapper provides the common tracing/metrics/unmarshalling
// shell around watermill event handlers.
package handlerwrapper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// Result pairs an outgoing payload with its destination topic.
type Result struct {
	Topic   string
	Payload any
}

// Metrics is the subset of module metrics the wrapper records.
type Metrics interface {
	RecordHandlerAttempt(handler string)
	RecordHandlerSuccess(handler string)
	RecordHandlerFailure(handler string)
	RecordHandlerDuration(handler string, seconds float64)
}

// HandlerFunc is the business signature of a wrapped handler: it receives the
// unmarshalled payload and returns topic/payload results.
type HandlerFunc func(ctx context.Context, msg *message.Message, payload any) ([]Result, error)

// Wrap surrounds a handler with a span, attempt/duration/outcome metrics,
// payload unmarshalling, and result-message construction.
func Wrap(
	handlerName string,
	newPayload func() any,
	handlerFunc HandlerFunc,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		metrics.RecordHandlerAttempt(handlerName)
		startTime := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(handlerName, time.Since(startTime).Seconds())
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		var payload any
		if newPayload != nil {
			payload = newPayload()
			if err := helpers.UnmarshalPayload(msg, payload); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				metrics.RecordHandlerFailure(handlerName)
				return nil, err
			}
		}

		results, err := handlerFunc(ctx, msg, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(handlerName)
			span.RecordError(err)
			return nil, err
		}

		outgoing := make([]*message.Message, 0, len(results))
		for _, r := range results {
			out, err := helpers.CreateResultMessage(msg, r.Payload, r.Topic)
			if err != nil {
				metrics.RecordHandlerFailure(handlerName)
				return nil, fmt.Errorf("failed to build result message for %s: %w", r.Topic, err)
			}
			outgoing = append(outgoing, out)
		}

		logger.InfoContext(ctx, handlerName+" completed successfully", attr.CorrelationIDFromMsg(msg))
		metrics.RecordHandlerSuccess(handlerName)
		return outgoing, nil
	}
}
