// Package attr provides slog attribute helpers shared by every module, so
// log fields stay consistently named across services and handlers.
package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

type correlationIDKey struct{}

// CorrelationIDKey is the metadata/context key carrying the correlation id.
var CorrelationIDKey = correlationIDKey{}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func UUIDValue(key string, id uuid.UUID) slog.Attr { return slog.String(key, id.String()) }

// ExtractCorrelationID pulls the correlation id off the context, logging an
// empty field rather than omitting it when absent.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if v, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return slog.String("correlation_id", v)
	}
	return slog.String("correlation_id", "")
}

// CorrelationIDFromMsg reads the watermill correlation id metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}

// WithCorrelationID stores the correlation id on the context for downstream
// service logging.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}
