// Package eventbus wraps watermill-nats publishing and subscribing over NATS
// JetStream behind a single interface modules can share.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes and subscribes to versioned topics. Close is inherited
// from both embedded interfaces and tears the whole connection down.
type EventBus interface {
	message.Publisher
	message.Subscriber
	EnsureStream(ctx context.Context, streamName string, subjects []string) error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger

	streamMutex    sync.Mutex
	createdStreams map[string]bool
}

// NewEventBus connects to NATS, initializes JetStream, and builds the
// watermill publisher/subscriber pair.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("failed to close publisher during teardown", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}, nil
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		eb.logger.Debug("publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	return eb.publisher.Publish(topic, messages...)
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.subscriber.Subscribe(ctx, topic)
}

// EnsureStream creates the JetStream stream on first use; repeated calls are
// cheap no-ops guarded by the local cache.
func (eb *eventBus) EnsureStream(ctx context.Context, streamName string, subjects []string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	_, err := eb.js.Stream(ctx, streamName)
	if err == jetstream.ErrStreamNotFound {
		if _, err := eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: subjects,
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		eb.logger.Info("created JetStream stream", slog.String("stream", streamName))
	} else if err != nil {
		return fmt.Errorf("failed to check stream %s: %w", streamName, err)
	}

	eb.createdStreams[streamName] = true
	return nil
}

func (eb *eventBus) Close() error {
	var firstErr error
	if err := eb.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := eb.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	eb.natsConn.Close()
	return firstErr
}
