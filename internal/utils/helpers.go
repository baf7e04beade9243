// Package utils holds the payload and metadata helpers shared by routers and
// handlers.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers marshals payloads in and out of watermill messages.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, target any) error
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
}

type helpers struct{}

// NewHelpers returns the JSON-based Helpers implementation.
func NewHelpers() Helpers {
	return helpers{}
}

func (helpers) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}

// CreateResultMessage builds an outgoing message carrying the payload, the
// destination topic in metadata, and the originating correlation id.
func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
	}
	return msg, nil
}

// MiddlewareHelpers builds the router middleware common to all modules.
type MiddlewareHelpers struct{}

func NewMiddlewareHelper() MiddlewareHelpers {
	return MiddlewareHelpers{}
}

// CommonMetadataMiddleware stamps every message with the handling module so
// downstream consumers can attribute traffic.
func (MiddlewareHelpers) CommonMetadataMiddleware(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			for _, m := range produced {
				if m.Metadata.Get("module") == "" {
					m.Metadata.Set("module", module)
				}
			}
			return produced, err
		}
	}
}
