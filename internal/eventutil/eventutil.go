// Package eventutil carries the typed glue between watermill messages and
// service handlers: payload unmarshalling, result fan-out, and correlation
// metadata propagation.
package eventutil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Result is one outgoing event produced by a handler: the topic to publish
// on and the payload to marshal.
type Result struct {
	Topic   string
	Payload any
}

// UnmarshalPayload decodes a message payload into T.
func UnmarshalPayload[T any](msg *message.Message) (*T, error) {
	var payload T
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload into %T: %w", payload, err)
	}
	return &payload, nil
}

// NewResultMessage marshals a result payload into a message carrying the
// parent's correlation id. The topic travels in metadata so the NATS
// publisher routes on it.
func NewResultMessage(parent *message.Message, res Result) (*message.Message, error) {
	payload, err := json.Marshal(res.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", res.Topic, err)
	}

	out := message.NewMessage(watermill.NewUUID(), payload)
	out.Metadata.Set("topic", res.Topic)

	correlationID := middleware.MessageCorrelationID(parent)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, out)
	return out, nil
}

// HandlerFunc is a typed message handler: consume a payload, return the
// events to publish.
type HandlerFunc[T any] func(ctx context.Context, payload *T) ([]Result, error)

// Wrap adapts a typed handler to watermill. Unmarshal failures are logged
// and dropped (redelivery cannot fix a malformed payload); handler errors
// propagate so the router's retry/poison handling applies.
func Wrap[T any](handlerName string, logger *slog.Logger, handler HandlerFunc[T]) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		payload, err := UnmarshalPayload[T](msg)
		if err != nil {
			logger.Error("Dropping malformed message",
				slog.String("handler", handlerName),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return nil, nil
		}

		results, err := handler(msg.Context(), payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		out := make([]*message.Message, 0, len(results))
		for _, res := range results {
			m, err := NewResultMessage(msg, res)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			out = append(out, m)
		}
		return out, nil
	}
}
