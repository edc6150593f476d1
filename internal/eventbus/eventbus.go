// Package eventbus connects the service to NATS JetStream through watermill.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus owns the NATS connection and the watermill publisher/subscriber
// pair built on it.
type EventBus struct {
	natsConn   *nc.Conn
	js         jetstream.JetStream
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New connects to NATS and builds the watermill endpoints.
func New(ctx context.Context, natsURL string, logger *slog.Logger) (*EventBus, error) {
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
	marshaller := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
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
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create watermill subscriber: %w", err)
	}

	return &EventBus{
		natsConn:   natsConn,
		js:         js,
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// Publisher returns a publisher that routes on the message's "topic"
// metadata when the handler's publish topic is empty. Handlers emit events
// on many topics, so routers register with an empty publish topic and let
// each message carry its own.
func (b *EventBus) Publisher() message.Publisher {
	return &metadataTopicPublisher{inner: b.publisher}
}

// Subscriber returns the watermill subscriber.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Publish marshals payload and publishes it on topic. Used by components
// outside the router (queue workers, reconciliation).
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	b.logger.Debug("Publishing message",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)
	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close tears down the watermill endpoints and the NATS connection.
func (b *EventBus) Close() error {
	var firstErr error
	if err := b.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := b.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	b.natsConn.Close()
	return firstErr
}

type metadataTopicPublisher struct {
	inner message.Publisher
}

func (p *metadataTopicPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		t := topic
		if t == "" {
			t = msg.Metadata.Get("topic")
		}
		if t == "" {
			return fmt.Errorf("message %s has no topic", msg.UUID)
		}
		if err := p.inner.Publish(t, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *metadataTopicPublisher) Close() error { return p.inner.Close() }
