package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
)

// InitializeStreams creates the JetStream streams the service publishes on.
// Existing streams are left as they are.
func (b *EventBus) InitializeStreams(ctx context.Context, configs []jetstream.StreamConfig) error {
	for _, cfg := range configs {
		_, err := b.js.Stream(ctx, cfg.Name)
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			if _, err := b.js.CreateStream(ctx, cfg); err != nil {
				return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
			}
			b.logger.Info("Created JetStream stream", slog.String("stream", cfg.Name))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to check stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}
