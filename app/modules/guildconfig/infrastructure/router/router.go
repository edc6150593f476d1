// Package guildconfigrouter wires guildconfig handlers into the watermill
// router.
package guildconfigrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	guildconfigservice "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/application"
	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfighandlers "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/handlers"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// GuildConfigRouter registers the guildconfig handlers.
type GuildConfigRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
}

// NewGuildConfigRouter creates a new GuildConfigRouter.
func NewGuildConfigRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
) *GuildConfigRouter {
	return &GuildConfigRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
	}
}

// Configure registers the module's handlers on the shared router.
func (r *GuildConfigRouter) Configure(ctx context.Context, service guildconfigservice.Service) error {
	handlers := guildconfighandlers.NewGuildConfigHandlers(service)

	registerHandler(r, guildconfigevents.GuildConfigRetrievalRequestedV1, handlers.HandleRetrieveConfig)
	registerHandler(r, guildconfigevents.GuildConfigUpdateRequestedV1, handlers.HandleUpdateConfig)
	return nil
}

// registerHandler adds a typed handler. The publish topic is empty so the
// publisher routes on each message's own topic metadata.
func registerHandler[T any](
	r *GuildConfigRouter,
	topic string,
	handler eventutil.HandlerFunc[T],
) {
	handlerName := "guildconfig." + topic

	r.Router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		r.publisher,
		eventutil.Wrap(handlerName, r.logger, handler),
	)
}
