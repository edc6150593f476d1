// Package guildconfig assembles the guild configuration module.
package guildconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	guildconfigservice "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/application"
	guildconfigdb "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories"
	guildconfigrouter "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/router"
	"github.com/ligue-mk8/timeattack-bot/internal/eventbus"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module holds the guildconfig service and its router wiring.
type Module struct {
	Service guildconfigservice.Service
	Router  *guildconfigrouter.GuildConfigRouter
}

// New wires the guildconfig module onto the shared router and event bus.
func New(
	ctx context.Context,
	db *bun.DB,
	bus *eventbus.EventBus,
	router *message.Router,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) (*Module, error) {
	repo := &guildconfigdb.GuildConfigDBImpl{DB: db}
	service := guildconfigservice.NewGuildConfigService(repo, logger, metrics, tracer)

	configRouter := guildconfigrouter.NewGuildConfigRouter(logger, router, bus.Subscriber(), bus.Publisher())
	if err := configRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure guildconfig router: %w", err)
	}

	return &Module{
		Service: service,
		Router:  configRouter,
	}, nil
}
