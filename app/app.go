// Package app wires the service together: database, event bus, watermill
// router, modules, and the health listener.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig"
	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	"github.com/ligue-mk8/timeattack-bot/app/modules/tournament"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/config"
	"github.com/ligue-mk8/timeattack-bot/internal/db/bundb"
	"github.com/ligue-mk8/timeattack-bot/internal/eventbus"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// App holds the wired service.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus *eventbus.EventBus
	Router   *message.Router

	TournamentModule  *tournament.Module
	GuildConfigModule *guildconfig.Module

	healthServer *http.Server
}

// NewApp wires every component. Nothing is running yet; Run starts the
// router, the deadline queue, and the health listener.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.Observability.LogLevel)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewPrometheusMetrics(registry, "timeattack")
	tracer := otel.Tracer("timeattack-bot")

	db, err := bundb.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	if err := bus.InitializeStreams(ctx, []jetstream.StreamConfig{
		{
			Name:      tournamentevents.TournamentStreamName,
			Subjects:  []string{tournamentevents.TournamentStreamName + ".>"},
			Retention: jetstream.LimitsPolicy,
		},
		{
			Name:      guildconfigevents.GuildConfigStreamName,
			Subjects:  []string{guildconfigevents.GuildConfigStreamName + ".>"},
			Retention: jetstream.LimitsPolicy,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	guildConfigModule, err := guildconfig.New(ctx, db, bus, router, logger, metrics, tracer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize guildconfig module: %w", err)
	}

	tournamentModule, err := tournament.New(ctx, db, cfg.Postgres.DSN, bus, router, guildConfigModule.Service, logger, metrics, tracer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	app := &App{
		Config:            cfg,
		Logger:            logger,
		DB:                db,
		EventBus:          bus,
		Router:            router,
		TournamentModule:  tournamentModule,
		GuildConfigModule: guildConfigModule,
	}
	app.healthServer = &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: app.healthHandler(registry),
	}
	return app, nil
}

// healthHandler serves liveness and Prometheus metrics.
func (app *App) healthHandler(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := app.DB.PingContext(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		if err := app.TournamentModule.Queue.HealthCheck(req.Context()); err != nil {
			http.Error(w, "queue unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r
}
