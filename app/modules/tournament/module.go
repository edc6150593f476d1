// Package tournament assembles the tournament module: service, repository,
// deadline queue, and router wiring.
package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ligue-mk8/timeattack-bot/app/modules/catalog"
	tournamentservice "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/application"
	tournamentqueue "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/router"
	tournamentutil "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/utils"
	"github.com/ligue-mk8/timeattack-bot/internal/eventbus"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module holds the tournament service, its deadline queue, and the router
// wiring.
type Module struct {
	Service tournamentservice.Service
	Queue   *tournamentqueue.Service
	Router  *tournamentrouter.TournamentRouter
}

// New wires the tournament module onto the shared router and event bus. The
// queue is constructed first because the service schedules through it; the
// workers call back into the service through the lifecycle attachment.
func New(
	ctx context.Context,
	db *bun.DB,
	dsn string,
	bus *eventbus.EventBus,
	router *message.Router,
	configs tournamentservice.ConfigProvider,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) (*Module, error) {
	repo := &tournamentdb.TournamentDBImpl{DB: db}
	clock := tournamentutil.RealClock{}

	queue, err := tournamentqueue.NewService(ctx, dsn, db, repo, configs, clock, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament queue: %w", err)
	}

	service := tournamentservice.NewTournamentService(
		repo,
		catalog.New(rand.New(rand.NewSource(time.Now().UnixNano()))),
		configs,
		queue,
		bus,
		tournamentutil.NewDeadlineParser(),
		clock,
		logger,
		metrics,
		tracer,
	)
	queue.AttachLifecycle(service)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, bus.Subscriber(), bus.Publisher())
	if err := tournamentRouter.Configure(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	return &Module{
		Service: service,
		Queue:   queue,
		Router:  tournamentRouter,
	}, nil
}

// Start begins working deadline jobs and reconciles jobs for tournaments
// whose deadlines may have passed while the process was down.
func (m *Module) Start(ctx context.Context) error {
	if err := m.Queue.Start(ctx); err != nil {
		return err
	}
	if err := m.Queue.Reconcile(ctx); err != nil {
		return fmt.Errorf("deadline reconciliation failed: %w", err)
	}
	return nil
}

// Stop drains the deadline queue.
func (m *Module) Stop(ctx context.Context) error {
	return m.Queue.Stop(ctx)
}
