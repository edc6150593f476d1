// Package tournamentservice implements the tournament engine: lifecycle,
// scoring, verification, and standings.
package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ligue-mk8/timeattack-bot/app/modules/catalog"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	tournamentutil "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/utils"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// leaderboardRefreshInterval throttles pushed leaderboard updates per
// tournament. Requests through GetLeaderboard are never throttled.
const leaderboardRefreshInterval = 30 * time.Second

// TournamentService implements the Service interface.
type TournamentService struct {
	repo      tournamentdb.Repository
	catalog   *catalog.Catalog
	configs   ConfigProvider
	scheduler DeadlineScheduler
	publisher EventPublisher
	parser    tournamentutil.DeadlineParser
	clock     tournamentutil.Clock
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer

	// guildLocks serializes command operations per guild so the
	// one-active-tournament invariant holds without table locks.
	guildLocks sync.Map // GuildID -> *sync.Mutex

	// refreshLimits throttles pushed leaderboard refreshes per tournament.
	refreshMu     sync.Mutex
	refreshLimits map[tournamenttypes.TournamentID]*rate.Limiter
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	courseCatalog *catalog.Catalog,
	configs ConfigProvider,
	scheduler DeadlineScheduler,
	publisher EventPublisher,
	parser tournamentutil.DeadlineParser,
	clock tournamentutil.Clock,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *TournamentService {
	return &TournamentService{
		repo:          repo,
		catalog:       courseCatalog,
		configs:       configs,
		scheduler:     scheduler,
		publisher:     publisher,
		parser:        parser,
		clock:         clock,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		refreshLimits: make(map[tournamenttypes.TournamentID]*rate.Limiter),
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *TournamentService) withTelemetry(
	ctx context.Context,
	operationName string,
	guildID string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("guild_id", guildID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "TournamentService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "TournamentService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("guild_id", guildID),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "TournamentService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("guild_id", guildID),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "TournamentService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("guild_id", guildID),
			slog.Any("failure_type", fmt.Sprintf("%T", result.Failure)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "TournamentService")
	return result, nil
}

// lockGuild serializes command operations per guild. Returns the unlock
// function.
func (s *TournamentService) lockGuild(guildID tournamenttypes.GuildID) func() {
	v, _ := s.guildLocks.LoadOrStore(guildID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// activeTournament loads the guild's active tournament or reports
// ErrNoActiveTournament.
func (s *TournamentService) activeTournament(ctx context.Context, guildID tournamenttypes.GuildID) (*tournamenttypes.Tournament, error) {
	t, err := s.repo.GetActiveTournament(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoActiveTournament
	}
	return t, nil
}

// guildConfig loads the guild's effective settings, falling back to
// defaults when the provider fails so command handling never blocks on the
// config store.
func (s *TournamentService) guildConfig(ctx context.Context, guildID tournamenttypes.GuildID) *guildconfigtypes.GuildConfig {
	cfg, err := s.configs.EffectiveConfig(ctx, guildID)
	if err != nil {
		s.logger.WarnContext(ctx, "Falling back to default guild config",
			slog.String("guild_id", string(guildID)),
			slog.Any("error", err),
		)
		return guildconfigtypes.Defaults(guildID)
	}
	return cfg
}

// actorIsAdmin allows server administrators always and holders of the
// configured admin role when one is set.
func actorIsAdmin(actor tournamentevents.ActorContext, cfg *guildconfigtypes.GuildConfig) bool {
	if actor.IsServerAdmin {
		return true
	}
	if cfg.AdminRoleID == "" {
		return false
	}
	return slices.Contains(actor.RoleIDs, cfg.AdminRoleID)
}

// refreshAllowed reports whether a pushed leaderboard update for the
// tournament is within the refresh rate limit.
func (s *TournamentService) refreshAllowed(id tournamenttypes.TournamentID) bool {
	s.refreshMu.Lock()
	limiter, ok := s.refreshLimits[id]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(leaderboardRefreshInterval), 1)
		s.refreshLimits[id] = limiter
	}
	s.refreshMu.Unlock()
	return limiter.Allow()
}

// dropRefreshLimiter forgets the throttle state of a finished tournament.
func (s *TournamentService) dropRefreshLimiter(id tournamenttypes.TournamentID) {
	s.refreshMu.Lock()
	delete(s.refreshLimits, id)
	s.refreshMu.Unlock()
}

func tournamentFailure(guildID tournamenttypes.GuildID, err error) results.OperationResult {
	return results.FailureResult(&tournamentevents.TournamentFailedPayload{
		GuildID: guildID,
		Reason:  err.Error(),
	})
}
