// Package tournamentqueue schedules deadline work on River. Jobs live in
// Postgres alongside the tournaments, so a restart loses nothing: Reconcile
// rebuilds whatever the unique constraints do not already hold.
package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentutil "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/utils"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
	"github.com/uptrace/bun"
)

// reminderMaxAttempts is 1: a reminder that could not be delivered on time
// is worthless later, and the close announcement follows soon anyway.
const reminderMaxAttempts = 1

// closeMaxAttempts keeps retrying the close with River's backoff. The close
// is idempotent, so retries after a partial failure are safe.
const closeMaxAttempts = 25

// scheduleBuffer guards against enqueueing jobs that would fire before the
// worker pool picks them up.
const scheduleBuffer = 5 * time.Second

// ConfigSource supplies per-guild settings. Reconcile needs the reminder
// offset to re-derive reminder times from stored deadlines.
type ConfigSource interface {
	EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error)
}

// TournamentLister supplies the active tournaments Reconcile re-schedules.
type TournamentLister interface {
	ListActiveTournaments(ctx context.Context) ([]*tournamenttypes.Tournament, error)
}

// jobInserter is the slice of the River client ScheduleDeadline needs.
type jobInserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// Service implements the deadline scheduler on River.
type Service struct {
	client   *river.Client[pgx.Tx]
	inserter jobInserter
	pool     *pgxpool.Pool
	db       *bun.DB
	repo     TournamentLister
	configs  ConfigSource
	clock    tournamentutil.Clock
	logger   *slog.Logger
	metrics  observability.OperationMetrics

	mu  sync.RWMutex
	svc TournamentLifecycle
}

// NewService builds the queue service. River needs its own pgx pool; the
// bun handle is only used to inspect river_job for cancellation.
func NewService(
	ctx context.Context,
	dsn string,
	bunDB *bun.DB,
	repo TournamentLister,
	configs ConfigSource,
	clock tournamentutil.Clock,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	service := &Service{
		pool:    pool,
		db:      bunDB,
		repo:    repo,
		configs: configs,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &tournamentReminderWorker{service: service, logger: logger})
	river.AddWorker(workers, &tournamentCloseWorker{service: service, logger: logger})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}
	service.client = client
	service.inserter = client

	logger.InfoContext(ctx, "Tournament queue service initialized")
	return service, nil
}

// AttachLifecycle wires the tournament service the workers call. Must run
// before Start; the scheduler and the service are built in dependency order
// so neither constructor can take the other.
func (s *Service) AttachLifecycle(svc TournamentLifecycle) {
	s.mu.Lock()
	s.svc = svc
	s.mu.Unlock()
}

func (s *Service) lifecycle() TournamentLifecycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.svc
}

// Start begins working jobs.
func (s *Service) Start(ctx context.Context) error {
	if s.lifecycle() == nil {
		return fmt.Errorf("queue started without a tournament lifecycle attached")
	}
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "Tournament queue service started")
	return nil
}

// Stop drains running jobs and shuts the pool down.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "Tournament queue service stopped")
	return nil
}

// ScheduleDeadline enqueues the reminder and close jobs for a tournament.
// A reminder already in the past is skipped; a close already due fires
// immediately. Uniqueness by args makes rescheduling the same tournament a
// no-op rather than a duplicate.
func (s *Service) ScheduleDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID, remindAt, closeAt time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_deadline", "river")

	now := s.clock.NowUTC()

	if remindAt.After(now.Add(scheduleBuffer)) {
		_, err := s.inserter.Insert(ctx, TournamentReminderArgs{
			TournamentID: tournamentID.String(),
		}, &river.InsertOpts{
			ScheduledAt: remindAt,
			MaxAttempts: reminderMaxAttempts,
			UniqueOpts:  river.UniqueOpts{ByArgs: true},
		})
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, "schedule_deadline", "river")
			return fmt.Errorf("failed to schedule reminder job: %w", err)
		}
	} else {
		s.logger.InfoContext(ctx, "Reminder time already passed, skipping",
			slog.String("tournament_id", tournamentID.String()),
			slog.Time("remind_at", remindAt),
		)
	}

	closeOpts := &river.InsertOpts{
		MaxAttempts: closeMaxAttempts,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	}
	if closeAt.After(now) {
		closeOpts.ScheduledAt = closeAt
	}
	if _, err := s.inserter.Insert(ctx, TournamentCloseArgs{
		TournamentID: tournamentID.String(),
	}, closeOpts); err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_deadline", "river")
		return fmt.Errorf("failed to schedule close job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_deadline", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_deadline", "river", time.Since(start))

	s.logger.InfoContext(ctx, "Deadline jobs scheduled",
		slog.String("tournament_id", tournamentID.String()),
		slog.Time("remind_at", remindAt),
		slog.Time("close_at", closeAt),
	)
	return nil
}

// CancelDeadline removes pending jobs for a tournament. Used on manual
// cancellation; a job that slips through anyway is harmless because the
// workers no-op on non-active tournaments.
func (s *Service) CancelDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_deadline", "river")

	type riverJobRow struct {
		ID   int64  `bun:"id"`
		Kind string `bun:"kind"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind").
		Where("kind IN (?, ?)", TournamentReminderArgs{}.Kind(), TournamentCloseArgs{}.Kind()).
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'tournament_id' = ?", tournamentID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "cancel_deadline", "river")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel job",
				slog.Int64("job_id", job.ID),
				slog.String("job_kind", job.Kind),
				slog.Any("error", err),
			)
			continue
		}
		cancelled++
	}

	s.metrics.RecordOperationSuccess(ctx, "cancel_deadline", "river")
	s.metrics.RecordOperationDuration(ctx, "cancel_deadline", "river", time.Since(start))

	s.logger.InfoContext(ctx, "Deadline jobs cancelled",
		slog.String("tournament_id", tournamentID.String()),
		slog.Int("found", len(jobs)),
		slog.Int("cancelled", cancelled),
	)
	return nil
}

// Reconcile re-derives deadline jobs for every active tournament. Runs at
// startup: tournaments whose jobs survived the restart are deduplicated by
// the unique constraint, tournaments whose deadline passed while the
// process was down get an immediate close.
func (s *Service) Reconcile(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "reconcile", "river")

	active, err := s.repo.ListActiveTournaments(ctx)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "reconcile", "river")
		return fmt.Errorf("failed to list active tournaments: %w", err)
	}

	var failed int
	for _, tournament := range active {
		offset := guildconfigtypes.DefaultReminderOffset
		if cfg, err := s.configs.EffectiveConfig(ctx, tournament.GuildID); err == nil {
			offset = cfg.ReminderOffset
		}

		remindAt := tournament.Deadline.Add(-offset)
		if err := s.ScheduleDeadline(ctx, tournament.ID, remindAt, tournament.Deadline); err != nil {
			s.logger.ErrorContext(ctx, "Failed to reconcile tournament deadline",
				slog.String("tournament_id", tournament.ID.String()),
				slog.Any("error", err),
			)
			failed++
		}
	}

	if failed > 0 {
		s.metrics.RecordOperationFailure(ctx, "reconcile", "river")
		return fmt.Errorf("failed to reconcile %d of %d tournaments", failed, len(active))
	}

	s.metrics.RecordOperationSuccess(ctx, "reconcile", "river")
	s.metrics.RecordOperationDuration(ctx, "reconcile", "river", time.Since(start))

	s.logger.InfoContext(ctx, "Deadline reconciliation complete",
		slog.Int("tournaments", len(active)),
	)
	return nil
}

// ScheduledJobs lists pending deadline jobs for a tournament, newest last.
func (s *Service) ScheduledJobs(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "attempt", "max_attempts").
		Where("kind IN (?, ?)", TournamentReminderArgs{}.Kind(), TournamentCloseArgs{}.Kind()).
		Where("args->>'tournament_id' = ?", tournamentID.String()).
		Order("scheduled_at ASC NULLS LAST").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	out := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		out[i] = JobInfo{
			ID:           job.ID,
			Kind:         job.Kind,
			TournamentID: tournamentID.String(),
			State:        job.State,
			ScheduledAt:  scheduledAt,
			Attempt:      int(job.Attempt),
			MaxAttempts:  int(job.MaxAttempts),
		}
	}
	return out, nil
}

// HealthCheck verifies the job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
