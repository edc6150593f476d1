package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/riverqueue/river"
)

// TournamentLifecycle is the slice of the tournament service the workers
// drive. Defined here so the queue does not depend on the service's concrete
// type.
type TournamentLifecycle interface {
	// RemindTournament announces the approaching deadline. A no-op when
	// the tournament is no longer active.
	RemindTournament(ctx context.Context, id tournamenttypes.TournamentID) error

	// CloseTournament performs the deadline close: compute final
	// standings, announce, archive. Idempotent.
	CloseTournament(ctx context.Context, id tournamenttypes.TournamentID) error
}

type tournamentReminderWorker struct {
	river.WorkerDefaults[TournamentReminderArgs]
	service *Service
	logger  *slog.Logger
}

func (w *tournamentReminderWorker) Work(ctx context.Context, job *river.Job[TournamentReminderArgs]) error {
	id, err := uuid.Parse(job.Args.TournamentID)
	if err != nil {
		return fmt.Errorf("bad tournament id in reminder job: %w", err)
	}

	w.logger.InfoContext(ctx, "Running deadline reminder job",
		slog.String("tournament_id", job.Args.TournamentID),
		slog.Int64("job_id", job.ID),
	)
	return w.service.lifecycle().RemindTournament(ctx, id)
}

type tournamentCloseWorker struct {
	river.WorkerDefaults[TournamentCloseArgs]
	service *Service
	logger  *slog.Logger
}

func (w *tournamentCloseWorker) Work(ctx context.Context, job *river.Job[TournamentCloseArgs]) error {
	id, err := uuid.Parse(job.Args.TournamentID)
	if err != nil {
		return fmt.Errorf("bad tournament id in close job: %w", err)
	}

	w.logger.InfoContext(ctx, "Running deadline close job",
		slog.String("tournament_id", job.Args.TournamentID),
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)
	return w.service.lifecycle().CloseTournament(ctx, id)
}
