package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/ranking"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// CloseTournament finalizes a tournament at its deadline: computes the
// final standings under the guild's verification policy, announces them,
// and archives the tournament. Closing an already closed tournament is a
// no-op success, which makes at-least-once job delivery safe.
func (s *TournamentService) CloseTournament(ctx context.Context, tournamentID tournamenttypes.TournamentID) error {
	_, err := s.withTelemetry(ctx, "CloseTournament", "", func(ctx context.Context) (results.OperationResult, error) {
		return results.OperationResult{}, s.closeTournament(ctx, tournamentID)
	})
	return err
}

func (s *TournamentService) closeTournament(ctx context.Context, tournamentID tournamenttypes.TournamentID) error {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			s.logger.WarnContext(ctx, "Close requested for unknown tournament",
				slog.String("tournament_id", tournamentID.String()),
			)
			return nil
		}
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	unlock := s.lockGuild(tournament.GuildID)

	closed, err := s.repo.CloseTournamentIfActive(ctx, tournamentID, tournamenttypes.CloseReasonCompleted, s.clock.NowUTC())
	switch {
	case err == nil:
	case errors.Is(err, tournamentdb.ErrNoRowsAffected):
		current, getErr := s.repo.GetTournament(ctx, tournamentID)
		if getErr != nil {
			unlock()
			return fmt.Errorf("%w: %w", ErrStorage, getErr)
		}
		if current.State != tournamenttypes.TournamentStateClosed ||
			current.CloseReason != tournamenttypes.CloseReasonCompleted {
			// Archived or cancelled. Duplicate delivery, nothing to do.
			unlock()
			return nil
		}
		// Closed on an earlier attempt whose announcement never landed.
		// Recompute the standings and publish again.
		closed = current
	default:
		unlock()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	subs, err := s.repo.ListSubmissions(ctx, tournamentID)
	if err != nil {
		unlock()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	participants, err := s.repo.ListParticipants(ctx, tournamentID)
	if err != nil {
		unlock()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	unlock()

	cfg := s.guildConfig(ctx, tournament.GuildID)
	finalEntries := ranking.Final(subs, cfg.VerificationPolicy)

	chart, err := renderStandingsChart(closed.CourseName, finalEntries)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to render standings chart",
			slog.String("tournament_id", tournamentID.String()),
			slog.Any("error", err),
		)
		chart = nil
	}

	announcement := &tournamentevents.TournamentClosedPayload{
		Tournament:   *closed,
		FinalEntries: finalEntries,
		Participants: participants,
		Chart:        chart,
	}
	if err := s.publisher.Publish(ctx, tournamentevents.TournamentClosedV1, announcement); err != nil {
		// The tournament stays closed but unarchived; the job retries the
		// announcement.
		return fmt.Errorf("publish closure announcement: %w", err)
	}

	if err := s.repo.MarkArchived(ctx, tournamentID); err != nil && !errors.Is(err, tournamentdb.ErrNoRowsAffected) {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	s.dropRefreshLimiter(tournamentID)
	return nil
}

// RemindTournament publishes the deadline reminder. A tournament that is no
// longer active gets no reminder.
func (s *TournamentService) RemindTournament(ctx context.Context, tournamentID tournamenttypes.TournamentID) error {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if tournament.State != tournamenttypes.TournamentStateActive {
		return nil
	}

	participants, err := s.repo.ListParticipants(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	payload := &tournamentevents.TournamentReminderDuePayload{
		Tournament:    *tournament,
		TimeRemaining: tournament.Deadline.Sub(s.clock.NowUTC()),
		Participants:  participants,
	}
	if err := s.publisher.Publish(ctx, tournamentevents.TournamentReminderDueV1, payload); err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}
	return nil
}
