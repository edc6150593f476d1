package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// CancelTournament aborts the guild's active tournament. No standings are
// announced; the deadline jobs are dropped.
func (s *TournamentService) CancelTournament(ctx context.Context, payload *tournamentevents.TournamentCancelRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "CancelTournament", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		cfg := s.guildConfig(ctx, guildID)
		if !actorIsAdmin(payload.Actor, cfg) {
			return tournamentFailure(guildID, ErrNotAuthorized), nil
		}

		unlock := s.lockGuild(guildID)
		defer unlock()

		tournament, err := s.activeTournament(ctx, guildID)
		if err != nil {
			if errors.Is(err, ErrNoActiveTournament) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		cancelled, err := s.repo.CloseTournamentIfActive(ctx, tournament.ID, tournamenttypes.CloseReasonCancelled, s.clock.NowUTC())
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNoRowsAffected) {
				return tournamentFailure(guildID, ErrNoActiveTournament), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		if err := s.scheduler.CancelDeadline(ctx, tournament.ID); err != nil {
			// Workers treat a cancelled tournament as a no-op, so a
			// leftover job is harmless.
			s.logger.WarnContext(ctx, "Failed to cancel deadline jobs",
				slog.String("tournament_id", tournament.ID.String()),
				slog.Any("error", err),
			)
		}
		s.dropRefreshLimiter(tournament.ID)

		return results.SuccessResult(&tournamentevents.TournamentCancelledPayload{
			Tournament:  *cancelled,
			CancelledBy: payload.Actor.UserID,
		}), nil
	})
}
