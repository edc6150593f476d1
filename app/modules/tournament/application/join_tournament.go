package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// JoinTournament registers the actor on the guild's active tournament.
// Joining twice is a success that reports AlreadyRegistered.
func (s *TournamentService) JoinTournament(ctx context.Context, payload *tournamentevents.ParticipantJoinRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "JoinTournament", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		unlock := s.lockGuild(guildID)
		defer unlock()

		tournament, err := s.activeTournament(ctx, guildID)
		if err != nil {
			if errors.Is(err, ErrNoActiveTournament) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		already, err := s.repo.UpsertRegistration(ctx, tournament.ID, payload.Actor.UserID, s.clock.NowUTC())
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		count, err := s.repo.CountRegistrations(ctx, tournament.ID)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		return results.SuccessResult(&tournamentevents.ParticipantJoinedPayload{
			TournamentID:      tournament.ID,
			ThreadID:          tournament.ThreadID,
			UserID:            payload.Actor.UserID,
			AlreadyRegistered: already,
			ParticipantCount:  count,
			TimeRemaining:     tournament.Deadline.Sub(s.clock.NowUTC()),
		}), nil
	})
}
