package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// ListActive reports the guild's active tournament, or none. The gateway
// calls it on startup to resync thread references; no tournament is not a
// failure.
func (s *TournamentService) ListActive(ctx context.Context, payload *tournamentevents.ActiveListRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "ListActive", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		tournament, err := s.repo.GetActiveTournament(ctx, guildID)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		return results.SuccessResult(&tournamentevents.ActiveListRetrievedPayload{
			GuildID:    guildID,
			Tournament: tournament,
		}), nil
	})
}
