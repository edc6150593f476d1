package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// GetUserScores lists the caller's attempts on the active tournament, with
// their current best highlighted.
func (s *TournamentService) GetUserScores(ctx context.Context, payload *tournamentevents.UserScoresRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "GetUserScores", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		tournament, err := s.activeTournament(ctx, guildID)
		if err != nil {
			if errors.Is(err, ErrNoActiveTournament) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		userID := payload.Actor.UserID
		subs, err := s.repo.ListUserSubmissions(ctx, tournament.ID, userID)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		var best *tournamenttypes.Submission
		for i := range subs {
			sub := &subs[i]
			if sub.Status == tournamenttypes.VerificationRejected {
				continue
			}
			if best == nil || sub.Time < best.Time {
				best = sub
			}
		}

		return results.SuccessResult(&tournamentevents.UserScoresRetrievedPayload{
			Tournament:  *tournament,
			UserID:      userID,
			Submissions: subs,
			Best:        best,
		}), nil
	})
}
