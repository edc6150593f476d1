package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/ranking"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

const (
	defaultHistoryLimit = 10
	podiumSize          = 3
)

// GetHistory lists the guild's finished tournaments, newest first, each
// with its podium.
func (s *TournamentService) GetHistory(ctx context.Context, payload *tournamentevents.HistoryRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "GetHistory", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		limit := payload.Limit
		if limit <= 0 {
			limit = defaultHistoryLimit
		}

		tournaments, err := s.repo.ListHistory(ctx, guildID, limit)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		cfg := s.guildConfig(ctx, guildID)
		entries := make([]tournamentevents.HistoryEntry, 0, len(tournaments))
		for _, t := range tournaments {
			subs, err := s.repo.ListSubmissions(ctx, t.ID)
			if err != nil {
				return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
			}
			podium := ranking.Final(subs, cfg.VerificationPolicy)
			if len(podium) > podiumSize {
				podium = podium[:podiumSize]
			}
			entries = append(entries, tournamentevents.HistoryEntry{
				Tournament: *t,
				Podium:     podium,
			})
		}

		return results.SuccessResult(&tournamentevents.HistoryRetrievedPayload{
			GuildID: guildID,
			Entries: entries,
		}), nil
	})
}
