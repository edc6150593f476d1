package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/ranking"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// GetLeaderboard returns the standings: live (pending included, flagged)
// while a tournament is active, frozen final otherwise.
func (s *TournamentService) GetLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "GetLeaderboard", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		tournament, live, err := s.boardTournament(ctx, guildID)
		if err != nil {
			if errors.Is(err, ErrNoActiveTournament) || errors.Is(err, ErrNoClosedTournament) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		subs, err := s.repo.ListSubmissions(ctx, tournament.ID)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		var entries []tournamenttypes.LeaderboardEntry
		if live {
			entries = ranking.Standings(subs)
		} else {
			cfg := s.guildConfig(ctx, guildID)
			entries = ranking.Final(subs, cfg.VerificationPolicy)
		}

		return results.SuccessResult(&tournamentevents.LeaderboardRetrievedPayload{
			Tournament: *tournament,
			Entries:    entries,
			Live:       live,
		}), nil
	})
}

// boardTournament picks which tournament a leaderboard request refers to:
// the active one when it exists, otherwise the most recently finished one.
func (s *TournamentService) boardTournament(ctx context.Context, guildID tournamenttypes.GuildID) (*tournamenttypes.Tournament, bool, error) {
	active, err := s.repo.GetActiveTournament(ctx, guildID)
	if err != nil {
		return nil, false, err
	}
	if active != nil {
		return active, true, nil
	}

	history, err := s.repo.ListHistory(ctx, guildID, 1)
	if err != nil {
		return nil, false, err
	}
	if len(history) == 0 {
		return nil, false, ErrNoClosedTournament
	}
	return history[0], false, nil
}
