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

// SubmitScore records one timed attempt. Submitting also registers the user
// on the tournament, so /score alone is enough to participate.
func (s *TournamentService) SubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "SubmitScore", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		if !payload.Time.Valid() {
			return tournamentFailure(guildID, ErrInvalidRaceTime), nil
		}

		unlock := s.lockGuild(guildID)

		tournament, err := s.activeTournament(ctx, guildID)
		if err != nil {
			unlock()
			if errors.Is(err, ErrNoActiveTournament) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		now := s.clock.NowUTC()
		if now.After(tournament.Deadline) {
			unlock()
			return tournamentFailure(guildID, ErrDeadlinePassed), nil
		}

		userID := payload.Actor.UserID
		already, err := s.repo.UpsertRegistration(ctx, tournament.ID, userID, now)
		if err != nil {
			unlock()
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		previousBest, err := s.repo.GetBestSubmission(ctx, tournament.ID, userID)
		if err != nil && !errors.Is(err, tournamentdb.ErrNotFound) {
			unlock()
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		submission, err := s.repo.InsertSubmission(ctx, &tournamenttypes.Submission{
			TournamentID: tournament.ID,
			UserID:       userID,
			Time:         payload.Time,
			ProofURL:     payload.ProofURL,
			Status:       tournamenttypes.VerificationPending,
			SubmittedAt:  now,
		})
		unlock()
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		s.publishLeaderboardRefresh(ctx, tournament)

		personalBest := previousBest == nil || submission.Time < previousBest.Time
		return results.SuccessResult(&tournamentevents.ScoreSubmittedPayload{
			TournamentID:   tournament.ID,
			Submission:     *submission,
			NewParticipant: !already,
			PersonalBest:   personalBest,
		}), nil
	})
}

// publishLeaderboardRefresh pushes updated standings, throttled per
// tournament so score bursts do not flood the gateway with edits.
func (s *TournamentService) publishLeaderboardRefresh(ctx context.Context, tournament *tournamenttypes.Tournament) {
	if !s.refreshAllowed(tournament.ID) {
		return
	}

	subs, err := s.repo.ListSubmissions(ctx, tournament.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping leaderboard refresh",
			slog.String("tournament_id", tournament.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	payload := &tournamentevents.LeaderboardUpdatedPayload{
		Tournament: *tournament,
		Entries:    ranking.Standings(subs),
	}
	if err := s.publisher.Publish(ctx, tournamentevents.LeaderboardUpdatedV1, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish leaderboard refresh",
			slog.String("tournament_id", tournament.ID.String()),
			slog.Any("error", err),
		)
	}
}
