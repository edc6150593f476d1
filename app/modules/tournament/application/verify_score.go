package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// VerifyScore rules on a submission: approve, reject, or delete. Approvals
// and rejections are one-shot; delete works in any decision state.
func (s *TournamentService) VerifyScore(ctx context.Context, payload *tournamentevents.ScoreVerifyRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "VerifyScore", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		cfg := s.guildConfig(ctx, guildID)
		if !actorIsAdmin(payload.Actor, cfg) {
			return tournamentFailure(guildID, ErrNotAuthorized), nil
		}

		switch payload.Action {
		case tournamentevents.VerifyActionApprove, tournamentevents.VerifyActionReject, tournamentevents.VerifyActionDelete:
		default:
			return tournamentFailure(guildID, fmt.Errorf("unknown verify action %q", payload.Action)), nil
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

		target, err := s.findTarget(ctx, tournament.ID, payload.TargetUserID, payload.AttemptIndex)
		if err != nil {
			unlock()
			if errors.Is(err, ErrScoreNotFound) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		var decided *tournamenttypes.Submission
		switch payload.Action {
		case tournamentevents.VerifyActionDelete:
			if err := s.repo.DeleteSubmission(ctx, target.ID); err != nil {
				unlock()
				if errors.Is(err, tournamentdb.ErrNotFound) {
					return tournamentFailure(guildID, ErrScoreNotFound), nil
				}
				return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
			}
			decided = target
		default:
			status := tournamenttypes.VerificationVerified
			if payload.Action == tournamentevents.VerifyActionReject {
				status = tournamenttypes.VerificationRejected
			}
			decided, err = s.repo.DecideSubmission(ctx, target.ID, status)
			if err != nil {
				unlock()
				if errors.Is(err, tournamentdb.ErrNoRowsAffected) {
					return tournamentFailure(guildID, ErrScoreAlreadyDecided), nil
				}
				return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
			}
		}
		unlock()

		s.publishLeaderboardRefresh(ctx, tournament)

		return results.SuccessResult(&tournamentevents.ScoreDecidedPayload{
			TournamentID: tournament.ID,
			Submission:   *decided,
			Action:       payload.Action,
			DecidedBy:    payload.Actor.UserID,
		}), nil
	})
}

// findTarget resolves which attempt a /verifier invocation refers to: a
// specific attempt index, or the user's current best when none was given.
func (s *TournamentService) findTarget(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, attemptIndex int) (*tournamenttypes.Submission, error) {
	if attemptIndex > 0 {
		sub, err := s.repo.GetSubmission(ctx, tournamentID, userID, attemptIndex)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return nil, ErrScoreNotFound
			}
			return nil, err
		}
		return sub, nil
	}

	sub, err := s.repo.GetBestSubmission(ctx, tournamentID, userID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return sub, nil
}
