package tournamentservice

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verify(t *testing.T, svc *TournamentService, guildID tournamenttypes.GuildID, target tournamenttypes.UserID, action tournamentevents.VerifyAction, attempt int) (*tournamentevents.ScoreDecidedPayload, *tournamentevents.TournamentFailedPayload) {
	t.Helper()
	result, err := svc.VerifyScore(context.Background(), &tournamentevents.ScoreVerifyRequestedPayload{
		GuildID:      guildID,
		Actor:        adminActor,
		TargetUserID: target,
		Action:       action,
		AttemptIndex: attempt,
	})
	require.NoError(t, err)
	if result.Failure != nil {
		failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
		require.True(t, ok)
		return nil, failure
	}
	decided, ok := result.Success.(*tournamentevents.ScoreDecidedPayload)
	require.True(t, ok)
	return decided, nil
}

func TestTournamentService_VerifyScore(t *testing.T) {
	t.Run("approve marks best attempt verified", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 95000)
		submit(t, svc, "guild-1", memberActor, 92340)

		decided, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionApprove, 0)
		require.Nil(t, failure)
		assert.Equal(t, tournamenttypes.VerificationVerified, decided.Submission.Status)
		assert.Equal(t, tournamenttypes.RaceTime(92340), decided.Submission.Time)
		assert.Equal(t, 2, decided.Submission.AttemptIndex)
	})

	t.Run("specific attempt by index", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 95000)
		submit(t, svc, "guild-1", memberActor, 92340)

		decided, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionReject, 1)
		require.Nil(t, failure)
		assert.Equal(t, tournamenttypes.VerificationRejected, decided.Submission.Status)
		assert.Equal(t, tournamenttypes.RaceTime(95000), decided.Submission.Time)
	})

	t.Run("concurrent decisions settle exactly once", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 92340)

		const racers = 4
		var wg sync.WaitGroup
		var decisions, conflicts atomic.Int32
		for i := 0; i < racers; i++ {
			action := tournamentevents.VerifyActionApprove
			if i%2 == 1 {
				action = tournamentevents.VerifyActionReject
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := svc.VerifyScore(context.Background(), &tournamentevents.ScoreVerifyRequestedPayload{
					GuildID:      "guild-1",
					Actor:        adminActor,
					TargetUserID: memberActor.UserID,
					Action:       action,
					AttemptIndex: 1,
				})
				if err != nil {
					t.Errorf("VerifyScore: %v", err)
					return
				}
				switch {
				case result.Success != nil:
					decisions.Add(1)
				case result.Failure != nil:
					failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
					if ok && failure.Reason == ErrScoreAlreadyDecided.Error() {
						conflicts.Add(1)
					}
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), decisions.Load(), "exactly one decision must land")
		assert.Equal(t, int32(racers-1), conflicts.Load())
	})

	t.Run("re-deciding is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 92340)

		_, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionApprove, 1)
		require.Nil(t, failure)

		_, failure = verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionReject, 1)
		require.NotNil(t, failure)
		assert.Equal(t, ErrScoreAlreadyDecided.Error(), failure.Reason)
	})

	t.Run("delete works on decided attempts", func(t *testing.T) {
		svc, deps := newTestService(t)
		tournament := mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 92340)

		_, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionApprove, 1)
		require.Nil(t, failure)

		decided, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionDelete, 1)
		require.Nil(t, failure)
		assert.Equal(t, tournamentevents.VerifyActionDelete, decided.Action)

		subs, err := deps.repo.ListSubmissions(context.Background(), tournament.ID)
		require.NoError(t, err)
		assert.Empty(t, subs)
	})

	t.Run("rejecting best falls back to next attempt", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 92340)
		submit(t, svc, "guild-1", memberActor, 95000)

		_, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionReject, 0)
		require.Nil(t, failure)

		decided, failure := verify(t, svc, "guild-1", memberActor.UserID, tournamentevents.VerifyActionApprove, 0)
		require.Nil(t, failure)
		assert.Equal(t, tournamenttypes.RaceTime(95000), decided.Submission.Time)
	})

	t.Run("no score for user", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		_, failure := verify(t, svc, "guild-1", "ghost", tournamentevents.VerifyActionApprove, 0)
		require.NotNil(t, failure)
		assert.Equal(t, ErrScoreNotFound.Error(), failure.Reason)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")
		submit(t, svc, "guild-1", memberActor, 92340)

		result, err := svc.VerifyScore(context.Background(), &tournamentevents.ScoreVerifyRequestedPayload{
			GuildID:      "guild-1",
			Actor:        memberActor,
			TargetUserID: memberActor.UserID,
			Action:       tournamentevents.VerifyActionApprove,
		})
		require.NoError(t, err)
		failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
		require.True(t, ok)
		assert.Equal(t, ErrNotAuthorized.Error(), failure.Reason)
	})
}
