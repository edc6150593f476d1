package tournamentservice

import (
	"context"
	"testing"
	"time"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submit(t *testing.T, svc *TournamentService, guildID tournamenttypes.GuildID, actor tournamentevents.ActorContext, ms int64) *tournamentevents.ScoreSubmittedPayload {
	t.Helper()
	result, err := svc.SubmitScore(context.Background(), &tournamentevents.ScoreSubmitRequestedPayload{
		GuildID: guildID,
		Actor:   actor,
		Time:    tournamenttypes.RaceTime(ms),
	})
	require.NoError(t, err)
	submitted, ok := result.Success.(*tournamentevents.ScoreSubmittedPayload)
	require.True(t, ok, "expected success, got %+v", result.Failure)
	return submitted
}

func TestTournamentService_SubmitScore(t *testing.T) {
	t.Run("submitting registers implicitly", func(t *testing.T) {
		svc, deps := newTestService(t)
		tournament := mustCreateTournament(t, svc, "guild-1")

		submitted := submit(t, svc, "guild-1", memberActor, 92340)

		assert.True(t, submitted.NewParticipant)
		assert.True(t, submitted.PersonalBest)
		assert.Equal(t, 1, submitted.Submission.AttemptIndex)
		assert.Equal(t, tournamenttypes.VerificationPending, submitted.Submission.Status)

		count, err := deps.repo.CountRegistrations(context.Background(), tournament.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("attempt index increments per user", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		first := submit(t, svc, "guild-1", memberActor, 92340)
		second := submit(t, svc, "guild-1", memberActor, 95000)
		other := submit(t, svc, "guild-1", tournamentevents.ActorContext{UserID: "user-2"}, 91000)

		assert.Equal(t, 1, first.Submission.AttemptIndex)
		assert.Equal(t, 2, second.Submission.AttemptIndex)
		assert.Equal(t, 1, other.Submission.AttemptIndex)
		assert.False(t, second.NewParticipant)
	})

	t.Run("personal best flag tracks improvement only", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		first := submit(t, svc, "guild-1", memberActor, 92340)
		slower := submit(t, svc, "guild-1", memberActor, 99000)
		faster := submit(t, svc, "guild-1", memberActor, 90100)

		assert.True(t, first.PersonalBest)
		assert.False(t, slower.PersonalBest)
		assert.True(t, faster.PersonalBest)
	})

	t.Run("non-positive time rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		for _, ms := range []int64{0, -500} {
			result, err := svc.SubmitScore(context.Background(), &tournamentevents.ScoreSubmitRequestedPayload{
				GuildID: "guild-1",
				Actor:   memberActor,
				Time:    tournamenttypes.RaceTime(ms),
			})
			require.NoError(t, err)
			failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
			require.True(t, ok)
			assert.Equal(t, ErrInvalidRaceTime.Error(), failure.Reason)
		}
	})

	t.Run("submission after deadline rejected", func(t *testing.T) {
		svc, deps := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		deps.clock.NowUTCFn = func() time.Time { return testNow.AddDate(0, 0, 31) }

		result, err := svc.SubmitScore(context.Background(), &tournamentevents.ScoreSubmitRequestedPayload{
			GuildID: "guild-1",
			Actor:   memberActor,
			Time:    92340,
		})
		require.NoError(t, err)
		failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
		require.True(t, ok)
		assert.Equal(t, ErrDeadlinePassed.Error(), failure.Reason)
	})

	t.Run("no active tournament", func(t *testing.T) {
		svc, _ := newTestService(t)

		result, err := svc.SubmitScore(context.Background(), &tournamentevents.ScoreSubmitRequestedPayload{
			GuildID: "guild-1",
			Actor:   memberActor,
			Time:    92340,
		})
		require.NoError(t, err)
		failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
		require.True(t, ok)
		assert.Equal(t, ErrNoActiveTournament.Error(), failure.Reason)
	})

	t.Run("leaderboard refresh throttled per tournament", func(t *testing.T) {
		svc, deps := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		submit(t, svc, "guild-1", memberActor, 92340)
		submit(t, svc, "guild-1", memberActor, 91000)

		refreshes := 0
		for _, topic := range deps.publisher.Topics() {
			if topic == tournamentevents.LeaderboardUpdatedV1 {
				refreshes++
			}
		}
		assert.Equal(t, 1, refreshes, "second refresh within the interval should be dropped")
	})
}
