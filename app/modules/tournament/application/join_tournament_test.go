package tournamentservice

import (
	"context"
	"testing"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_JoinTournament(t *testing.T) {
	t.Run("first join registers", func(t *testing.T) {
		svc, _ := newTestService(t)
		tournament := mustCreateTournament(t, svc, "guild-1")

		result, err := svc.JoinTournament(context.Background(), &tournamentevents.ParticipantJoinRequestedPayload{
			GuildID: "guild-1",
			Actor:   memberActor,
		})
		require.NoError(t, err)
		joined, ok := result.Success.(*tournamentevents.ParticipantJoinedPayload)
		require.True(t, ok, "expected success, got %+v", result.Failure)
		assert.Equal(t, tournament.ID, joined.TournamentID)
		assert.False(t, joined.AlreadyRegistered)
		assert.Equal(t, 1, joined.ParticipantCount)
		assert.Positive(t, joined.TimeRemaining)
	})

	t.Run("rejoining is idempotent", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		payload := &tournamentevents.ParticipantJoinRequestedPayload{
			GuildID: "guild-1",
			Actor:   memberActor,
		}
		_, err := svc.JoinTournament(context.Background(), payload)
		require.NoError(t, err)

		result, err := svc.JoinTournament(context.Background(), payload)
		require.NoError(t, err)
		joined, ok := result.Success.(*tournamentevents.ParticipantJoinedPayload)
		require.True(t, ok)
		assert.True(t, joined.AlreadyRegistered)
		assert.Equal(t, 1, joined.ParticipantCount)
	})

	t.Run("no active tournament", func(t *testing.T) {
		svc, _ := newTestService(t)

		result, err := svc.JoinTournament(context.Background(), &tournamentevents.ParticipantJoinRequestedPayload{
			GuildID: "guild-1",
			Actor:   memberActor,
		})
		require.NoError(t, err)
		failure, ok := result.Failure.(*tournamentevents.TournamentFailedPayload)
		require.True(t, ok)
		assert.Equal(t, ErrNoActiveTournament.Error(), failure.Reason)
	})
}
