package tournamentservice

import (
	"context"
	"testing"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_GetHistory(t *testing.T) {
	t.Run("newest tournament first with its podium", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.CreateTournament(context.Background(), &tournamentevents.TournamentCreateRequestedPayload{
			GuildID:      "guild-1",
			Actor:        adminActor,
			DurationDays: 7,
		})
		require.NoError(t, err)
		firstCreated := first.Success.(*tournamentevents.TournamentCreatedPayload).Tournament
		submit(t, svc, "guild-1", memberActor, 95000)
		require.NoError(t, svc.CloseTournament(context.Background(), firstCreated.ID))

		second, err := svc.CreateTournament(context.Background(), &tournamentevents.TournamentCreateRequestedPayload{
			GuildID:      "guild-1",
			Actor:        adminActor,
			DurationDays: 14,
		})
		require.NoError(t, err)
		secondCreated := second.Success.(*tournamentevents.TournamentCreatedPayload).Tournament
		submit(t, svc, "guild-1", memberActor, 92340)
		submit(t, svc, "guild-1", tournamentevents.ActorContext{UserID: "user-2"}, 91000)
		require.NoError(t, svc.CloseTournament(context.Background(), secondCreated.ID))

		result, err := svc.GetHistory(context.Background(), &tournamentevents.HistoryRequestedPayload{
			GuildID: "guild-1",
		})
		require.NoError(t, err)
		history, ok := result.Success.(*tournamentevents.HistoryRetrievedPayload)
		require.True(t, ok, "expected success, got %+v", result.Failure)

		require.Len(t, history.Entries, 2)
		assert.Equal(t, secondCreated.ID, history.Entries[0].Tournament.ID)
		assert.Equal(t, firstCreated.ID, history.Entries[1].Tournament.ID)

		require.Len(t, history.Entries[0].Podium, 2)
		assert.Equal(t, tournamenttypes.UserID("user-2"), history.Entries[0].Podium[0].UserID)
		require.Len(t, history.Entries[1].Podium, 1)
	})

	t.Run("limit caps the entries", func(t *testing.T) {
		svc, _ := newTestService(t)
		for range 3 {
			tournament := mustCreateTournament(t, svc, "guild-1")
			require.NoError(t, svc.CloseTournament(context.Background(), tournament.ID))
		}

		result, err := svc.GetHistory(context.Background(), &tournamentevents.HistoryRequestedPayload{
			GuildID: "guild-1",
			Limit:   2,
		})
		require.NoError(t, err)
		history, ok := result.Success.(*tournamentevents.HistoryRetrievedPayload)
		require.True(t, ok)
		assert.Len(t, history.Entries, 2)
	})

	t.Run("active tournament stays out of history", func(t *testing.T) {
		svc, _ := newTestService(t)
		mustCreateTournament(t, svc, "guild-1")

		result, err := svc.GetHistory(context.Background(), &tournamentevents.HistoryRequestedPayload{
			GuildID: "guild-1",
		})
		require.NoError(t, err)
		history, ok := result.Success.(*tournamentevents.HistoryRetrievedPayload)
		require.True(t, ok)
		assert.Empty(t, history.Entries)
	})
}

func TestTournamentService_ListActive(t *testing.T) {
	t.Run("reports the running tournament", func(t *testing.T) {
		svc, _ := newTestService(t)
		tournament := mustCreateTournament(t, svc, "guild-1")

		result, err := svc.ListActive(context.Background(), &tournamentevents.ActiveListRequestedPayload{
			GuildID: "guild-1",
		})
		require.NoError(t, err)
		active, ok := result.Success.(*tournamentevents.ActiveListRetrievedPayload)
		require.True(t, ok)
		require.NotNil(t, active.Tournament)
		assert.Equal(t, tournament.ID, active.Tournament.ID)
	})

	t.Run("empty when nothing is running", func(t *testing.T) {
		svc, _ := newTestService(t)

		result, err := svc.ListActive(context.Background(), &tournamentevents.ActiveListRequestedPayload{
			GuildID: "guild-1",
		})
		require.NoError(t, err)
		active, ok := result.Success.(*tournamentevents.ActiveListRetrievedPayload)
		require.True(t, ok)
		assert.Nil(t, active.Tournament)
	})
}
