package tournamentservice

import (
	"context"
	"strings"
	"testing"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autocomplete(t *testing.T, svc *TournamentService, term string, limit int) *tournamentevents.CourseAutocompleteResultPayload {
	t.Helper()
	result, err := svc.AutocompleteCourse(context.Background(), &tournamentevents.CourseAutocompleteRequestedPayload{
		GuildID: "guild-1",
		Term:    term,
		Limit:   limit,
	})
	require.NoError(t, err)
	payload, ok := result.Success.(*tournamentevents.CourseAutocompleteResultPayload)
	require.True(t, ok, "expected success, got %+v", result.Failure)
	return payload
}

func TestTournamentService_AutocompleteCourse(t *testing.T) {
	t.Run("suggests matching courses", func(t *testing.T) {
		svc, _ := newTestService(t)

		payload := autocomplete(t, svc, "wario", 0)
		require.NotEmpty(t, payload.Courses)
		for _, course := range payload.Courses {
			assert.Contains(t, strings.ToLower(course.Name), "wario")
		}
	})

	t.Run("empty term yields no suggestions", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.Empty(t, autocomplete(t, svc, "", 0).Courses)
	})

	t.Run("oversized limit is capped", func(t *testing.T) {
		svc, _ := newTestService(t)
		payload := autocomplete(t, svc, "o", 1000)
		assert.LessOrEqual(t, len(payload.Courses), maxAutocompleteResults)
	})
}
