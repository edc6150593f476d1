package tournamentservice

import (
	"context"
	"errors"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// maxAutocompleteResults caps suggestion lists at Discord's autocomplete
// choice limit.
const maxAutocompleteResults = 25

// AutocompleteCourse suggests catalog courses matching a partial name. An
// empty term or no matches yields an empty list, never a failure.
func (s *TournamentService) AutocompleteCourse(ctx context.Context, payload *tournamentevents.CourseAutocompleteRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "AutocompleteCourse", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		limit := payload.Limit
		if limit <= 0 || limit > maxAutocompleteResults {
			limit = maxAutocompleteResults
		}

		return results.SuccessResult(&tournamentevents.CourseAutocompleteResultPayload{
			GuildID: guildID,
			Term:    payload.Term,
			Courses: s.catalog.Search(payload.Term, limit),
		}), nil
	})
}
