package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// HandleGetLeaderboard handles the LeaderboardRequested event.
func (h *TournamentHandlers) HandleGetLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetLeaderboard(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.LeaderboardRetrievedV1,
		tournamentevents.LeaderboardFailedV1,
	), nil
}

// HandleGetUserScores handles the UserScoresRequested event.
func (h *TournamentHandlers) HandleGetUserScores(ctx context.Context, payload *tournamentevents.UserScoresRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetUserScores(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.UserScoresRetrievedV1,
		tournamentevents.UserScoresFailedV1,
	), nil
}

// HandleGetHistory handles the HistoryRequested event.
func (h *TournamentHandlers) HandleGetHistory(ctx context.Context, payload *tournamentevents.HistoryRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetHistory(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.HistoryRetrievedV1,
		tournamentevents.HistoryFailedV1,
	), nil
}

// HandleListActive handles the ActiveListRequested event. The operation has
// no failure topic; storage errors propagate for redelivery.
func (h *TournamentHandlers) HandleListActive(ctx context.Context, payload *tournamentevents.ActiveListRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ListActive(ctx, payload)
	if err != nil {
		return nil, err
	}

	if result.Success == nil {
		return nil, nil
	}
	return []eventutil.Result{
		{Topic: tournamentevents.ActiveListRetrievedV1, Payload: result.Success},
	}, nil
}

// HandleCourseAutocomplete handles the CourseAutocompleteRequested event.
// Like the active list, it only ever succeeds.
func (h *TournamentHandlers) HandleCourseAutocomplete(ctx context.Context, payload *tournamentevents.CourseAutocompleteRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.AutocompleteCourse(ctx, payload)
	if err != nil {
		return nil, err
	}

	if result.Success == nil {
		return nil, nil
	}
	return []eventutil.Result{
		{Topic: tournamentevents.CourseAutocompleteResultV1, Payload: result.Success},
	}, nil
}

// HandleExportStandings handles the StandingsExportRequested event.
func (h *TournamentHandlers) HandleExportStandings(ctx context.Context, payload *tournamentevents.StandingsExportRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ExportStandings(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.StandingsExportedV1,
		tournamentevents.StandingsExportFailedV1,
	), nil
}
