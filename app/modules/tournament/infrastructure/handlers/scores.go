package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// HandleSubmitScore handles the ScoreSubmitRequested event.
func (h *TournamentHandlers) HandleSubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SubmitScore(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.ScoreSubmittedV1,
		tournamentevents.ScoreSubmitFailedV1,
	), nil
}

// HandleVerifyScore handles the ScoreVerifyRequested event.
func (h *TournamentHandlers) HandleVerifyScore(ctx context.Context, payload *tournamentevents.ScoreVerifyRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.VerifyScore(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.ScoreDecidedV1,
		tournamentevents.ScoreVerifyFailedV1,
	), nil
}
