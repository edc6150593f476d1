package tournamenthandlers

import (
	"context"
	"errors"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// HandleCreateTournament handles the TournamentCreateRequested event.
func (h *TournamentHandlers) HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CreateTournament(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.TournamentCreatedV1,
		tournamentevents.TournamentCreationFailedV1,
	), nil
}

// HandleLinkThread handles the TournamentThreadLinkRequested event.
func (h *TournamentHandlers) HandleLinkThread(ctx context.Context, payload *tournamentevents.TournamentThreadLinkRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.LinkThread(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.TournamentThreadLinkedV1,
		tournamentevents.TournamentThreadLinkFailedV1,
	), nil
}

// HandleJoinTournament handles the ParticipantJoinRequested event.
func (h *TournamentHandlers) HandleJoinTournament(ctx context.Context, payload *tournamentevents.ParticipantJoinRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.JoinTournament(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.ParticipantJoinedV1,
		tournamentevents.ParticipantJoinFailedV1,
	), nil
}

// HandleCancelTournament handles the TournamentCancelRequested event.
func (h *TournamentHandlers) HandleCancelTournament(ctx context.Context, payload *tournamentevents.TournamentCancelRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CancelTournament(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		tournamentevents.TournamentCancelledV1,
		tournamentevents.TournamentCancelFailedV1,
	), nil
}
