package guildconfighandlers

import (
	"context"
	"errors"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// HandleRetrieveConfig handles the GuildConfigRetrievalRequested event.
func (h *GuildConfigHandlers) HandleRetrieveConfig(ctx context.Context, payload *guildconfigevents.GuildConfigRetrievalRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RetrieveConfig(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		guildconfigevents.GuildConfigRetrievedV1,
		guildconfigevents.GuildConfigRetrievalFailedV1,
	), nil
}
