package guildconfighandlers

import (
	"context"
	"errors"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// HandleUpdateConfig handles the GuildConfigUpdateRequested event.
func (h *GuildConfigHandlers) HandleUpdateConfig(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) ([]eventutil.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.UpdateConfig(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		guildconfigevents.GuildConfigUpdatedV1,
		guildconfigevents.GuildConfigUpdateFailedV1,
	), nil
}
