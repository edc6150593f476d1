package guildconfighandlers

import (
	"context"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// Handlers is the set of guildconfig event handlers.
type Handlers interface {
	HandleRetrieveConfig(ctx context.Context, payload *guildconfigevents.GuildConfigRetrievalRequestedPayload) ([]eventutil.Result, error)
	HandleUpdateConfig(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) ([]eventutil.Result, error)
}
