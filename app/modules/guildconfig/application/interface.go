package guildconfigservice

import (
	"context"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// Service exposes the guildconfig operations.
type Service interface {
	// RetrieveConfig returns the guild's effective configuration, falling
	// back to defaults when nothing is stored.
	RetrieveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error)

	// UpdateConfig applies a partial configuration update. The actor must
	// hold the configured admin role or be a server administrator.
	UpdateConfig(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) (results.OperationResult, error)

	// EffectiveConfig is the non-event variant other modules call to read
	// a guild's settings.
	EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error)
}
