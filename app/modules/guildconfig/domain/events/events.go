// Package guildconfigevents defines the topics and payloads of the guild
// configuration module.
package guildconfigevents

import (
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

// GuildConfigStreamName is the JetStream stream carrying guildconfig subjects.
const GuildConfigStreamName = "guildconfig"

const (
	GuildConfigRetrievalRequestedV1 = "guildconfig.retrieve.requested.v1"
	GuildConfigRetrievedV1          = "guildconfig.retrieved.v1"
	GuildConfigRetrievalFailedV1    = "guildconfig.retrieve.failed.v1"

	GuildConfigUpdateRequestedV1 = "guildconfig.update.requested.v1"
	GuildConfigUpdatedV1         = "guildconfig.updated.v1"
	GuildConfigUpdateFailedV1    = "guildconfig.update.failed.v1"
)

// GuildConfigRetrievalRequestedPayload asks for a guild's effective config.
type GuildConfigRetrievalRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
}

// GuildConfigRetrievedPayload carries the effective configuration, with
// defaults filled in for guilds that never configured anything.
type GuildConfigRetrievedPayload struct {
	GuildID tournamenttypes.GuildID      `json:"guild_id"`
	Config  guildconfigtypes.GuildConfig `json:"config"`
}

// GuildConfigRetrievalFailedPayload reports a failed retrieval.
type GuildConfigRetrievalFailedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Reason  string                  `json:"reason"`
}

// GuildConfigUpdateRequestedPayload carries a partial update. Nil fields are
// left untouched.
type GuildConfigUpdateRequestedPayload struct {
	GuildID             tournamenttypes.GuildID             `json:"guild_id"`
	Actor               tournamentevents.ActorContext       `json:"actor"`
	CommandPrefix       *string                             `json:"command_prefix,omitempty"`
	AdminRoleID         *string                             `json:"admin_role_id,omitempty"`
	AnnounceChannelID   *string                             `json:"announce_channel_id,omitempty"`
	ReminderOffsetHours *int                                `json:"reminder_offset_hours,omitempty"`
	VerificationPolicy  *tournamenttypes.VerificationPolicy `json:"verification_policy,omitempty"`
}

// GuildConfigUpdatedPayload carries the configuration after the update.
type GuildConfigUpdatedPayload struct {
	GuildID tournamenttypes.GuildID      `json:"guild_id"`
	Config  guildconfigtypes.GuildConfig `json:"config"`
}

// GuildConfigUpdateFailedPayload reports a rejected or failed update.
type GuildConfigUpdateFailedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Reason  string                  `json:"reason"`
}
