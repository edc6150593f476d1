// Package guildconfigtypes defines the per-guild configuration model.
package guildconfigtypes

import (
	"time"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

const (
	// DefaultCommandPrefix is used until a guild sets its own.
	DefaultCommandPrefix = "!mk"

	// MaxCommandPrefixLength bounds the prefix a guild may configure.
	MaxCommandPrefixLength = 10

	// DefaultReminderOffset is how long before the deadline the reminder
	// fires when a guild has not configured one.
	DefaultReminderOffset = 72 * time.Hour
)

// GuildConfig holds the tunable settings of one guild.
type GuildConfig struct {
	GuildID            tournamenttypes.GuildID            `json:"guild_id"`
	CommandPrefix      string                             `json:"command_prefix"`
	AdminRoleID        string                             `json:"admin_role_id"`
	AnnounceChannelID  string                             `json:"announce_channel_id"`
	ReminderOffset     time.Duration                      `json:"reminder_offset"`
	VerificationPolicy tournamenttypes.VerificationPolicy `json:"verification_policy"`
	UpdatedAt          time.Time                          `json:"updated_at"`
}

// Defaults returns the configuration a guild gets before anyone touches
// /config.
func Defaults(guildID tournamenttypes.GuildID) *GuildConfig {
	return &GuildConfig{
		GuildID:            guildID,
		CommandPrefix:      DefaultCommandPrefix,
		ReminderOffset:     DefaultReminderOffset,
		VerificationPolicy: tournamenttypes.PolicyLenient,
	}
}
