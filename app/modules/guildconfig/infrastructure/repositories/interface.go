package guildconfigdb

import (
	"context"
	"errors"
	"time"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

// ErrNoRowsAffected indicates an update matched no row.
var ErrNoRowsAffected = errors.New("no rows affected")

// UpdateFields carries a partial config update. Nil fields are not written.
type UpdateFields struct {
	CommandPrefix      *string
	AdminRoleID        *string
	AnnounceChannelID  *string
	ReminderOffset     *time.Duration
	VerificationPolicy *tournamenttypes.VerificationPolicy
}

// Empty reports whether the update carries no fields at all.
func (u *UpdateFields) Empty() bool {
	return u.CommandPrefix == nil &&
		u.AdminRoleID == nil &&
		u.AnnounceChannelID == nil &&
		u.ReminderOffset == nil &&
		u.VerificationPolicy == nil
}

// Repository is the persistence port of the guildconfig module.
type Repository interface {
	// GetConfig returns the stored config, or nil without error when the
	// guild never configured anything.
	GetConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error)

	// UpsertConfig applies a partial update, inserting a row seeded with
	// defaults when the guild has none yet. Returns the resulting config.
	UpsertConfig(ctx context.Context, guildID tournamenttypes.GuildID, updates *UpdateFields) (*guildconfigtypes.GuildConfig, error)
}
