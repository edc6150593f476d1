package guildconfigdb

import (
	"time"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/uptrace/bun"
)

// GuildConfig is the bun model of a guild's settings row.
type GuildConfig struct {
	bun.BaseModel `bun:"table:guild_configs,alias:gc"`

	GuildID            tournamenttypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	CommandPrefix      string                  `bun:"command_prefix,notnull,default:'!mk',type:varchar(10)"`
	AdminRoleID        string                  `bun:"admin_role_id,nullzero,type:varchar(20)"`
	AnnounceChannelID  string                  `bun:"announce_channel_id,nullzero,type:varchar(20)"`
	ReminderOffsetSecs int64                   `bun:"reminder_offset_secs,notnull,default:259200"`
	VerificationPolicy string                  `bun:"verification_policy,notnull,default:'LENIENT',type:varchar(10)"`
	CreatedAt          time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt          time.Time               `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toDomain(cfg *GuildConfig) *guildconfigtypes.GuildConfig {
	if cfg == nil {
		return nil
	}
	return &guildconfigtypes.GuildConfig{
		GuildID:            cfg.GuildID,
		CommandPrefix:      cfg.CommandPrefix,
		AdminRoleID:        cfg.AdminRoleID,
		AnnounceChannelID:  cfg.AnnounceChannelID,
		ReminderOffset:     time.Duration(cfg.ReminderOffsetSecs) * time.Second,
		VerificationPolicy: tournamenttypes.VerificationPolicy(cfg.VerificationPolicy),
		UpdatedAt:          cfg.UpdatedAt,
	}
}
