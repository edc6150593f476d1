package guildconfigdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/uptrace/bun"
)

// GuildConfigDBImpl implements Repository on bun.
type GuildConfigDBImpl struct {
	DB *bun.DB
}

func (db *GuildConfigDBImpl) GetConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
	var cfg GuildConfig
	err := db.DB.NewSelect().Model(&cfg).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&cfg), nil
}

// UpsertConfig seeds a defaults row for unseen guilds and applies the
// partial update on top, all in one transaction so concurrent /config calls
// cannot lose fields.
func (db *GuildConfigDBImpl) UpsertConfig(ctx context.Context, guildID tournamenttypes.GuildID, updates *UpdateFields) (*guildconfigtypes.GuildConfig, error) {
	var out *guildconfigtypes.GuildConfig

	err := db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		defaults := guildconfigtypes.Defaults(guildID)
		seed := &GuildConfig{
			GuildID:            guildID,
			CommandPrefix:      defaults.CommandPrefix,
			ReminderOffsetSecs: int64(defaults.ReminderOffset.Seconds()),
			VerificationPolicy: string(defaults.VerificationPolicy),
		}
		if _, err := tx.NewInsert().Model(seed).
			On("CONFLICT (guild_id) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("seed guild config: %w", err)
		}

		if !updates.Empty() {
			q := tx.NewUpdate().Model((*GuildConfig)(nil)).
				Where("guild_id = ?", guildID).
				Set("updated_at = current_timestamp")
			if updates.CommandPrefix != nil {
				q = q.Set("command_prefix = ?", *updates.CommandPrefix)
			}
			if updates.AdminRoleID != nil {
				q = q.Set("admin_role_id = ?", *updates.AdminRoleID)
			}
			if updates.AnnounceChannelID != nil {
				q = q.Set("announce_channel_id = ?", *updates.AnnounceChannelID)
			}
			if updates.ReminderOffset != nil {
				q = q.Set("reminder_offset_secs = ?", int64(updates.ReminderOffset.Seconds()))
			}
			if updates.VerificationPolicy != nil {
				q = q.Set("verification_policy = ?", string(*updates.VerificationPolicy))
			}
			res, err := q.Exec(ctx)
			if err != nil {
				return fmt.Errorf("update guild config: %w", err)
			}
			if rows, err := res.RowsAffected(); err == nil && rows == 0 {
				return ErrNoRowsAffected
			}
		}

		var cfg GuildConfig
		if err := tx.NewSelect().Model(&cfg).Where("guild_id = ?", guildID).Scan(ctx); err != nil {
			return fmt.Errorf("reload guild config: %w", err)
		}
		out = toDomain(&cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
