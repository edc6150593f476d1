package guildconfigservice

import (
	"context"
	"time"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	guildconfigdb "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

// FakeConfigRepository provides a programmable stub for the
// guildconfigdb.Repository interface.
type FakeConfigRepository struct {
	trace []string

	GetConfigFunc    func(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error)
	UpsertConfigFunc func(ctx context.Context, guildID tournamenttypes.GuildID, updates *guildconfigdb.UpdateFields) (*guildconfigtypes.GuildConfig, error)
}

func NewFakeConfigRepository() *FakeConfigRepository {
	return &FakeConfigRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeConfigRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeConfigRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeConfigRepository) GetConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
	f.record("GetConfig")
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *FakeConfigRepository) UpsertConfig(ctx context.Context, guildID tournamenttypes.GuildID, updates *guildconfigdb.UpdateFields) (*guildconfigtypes.GuildConfig, error) {
	f.record("UpsertConfig")
	if f.UpsertConfigFunc != nil {
		return f.UpsertConfigFunc(ctx, guildID, updates)
	}
	cfg := guildconfigtypes.Defaults(guildID)
	applyUpdates(cfg, updates)
	return cfg, nil
}

// applyUpdates mirrors what the real repository does so tests can assert on
// the returned config.
func applyUpdates(cfg *guildconfigtypes.GuildConfig, updates *guildconfigdb.UpdateFields) {
	if updates == nil {
		return
	}
	if updates.CommandPrefix != nil {
		cfg.CommandPrefix = *updates.CommandPrefix
	}
	if updates.AdminRoleID != nil {
		cfg.AdminRoleID = *updates.AdminRoleID
	}
	if updates.AnnounceChannelID != nil {
		cfg.AnnounceChannelID = *updates.AnnounceChannelID
	}
	if updates.ReminderOffset != nil {
		cfg.ReminderOffset = *updates.ReminderOffset
	}
	if updates.VerificationPolicy != nil {
		cfg.VerificationPolicy = *updates.VerificationPolicy
	}
	cfg.UpdatedAt = time.Unix(0, 0)
}
