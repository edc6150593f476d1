package guildconfigintegrationtests

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	guildconfigdb "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/integration_tests/testutils"
	"github.com/ligue-mk8/timeattack-bot/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (context.Context, *guildconfigdb.GuildConfigDBImpl) {
	t.Helper()
	testutils.RequireIntegration(t)

	ctx := context.Background()
	env, err := testutils.NewTestEnvironment(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { env.Close(context.Background()) })

	return ctx, &guildconfigdb.GuildConfigDBImpl{DB: env.DB}
}

func TestGuildConfigRepository_UpsertAndPartialUpdate(t *testing.T) {
	ctx, repo := setupRepo(t)
	guildID := tournamenttypes.GuildID(gofakeit.UUID())

	// Unconfigured guild reads as nil.
	cfg, err := repo.GetConfig(ctx, guildID)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	// First write seeds defaults and applies the update.
	cfg, err = repo.UpsertConfig(ctx, guildID, &guildconfigdb.UpdateFields{
		AdminRoleID: ptr.To("role-42"),
	})
	require.NoError(t, err)
	assert.Equal(t, "role-42", cfg.AdminRoleID)
	assert.Equal(t, guildconfigtypes.DefaultCommandPrefix, cfg.CommandPrefix)
	assert.Equal(t, guildconfigtypes.DefaultReminderOffset, cfg.ReminderOffset)

	// A later partial update leaves other fields alone.
	cfg, err = repo.UpsertConfig(ctx, guildID, &guildconfigdb.UpdateFields{
		ReminderOffset:     ptr.To(24 * time.Hour),
		VerificationPolicy: ptr.To(tournamenttypes.PolicyStrict),
	})
	require.NoError(t, err)
	assert.Equal(t, "role-42", cfg.AdminRoleID)
	assert.Equal(t, 24*time.Hour, cfg.ReminderOffset)
	assert.Equal(t, tournamenttypes.PolicyStrict, cfg.VerificationPolicy)

	stored, err := repo.GetConfig(ctx, guildID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, cfg.AdminRoleID, stored.AdminRoleID)
	assert.Equal(t, cfg.ReminderOffset, stored.ReminderOffset)
}
