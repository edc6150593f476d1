package guildconfigservice

import (
	"context"
	"strings"
	"testing"
	"time"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/ptr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigService_UpdateConfig(t *testing.T) {
	serverAdmin := tournamentevents.ActorContext{UserID: "admin-1", IsServerAdmin: true}
	roleHolder := tournamentevents.ActorContext{UserID: "user-1", RoleIDs: []string{"mods"}}
	nobody := tournamentevents.ActorContext{UserID: "user-2"}

	withAdminRole := func(f *FakeConfigRepository) {
		f.GetConfigFunc = func(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
			cfg := guildconfigtypes.Defaults(guildID)
			cfg.AdminRoleID = "mods"
			return cfg, nil
		}
	}

	tests := []struct {
		name      string
		repoSetup func(*FakeConfigRepository)
		payload   *guildconfigevents.GuildConfigUpdateRequestedPayload
		wantFail  string
		check     func(t *testing.T, cfg guildconfigtypes.GuildConfig)
	}{
		{
			name: "server admin sets prefix",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:       "guild-1",
				Actor:         serverAdmin,
				CommandPrefix: ptr.To("?mk"),
			},
			check: func(t *testing.T, cfg guildconfigtypes.GuildConfig) {
				assert.Equal(t, "?mk", cfg.CommandPrefix)
			},
		},
		{
			name:      "admin role holder may configure",
			repoSetup: withAdminRole,
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:             "guild-1",
				Actor:               roleHolder,
				ReminderOffsetHours: ptr.To(24),
			},
			check: func(t *testing.T, cfg guildconfigtypes.GuildConfig) {
				assert.Equal(t, 24*time.Hour, cfg.ReminderOffset)
			},
		},
		{
			name:      "actor without role is rejected",
			repoSetup: withAdminRole,
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:       "guild-1",
				Actor:         nobody,
				CommandPrefix: ptr.To("?mk"),
			},
			wantFail: ErrNotAuthorized.Error(),
		},
		{
			name: "no admin role configured locks out non-admins",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:       "guild-1",
				Actor:         roleHolder,
				CommandPrefix: ptr.To("?mk"),
			},
			wantFail: ErrNotAuthorized.Error(),
		},
		{
			name: "prefix over limit",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:       "guild-1",
				Actor:         serverAdmin,
				CommandPrefix: ptr.To(strings.Repeat("!", guildconfigtypes.MaxCommandPrefixLength+1)),
			},
			wantFail: ErrPrefixTooLong.Error(),
		},
		{
			name: "empty prefix",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:       "guild-1",
				Actor:         serverAdmin,
				CommandPrefix: ptr.To(""),
			},
			wantFail: ErrEmptyPrefix.Error(),
		},
		{
			name: "unknown verification policy",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:            "guild-1",
				Actor:              serverAdmin,
				VerificationPolicy: ptr.To(tournamenttypes.VerificationPolicy("MAYBE")),
			},
			wantFail: ErrInvalidPolicy.Error(),
		},
		{
			name: "non-positive reminder offset",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:             "guild-1",
				Actor:               serverAdmin,
				ReminderOffsetHours: ptr.To(0),
			},
			wantFail: ErrInvalidReminderOffset.Error(),
		},
		{
			name: "update with no fields",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID: "guild-1",
				Actor:   serverAdmin,
			},
			wantFail: ErrNoFields.Error(),
		},
		{
			name: "missing guild id",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				Actor:         serverAdmin,
				CommandPrefix: ptr.To("?mk"),
			},
			wantFail: ErrInvalidGuildID.Error(),
		},
		{
			name: "strict policy accepted",
			payload: &guildconfigevents.GuildConfigUpdateRequestedPayload{
				GuildID:            "guild-1",
				Actor:              serverAdmin,
				VerificationPolicy: ptr.To(tournamenttypes.PolicyStrict),
			},
			check: func(t *testing.T, cfg guildconfigtypes.GuildConfig) {
				assert.Equal(t, tournamenttypes.PolicyStrict, cfg.VerificationPolicy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeConfigRepository()
			if tt.repoSetup != nil {
				tt.repoSetup(repo)
			}
			svc := newTestService(repo)

			result, err := svc.UpdateConfig(context.Background(), tt.payload)
			require.NoError(t, err)

			if tt.wantFail != "" {
				failure, ok := result.Failure.(*guildconfigevents.GuildConfigUpdateFailedPayload)
				require.True(t, ok, "expected update failure payload, got %T", result.Failure)
				assert.Equal(t, tt.wantFail, failure.Reason)
				return
			}

			success, ok := result.Success.(*guildconfigevents.GuildConfigUpdatedPayload)
			require.True(t, ok, "expected updated payload, got %T", result.Success)
			if tt.check != nil {
				tt.check(t, success.Config)
			}
		})
	}
}
