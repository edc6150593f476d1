package guildconfigservice

import (
	"context"
	"slices"
	"time"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	guildconfigdb "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/ptr"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// UpdateConfig applies a partial configuration update after checking the
// actor against the guild's current admin role.
func (s *GuildConfigService) UpdateConfig(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return updateFailure("", ErrInvalidGuildID), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "UpdateConfig", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		if guildID == "" {
			return updateFailure(guildID, ErrInvalidGuildID), nil
		}

		current, err := s.EffectiveConfig(ctx, guildID)
		if err != nil {
			return updateFailure(guildID, err), err
		}
		if !actorMayConfigure(payload.Actor, current) {
			return updateFailure(guildID, ErrNotAuthorized), nil
		}

		updates := &guildconfigdb.UpdateFields{
			CommandPrefix:      payload.CommandPrefix,
			AdminRoleID:        payload.AdminRoleID,
			AnnounceChannelID:  payload.AnnounceChannelID,
			VerificationPolicy: payload.VerificationPolicy,
		}
		if payload.ReminderOffsetHours != nil {
			updates.ReminderOffset = ptr.To(time.Duration(*payload.ReminderOffsetHours) * time.Hour)
		}
		if err := validateUpdates(updates); err != nil {
			return updateFailure(guildID, err), nil
		}

		cfg, err := s.repo.UpsertConfig(ctx, guildID, updates)
		if err != nil {
			return updateFailure(guildID, err), err
		}

		return results.SuccessResult(&guildconfigevents.GuildConfigUpdatedPayload{
			GuildID: guildID,
			Config:  *cfg,
		}), nil
	})
}

// actorMayConfigure allows server administrators always and holders of the
// configured admin role when one is set.
func actorMayConfigure(actor tournamentevents.ActorContext, cfg *guildconfigtypes.GuildConfig) bool {
	if actor.IsServerAdmin {
		return true
	}
	if cfg.AdminRoleID == "" {
		return false
	}
	return slices.Contains(actor.RoleIDs, cfg.AdminRoleID)
}

func validateUpdates(updates *guildconfigdb.UpdateFields) error {
	if updates.Empty() {
		return ErrNoFields
	}
	if updates.CommandPrefix != nil {
		if *updates.CommandPrefix == "" {
			return ErrEmptyPrefix
		}
		if len(*updates.CommandPrefix) > guildconfigtypes.MaxCommandPrefixLength {
			return ErrPrefixTooLong
		}
	}
	if updates.ReminderOffset != nil && *updates.ReminderOffset <= 0 {
		return ErrInvalidReminderOffset
	}
	if updates.VerificationPolicy != nil {
		switch *updates.VerificationPolicy {
		case tournamenttypes.PolicyLenient, tournamenttypes.PolicyStrict:
		default:
			return ErrInvalidPolicy
		}
	}
	return nil
}

func updateFailure(guildID tournamenttypes.GuildID, err error) results.OperationResult {
	return results.FailureResult(&guildconfigevents.GuildConfigUpdateFailedPayload{
		GuildID: guildID,
		Reason:  err.Error(),
	})
}
