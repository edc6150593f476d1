package guildconfigservice

import (
	"context"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// RetrieveConfig returns the guild's effective configuration. Guilds that
// never ran /config get the defaults, without a row being created.
func (s *GuildConfigService) RetrieveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RetrieveConfig", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		if guildID == "" {
			return retrieveFailure(guildID, ErrInvalidGuildID), nil
		}

		cfg, err := s.EffectiveConfig(ctx, guildID)
		if err != nil {
			return retrieveFailure(guildID, err), err
		}

		return results.SuccessResult(&guildconfigevents.GuildConfigRetrievedPayload{
			GuildID: guildID,
			Config:  *cfg,
		}), nil
	})
}

// EffectiveConfig reads the stored config and falls back to defaults when
// the guild has none. Other modules call this directly.
func (s *GuildConfigService) EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
	cfg, err := s.repo.GetConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return guildconfigtypes.Defaults(guildID), nil
	}
	return cfg, nil
}

func retrieveFailure(guildID tournamenttypes.GuildID, err error) results.OperationResult {
	return results.FailureResult(&guildconfigevents.GuildConfigRetrievalFailedPayload{
		GuildID: guildID,
		Reason:  err.Error(),
	})
}
