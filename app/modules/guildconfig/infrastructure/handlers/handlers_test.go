package guildconfighandlers

import (
	"context"
	"errors"
	"testing"

	guildconfigevents "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/events"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService stubs the guildconfig service for handler tests.
type fakeService struct {
	RetrieveConfigFunc func(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error)
	UpdateConfigFunc   func(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) (results.OperationResult, error)
}

func (f *fakeService) RetrieveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error) {
	return f.RetrieveConfigFunc(ctx, guildID)
}

func (f *fakeService) UpdateConfig(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) (results.OperationResult, error) {
	return f.UpdateConfigFunc(ctx, payload)
}

func (f *fakeService) EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
	return guildconfigtypes.Defaults(guildID), nil
}

func TestHandleRetrieveConfig(t *testing.T) {
	t.Run("success maps to retrieved topic", func(t *testing.T) {
		svc := &fakeService{
			RetrieveConfigFunc: func(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error) {
				return results.SuccessResult(&guildconfigevents.GuildConfigRetrievedPayload{
					GuildID: guildID,
					Config:  *guildconfigtypes.Defaults(guildID),
				}), nil
			},
		}
		h := NewGuildConfigHandlers(svc)

		out, err := h.HandleRetrieveConfig(context.Background(), &guildconfigevents.GuildConfigRetrievalRequestedPayload{GuildID: "guild-1"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, guildconfigevents.GuildConfigRetrievedV1, out[0].Topic)
	})

	t.Run("failure maps to failed topic", func(t *testing.T) {
		svc := &fakeService{
			RetrieveConfigFunc: func(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error) {
				return results.FailureResult(&guildconfigevents.GuildConfigRetrievalFailedPayload{
					GuildID: guildID,
					Reason:  "invalid guild id",
				}), nil
			},
		}
		h := NewGuildConfigHandlers(svc)

		out, err := h.HandleRetrieveConfig(context.Background(), &guildconfigevents.GuildConfigRetrievalRequestedPayload{})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, guildconfigevents.GuildConfigRetrievalFailedV1, out[0].Topic)
	})

	t.Run("service error propagates for retry", func(t *testing.T) {
		svc := &fakeService{
			RetrieveConfigFunc: func(ctx context.Context, guildID tournamenttypes.GuildID) (results.OperationResult, error) {
				return results.OperationResult{}, errors.New("db down")
			},
		}
		h := NewGuildConfigHandlers(svc)

		out, err := h.HandleRetrieveConfig(context.Background(), &guildconfigevents.GuildConfigRetrievalRequestedPayload{GuildID: "guild-1"})
		require.Error(t, err)
		assert.Nil(t, out)
	})

	t.Run("nil payload", func(t *testing.T) {
		h := NewGuildConfigHandlers(&fakeService{})
		_, err := h.HandleRetrieveConfig(context.Background(), nil)
		require.Error(t, err)
	})
}

func TestHandleUpdateConfig(t *testing.T) {
	t.Run("success maps to updated topic", func(t *testing.T) {
		svc := &fakeService{
			UpdateConfigFunc: func(ctx context.Context, payload *guildconfigevents.GuildConfigUpdateRequestedPayload) (results.OperationResult, error) {
				return results.SuccessResult(&guildconfigevents.GuildConfigUpdatedPayload{
					GuildID: payload.GuildID,
					Config:  *guildconfigtypes.Defaults(payload.GuildID),
				}), nil
			},
		}
		h := NewGuildConfigHandlers(svc)

		out, err := h.HandleUpdateConfig(context.Background(), &guildconfigevents.GuildConfigUpdateRequestedPayload{GuildID: "guild-1"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, guildconfigevents.GuildConfigUpdatedV1, out[0].Topic)
	})

	t.Run("nil payload", func(t *testing.T) {
		h := NewGuildConfigHandlers(&fakeService{})
		_, err := h.HandleUpdateConfig(context.Background(), nil)
		require.Error(t, err)
	})
}
