// Package guildconfighandlers translates guildconfig events into service
// calls.
package guildconfighandlers

import (
	guildconfigservice "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/application"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// GuildConfigHandlers implements the Handlers interface for guildconfig
// events.
type GuildConfigHandlers struct {
	service guildconfigservice.Service
}

// NewGuildConfigHandlers creates a new GuildConfigHandlers instance.
func NewGuildConfigHandlers(service guildconfigservice.Service) *GuildConfigHandlers {
	return &GuildConfigHandlers{service: service}
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(result results.OperationResult, successTopic, failureTopic string) []eventutil.Result {
	var out []eventutil.Result
	if result.Success != nil {
		out = append(out, eventutil.Result{Topic: successTopic, Payload: result.Success})
	}
	if result.Failure != nil {
		out = append(out, eventutil.Result{Topic: failureTopic, Payload: result.Failure})
	}
	return out
}
