// Package tournamenthandlers translates tournament events into service
// calls.
package tournamenthandlers

import (
	tournamentservice "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/application"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// TournamentHandlers implements the Handlers interface for tournament
// events.
type TournamentHandlers struct {
	service tournamentservice.Service
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(service tournamentservice.Service) *TournamentHandlers {
	return &TournamentHandlers{service: service}
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
