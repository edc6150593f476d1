// Package tournamentrouter wires tournament handlers into the watermill
// router.
package tournamentrouter

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	tournamentservice "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/application"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenthandlers "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/handlers"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// TournamentRouter registers the tournament handlers.
type TournamentRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
	}
}

// Configure registers the module's handlers on the shared router.
func (r *TournamentRouter) Configure(ctx context.Context, service tournamentservice.Service) error {
	handlers := tournamenthandlers.NewTournamentHandlers(service)

	registerHandler(r, tournamentevents.TournamentCreateRequestedV1, handlers.HandleCreateTournament)
	registerHandler(r, tournamentevents.TournamentThreadLinkRequestedV1, handlers.HandleLinkThread)
	registerHandler(r, tournamentevents.ParticipantJoinRequestedV1, handlers.HandleJoinTournament)
	registerHandler(r, tournamentevents.ScoreSubmitRequestedV1, handlers.HandleSubmitScore)
	registerHandler(r, tournamentevents.ScoreVerifyRequestedV1, handlers.HandleVerifyScore)
	registerHandler(r, tournamentevents.TournamentCancelRequestedV1, handlers.HandleCancelTournament)
	registerHandler(r, tournamentevents.LeaderboardRequestedV1, handlers.HandleGetLeaderboard)
	registerHandler(r, tournamentevents.UserScoresRequestedV1, handlers.HandleGetUserScores)
	registerHandler(r, tournamentevents.HistoryRequestedV1, handlers.HandleGetHistory)
	registerHandler(r, tournamentevents.ActiveListRequestedV1, handlers.HandleListActive)
	registerHandler(r, tournamentevents.CourseAutocompleteRequestedV1, handlers.HandleCourseAutocomplete)
	registerHandler(r, tournamentevents.StandingsExportRequestedV1, handlers.HandleExportStandings)
	return nil
}

// registerHandler adds a typed handler. The publish topic is empty so the
// publisher routes on each message's own topic metadata.
func registerHandler[T any](
	r *TournamentRouter,
	topic string,
	handler eventutil.HandlerFunc[T],
) {
	handlerName := "tournament." + topic

	r.Router.AddHandler(
		handlerName,
		topic,
		r.subscriber,
		"",
		r.publisher,
		eventutil.Wrap(handlerName, r.logger, handler),
	)
}
