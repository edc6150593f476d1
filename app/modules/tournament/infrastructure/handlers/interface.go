package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/internal/eventutil"
)

// Handlers is the set of tournament event handlers.
type Handlers interface {
	HandleCreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) ([]eventutil.Result, error)
	HandleLinkThread(ctx context.Context, payload *tournamentevents.TournamentThreadLinkRequestedPayload) ([]eventutil.Result, error)
	HandleJoinTournament(ctx context.Context, payload *tournamentevents.ParticipantJoinRequestedPayload) ([]eventutil.Result, error)
	HandleSubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayload) ([]eventutil.Result, error)
	HandleVerifyScore(ctx context.Context, payload *tournamentevents.ScoreVerifyRequestedPayload) ([]eventutil.Result, error)
	HandleCancelTournament(ctx context.Context, payload *tournamentevents.TournamentCancelRequestedPayload) ([]eventutil.Result, error)
	HandleGetLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) ([]eventutil.Result, error)
	HandleGetUserScores(ctx context.Context, payload *tournamentevents.UserScoresRequestedPayload) ([]eventutil.Result, error)
	HandleGetHistory(ctx context.Context, payload *tournamentevents.HistoryRequestedPayload) ([]eventutil.Result, error)
	HandleListActive(ctx context.Context, payload *tournamentevents.ActiveListRequestedPayload) ([]eventutil.Result, error)
	HandleCourseAutocomplete(ctx context.Context, payload *tournamentevents.CourseAutocompleteRequestedPayload) ([]eventutil.Result, error)
	HandleExportStandings(ctx context.Context, payload *tournamentevents.StandingsExportRequestedPayload) ([]eventutil.Result, error)
}
