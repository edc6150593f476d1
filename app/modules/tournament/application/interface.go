package tournamentservice

import (
	"context"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

// Service exposes the tournament engine operations. Command operations go
// through the guild's active tournament; read operations fall back to the
// most recent closed one where noted.
type Service interface {
	CreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) (results.OperationResult, error)
	LinkThread(ctx context.Context, payload *tournamentevents.TournamentThreadLinkRequestedPayload) (results.OperationResult, error)
	JoinTournament(ctx context.Context, payload *tournamentevents.ParticipantJoinRequestedPayload) (results.OperationResult, error)
	SubmitScore(ctx context.Context, payload *tournamentevents.ScoreSubmitRequestedPayload) (results.OperationResult, error)
	VerifyScore(ctx context.Context, payload *tournamentevents.ScoreVerifyRequestedPayload) (results.OperationResult, error)
	CancelTournament(ctx context.Context, payload *tournamentevents.TournamentCancelRequestedPayload) (results.OperationResult, error)
	GetLeaderboard(ctx context.Context, payload *tournamentevents.LeaderboardRequestedPayload) (results.OperationResult, error)
	GetUserScores(ctx context.Context, payload *tournamentevents.UserScoresRequestedPayload) (results.OperationResult, error)
	GetHistory(ctx context.Context, payload *tournamentevents.HistoryRequestedPayload) (results.OperationResult, error)
	ListActive(ctx context.Context, payload *tournamentevents.ActiveListRequestedPayload) (results.OperationResult, error)
	AutocompleteCourse(ctx context.Context, payload *tournamentevents.CourseAutocompleteRequestedPayload) (results.OperationResult, error)
	ExportStandings(ctx context.Context, payload *tournamentevents.StandingsExportRequestedPayload) (results.OperationResult, error)

	// CloseTournament finalizes a tournament when its deadline passes.
	// Safe to call more than once; only the first call closes. The queue
	// worker and startup reconciliation both use it.
	CloseTournament(ctx context.Context, tournamentID tournamenttypes.TournamentID) error

	// RemindTournament publishes the deadline reminder when the
	// tournament is still active.
	RemindTournament(ctx context.Context, tournamentID tournamenttypes.TournamentID) error
}
