package tournamentdb

import (
	"context"
	"errors"
	"time"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrActiveTournamentExists indicates the guild already has an active
	// tournament. CreateTournament maps the unique index violation to this.
	ErrActiveTournamentExists = errors.New("guild already has an active tournament")

	// ErrNoRowsAffected indicates a conditional update matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// Repository defines the contract for tournament persistence.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrActiveTournamentExists: one-active-per-guild violated on create
//   - ErrNoRowsAffected: conditional UPDATE/DELETE matched no rows
//   - other errors: infrastructure failures
type Repository interface {
	CreateTournament(ctx context.Context, tournament *tournamenttypes.Tournament) error
	GetTournament(ctx context.Context, id tournamenttypes.TournamentID) (*tournamenttypes.Tournament, error)

	// GetActiveTournament returns nil without error when the guild has no
	// active tournament.
	GetActiveTournament(ctx context.Context, guildID tournamenttypes.GuildID) (*tournamenttypes.Tournament, error)

	// ListActiveTournaments returns every active tournament across guilds.
	// The scheduler uses it to rebuild deadline jobs after a restart.
	ListActiveTournaments(ctx context.Context) ([]*tournamenttypes.Tournament, error)

	// CloseTournamentIfActive flips an active tournament to closed and
	// records the reason. Returns ErrNoRowsAffected when the tournament is
	// not active, which makes duplicate close deliveries harmless.
	CloseTournamentIfActive(ctx context.Context, id tournamenttypes.TournamentID, reason tournamenttypes.CloseReason, closedAt time.Time) (*tournamenttypes.Tournament, error)

	// MarkArchived moves a closed tournament to the archived state.
	MarkArchived(ctx context.Context, id tournamenttypes.TournamentID) error

	// SetThread records the announcement message and thread ids.
	SetThread(ctx context.Context, id tournamenttypes.TournamentID, messageID tournamenttypes.MessageID, threadID tournamenttypes.ThreadID) error

	// ListHistory returns closed and archived tournaments, most recent
	// first.
	ListHistory(ctx context.Context, guildID tournamenttypes.GuildID, limit int) ([]*tournamenttypes.Tournament, error)

	// UpsertRegistration joins a user to a tournament. Reports whether the
	// user was already registered.
	UpsertRegistration(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, joinedAt time.Time) (alreadyRegistered bool, err error)

	CountRegistrations(ctx context.Context, tournamentID tournamenttypes.TournamentID) (int, error)
	ListParticipants(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.UserID, error)

	// InsertSubmission stores an attempt, assigning the per-user attempt
	// index. The returned submission carries the generated id and index.
	InsertSubmission(ctx context.Context, sub *tournamenttypes.Submission) (*tournamenttypes.Submission, error)

	ListSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.Submission, error)
	ListUserSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) ([]tournamenttypes.Submission, error)

	// GetSubmission returns one attempt by tournament, user, and attempt
	// index.
	GetSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, attemptIndex int) (*tournamenttypes.Submission, error)

	// GetBestSubmission returns the user's best non-rejected attempt, or
	// ErrNotFound when they have none.
	GetBestSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) (*tournamenttypes.Submission, error)

	// DecideSubmission rules on a pending attempt. Returns
	// ErrNoRowsAffected when the attempt was already decided, so a ruling
	// cannot be overwritten.
	DecideSubmission(ctx context.Context, submissionID int64, status tournamenttypes.VerificationStatus) (*tournamenttypes.Submission, error)

	// DeleteSubmission removes an attempt entirely.
	DeleteSubmission(ctx context.Context, submissionID int64) error
}
