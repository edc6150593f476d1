package tournamentdb

import (
	"time"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/uptrace/bun"
)

// Tournament is the bun model of a tournament row. The partial unique index
// on (guild_id) WHERE state = 'ACTIVE' enforces one active tournament per
// guild at the storage layer.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID          tournamenttypes.TournamentID `bun:"id,pk,type:uuid"`
	GuildID     tournamenttypes.GuildID      `bun:"guild_id,notnull,type:varchar(20)"`
	CourseID    int                          `bun:"course_id,notnull"`
	CourseName  string                       `bun:"course_name,notnull"`
	SpeedClass  string                       `bun:"speed_class,notnull,type:varchar(10)"`
	State       string                       `bun:"state,notnull,type:varchar(10)"`
	CloseReason string                       `bun:"close_reason,nullzero,type:varchar(10)"`
	MessageID   string                       `bun:"message_id,nullzero,type:varchar(20)"`
	ThreadID    string                       `bun:"thread_id,nullzero,type:varchar(20)"`
	StartedAt   time.Time                    `bun:"started_at,notnull"`
	Deadline    time.Time                    `bun:"deadline,notnull"`
	CreatedBy   tournamenttypes.UserID       `bun:"created_by,notnull,type:varchar(20)"`
	CreatedAt   time.Time                    `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time                    `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Registration is the bun model of a participant row.
type Registration struct {
	bun.BaseModel `bun:"table:tournament_registrations,alias:tr"`

	ID           int64                        `bun:"id,pk,autoincrement"`
	TournamentID tournamenttypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	UserID       tournamenttypes.UserID       `bun:"user_id,notnull,type:varchar(20)"`
	JoinedAt     time.Time                    `bun:"joined_at,notnull"`
}

// Submission is the bun model of one timed attempt.
type Submission struct {
	bun.BaseModel `bun:"table:tournament_submissions,alias:ts"`

	ID           int64                        `bun:"id,pk,autoincrement"`
	TournamentID tournamenttypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	UserID       tournamenttypes.UserID       `bun:"user_id,notnull,type:varchar(20)"`
	AttemptIndex int                          `bun:"attempt_index,notnull"`
	TimeMs       int64                        `bun:"time_ms,notnull"`
	ProofURL     string                       `bun:"proof_url,nullzero"`
	Status       string                       `bun:"status,notnull,type:varchar(10)"`
	SubmittedAt  time.Time                    `bun:"submitted_at,notnull"`
}

func tournamentToDomain(t *Tournament) *tournamenttypes.Tournament {
	if t == nil {
		return nil
	}
	return &tournamenttypes.Tournament{
		ID:          t.ID,
		GuildID:     t.GuildID,
		CourseID:    t.CourseID,
		CourseName:  t.CourseName,
		SpeedClass:  tournamenttypes.SpeedClass(t.SpeedClass),
		State:       tournamenttypes.TournamentState(t.State),
		CloseReason: tournamenttypes.CloseReason(t.CloseReason),
		MessageID:   tournamenttypes.MessageID(t.MessageID),
		ThreadID:    tournamenttypes.ThreadID(t.ThreadID),
		StartedAt:   t.StartedAt,
		Deadline:    t.Deadline,
		CreatedBy:   t.CreatedBy,
	}
}

func tournamentToModel(t *tournamenttypes.Tournament) *Tournament {
	if t == nil {
		return nil
	}
	return &Tournament{
		ID:          t.ID,
		GuildID:     t.GuildID,
		CourseID:    t.CourseID,
		CourseName:  t.CourseName,
		SpeedClass:  string(t.SpeedClass),
		State:       string(t.State),
		CloseReason: string(t.CloseReason),
		MessageID:   string(t.MessageID),
		ThreadID:    string(t.ThreadID),
		StartedAt:   t.StartedAt,
		Deadline:    t.Deadline,
		CreatedBy:   t.CreatedBy,
	}
}

func submissionToDomain(s *Submission) tournamenttypes.Submission {
	return tournamenttypes.Submission{
		ID:           s.ID,
		TournamentID: s.TournamentID,
		UserID:       s.UserID,
		AttemptIndex: s.AttemptIndex,
		Time:         tournamenttypes.RaceTime(s.TimeMs),
		ProofURL:     s.ProofURL,
		Status:       tournamenttypes.VerificationStatus(s.Status),
		SubmittedAt:  s.SubmittedAt,
	}
}

func submissionsToDomain(models []Submission) []tournamenttypes.Submission {
	out := make([]tournamenttypes.Submission, len(models))
	for i := range models {
		out[i] = submissionToDomain(&models[i])
	}
	return out
}
