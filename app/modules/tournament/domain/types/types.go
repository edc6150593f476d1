package tournamenttypes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TournamentID identifies a tournament. UUIDs are generated by the service at
// creation time so IDs are known before the row is inserted.
type TournamentID = uuid.UUID

// GuildID is the Discord server a tournament belongs to.
type GuildID string

// UserID is a Discord user id.
type UserID string

// ThreadID is the Discord thread dedicated to a tournament. Opaque to the
// engine; set once when the gateway reports the created thread back.
type ThreadID string

// MessageID is the pinned announcement message for a tournament.
type MessageID string

// SpeedClass is the race difficulty tier a tournament is locked to.
type SpeedClass string

const (
	SpeedClass50cc   SpeedClass = "50cc"
	SpeedClass100cc  SpeedClass = "100cc"
	SpeedClass150cc  SpeedClass = "150cc"
	SpeedClass200cc  SpeedClass = "200cc"
	SpeedClassMirror SpeedClass = "mirror"
	SpeedClassAny    SpeedClass = "any"
)

// SpeedClasses lists every selectable class, in menu order.
var SpeedClasses = []SpeedClass{
	SpeedClass50cc,
	SpeedClass100cc,
	SpeedClass150cc,
	SpeedClass200cc,
	SpeedClassMirror,
}

// Valid reports whether c is a known speed class (including "any").
func (c SpeedClass) Valid() bool {
	switch c {
	case SpeedClass50cc, SpeedClass100cc, SpeedClass150cc, SpeedClass200cc, SpeedClassMirror, SpeedClassAny:
		return true
	}
	return false
}

// TournamentState is the lifecycle state of a tournament. Transitions are
// strictly forward: draft -> active -> closed -> archived.
type TournamentState string

const (
	TournamentStateDraft    TournamentState = "DRAFT"
	TournamentStateActive   TournamentState = "ACTIVE"
	TournamentStateClosed   TournamentState = "CLOSED"
	TournamentStateArchived TournamentState = "ARCHIVED"
)

// CloseReason records why a tournament left the active state.
type CloseReason string

const (
	CloseReasonCompleted CloseReason = "COMPLETED"
	CloseReasonCancelled CloseReason = "CANCELLED"
)

// VerificationStatus is the admin decision state of a submission.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Decided reports whether an admin has already ruled on the submission.
func (s VerificationStatus) Decided() bool {
	return s == VerificationVerified || s == VerificationRejected
}

// VerificationPolicy controls whether pending submissions count toward the
// final announced leaderboard.
type VerificationPolicy string

const (
	// PolicyLenient includes pending submissions in the final standings,
	// flagged as unverified.
	PolicyLenient VerificationPolicy = "LENIENT"
	// PolicyStrict drops pending submissions from the final standings.
	PolicyStrict VerificationPolicy = "STRICT"
)

// RaceTime is a lap/run time in milliseconds. Sub-second precision matters:
// time-attack gaps are routinely under a tenth of a second.
type RaceTime int64

// RaceTimeFromDuration truncates d to millisecond precision.
func RaceTimeFromDuration(d time.Duration) RaceTime {
	return RaceTime(d.Milliseconds())
}

// Duration converts the race time back to a time.Duration.
func (t RaceTime) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

// Valid reports whether the time is a strictly positive duration.
func (t RaceTime) Valid() bool { return t > 0 }

// String formats the time as m:ss.mmm, the notation players submit in.
func (t RaceTime) String() string {
	ms := int64(t)
	neg := ""
	if ms < 0 {
		neg = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%d:%02d.%03d", neg, ms/60000, (ms%60000)/1000, ms%1000)
}

// Course is a catalog entry a tournament races on.
type Course struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Cup     string       `json:"cup"`
	Origin  string       `json:"origin"`
	Classes []SpeedClass `json:"classes"`
}

// Tournament is the aggregate root. It owns its registrations and
// submissions; the deadline is immutable once computed.
type Tournament struct {
	ID          TournamentID    `json:"id"`
	GuildID     GuildID         `json:"guild_id"`
	CourseID    int             `json:"course_id"`
	CourseName  string          `json:"course_name"`
	SpeedClass  SpeedClass      `json:"speed_class"`
	State       TournamentState `json:"state"`
	CloseReason CloseReason     `json:"close_reason,omitempty"`
	MessageID   MessageID       `json:"message_id,omitempty"`
	ThreadID    ThreadID        `json:"thread_id,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	Deadline    time.Time       `json:"deadline"`
	CreatedBy   UserID          `json:"created_by"`
}

// Registration records that a user joined a tournament. Immutable, never
// deleted; uniqueness per (tournament, user) is enforced by the store.
type Registration struct {
	ID           int64        `json:"id"`
	TournamentID TournamentID `json:"tournament_id"`
	UserID       UserID       `json:"user_id"`
	JoinedAt     time.Time    `json:"joined_at"`
}

// Submission is one timed attempt. Users may submit any number of attempts;
// AttemptIndex is the per-user ordinal starting at 1. A submission is never
// edited after creation; corrections are new submissions.
type Submission struct {
	ID           int64              `json:"id"`
	TournamentID TournamentID       `json:"tournament_id"`
	UserID       UserID             `json:"user_id"`
	AttemptIndex int                `json:"attempt_index"`
	Time         RaceTime           `json:"time"`
	ProofURL     string             `json:"proof_url,omitempty"`
	Status       VerificationStatus `json:"status"`
	SubmittedAt  time.Time          `json:"submitted_at"`
}

// LeaderboardEntry is one row of the derived standings: a user's best
// non-rejected time and how many attempts they have on the board.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       UserID    `json:"user_id"`
	BestTime     RaceTime  `json:"best_time"`
	AttemptCount int       `json:"attempt_count"`
	Verified     bool      `json:"verified"`
	AchievedAt   time.Time `json:"achieved_at"`
}
