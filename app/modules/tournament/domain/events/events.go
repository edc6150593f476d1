// Package tournamentevents defines the subjects and payloads exchanged with
// the Discord gateway. Requested topics are consumed by this service;
// the rest are published for the gateway to render.
package tournamentevents

import (
	"time"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

const (
	TournamentStreamName = "tournament"

	TournamentCreateRequestedV1 = "tournament.create.requested.v1"
	TournamentCreatedV1         = "tournament.created.v1"
	TournamentCreationFailedV1  = "tournament.creation.failed.v1"

	TournamentThreadLinkRequestedV1 = "tournament.thread.link.requested.v1"
	TournamentThreadLinkedV1        = "tournament.thread.linked.v1"
	TournamentThreadLinkFailedV1    = "tournament.thread.link.failed.v1"

	ParticipantJoinRequestedV1 = "tournament.participant.join.requested.v1"
	ParticipantJoinedV1        = "tournament.participant.joined.v1"
	ParticipantJoinFailedV1    = "tournament.participant.join.failed.v1"

	ScoreSubmitRequestedV1 = "tournament.score.submit.requested.v1"
	ScoreSubmittedV1       = "tournament.score.submitted.v1"
	ScoreSubmitFailedV1    = "tournament.score.submit.failed.v1"

	ScoreVerifyRequestedV1 = "tournament.score.verify.requested.v1"
	ScoreDecidedV1         = "tournament.score.decided.v1"
	ScoreVerifyFailedV1    = "tournament.score.verify.failed.v1"

	TournamentCancelRequestedV1 = "tournament.cancel.requested.v1"
	TournamentCancelledV1       = "tournament.cancelled.v1"
	TournamentCancelFailedV1    = "tournament.cancel.failed.v1"

	LeaderboardRequestedV1 = "tournament.leaderboard.requested.v1"
	LeaderboardRetrievedV1 = "tournament.leaderboard.retrieved.v1"
	LeaderboardFailedV1    = "tournament.leaderboard.failed.v1"
	LeaderboardUpdatedV1   = "tournament.leaderboard.updated.v1"

	UserScoresRequestedV1 = "tournament.user.scores.requested.v1"
	UserScoresRetrievedV1 = "tournament.user.scores.retrieved.v1"
	UserScoresFailedV1    = "tournament.user.scores.failed.v1"

	HistoryRequestedV1 = "tournament.history.requested.v1"
	HistoryRetrievedV1 = "tournament.history.retrieved.v1"
	HistoryFailedV1    = "tournament.history.failed.v1"

	ActiveListRequestedV1 = "tournament.active.list.requested.v1"
	ActiveListRetrievedV1 = "tournament.active.list.retrieved.v1"

	CourseAutocompleteRequestedV1 = "tournament.course.autocomplete.requested.v1"
	CourseAutocompleteResultV1    = "tournament.course.autocomplete.result.v1"

	StandingsExportRequestedV1 = "tournament.standings.export.requested.v1"
	StandingsExportedV1        = "tournament.standings.exported.v1"
	StandingsExportFailedV1    = "tournament.standings.export.failed.v1"

	// Scheduler-facing announcements.
	TournamentReminderDueV1 = "tournament.reminder.due.v1"
	TournamentClosedV1      = "tournament.closed.v1"
)

// ActorContext identifies who issued a command and what the gateway knows
// about their privileges. IsServerAdmin is asserted by the gateway from
// Discord permissions; the engine additionally honors the configured admin
// role.
type ActorContext struct {
	UserID        tournamenttypes.UserID `json:"user_id"`
	RoleIDs       []string               `json:"role_ids,omitempty"`
	IsServerAdmin bool                   `json:"is_server_admin"`
}

type TournamentCreateRequestedPayload struct {
	GuildID        tournamenttypes.GuildID    `json:"guild_id"`
	Actor          ActorContext               `json:"actor"`
	SpeedClass     tournamenttypes.SpeedClass `json:"speed_class,omitempty"`
	DurationDays   int                        `json:"duration_days,omitempty"`
	DeadlineInput  string                     `json:"deadline_input,omitempty"`
	CourseOverride string                     `json:"course_override,omitempty"`
}

type TournamentCreatedPayload struct {
	Tournament tournamenttypes.Tournament `json:"tournament"`
}

type TournamentFailedPayload struct {
	GuildID      tournamenttypes.GuildID      `json:"guild_id"`
	TournamentID tournamenttypes.TournamentID `json:"tournament_id,omitempty"`
	UserID       tournamenttypes.UserID       `json:"user_id,omitempty"`
	Reason       string                       `json:"reason"`
}

type TournamentThreadLinkRequestedPayload struct {
	TournamentID tournamenttypes.TournamentID `json:"tournament_id"`
	MessageID    tournamenttypes.MessageID    `json:"message_id"`
	ThreadID     tournamenttypes.ThreadID     `json:"thread_id"`
}

type TournamentThreadLinkedPayload struct {
	TournamentID tournamenttypes.TournamentID `json:"tournament_id"`
	ThreadID     tournamenttypes.ThreadID     `json:"thread_id"`
}

type ParticipantJoinRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Actor   ActorContext            `json:"actor"`
}

type ParticipantJoinedPayload struct {
	TournamentID      tournamenttypes.TournamentID `json:"tournament_id"`
	ThreadID          tournamenttypes.ThreadID     `json:"thread_id,omitempty"`
	UserID            tournamenttypes.UserID       `json:"user_id"`
	AlreadyRegistered bool                         `json:"already_registered"`
	ParticipantCount  int                          `json:"participant_count"`
	TimeRemaining     time.Duration                `json:"time_remaining"`
}

type ScoreSubmitRequestedPayload struct {
	GuildID  tournamenttypes.GuildID  `json:"guild_id"`
	Actor    ActorContext             `json:"actor"`
	Time     tournamenttypes.RaceTime `json:"time"`
	ProofURL string                   `json:"proof_url,omitempty"`
}

type ScoreSubmittedPayload struct {
	TournamentID   tournamenttypes.TournamentID `json:"tournament_id"`
	Submission     tournamenttypes.Submission   `json:"submission"`
	NewParticipant bool                         `json:"new_participant"`
	PersonalBest   bool                         `json:"personal_best"`
}

// VerifyAction is the admin ruling requested through /verifier.
type VerifyAction string

const (
	VerifyActionApprove VerifyAction = "approve"
	VerifyActionReject  VerifyAction = "reject"
	VerifyActionDelete  VerifyAction = "delete"
)

type ScoreVerifyRequestedPayload struct {
	GuildID      tournamenttypes.GuildID `json:"guild_id"`
	Actor        ActorContext            `json:"actor"`
	TargetUserID tournamenttypes.UserID  `json:"target_user_id"`
	Action       VerifyAction            `json:"action"`
	// AttemptIndex selects a specific attempt; 0 targets the user's current
	// best non-rejected time, matching the original command's behavior.
	AttemptIndex int `json:"attempt_index,omitempty"`
}

type ScoreDecidedPayload struct {
	TournamentID tournamenttypes.TournamentID `json:"tournament_id"`
	Submission   tournamenttypes.Submission   `json:"submission"`
	Action       VerifyAction                 `json:"action"`
	DecidedBy    tournamenttypes.UserID       `json:"decided_by"`
}

type TournamentCancelRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Actor   ActorContext            `json:"actor"`
}

type TournamentCancelledPayload struct {
	Tournament  tournamenttypes.Tournament `json:"tournament"`
	CancelledBy tournamenttypes.UserID     `json:"cancelled_by"`
}

type LeaderboardRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Actor   ActorContext            `json:"actor"`
}

type LeaderboardRetrievedPayload struct {
	Tournament tournamenttypes.Tournament         `json:"tournament"`
	Entries    []tournamenttypes.LeaderboardEntry `json:"entries"`
	Live       bool                               `json:"live"`
}

// LeaderboardUpdatedPayload is the throttled refresh pushed after score and
// verification changes so the gateway can edit the pinned standings message.
type LeaderboardUpdatedPayload struct {
	Tournament tournamenttypes.Tournament         `json:"tournament"`
	Entries    []tournamenttypes.LeaderboardEntry `json:"entries"`
}

type UserScoresRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Actor   ActorContext            `json:"actor"`
}

type UserScoresRetrievedPayload struct {
	Tournament  tournamenttypes.Tournament   `json:"tournament"`
	UserID      tournamenttypes.UserID       `json:"user_id"`
	Submissions []tournamenttypes.Submission `json:"submissions"`
	Best        *tournamenttypes.Submission  `json:"best,omitempty"`
}

type HistoryRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Limit   int                     `json:"limit,omitempty"`
}

// HistoryEntry is one past tournament with its podium.
type HistoryEntry struct {
	Tournament tournamenttypes.Tournament         `json:"tournament"`
	Podium     []tournamenttypes.LeaderboardEntry `json:"podium"`
}

type HistoryRetrievedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Entries []HistoryEntry          `json:"entries"`
}

type ActiveListRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
}

type ActiveListRetrievedPayload struct {
	GuildID    tournamenttypes.GuildID     `json:"guild_id"`
	Tournament *tournamenttypes.Tournament `json:"tournament,omitempty"`
}

// CourseAutocompleteRequestedPayload asks for course name suggestions while
// an admin is still typing the create command.
type CourseAutocompleteRequestedPayload struct {
	GuildID tournamenttypes.GuildID `json:"guild_id"`
	Term    string                  `json:"term"`
	Limit   int                     `json:"limit,omitempty"`
}

type CourseAutocompleteResultPayload struct {
	GuildID tournamenttypes.GuildID  `json:"guild_id"`
	Term    string                   `json:"term"`
	Courses []tournamenttypes.Course `json:"courses"`
}

type StandingsExportRequestedPayload struct {
	GuildID      tournamenttypes.GuildID      `json:"guild_id"`
	Actor        ActorContext                 `json:"actor"`
	TournamentID tournamenttypes.TournamentID `json:"tournament_id,omitempty"`
}

type StandingsExportedPayload struct {
	Tournament tournamenttypes.Tournament `json:"tournament"`
	Filename   string                     `json:"filename"`
	// Workbook is the xlsx file content, attached as a file by the gateway.
	Workbook []byte `json:"workbook"`
}

type TournamentReminderDuePayload struct {
	Tournament    tournamenttypes.Tournament `json:"tournament"`
	TimeRemaining time.Duration              `json:"time_remaining"`
	Participants  []tournamenttypes.UserID   `json:"participants"`
}

/// TournamentClosedPayload is the closure announcement: final standings plus
// every distinct registered participant so the gateway can mention them.
type TournamentClosedPayload struct {
	Tournament   tournamenttypes.Tournament         `json:"tournament"`
	FinalEntries []tournamenttypes.LeaderboardEntry `json:"final_entries"`
	Participants []tournamenttypes.UserID           `json:"participants"`
	// Chart is a rendered PNG of the final standings, optional.
	Chart []byte `json:"chart,omitempty"`
}
