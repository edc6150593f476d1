package tournamentservice

import "errors"

var (
	// ErrActiveTournamentExists indicates the guild already runs a
	// tournament.
	ErrActiveTournamentExists = errors.New("an active tournament already exists for this guild")

	// ErrNoActiveTournament indicates the guild has no tournament to act
	// on.
	ErrNoActiveTournament = errors.New("no active tournament for this guild")

	// ErrTournamentNotFound indicates the referenced tournament does not
	// exist.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrInvalidRaceTime indicates a non-positive submitted time.
	ErrInvalidRaceTime = errors.New("race time must be positive")

	// ErrInvalidSpeedClass indicates an unknown speed class.
	ErrInvalidSpeedClass = errors.New("invalid speed class")

	// ErrInvalidDeadline indicates a deadline in the past or unparseable
	// input.
	ErrInvalidDeadline = errors.New("deadline must be in the future")

	// ErrDeadlinePassed indicates a submission after the tournament
	// deadline.
	ErrDeadlinePassed = errors.New("tournament deadline has passed")

	// ErrScoreNotFound indicates the target user has no matching attempt.
	ErrScoreNotFound = errors.New("no score found for this user")

	// ErrScoreAlreadyDecided indicates the attempt already carries a
	// ruling.
	ErrScoreAlreadyDecided = errors.New("score has already been verified or rejected")

	// ErrNotAuthorized indicates the actor lacks the admin role.
	ErrNotAuthorized = errors.New("actor is not authorized for this action")

	// ErrNoClosedTournament indicates the guild has nothing to export or
	// list.
	ErrNoClosedTournament = errors.New("no closed tournament for this guild")

	// ErrThreadAlreadySet indicates the tournament thread was linked
	// before.
	ErrThreadAlreadySet = errors.New("tournament thread already linked")

	// ErrInvalidDuration indicates a duration outside the allowed range.
	ErrInvalidDuration = errors.New("duration must be between 1 and 90 days")

	// ErrStorage wraps repository failures so handlers can tell
	// infrastructure faults from domain failures.
	ErrStorage = errors.New("storage failure")
)
