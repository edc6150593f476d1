package guildconfigservice

import "errors"

var (
	// ErrInvalidGuildID indicates a request without a guild id.
	ErrInvalidGuildID = errors.New("invalid guild id")

	// ErrPrefixTooLong indicates a command prefix over the configured limit.
	ErrPrefixTooLong = errors.New("command prefix too long")

	// ErrEmptyPrefix indicates an attempt to clear the command prefix.
	ErrEmptyPrefix = errors.New("command prefix cannot be empty")

	// ErrInvalidPolicy indicates an unknown verification policy value.
	ErrInvalidPolicy = errors.New("invalid verification policy")

	// ErrInvalidReminderOffset indicates a non-positive reminder offset.
	ErrInvalidReminderOffset = errors.New("reminder offset must be positive")

	// ErrNotAuthorized indicates the actor lacks the admin role.
	ErrNotAuthorized = errors.New("actor is not authorized to change guild settings")

	// ErrNoFields indicates an update request carrying nothing to change.
	ErrNoFields = errors.New("no fields to update")
)
