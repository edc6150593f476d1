package tournamentservice

import (
	"context"
	"time"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

// DeadlineScheduler schedules the reminder and forced-close work for a
// tournament. The queue package implements it on River; scheduling is
// durable so restarts do not lose deadlines.
type DeadlineScheduler interface {
	// ScheduleDeadline enqueues the reminder (when remindAt is in the
	// future) and the close job for the tournament.
	ScheduleDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID, remindAt, closeAt time.Time) error

	// CancelDeadline removes any pending jobs for the tournament.
	CancelDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID) error
}

// ConfigProvider exposes the per-guild settings the tournament engine
// honors. The guildconfig service implements it.
type ConfigProvider interface {
	EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error)
}

// EventPublisher publishes side-effect announcements that are not part of a
// request/response exchange, such as throttled leaderboard refreshes and
// scheduler-driven closures.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}
