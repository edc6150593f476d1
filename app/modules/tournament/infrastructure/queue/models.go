package tournamentqueue

// TournamentReminderArgs is the job payload for the deadline reminder. The
// tournament id is the whole identity: uniqueness by args means a restarted
// scheduler cannot enqueue a second reminder for the same tournament.
type TournamentReminderArgs struct {
	TournamentID string `json:"tournament_id"`
}

func (TournamentReminderArgs) Kind() string { return "tournament_reminder" }

// TournamentCloseArgs is the job payload for the forced close at the
// deadline.
type TournamentCloseArgs struct {
	TournamentID string `json:"tournament_id"`
}

func (TournamentCloseArgs) Kind() string { return "tournament_close" }

// JobInfo describes a scheduled job, used for debugging and the scheduler
// health endpoint.
type JobInfo struct {
	ID           int64  `json:"id"`
	Kind         string `json:"kind"`
	TournamentID string `json:"tournament_id"`
	State        string `json:"state"`
	ScheduledAt  string `json:"scheduled_at"`
	Attempt      int    `json:"attempt"`
	MaxAttempts  int    `json:"max_attempts"`
}
