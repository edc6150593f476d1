package tournamentservice

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
)

// FakeRepository is an in-memory implementation of tournamentdb.Repository.
// It keeps the same error semantics as the real one so service tests
// exercise the actual decision paths.
type FakeRepository struct {
	mu            sync.Mutex
	tournaments   map[tournamenttypes.TournamentID]*tournamenttypes.Tournament
	registrations map[tournamenttypes.TournamentID]map[tournamenttypes.UserID]time.Time
	submissions   []tournamenttypes.Submission
	nextSubID     int64

	// FailWith, when set, makes every method return this error.
	FailWith error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		tournaments:   make(map[tournamenttypes.TournamentID]*tournamenttypes.Tournament),
		registrations: make(map[tournamenttypes.TournamentID]map[tournamenttypes.UserID]time.Time),
	}
}

func (f *FakeRepository) CreateTournament(ctx context.Context, tournament *tournamenttypes.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	if tournament.State == tournamenttypes.TournamentStateActive {
		for _, t := range f.tournaments {
			if t.GuildID == tournament.GuildID && t.State == tournamenttypes.TournamentStateActive {
				return tournamentdb.ErrActiveTournamentExists
			}
		}
	}
	cp := *tournament
	f.tournaments[tournament.ID] = &cp
	return nil
}

func (f *FakeRepository) GetTournament(ctx context.Context, id tournamenttypes.TournamentID) (*tournamenttypes.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	t, ok := f.tournaments[id]
	if !ok {
		return nil, tournamentdb.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *FakeRepository) GetActiveTournament(ctx context.Context, guildID tournamenttypes.GuildID) (*tournamenttypes.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	for _, t := range f.tournaments {
		if t.GuildID == guildID && t.State == tournamenttypes.TournamentStateActive {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) ListActiveTournaments(ctx context.Context) ([]*tournamenttypes.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []*tournamenttypes.Tournament
	for _, t := range f.tournaments {
		if t.State == tournamenttypes.TournamentStateActive {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func (f *FakeRepository) CloseTournamentIfActive(ctx context.Context, id tournamenttypes.TournamentID, reason tournamenttypes.CloseReason, closedAt time.Time) (*tournamenttypes.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	t, ok := f.tournaments[id]
	if !ok || t.State != tournamenttypes.TournamentStateActive {
		return nil, tournamentdb.ErrNoRowsAffected
	}
	t.State = tournamenttypes.TournamentStateClosed
	t.CloseReason = reason
	cp := *t
	return &cp, nil
}

func (f *FakeRepository) MarkArchived(ctx context.Context, id tournamenttypes.TournamentID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	t, ok := f.tournaments[id]
	if !ok || t.State != tournamenttypes.TournamentStateClosed {
		return tournamentdb.ErrNoRowsAffected
	}
	t.State = tournamenttypes.TournamentStateArchived
	return nil
}

func (f *FakeRepository) SetThread(ctx context.Context, id tournamenttypes.TournamentID, messageID tournamenttypes.MessageID, threadID tournamenttypes.ThreadID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	t, ok := f.tournaments[id]
	if !ok {
		return tournamentdb.ErrNotFound
	}
	t.MessageID = messageID
	t.ThreadID = threadID
	return nil
}

func (f *FakeRepository) ListHistory(ctx context.Context, guildID tournamenttypes.GuildID, limit int) ([]*tournamenttypes.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []*tournamenttypes.Tournament
	for _, t := range f.tournaments {
		if t.GuildID != guildID {
			continue
		}
		if t.State == tournamenttypes.TournamentStateClosed || t.State == tournamenttypes.TournamentStateArchived {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.After(out[j].Deadline) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeRepository) UpsertRegistration(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, joinedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return false, f.FailWith
	}
	regs, ok := f.registrations[tournamentID]
	if !ok {
		regs = make(map[tournamenttypes.UserID]time.Time)
		f.registrations[tournamentID] = regs
	}
	if _, exists := regs[userID]; exists {
		return true, nil
	}
	regs[userID] = joinedAt
	return false, nil
}

func (f *FakeRepository) CountRegistrations(ctx context.Context, tournamentID tournamenttypes.TournamentID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return 0, f.FailWith
	}
	return len(f.registrations[tournamentID]), nil
}

func (f *FakeRepository) ListParticipants(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.UserID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	regs := f.registrations[tournamentID]
	out := make([]tournamenttypes.UserID, 0, len(regs))
	for userID := range regs {
		out = append(out, userID)
	}
	sort.Slice(out, func(i, j int) bool { return regs[out[i]].Before(regs[out[j]]) })
	return out, nil
}

func (f *FakeRepository) InsertSubmission(ctx context.Context, sub *tournamenttypes.Submission) (*tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	maxIndex := 0
	for _, existing := range f.submissions {
		if existing.TournamentID == sub.TournamentID && existing.UserID == sub.UserID && existing.AttemptIndex > maxIndex {
			maxIndex = existing.AttemptIndex
		}
	}
	f.nextSubID++
	stored := *sub
	stored.ID = f.nextSubID
	stored.AttemptIndex = maxIndex + 1
	f.submissions = append(f.submissions, stored)
	cp := stored
	return &cp, nil
}

func (f *FakeRepository) ListSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []tournamenttypes.Submission
	for _, sub := range f.submissions {
		if sub.TournamentID == tournamentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *FakeRepository) ListUserSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) ([]tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var out []tournamenttypes.Submission
	for _, sub := range f.submissions {
		if sub.TournamentID == tournamentID && sub.UserID == userID {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttemptIndex < out[j].AttemptIndex })
	return out, nil
}

func (f *FakeRepository) GetSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, attemptIndex int) (*tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	for _, sub := range f.submissions {
		if sub.TournamentID == tournamentID && sub.UserID == userID && sub.AttemptIndex == attemptIndex {
			cp := sub
			return &cp, nil
		}
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeRepository) GetBestSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) (*tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	var best *tournamenttypes.Submission
	for i := range f.submissions {
		sub := &f.submissions[i]
		if sub.TournamentID != tournamentID || sub.UserID != userID {
			continue
		}
		if sub.Status == tournamenttypes.VerificationRejected {
			continue
		}
		if best == nil || sub.Time < best.Time {
			best = sub
		}
	}
	if best == nil {
		return nil, tournamentdb.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *FakeRepository) DecideSubmission(ctx context.Context, submissionID int64, status tournamenttypes.VerificationStatus) (*tournamenttypes.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	for i := range f.submissions {
		sub := &f.submissions[i]
		if sub.ID != submissionID {
			continue
		}
		if sub.Status != tournamenttypes.VerificationPending {
			return nil, tournamentdb.ErrNoRowsAffected
		}
		sub.Status = status
		cp := *sub
		return &cp, nil
	}
	return nil, tournamentdb.ErrNoRowsAffected
}

func (f *FakeRepository) DeleteSubmission(ctx context.Context, submissionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWith != nil {
		return f.FailWith
	}
	for i := range f.submissions {
		if f.submissions[i].ID == submissionID {
			f.submissions = append(f.submissions[:i], f.submissions[i+1:]...)
			return nil
		}
	}
	return tournamentdb.ErrNotFound
}

// FakeScheduler records scheduled and cancelled deadlines.
type FakeScheduler struct {
	mu        sync.Mutex
	Scheduled []tournamenttypes.TournamentID
	Cancelled []tournamenttypes.TournamentID

	ScheduleErr error
}

func (f *FakeScheduler) ScheduleDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID, remindAt, closeAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ScheduleErr != nil {
		return f.ScheduleErr
	}
	f.Scheduled = append(f.Scheduled, tournamentID)
	return nil
}

func (f *FakeScheduler) CancelDeadline(ctx context.Context, tournamentID tournamenttypes.TournamentID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cancelled = append(f.Cancelled, tournamentID)
	return nil
}

// FakePublisher captures published announcements.
type FakePublisher struct {
	mu        sync.Mutex
	Published []PublishedEvent

	// FailNextOn makes the next publish on that topic fail, once.
	FailNextOn string
}

type PublishedEvent struct {
	Topic   string
	Payload any
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailNextOn == topic {
		f.FailNextOn = ""
		return errors.New("publish failed")
	}
	f.Published = append(f.Published, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

// Topics lists the published topics in order.
func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Published))
	for i, e := range f.Published {
		out[i] = e.Topic
	}
	return out
}

// FakeConfigProvider serves a fixed config per guild.
type FakeConfigProvider struct {
	Configs map[tournamenttypes.GuildID]*guildconfigtypes.GuildConfig
}

func (f *FakeConfigProvider) EffectiveConfig(ctx context.Context, guildID tournamenttypes.GuildID) (*guildconfigtypes.GuildConfig, error) {
	if cfg, ok := f.Configs[guildID]; ok {
		return cfg, nil
	}
	return guildconfigtypes.Defaults(guildID), nil
}
