package tournamentservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
)

const (
	defaultDurationDays = 30
	maxDurationDays     = 90
)

// CreateTournament starts a new tournament for the guild: draws the course,
// computes the deadline, and schedules the reminder and close jobs.
func (s *TournamentService) CreateTournament(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "CreateTournament", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		cfg := s.guildConfig(ctx, guildID)
		if !actorIsAdmin(payload.Actor, cfg) {
			return tournamentFailure(guildID, ErrNotAuthorized), nil
		}

		speedClass := payload.SpeedClass
		if speedClass == "" {
			speedClass = tournamenttypes.SpeedClassAny
		}
		if !speedClass.Valid() {
			return tournamentFailure(guildID, ErrInvalidSpeedClass), nil
		}

		now := s.clock.NowUTC()
		deadline, err := s.resolveDeadline(payload, now)
		if err != nil {
			return tournamentFailure(guildID, err), nil
		}

		course, err := s.pickCourse(payload.CourseOverride, speedClass)
		if err != nil {
			return tournamentFailure(guildID, err), nil
		}

		unlock := s.lockGuild(guildID)
		defer unlock()

		tournament := &tournamenttypes.Tournament{
			ID:         uuid.New(),
			GuildID:    guildID,
			CourseID:   course.ID,
			CourseName: course.Name,
			SpeedClass: speedClass,
			State:      tournamenttypes.TournamentStateActive,
			StartedAt:  now,
			Deadline:   deadline,
			CreatedBy:  payload.Actor.UserID,
		}

		if err := s.repo.CreateTournament(ctx, tournament); err != nil {
			if errors.Is(err, tournamentdb.ErrActiveTournamentExists) {
				return tournamentFailure(guildID, ErrActiveTournamentExists), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		remindAt := deadline.Add(-cfg.ReminderOffset)
		if err := s.scheduler.ScheduleDeadline(ctx, tournament.ID, remindAt, deadline); err != nil {
			// The tournament exists; reconciliation will schedule the
			// missing jobs on next startup.
			s.logger.ErrorContext(ctx, "Failed to schedule deadline jobs",
				"tournament_id", tournament.ID,
				"error", err,
			)
		}

		return results.SuccessResult(&tournamentevents.TournamentCreatedPayload{
			Tournament: *tournament,
		}), nil
	})
}

// resolveDeadline prefers free-form deadline input over a day count. The
// result is always strictly in the future.
func (s *TournamentService) resolveDeadline(payload *tournamentevents.TournamentCreateRequestedPayload, now time.Time) (time.Time, error) {
	if payload.DeadlineInput != "" {
		deadline, err := s.parser.ParseDeadline(payload.DeadlineInput, now)
		if err != nil {
			return time.Time{}, ErrInvalidDeadline
		}
		if !deadline.After(now) {
			return time.Time{}, ErrInvalidDeadline
		}
		return deadline.UTC(), nil
	}

	days := payload.DurationDays
	if days == 0 {
		days = defaultDurationDays
	}
	if days < 1 || days > maxDurationDays {
		return time.Time{}, ErrInvalidDuration
	}
	return now.AddDate(0, 0, days), nil
}

// pickCourse honors an explicit course name, otherwise draws randomly from
// the classes matching the tournament's speed class.
func (s *TournamentService) pickCourse(override string, class tournamenttypes.SpeedClass) (tournamenttypes.Course, error) {
	if override != "" {
		course, err := s.catalog.ByName(override)
		if err != nil {
			return tournamenttypes.Course{}, err
		}
		return course, nil
	}
	course, err := s.catalog.RandomCourse(class)
	if err != nil {
		return tournamenttypes.Course{}, err
	}
	return course, nil
}

// LinkThread records the announcement message and thread the gateway
// created. The thread is set once and never reassigned.
func (s *TournamentService) LinkThread(ctx context.Context, payload *tournamentevents.TournamentThreadLinkRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}

	return s.withTelemetry(ctx, "LinkThread", "", func(ctx context.Context) (results.OperationResult, error) {
		tournament, err := s.repo.GetTournament(ctx, payload.TournamentID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return tournamentFailure("", ErrTournamentNotFound), nil
			}
			return tournamentFailure("", err), fmt.Errorf("%w: %w", ErrStorage, err)
		}
		if tournament.ThreadID != "" {
			return tournamentFailure(tournament.GuildID, ErrThreadAlreadySet), nil
		}

		if err := s.repo.SetThread(ctx, payload.TournamentID, payload.MessageID, payload.ThreadID); err != nil {
			return tournamentFailure(tournament.GuildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		return results.SuccessResult(&tournamentevents.TournamentThreadLinkedPayload{
			TournamentID: payload.TournamentID,
			ThreadID:     payload.ThreadID,
		}), nil
	})
}
