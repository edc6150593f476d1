package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	"github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/ranking"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/ligue-mk8/timeattack-bot/internal/results"
	"github.com/xuri/excelize/v2"
)

// ExportStandings builds an xlsx workbook of a tournament's standings. With
// no explicit tournament id it exports the guild's most recently finished
// tournament.
func (s *TournamentService) ExportStandings(ctx context.Context, payload *tournamentevents.StandingsExportRequestedPayload) (results.OperationResult, error) {
	if payload == nil {
		return tournamentFailure("", errors.New("payload cannot be nil")), nil
	}
	guildID := payload.GuildID

	return s.withTelemetry(ctx, "ExportStandings", string(guildID), func(ctx context.Context) (results.OperationResult, error) {
		cfg := s.guildConfig(ctx, guildID)
		if !actorIsAdmin(payload.Actor, cfg) {
			return tournamentFailure(guildID, ErrNotAuthorized), nil
		}

		tournament, err := s.exportTournament(ctx, payload)
		if err != nil {
			if errors.Is(err, ErrNoClosedTournament) || errors.Is(err, ErrTournamentNotFound) {
				return tournamentFailure(guildID, err), nil
			}
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}

		subs, err := s.repo.ListSubmissions(ctx, tournament.ID)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("%w: %w", ErrStorage, err)
		}
		entries := ranking.Final(subs, cfg.VerificationPolicy)

		workbook, err := buildStandingsWorkbook(tournament, entries)
		if err != nil {
			return tournamentFailure(guildID, err), fmt.Errorf("build workbook: %w", err)
		}

		return results.SuccessResult(&tournamentevents.StandingsExportedPayload{
			Tournament: *tournament,
			Filename:   fmt.Sprintf("standings-%s.xlsx", tournament.ID),
			Workbook:   workbook,
		}), nil
	})
}

func (s *TournamentService) exportTournament(ctx context.Context, payload *tournamentevents.StandingsExportRequestedPayload) (*tournamenttypes.Tournament, error) {
	if payload.TournamentID != (tournamenttypes.TournamentID{}) {
		tournament, err := s.repo.GetTournament(ctx, payload.TournamentID)
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		return tournament, nil
	}

	history, err := s.repo.ListHistory(ctx, payload.GuildID, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNoClosedTournament
	}
	return history[0], nil
}

func buildStandingsWorkbook(tournament *tournamenttypes.Tournament, entries []tournamenttypes.LeaderboardEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Standings"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := map[string]any{
		"A1": "Rank",
		"B1": "User",
		"C1": "Best Time",
		"D1": "Attempts",
		"E1": "Verified",
		"G1": "Course",
		"H1": tournament.CourseName,
		"G2": "Class",
		"H2": string(tournament.SpeedClass),
		"G3": "Deadline",
		"H3": tournament.Deadline.Format("2006-01-02 15:04 UTC"),
	}
	for cell, value := range header {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, err
		}
	}

	for i, entry := range entries {
		row := i + 2
		cells := []struct {
			col   string
			value any
		}{
			{"A", entry.Rank},
			{"B", string(entry.UserID)},
			{"C", entry.BestTime.String()},
			{"D", entry.AttemptCount},
			{"E", entry.Verified},
		}
		for _, c := range cells {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", c.col, row), c.value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
