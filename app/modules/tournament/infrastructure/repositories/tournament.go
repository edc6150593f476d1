package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// TournamentDBImpl implements Repository on bun.
type TournamentDBImpl struct {
	DB *bun.DB
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	return false
}

func (db *TournamentDBImpl) CreateTournament(ctx context.Context, tournament *tournamenttypes.Tournament) error {
	model := tournamentToModel(tournament)
	_, err := db.DB.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrActiveTournamentExists
		}
		return err
	}
	return nil
}

func (db *TournamentDBImpl) GetTournament(ctx context.Context, id tournamenttypes.TournamentID) (*tournamenttypes.Tournament, error) {
	var model Tournament
	err := db.DB.NewSelect().Model(&model).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tournamentToDomain(&model), nil
}

func (db *TournamentDBImpl) GetActiveTournament(ctx context.Context, guildID tournamenttypes.GuildID) (*tournamenttypes.Tournament, error) {
	var model Tournament
	err := db.DB.NewSelect().Model(&model).
		Where("guild_id = ?", guildID).
		Where("state = ?", string(tournamenttypes.TournamentStateActive)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tournamentToDomain(&model), nil
}

func (db *TournamentDBImpl) ListActiveTournaments(ctx context.Context) ([]*tournamenttypes.Tournament, error) {
	var models []Tournament
	err := db.DB.NewSelect().Model(&models).
		Where("state = ?", string(tournamenttypes.TournamentStateActive)).
		Order("deadline ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*tournamenttypes.Tournament, len(models))
	for i := range models {
		out[i] = tournamentToDomain(&models[i])
	}
	return out, nil
}

// CloseTournamentIfActive is the idempotency gate for closures: the state
// predicate means a second delivery of the same close updates nothing.
func (db *TournamentDBImpl) CloseTournamentIfActive(ctx context.Context, id tournamenttypes.TournamentID, reason tournamenttypes.CloseReason, closedAt time.Time) (*tournamenttypes.Tournament, error) {
	res, err := db.DB.NewUpdate().Model((*Tournament)(nil)).
		Set("state = ?", string(tournamenttypes.TournamentStateClosed)).
		Set("close_reason = ?", string(reason)).
		Set("updated_at = ?", closedAt).
		Where("id = ?", id).
		Where("state = ?", string(tournamenttypes.TournamentStateActive)).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrNoRowsAffected
	}
	return db.GetTournament(ctx, id)
}

func (db *TournamentDBImpl) MarkArchived(ctx context.Context, id tournamenttypes.TournamentID) error {
	res, err := db.DB.NewUpdate().Model((*Tournament)(nil)).
		Set("state = ?", string(tournamenttypes.TournamentStateArchived)).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Where("state = ?", string(tournamenttypes.TournamentStateClosed)).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (db *TournamentDBImpl) SetThread(ctx context.Context, id tournamenttypes.TournamentID, messageID tournamenttypes.MessageID, threadID tournamenttypes.ThreadID) error {
	res, err := db.DB.NewUpdate().Model((*Tournament)(nil)).
		Set("message_id = ?", string(messageID)).
		Set("thread_id = ?", string(threadID)).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *TournamentDBImpl) ListHistory(ctx context.Context, guildID tournamenttypes.GuildID, limit int) ([]*tournamenttypes.Tournament, error) {
	q := db.DB.NewSelect().Model((*Tournament)(nil)).
		Where("guild_id = ?", guildID).
		Where("state IN (?)", bun.In([]string{
			string(tournamenttypes.TournamentStateClosed),
			string(tournamenttypes.TournamentStateArchived),
		})).
		Order("deadline DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var models []Tournament
	if err := q.Scan(ctx, &models); err != nil {
		return nil, err
	}
	out := make([]*tournamenttypes.Tournament, len(models))
	for i := range models {
		out[i] = tournamentToDomain(&models[i])
	}
	return out, nil
}

func (db *TournamentDBImpl) UpsertRegistration(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, joinedAt time.Time) (bool, error) {
	reg := &Registration{
		TournamentID: tournamentID,
		UserID:       userID,
		JoinedAt:     joinedAt,
	}
	res, err := db.DB.NewInsert().Model(reg).
		On("CONFLICT (tournament_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 0, nil
}

func (db *TournamentDBImpl) CountRegistrations(ctx context.Context, tournamentID tournamenttypes.TournamentID) (int, error) {
	return db.DB.NewSelect().Model((*Registration)(nil)).
		Where("tournament_id = ?", tournamentID).
		Count(ctx)
}

func (db *TournamentDBImpl) ListParticipants(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.UserID, error) {
	var userIDs []tournamenttypes.UserID
	err := db.DB.NewSelect().Model((*Registration)(nil)).
		Column("user_id").
		Where("tournament_id = ?", tournamentID).
		Order("joined_at ASC").
		Scan(ctx, &userIDs)
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// InsertSubmission assigns the per-user attempt index inside a transaction
// so two concurrent submissions from the same user cannot share an index.
func (db *TournamentDBImpl) InsertSubmission(ctx context.Context, sub *tournamenttypes.Submission) (*tournamenttypes.Submission, error) {
	var inserted Submission

	err := db.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var maxIndex int
		err := tx.NewSelect().Model((*Submission)(nil)).
			ColumnExpr("COALESCE(MAX(attempt_index), 0)").
			Where("tournament_id = ?", sub.TournamentID).
			Where("user_id = ?", sub.UserID).
			Scan(ctx, &maxIndex)
		if err != nil {
			return err
		}

		inserted = Submission{
			TournamentID: sub.TournamentID,
			UserID:       sub.UserID,
			AttemptIndex: maxIndex + 1,
			TimeMs:       int64(sub.Time),
			ProofURL:     sub.ProofURL,
			Status:       string(sub.Status),
			SubmittedAt:  sub.SubmittedAt,
		}
		_, err = tx.NewInsert().Model(&inserted).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := submissionToDomain(&inserted)
	return &out, nil
}

func (db *TournamentDBImpl) ListSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID) ([]tournamenttypes.Submission, error) {
	var models []Submission
	err := db.DB.NewSelect().Model(&models).
		Where("tournament_id = ?", tournamentID).
		Order("submitted_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return submissionsToDomain(models), nil
}

func (db *TournamentDBImpl) ListUserSubmissions(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) ([]tournamenttypes.Submission, error) {
	var models []Submission
	err := db.DB.NewSelect().Model(&models).
		Where("tournament_id = ?", tournamentID).
		Where("user_id = ?", userID).
		Order("attempt_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return submissionsToDomain(models), nil
}

func (db *TournamentDBImpl) GetSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID, attemptIndex int) (*tournamenttypes.Submission, error) {
	var model Submission
	err := db.DB.NewSelect().Model(&model).
		Where("tournament_id = ?", tournamentID).
		Where("user_id = ?", userID).
		Where("attempt_index = ?", attemptIndex).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := submissionToDomain(&model)
	return &out, nil
}

func (db *TournamentDBImpl) GetBestSubmission(ctx context.Context, tournamentID tournamenttypes.TournamentID, userID tournamenttypes.UserID) (*tournamenttypes.Submission, error) {
	var model Submission
	err := db.DB.NewSelect().Model(&model).
		Where("tournament_id = ?", tournamentID).
		Where("user_id = ?", userID).
		Where("status != ?", string(tournamenttypes.VerificationRejected)).
		Order("time_ms ASC", "submitted_at ASC", "id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := submissionToDomain(&model)
	return &out, nil
}

// DecideSubmission only rules on pending attempts, so a verification cannot
// overwrite an earlier ruling.
func (db *TournamentDBImpl) DecideSubmission(ctx context.Context, submissionID int64, status tournamenttypes.VerificationStatus) (*tournamenttypes.Submission, error) {
	res, err := db.DB.NewUpdate().Model((*Submission)(nil)).
		Set("status = ?", string(status)).
		Where("id = ?", submissionID).
		Where("status = ?", string(tournamenttypes.VerificationPending)).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrNoRowsAffected
	}

	var model Submission
	if err := db.DB.NewSelect().Model(&model).Where("id = ?", submissionID).Scan(ctx); err != nil {
		return nil, err
	}
	out := submissionToDomain(&model)
	return &out, nil
}

func (db *TournamentDBImpl) DeleteSubmission(ctx context.Context, submissionID int64) error {
	res, err := db.DB.NewDelete().Model((*Submission)(nil)).
		Where("id = ?", submissionID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
