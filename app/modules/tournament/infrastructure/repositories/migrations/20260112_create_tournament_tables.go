package migrations

import (
	"context"
	"fmt"

	tournamentdb "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating tournament tables...")

			if _, err := db.NewCreateTable().Model((*tournamentdb.Tournament)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*tournamentdb.Registration)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*tournamentdb.Submission)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}

			// One active tournament per guild, enforced where it cannot race.
			if _, err := db.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS tournaments_one_active_per_guild
				ON tournaments (guild_id)
				WHERE state = 'ACTIVE'
			`); err != nil {
				return err
			}

			if _, err := db.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS tournament_registrations_unique_user
				ON tournament_registrations (tournament_id, user_id)
			`); err != nil {
				return err
			}

			if _, err := db.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS tournament_submissions_unique_attempt
				ON tournament_submissions (tournament_id, user_id, attempt_index)
			`); err != nil {
				return err
			}

			if _, err := db.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS tournament_submissions_ranking
				ON tournament_submissions (tournament_id, time_ms, submitted_at)
			`); err != nil {
				return err
			}

			fmt.Println("tournament tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping tournament tables...")
			if _, err := db.NewDropTable().Model((*tournamentdb.Submission)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*tournamentdb.Registration)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*tournamentdb.Tournament)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("tournament tables dropped successfully!")
			return nil
		},
	)
}
