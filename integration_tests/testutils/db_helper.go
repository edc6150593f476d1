// Package testutils carries shared setup for the integration suite:
// migrations and table cleanup against a disposable Postgres.
package testutils

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	guildconfigmigrations "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/infrastructure/repositories/migrations"
	tournamentmigrations "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/infrastructure/repositories/migrations"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// RunMigrations applies every module's schema plus the River job tables.
func RunMigrations(ctx context.Context, db *bun.DB, dsn string) error {
	if err := runRiverMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("failed to run river migrations: %w", err)
	}

	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"guildconfig", guildconfigmigrations.Migrations},
		{"tournament", tournamentmigrations.Migrations},
	}
	for _, mod := range modules {
		migrator := migrate.NewMigrator(db, mod.migrations)
		if err := migrator.Init(ctx); err != nil {
			return fmt.Errorf("failed to init %s migrations: %w", mod.name, err)
		}
		if _, err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.name, err)
		}
	}
	return nil
}

func runRiverMigrations(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	return err
}

// CleanupTables truncates application tables so tests start from a clean
// slate without re-running migrations.
func CleanupTables(ctx context.Context, db *bun.DB) error {
	tables := []string{
		"tournament_submissions",
		"tournament_registrations",
		"tournaments",
		"guild_configs",
		"river_job",
	}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}
