package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/ligue-mk8/timeattack-bot/integration_tests/containers"
	"github.com/ligue-mk8/timeattack-bot/internal/db/bundb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment is a migrated Postgres the integration suite shares.
type TestEnvironment struct {
	DB  *bun.DB
	DSN string

	container *postgres.PostgresContainer
}

// RequireIntegration skips the test unless the suite is explicitly enabled.
// Keeps `go test ./...` runnable without Docker.
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("set RUN_INTEGRATION_TESTS=true to run integration tests")
	}
}

// NewTestEnvironment starts Postgres and applies all migrations.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	db, err := bundb.New(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db, dsn); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestEnvironment{DB: db, DSN: dsn, container: container}, nil
}

// Reset clears application tables between tests.
func (e *TestEnvironment) Reset(ctx context.Context) error {
	return CleanupTables(ctx, e.DB)
}

// Close tears the environment down.
func (e *TestEnvironment) Close(ctx context.Context) {
	if e.DB != nil {
		_ = e.DB.Close()
	}
	if e.container != nil {
		_ = e.container.Terminate(ctx)
	}
}
