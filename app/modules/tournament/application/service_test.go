package tournamentservice

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/ligue-mk8/timeattack-bot/app/modules/catalog"
	guildconfigtypes "github.com/ligue-mk8/timeattack-bot/app/modules/guildconfig/domain/types"
	tournamentevents "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/events"
	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
	tournamentutil "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/utils"
	"github.com/ligue-mk8/timeattack-bot/internal/observability"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// testNow is the pinned clock time every service test runs at.
var testNow = time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)

type testDeps struct {
	repo      *FakeRepository
	scheduler *FakeScheduler
	publisher *FakePublisher
	configs   *FakeConfigProvider
	clock     *tournamentutil.FakeClock
}

func newTestService(t *testing.T) (*TournamentService, *testDeps) {
	t.Helper()

	deps := &testDeps{
		repo:      NewFakeRepository(),
		scheduler: &FakeScheduler{},
		publisher: &FakePublisher{},
		configs: &FakeConfigProvider{
			Configs: map[tournamenttypes.GuildID]*guildconfigtypes.GuildConfig{},
		},
		clock: &tournamentutil.FakeClock{
			NowFn:    func() time.Time { return testNow },
			NowUTCFn: func() time.Time { return testNow },
		},
	}

	svc := NewTournamentService(
		deps.repo,
		catalog.New(rand.New(rand.NewSource(1))),
		deps.configs,
		deps.scheduler,
		deps.publisher,
		tournamentutil.NewDeadlineParser(),
		deps.clock,
		observability.NoOpLogger,
		observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
	return svc, deps
}

// adminActor is a server administrator, allowed everywhere.
var adminActor = tournamentevents.ActorContext{UserID: "admin-1", IsServerAdmin: true}

// memberActor has no roles.
var memberActor = tournamentevents.ActorContext{UserID: "user-1"}

// mustCreateTournament creates an active tournament through the service and
// returns it.
func mustCreateTournament(t *testing.T, svc *TournamentService, guildID tournamenttypes.GuildID) tournamenttypes.Tournament {
	t.Helper()

	result, err := svc.CreateTournament(context.Background(), &tournamentevents.TournamentCreateRequestedPayload{
		GuildID: guildID,
		Actor:   adminActor,
	})
	require.NoError(t, err)
	created, ok := result.Success.(*tournamentevents.TournamentCreatedPayload)
	require.True(t, ok, "expected created payload, got failure %+v", result.Failure)
	return created.Tournament
}
