package outingintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/integration_tests/testutils"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
)

type TestDeps struct {
	Ctx     context.Context
	Repo    *outingdb.Impl
	BunDB   *bun.DB
	Service outingservice.Service
}

// SetupTestOutingService wires the real repository and a no-op observability
// stack on top of the shared container environment.
func SetupTestOutingService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.TruncateTables(env.Ctx, env.DB, "outings", "outing_players", "outing_groups", "live_scores"); err != nil {
		t.Fatalf("Failed to truncate outing tables: %v", err)
	}

	repo := outingdb.NewRepository(env.DB)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noOpMetrics := outingmetrics.NoOpMetrics{}
	noOpTracer := noop.NewTracerProvider().Tracer("test_outing_service")

	service := outingservice.NewOutingService(
		repo,
		nil, // handlers own publishing, the service never needs the bus here
		nil, // no queue workers in these tests
		testLogger,
		noOpMetrics,
		noOpTracer,
		env.DB,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		BunDB:   env.DB,
		Service: service,
	}
}

// SeedOuting inserts an outing plus a roster and returns the outing id. Ghost
// players are flagged by a "+" prefix on the display name.
func SeedOuting(t *testing.T, deps TestDeps, formatID string, players ...string) uuid.UUID {
	t.Helper()

	outingID := uuid.New()
	outing := &outingdb.Outing{
		ID:          outingID,
		Name:        "Saturday Outing",
		CourseHoles: 18,
		FormatID:    formatID,
	}
	if _, err := deps.BunDB.NewInsert().Model(outing).Exec(deps.Ctx); err != nil {
		t.Fatalf("Failed to insert outing: %v", err)
	}

	for i, name := range players {
		isGhost := false
		if name[0] == '+' {
			isGhost = true
			name = name[1:]
		}
		row := &outingdb.OutingPlayerRow{
			OutingID:    outingID,
			PlayerID:    outingdomain.PlayerID(name),
			RosterOrder: i,
			DisplayName: name,
			IsGhost:     isGhost,
		}
		if _, err := deps.BunDB.NewInsert().Model(row).Exec(deps.Ctx); err != nil {
			t.Fatalf("Failed to insert player %s: %v", name, err)
		}
	}

	return outingID
}
