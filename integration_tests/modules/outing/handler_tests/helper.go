package outinghandlertests

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
	outinghandlers "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/handlers"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/integration_tests/testutils"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/utils"
)

type TestDeps struct {
	Ctx      context.Context
	BunDB    *bun.DB
	EventBus eventbus.EventBus
	Handlers outinghandlers.Handlers
	Helpers  utils.Helpers
}

// SetupTestHandlers wires the real service and handlers on top of the shared
// container environment, with the real NATS-backed event bus.
func SetupTestHandlers(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.TruncateTables(env.Ctx, env.DB, "outings", "outing_players", "outing_groups", "live_scores"); err != nil {
		t.Fatalf("Failed to truncate outing tables: %v", err)
	}

	repo := outingdb.NewRepository(env.DB)
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noOpMetrics := outingmetrics.NoOpMetrics{}
	noOpTracer := noop.NewTracerProvider().Tracer("test_outing_handlers")
	helpers := utils.NewHelpers()

	service := outingservice.NewOutingService(repo, env.EventBus, nil, testLogger, noOpMetrics, noOpTracer, env.DB)
	handlers := outinghandlers.NewOutingHandlers(service, testLogger, noOpTracer, helpers, noOpMetrics)

	return TestDeps{
		Ctx:      env.Ctx,
		BunDB:    env.DB,
		EventBus: env.EventBus,
		Handlers: handlers,
		Helpers:  helpers,
	}
}

// SeedOuting inserts an outing plus a roster and returns the outing id.
func SeedOuting(t *testing.T, deps TestDeps, players ...string) uuid.UUID {
	t.Helper()

	outingID := uuid.New()
	outing := &outingdb.Outing{
		ID:          outingID,
		Name:        "Saturday Outing",
		CourseHoles: 18,
		FormatID:    "stroke_net",
	}
	if _, err := deps.BunDB.NewInsert().Model(outing).Exec(deps.Ctx); err != nil {
		t.Fatalf("Failed to insert outing: %v", err)
	}

	for i, name := range players {
		row := &outingdb.OutingPlayerRow{
			OutingID:    outingID,
			PlayerID:    outingdomain.PlayerID(name),
			RosterOrder: i,
			DisplayName: name,
		}
		if _, err := deps.BunDB.NewInsert().Model(row).Exec(deps.Ctx); err != nil {
			t.Fatalf("Failed to insert player %s: %v", name, err)
		}
	}

	return outingID
}
