// Package testutils builds the shared container-backed environment the
// integration tests run against.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	outingmigrations "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories/migrations"
	"github.com/fairway-social/outing-engine/integration_tests/containers"
	"github.com/fairway-social/outing-engine/internal/eventbus"
)

// TestEnv holds the containers and connections shared by every integration
// test in the run. It is created once and reused.
type TestEnv struct {
	Ctx      context.Context
	DB       *bun.DB
	DSN      string
	NATSURL  string
	EventBus eventbus.EventBus

	pgContainer   *postgres.PostgresContainer
	natsContainer *nats.NATSContainer
}

var (
	envOnce   sync.Once
	sharedEnv *TestEnv
	envErr    error
)

// GetOrCreateTestEnv returns the shared environment, starting the containers
// and running migrations on first use.
func GetOrCreateTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	envOnce.Do(func() {
		sharedEnv, envErr = newTestEnv(context.Background())
	})
	if envErr != nil {
		t.Fatalf("Failed to create test environment: %v", envErr)
	}
	return sharedEnv
}

func newTestEnv(ctx context.Context) (*TestEnv, error) {
	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		_ = natsContainer.Terminate(ctx)
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}

	migrator := migrate.NewMigrator(db, outingmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus, err := eventbus.NewEventBus(ctx, natsURL, logger)
	if err != nil {
		_ = natsContainer.Terminate(ctx)
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	return &TestEnv{
		Ctx:           ctx,
		DB:            db,
		DSN:           dsn,
		NATSURL:       natsURL,
		EventBus:      bus,
		pgContainer:   pgContainer,
		natsContainer: natsContainer,
	}, nil
}

// TruncateTables clears the given tables between tests.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
