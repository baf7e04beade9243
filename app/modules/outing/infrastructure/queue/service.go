// Package outingqueue schedules outing start jobs on River.
package outingqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// Service handles job scheduling for the outing module using River.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	logger *slog.Logger
	db     *bun.DB
}

var _ outingservice.Scheduler = (*Service)(nil)

// NewService creates a River-based queue service for outing scheduling.
// River requires pgx, so the service keeps its own pool next to the bun one.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	repo outingdb.Repository,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	ctxLogger.Info("Initializing outing queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewOutingStartWorker(ctxLogger, repo, eventBus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"outing":           {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.Info("Outing queue service initialized successfully")
	return &Service{
		client: riverClient,
		pool:   pool,
		logger: ctxLogger,
		db:     bunDB,
	}, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting outing queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop stops the River queue service and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping outing queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}

// ScheduleOutingStart schedules a start job to be executed at the given time.
func (s *Service) ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, startTime time.Time, payload outingevents.StartedPayloadV1) error {
	ctxLogger := s.logger.With(
		attr.UUIDValue("outing_id", outingID),
		attr.String("start_time", startTime.Format(time.RFC3339)),
	)

	now := time.Now()
	if startTime.Before(now.Add(5 * time.Second)) {
		return fmt.Errorf("start time must be at least 5 seconds in the future")
	}

	job := OutingStartJob{
		OutingID: outingID,
		Payload:  payload,
	}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       "outing",
		ScheduledAt: startTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule outing start job: %w", err)
	}

	ctxLogger.Info("Outing start job scheduled",
		attr.String("delay", startTime.Sub(now).String()),
		attr.Int64("job_id", jobResult.Job.ID),
	)
	return nil
}

// CancelOutingJobs cancels all scheduled jobs for an outing. Rescheduling a
// start goes through here first so only one job ever fires.
func (s *Service) CancelOutingJobs(ctx context.Context, outingID uuid.UUID) error {
	type riverJobRow struct {
		ID int64 `bun:"id"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id").
		Where("kind = ?", "outing_start").
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'outing_id' = ?", outingID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.Warn("Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.Error(err),
			)
		}
	}

	s.logger.Info("Outing job cancellation completed",
		attr.UUIDValue("outing_id", outingID),
		attr.Int("total_found", len(jobs)),
	)
	return nil
}

// GetScheduledJobs returns information about scheduled jobs for an outing.
func (s *Service) GetScheduledJobs(ctx context.Context, outingID uuid.UUID) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		CreatedAt   time.Time  `bun:"created_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind = ?", "outing_start").
		Where("args->>'outing_id' = ?", outingID.String()).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			OutingID:    outingID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return result, nil
}

// HealthCheck verifies the queue service can reach its job table.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}
