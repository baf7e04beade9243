package outingqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/internal/eventbus"
	"github.com/fairway-social/outing-engine/internal/observability/attr"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// OutingStartWorker activates an outing's groups when its scheduled start
// arrives.
type OutingStartWorker struct {
	river.WorkerDefaults[OutingStartJob]

	logger   *slog.Logger
	repo     outingdb.Repository
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

func NewOutingStartWorker(logger *slog.Logger, repo outingdb.Repository, eventBus eventbus.EventBus, helpers utils.Helpers) *OutingStartWorker {
	return &OutingStartWorker{
		logger:   logger,
		repo:     repo,
		eventBus: eventBus,
		helpers:  helpers,
	}
}

func (w *OutingStartWorker) Work(ctx context.Context, job *river.Job[OutingStartJob]) error {
	w.logger.InfoContext(ctx, "Outing start job firing",
		attr.UUIDValue("outing_id", job.Args.OutingID),
		attr.Int("attempt", job.Attempt),
	)

	if err := w.repo.SetGroupStatuses(ctx, nil, job.Args.OutingID, outingdomain.GroupStatusActive); err != nil {
		return fmt.Errorf("failed to activate groups for outing %s: %w", job.Args.OutingID, err)
	}

	msg, err := w.helpers.CreateResultMessage(nil, &job.Args.Payload, outingevents.StartedV1)
	if err != nil {
		return fmt.Errorf("failed to build started message: %w", err)
	}
	if err := w.eventBus.Publish(outingevents.StartedV1, msg); err != nil {
		return fmt.Errorf("failed to publish started event: %w", err)
	}

	w.logger.InfoContext(ctx, "Outing started", attr.UUIDValue("outing_id", job.Args.OutingID))
	return nil
}
