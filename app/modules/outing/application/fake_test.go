package outingservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
)

// ------------------------
// Fake Outing Repo
// ------------------------

// FakeRepository provides a programmable stub for the outingdb.Repository
// interface.
type FakeRepository struct {
	trace []string

	GetOutingFunc         func(ctx context.Context, db bun.IDB, outingID uuid.UUID) (*outingdb.Outing, error)
	GetRosterFunc         func(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingPlayer, error)
	GetGroupsFunc         func(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingGroup, error)
	SaveSnapshotFunc      func(ctx context.Context, db bun.IDB, outingID uuid.UUID, roster []outingdomain.OutingPlayer, groups []outingdomain.OutingGroup) error
	GetLiveScoresFunc     func(ctx context.Context, db bun.IDB, roundIDs []outingdomain.RoundID) (outingdomain.LiveScores, error)
	SetGroupStatusesFunc  func(ctx context.Context, db bun.IDB, outingID uuid.UUID, status outingdomain.GroupStatus) error
	SetScheduledStartFunc func(ctx context.Context, db bun.IDB, outingID uuid.UUID, startTime time.Time) error

	LastSavedRoster []outingdomain.OutingPlayer
	LastSavedGroups []outingdomain.OutingGroup
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) GetOuting(ctx context.Context, db bun.IDB, outingID uuid.UUID) (*outingdb.Outing, error) {
	f.record("GetOuting")
	if f.GetOutingFunc != nil {
		return f.GetOutingFunc(ctx, db, outingID)
	}
	return &outingdb.Outing{ID: outingID, Name: "Saturday Outing", CourseHoles: 18, FormatID: "stroke_net"}, nil
}

func (f *FakeRepository) GetRoster(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingPlayer, error) {
	f.record("GetRoster")
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, db, outingID)
	}
	return []outingdomain.OutingPlayer{}, nil
}

func (f *FakeRepository) GetGroups(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingGroup, error) {
	f.record("GetGroups")
	if f.GetGroupsFunc != nil {
		return f.GetGroupsFunc(ctx, db, outingID)
	}
	return []outingdomain.OutingGroup{}, nil
}

func (f *FakeRepository) SaveSnapshot(ctx context.Context, db bun.IDB, outingID uuid.UUID, roster []outingdomain.OutingPlayer, groups []outingdomain.OutingGroup) error {
	f.record("SaveSnapshot")
	f.LastSavedRoster = roster
	f.LastSavedGroups = groups
	if f.SaveSnapshotFunc != nil {
		return f.SaveSnapshotFunc(ctx, db, outingID, roster, groups)
	}
	return nil
}

func (f *FakeRepository) GetLiveScores(ctx context.Context, db bun.IDB, roundIDs []outingdomain.RoundID) (outingdomain.LiveScores, error) {
	f.record("GetLiveScores")
	if f.GetLiveScoresFunc != nil {
		return f.GetLiveScoresFunc(ctx, db, roundIDs)
	}
	return outingdomain.LiveScores{}, nil
}

func (f *FakeRepository) SetGroupStatuses(ctx context.Context, db bun.IDB, outingID uuid.UUID, status outingdomain.GroupStatus) error {
	f.record("SetGroupStatuses")
	if f.SetGroupStatusesFunc != nil {
		return f.SetGroupStatusesFunc(ctx, db, outingID, status)
	}
	return nil
}

func (f *FakeRepository) SetScheduledStart(ctx context.Context, db bun.IDB, outingID uuid.UUID, startTime time.Time) error {
	f.record("SetScheduledStart")
	if f.SetScheduledStartFunc != nil {
		return f.SetScheduledStartFunc(ctx, db, outingID, startTime)
	}
	return nil
}

var _ outingdb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	trace []string

	ScheduleOutingStartFunc func(ctx context.Context, outingID uuid.UUID, startTime time.Time, payload outingevents.StartedPayloadV1) error
	CancelOutingJobsFunc    func(ctx context.Context, outingID uuid.UUID) error

	LastScheduledAt time.Time
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{trace: []string{}}
}

func (f *FakeScheduler) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScheduler) ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, startTime time.Time, payload outingevents.StartedPayloadV1) error {
	f.trace = append(f.trace, "ScheduleOutingStart")
	f.LastScheduledAt = startTime
	if f.ScheduleOutingStartFunc != nil {
		return f.ScheduleOutingStartFunc(ctx, outingID, startTime, payload)
	}
	return nil
}

func (f *FakeScheduler) CancelOutingJobs(ctx context.Context, outingID uuid.UUID) error {
	f.trace = append(f.trace, "CancelOutingJobs")
	if f.CancelOutingJobsFunc != nil {
		return f.CancelOutingJobsFunc(ctx, outingID)
	}
	return nil
}

var _ Scheduler = (*FakeScheduler)(nil)

// ------------------------
// Fake Event Bus
// ------------------------

type FakeEventBus struct {
	Published map[string][]*message.Message
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{Published: map[string][]*message.Message{}}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	f.Published[topic] = append(f.Published[topic], messages...)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) EnsureStream(ctx context.Context, streamName string, subjects []string) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

// newTestService wires an OutingService with fakes and no-op telemetry.
func newTestService(repo *FakeRepository, scheduler *FakeScheduler) *OutingService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	var sched Scheduler
	if scheduler != nil {
		sched = scheduler
	}
	return NewOutingService(repo, NewFakeEventBus(), sched, logger, outingmetrics.NoOpMetrics{}, tracer, nil)
}
