package outingservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/results"
)

// Service is the operation surface of the outing module.
type Service interface {
	AutoAssignGroups(ctx context.Context, outingID uuid.UUID, groupSize int) (results.OperationResult, error)
	ApplyShotgunStart(ctx context.Context, outingID uuid.UUID, holeCount, baseHole int) (results.OperationResult, error)
	MovePlayer(ctx context.Context, outingID uuid.UUID, playerID outingdomain.PlayerID, targetGroupID outingdomain.GroupID) (results.OperationResult, error)
	ReassignMarker(ctx context.Context, outingID uuid.UUID, groupID outingdomain.GroupID, newMarkerID outingdomain.PlayerID) (results.OperationResult, error)
	ValidateSetup(ctx context.Context, outingID uuid.UUID) (results.OperationResult, error)
	BuildLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) (results.OperationResult, error)
	ExportLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error)
	RenderLeaderboardChart(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error)
	ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, whenText, timezone string) (results.OperationResult, error)
}

// Scheduler is the slice of the queue service the outing operations need.
type Scheduler interface {
	ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, startTime time.Time, payload outingevents.StartedPayloadV1) error
	CancelOutingJobs(ctx context.Context, outingID uuid.UUID) error
}
