package outinghandlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace/noop"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	"github.com/fairway-social/outing-engine/internal/observability/outingmetrics"
	"github.com/fairway-social/outing-engine/internal/results"
	"github.com/fairway-social/outing-engine/internal/utils"
)

// FakeService provides a programmable stub for the outingservice.Service
// interface.
type FakeService struct {
	AutoAssignGroupsFunc       func(ctx context.Context, outingID uuid.UUID, groupSize int) (results.OperationResult, error)
	ApplyShotgunStartFunc      func(ctx context.Context, outingID uuid.UUID, holeCount, baseHole int) (results.OperationResult, error)
	MovePlayerFunc             func(ctx context.Context, outingID uuid.UUID, playerID outingdomain.PlayerID, targetGroupID outingdomain.GroupID) (results.OperationResult, error)
	ReassignMarkerFunc         func(ctx context.Context, outingID uuid.UUID, groupID outingdomain.GroupID, newMarkerID outingdomain.PlayerID) (results.OperationResult, error)
	ValidateSetupFunc          func(ctx context.Context, outingID uuid.UUID) (results.OperationResult, error)
	BuildLeaderboardFunc       func(ctx context.Context, outingID uuid.UUID, formatID string) (results.OperationResult, error)
	ExportLeaderboardFunc      func(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error)
	RenderLeaderboardChartFunc func(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error)
	ScheduleOutingStartFunc    func(ctx context.Context, outingID uuid.UUID, whenText, timezone string) (results.OperationResult, error)
}

func (f *FakeService) AutoAssignGroups(ctx context.Context, outingID uuid.UUID, groupSize int) (results.OperationResult, error) {
	if f.AutoAssignGroupsFunc != nil {
		return f.AutoAssignGroupsFunc(ctx, outingID, groupSize)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) ApplyShotgunStart(ctx context.Context, outingID uuid.UUID, holeCount, baseHole int) (results.OperationResult, error) {
	if f.ApplyShotgunStartFunc != nil {
		return f.ApplyShotgunStartFunc(ctx, outingID, holeCount, baseHole)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) MovePlayer(ctx context.Context, outingID uuid.UUID, playerID outingdomain.PlayerID, targetGroupID outingdomain.GroupID) (results.OperationResult, error) {
	if f.MovePlayerFunc != nil {
		return f.MovePlayerFunc(ctx, outingID, playerID, targetGroupID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) ReassignMarker(ctx context.Context, outingID uuid.UUID, groupID outingdomain.GroupID, newMarkerID outingdomain.PlayerID) (results.OperationResult, error) {
	if f.ReassignMarkerFunc != nil {
		return f.ReassignMarkerFunc(ctx, outingID, groupID, newMarkerID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) ValidateSetup(ctx context.Context, outingID uuid.UUID) (results.OperationResult, error) {
	if f.ValidateSetupFunc != nil {
		return f.ValidateSetupFunc(ctx, outingID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) BuildLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) (results.OperationResult, error) {
	if f.BuildLeaderboardFunc != nil {
		return f.BuildLeaderboardFunc(ctx, outingID, formatID)
	}
	return results.OperationResult{}, nil
}

func (f *FakeService) ExportLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error) {
	if f.ExportLeaderboardFunc != nil {
		return f.ExportLeaderboardFunc(ctx, outingID, formatID)
	}
	return nil, nil
}

func (f *FakeService) RenderLeaderboardChart(ctx context.Context, outingID uuid.UUID, formatID string) ([]byte, error) {
	if f.RenderLeaderboardChartFunc != nil {
		return f.RenderLeaderboardChartFunc(ctx, outingID, formatID)
	}
	return nil, nil
}

func (f *FakeService) ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, whenText, timezone string) (results.OperationResult, error) {
	if f.ScheduleOutingStartFunc != nil {
		return f.ScheduleOutingStartFunc(ctx, outingID, whenText, timezone)
	}
	return results.OperationResult{}, nil
}

var _ outingservice.Service = (*FakeService)(nil)

func newTestHandlers(svc outingservice.Service) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewOutingHandlers(svc, logger, tracer, utils.NewHelpers(), outingmetrics.NoOpMetrics{})
}
