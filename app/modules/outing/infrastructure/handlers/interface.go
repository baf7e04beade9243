package outinghandlers

import (
	"context"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
)

// Handlers defines the event handlers of the outing module.
type Handlers interface {
	HandleGroupAssignmentRequested(ctx context.Context, payload *outingevents.GroupAssignmentRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePlayerMoveRequested(ctx context.Context, payload *outingevents.PlayerMoveRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleMarkerReassignRequested(ctx context.Context, payload *outingevents.MarkerReassignRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleLiveScoresUpdated(ctx context.Context, payload *outingevents.LiveScoresUpdatedPayloadV1) ([]handlerwrapper.Result, error)
}
