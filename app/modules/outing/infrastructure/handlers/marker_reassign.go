package outinghandlers

import (
	"context"
	"errors"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
)

// HandleMarkerReassignRequested hands the scorecard to a different player.
func (h *OutingHandlers) HandleMarkerReassignRequested(
	ctx context.Context,
	payload *outingevents.MarkerReassignRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.ReassignMarker(ctx, payload.OutingID, payload.GroupID, payload.NewMarkerID)
	if err != nil && result.Failure == nil {
		return nil, err
	}

	if result.Failure != nil {
		failurePayload, ok := result.Failure.(*outingevents.MarkerReassignFailedPayloadV1)
		if !ok {
			return nil, errors.New("unexpected failure payload type from service")
		}
		return []handlerwrapper.Result{
			{Topic: outingevents.MarkerReassignFailedV1, Payload: failurePayload},
		}, nil
	}

	successPayload, ok := result.Success.(*outingevents.MarkerReassignedPayloadV1)
	if !ok {
		return nil, errors.New("unexpected success payload type from service")
	}

	return []handlerwrapper.Result{
		{Topic: outingevents.MarkerReassignedV1, Payload: successPayload},
	}, nil
}
