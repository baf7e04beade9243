package outinghandlers

import (
	"context"
	"errors"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
)

// HandleGroupAssignmentRequested re-partitions the outing roster into groups.
func (h *OutingHandlers) HandleGroupAssignmentRequested(
	ctx context.Context,
	payload *outingevents.GroupAssignmentRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.AutoAssignGroups(ctx, payload.OutingID, payload.GroupSize)
	if err != nil && result.Failure == nil {
		return nil, err
	}

	if result.Failure != nil {
		failurePayload, ok := result.Failure.(*outingevents.GroupAssignmentFailedPayloadV1)
		if !ok {
			return nil, errors.New("unexpected failure payload type from service")
		}
		return []handlerwrapper.Result{
			{Topic: outingevents.GroupAssignmentFailedV1, Payload: failurePayload},
		}, nil
	}

	successPayload, ok := result.Success.(*outingevents.GroupsAssignedPayloadV1)
	if !ok {
		return nil, errors.New("unexpected success payload type from service")
	}

	return []handlerwrapper.Result{
		{Topic: outingevents.GroupsAssignedV1, Payload: successPayload},
	}, nil
}
