package outinghandlers

import (
	"context"
	"errors"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
)

// HandlePlayerMoveRequested moves a player into the requested group.
func (h *OutingHandlers) HandlePlayerMoveRequested(
	ctx context.Context,
	payload *outingevents.PlayerMoveRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.MovePlayer(ctx, payload.OutingID, payload.PlayerID, payload.TargetGroupID)
	if err != nil && result.Failure == nil {
		return nil, err
	}

	if result.Failure != nil {
		failurePayload, ok := result.Failure.(*outingevents.PlayerMoveFailedPayloadV1)
		if !ok {
			return nil, errors.New("unexpected failure payload type from service")
		}
		return []handlerwrapper.Result{
			{Topic: outingevents.PlayerMoveFailedV1, Payload: failurePayload},
		}, nil
	}

	successPayload, ok := result.Success.(*outingevents.PlayerMovedPayloadV1)
	if !ok {
		return nil, errors.New("unexpected success payload type from service")
	}

	return []handlerwrapper.Result{
		{Topic: outingevents.PlayerMovedV1, Payload: successPayload},
	}, nil
}
