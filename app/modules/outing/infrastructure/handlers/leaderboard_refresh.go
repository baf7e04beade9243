package outinghandlers

import (
	"context"
	"errors"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/handlerwrapper"
)

// HandleLiveScoresUpdated rebuilds the outing leaderboard whenever the live
// scoring subsystem reports fresh numbers.
func (h *OutingHandlers) HandleLiveScoresUpdated(
	ctx context.Context,
	payload *outingevents.LiveScoresUpdatedPayloadV1,
) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload is nil")
	}

	result, err := h.service.BuildLeaderboard(ctx, payload.OutingID, payload.FormatID)
	if err != nil && result.Failure == nil {
		return nil, err
	}

	if result.Failure != nil {
		failurePayload, ok := result.Failure.(*outingevents.LeaderboardBuildFailedPayloadV1)
		if !ok {
			return nil, errors.New("unexpected failure payload type from service")
		}
		return []handlerwrapper.Result{
			{Topic: outingevents.LeaderboardBuildFailedV1, Payload: failurePayload},
		}, nil
	}

	successPayload, ok := result.Success.(*outingevents.LeaderboardUpdatedPayloadV1)
	if !ok {
		return nil, errors.New("unexpected success payload type from service")
	}

	return []handlerwrapper.Result{
		{Topic: outingevents.LeaderboardUpdatedV1, Payload: successPayload},
	}, nil
}
