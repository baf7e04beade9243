package outingservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
	"github.com/fairway-social/outing-engine/internal/results"
)

// BuildLeaderboard assembles the outing-wide standings from the persisted
// snapshot and the live score tables. Groups without a round id and players
// without score rows are skipped, never zero-filled.
func (s *OutingService) BuildLeaderboard(ctx context.Context, outingID uuid.UUID, formatID string) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "build_leaderboard", outingID, func(ctx context.Context) (results.OperationResult, error) {
		format, entries, err := s.buildEntries(ctx, outingID, formatID)
		if err != nil {
			if errors.Is(err, outingdb.ErrOutingNotFound) || errors.Is(err, outingdomain.ErrUnknownScoringFormat) {
				return results.OperationResult{Failure: &outingevents.LeaderboardBuildFailedPayloadV1{
					OutingID: outingID,
					Reason:   err.Error(),
				}}, nil
			}
			return results.OperationResult{}, err
		}

		s.metrics.RecordLeaderboardBuild(ctx, string(format), len(entries))

		return results.OperationResult{Success: &outingevents.LeaderboardUpdatedPayloadV1{
			OutingID: outingID,
			Format:   format,
			Entries:  entries,
		}}, nil
	})
}

// buildEntries loads everything the domain builder needs. An empty formatID
// falls back to the outing's configured format.
func (s *OutingService) buildEntries(ctx context.Context, outingID uuid.UUID, formatID string) (outingdomain.ScoringFormat, []outingdomain.LeaderboardEntry, error) {
	if formatID == "" {
		outing, err := s.repo.GetOuting(ctx, nil, outingID)
		if err != nil {
			return "", nil, err
		}
		formatID = outing.FormatID
	}

	format, err := outingdomain.ParseScoringFormat(formatID)
	if err != nil {
		return "", nil, err
	}

	roster, groups, err := s.loadSnapshot(ctx, nil, outingID)
	if err != nil {
		return "", nil, err
	}

	roundIDs := make([]outingdomain.RoundID, 0, len(groups))
	for _, g := range groups {
		if g.RoundID != nil {
			roundIDs = append(roundIDs, *g.RoundID)
		}
	}

	liveScores, err := s.repo.GetLiveScores(ctx, nil, roundIDs)
	if err != nil {
		return "", nil, err
	}

	return format, outingdomain.BuildOutingLeaderboard(roster, groups, liveScores, format), nil
}
