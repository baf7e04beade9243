package outingservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
)

// scoredSnapshotRepo backs a two-group outing where only the first group has
// a live round.
func scoredSnapshotRepo(t *testing.T) (*FakeRepository, outingdomain.RoundID) {
	t.Helper()

	roster, groups := fixtureSnapshot(t)
	roundID := uuid.New()
	groups[0].RoundID = &roundID
	groups[0].Status = outingdomain.GroupStatusActive

	repo := snapshotRepo(roster, groups)
	repo.GetLiveScoresFunc = func(_ context.Context, _ bun.IDB, roundIDs []outingdomain.RoundID) (outingdomain.LiveScores, error) {
		require.Equal(t, []outingdomain.RoundID{roundID}, roundIDs)
		return outingdomain.LiveScores{
			roundID: {
				"alice": {CurrentGross: 74, CurrentNet: 70, ScoreToPar: -2, Thru: 18},
				"carol": {CurrentGross: 72, CurrentNet: 70, ScoreToPar: -2, Thru: 18},
			},
		}, nil
	}
	return repo, roundID
}

func TestOutingService_BuildLeaderboard(t *testing.T) {
	outingID := uuid.New()

	t.Run("builds standings for groups with live rounds", func(t *testing.T) {
		repo, _ := scoredSnapshotRepo(t)
		svc := newTestService(repo, nil)

		result, err := svc.BuildLeaderboard(context.Background(), outingID, "stroke_net")
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		payload, ok := result.Success.(*outingevents.LeaderboardUpdatedPayloadV1)
		require.True(t, ok)
		require.Equal(t, outingdomain.FormatStroke, payload.Format)

		// Ghost bob has no score row; dave and erin have no round. Both
		// scored players are net 70, so they share position 1.
		require.Len(t, payload.Entries, 2)
		require.Equal(t, 1, payload.Entries[0].Position)
		require.Equal(t, 1, payload.Entries[1].Position)
	})

	t.Run("empty format falls back to the outing's configured format", func(t *testing.T) {
		repo, _ := scoredSnapshotRepo(t)
		repo.GetOutingFunc = func(_ context.Context, _ bun.IDB, id uuid.UUID) (*outingdb.Outing, error) {
			return &outingdb.Outing{ID: id, FormatID: "stableford"}, nil
		}
		svc := newTestService(repo, nil)

		result, err := svc.BuildLeaderboard(context.Background(), outingID, "")
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		payload, ok := result.Success.(*outingevents.LeaderboardUpdatedPayloadV1)
		require.True(t, ok)
		require.Equal(t, outingdomain.FormatStableford, payload.Format)
		require.Contains(t, repo.Trace(), "GetOuting")
	})

	t.Run("unknown format is a business failure", func(t *testing.T) {
		repo, _ := scoredSnapshotRepo(t)
		svc := newTestService(repo, nil)

		result, err := svc.BuildLeaderboard(context.Background(), outingID, "match_play")
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		payload, ok := result.Failure.(*outingevents.LeaderboardBuildFailedPayloadV1)
		require.True(t, ok)
		require.Equal(t, outingID, payload.OutingID)
	})

	t.Run("missing outing is a business failure", func(t *testing.T) {
		repo := NewFakeRepository()
		repo.GetOutingFunc = func(context.Context, bun.IDB, uuid.UUID) (*outingdb.Outing, error) {
			return nil, outingdb.ErrOutingNotFound
		}
		svc := newTestService(repo, nil)

		result, err := svc.BuildLeaderboard(context.Background(), outingID, "")
		require.NoError(t, err)
		require.True(t, result.IsFailure())
	})

	t.Run("no live rounds yields empty standings", func(t *testing.T) {
		roster, groups := fixtureSnapshot(t)
		repo := snapshotRepo(roster, groups)
		svc := newTestService(repo, nil)

		result, err := svc.BuildLeaderboard(context.Background(), outingID, "stroke_net")
		require.NoError(t, err)
		require.True(t, result.IsSuccess())

		payload, ok := result.Success.(*outingevents.LeaderboardUpdatedPayloadV1)
		require.True(t, ok)
		require.Empty(t, payload.Entries)
	})
}
