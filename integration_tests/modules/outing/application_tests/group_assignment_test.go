package outingintegrationtests

import (
	"testing"

	"github.com/stretchr/testify/require"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
)

func TestAutoAssignGroupsPersistsSnapshot(t *testing.T) {
	deps := SetupTestOutingService(t)
	outingID := SeedOuting(t, deps, "stroke_net", "alice", "+bob", "carol", "dave", "erin")

	result, err := deps.Service.AutoAssignGroups(deps.Ctx, outingID, 4)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	payload, ok := result.Success.(*outingevents.GroupsAssignedPayloadV1)
	require.True(t, ok)
	require.Len(t, payload.Groups, 2)
	require.Equal(t, 4, payload.Groups[0].PlayerCount)
	require.Equal(t, 1, payload.Groups[1].PlayerCount)

	groups, err := deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, []outingdomain.PlayerID{"alice", "bob", "carol", "dave"}, groups[0].PlayerIDs)
	require.NotNil(t, groups[0].MarkerID)
	require.Equal(t, outingdomain.PlayerID("alice"), *groups[0].MarkerID)

	roster, err := deps.Repo.GetRoster(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	for _, p := range roster {
		require.NotNil(t, p.GroupID, "player %s should be grouped", p.ID)
	}
}

func TestAutoAssignGroupsEmptyRoster(t *testing.T) {
	deps := SetupTestOutingService(t)
	outingID := SeedOuting(t, deps, "stroke_net")

	result, err := deps.Service.AutoAssignGroups(deps.Ctx, outingID, 4)
	require.NoError(t, err)

	failure, ok := result.Failure.(*outingevents.GroupAssignmentFailedPayloadV1)
	require.True(t, ok)
	require.Equal(t, outingID, failure.OutingID)
}

func TestShotgunStartRotatesHoles(t *testing.T) {
	deps := SetupTestOutingService(t)
	outingID := SeedOuting(t, deps, "stroke_net", "alice", "bob", "carol", "dave")

	result, err := deps.Service.AutoAssignGroups(deps.Ctx, outingID, 2)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	result, err = deps.Service.ApplyShotgunStart(deps.Ctx, outingID, 18, 1)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	groups, err := deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, 1, groups[0].StartingHole)
	require.Equal(t, 2, groups[1].StartingHole)
	require.Equal(t, "Hole 1 Start", groups[0].Name)
	require.Equal(t, "Hole 2 Start", groups[1].Name)
}

func TestMovePlayerPersistsBothGroups(t *testing.T) {
	deps := SetupTestOutingService(t)
	outingID := SeedOuting(t, deps, "stroke_net", "alice", "bob", "carol", "dave")

	result, err := deps.Service.AutoAssignGroups(deps.Ctx, outingID, 2)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	groups, err := deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	result, err = deps.Service.MovePlayer(deps.Ctx, outingID, "carol", groups[0].ID)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	groups, err = deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Contains(t, groups[0].PlayerIDs, outingdomain.PlayerID("carol"))
	require.NotContains(t, groups[1].PlayerIDs, outingdomain.PlayerID("carol"))
}

func TestReassignMarkerRejectsOutsiders(t *testing.T) {
	deps := SetupTestOutingService(t)
	outingID := SeedOuting(t, deps, "stroke_net", "alice", "bob", "carol", "dave")

	result, err := deps.Service.AutoAssignGroups(deps.Ctx, outingID, 2)
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	groups, err := deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)

	// carol sits in the second group, so she cannot mark the first.
	result, err = deps.Service.ReassignMarker(deps.Ctx, outingID, groups[0].ID, "carol")
	require.NoError(t, err)
	require.NotNil(t, result.Failure)

	result, err = deps.Service.ReassignMarker(deps.Ctx, outingID, groups[0].ID, "bob")
	require.NoError(t, err)
	require.Nil(t, result.Failure)

	groups, err = deps.Repo.GetGroups(deps.Ctx, nil, outingID)
	require.NoError(t, err)
	require.NotNil(t, groups[0].MarkerID)
	require.Equal(t, outingdomain.PlayerID("bob"), *groups[0].MarkerID)
}
