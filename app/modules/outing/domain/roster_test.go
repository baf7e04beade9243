package outingdomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// assignedFixture builds a two-group snapshot:
// Group A: alice (marker), ghost-bob, carol
// Group B: dave (marker), erin
func assignedFixture(t *testing.T) ([]OutingPlayer, []OutingGroup) {
	t.Helper()
	roster := []OutingPlayer{
		{ID: "alice", DisplayName: "Alice"},
		{ID: "ghost-bob", DisplayName: "Bob", IsGhost: true},
		{ID: "carol", DisplayName: "Carol"},
		{ID: "dave", DisplayName: "Dave"},
		{ID: "erin", DisplayName: "Erin"},
	}
	updated, groups, err := AutoAssignGroups(roster, 3)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, PlayerID("alice"), *groups[0].MarkerID)
	require.Equal(t, PlayerID("dave"), *groups[1].MarkerID)
	return updated, groups
}

func totalMembers(groups []OutingGroup) int {
	total := 0
	for _, g := range groups {
		total += len(g.PlayerIDs)
	}
	return total
}

func findGroup(t *testing.T, groups []OutingGroup, id GroupID) OutingGroup {
	t.Helper()
	for _, g := range groups {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("group %s not found", id)
	return OutingGroup{}
}

func TestMovePlayerBetweenGroups_TransfersExactlyOnce(t *testing.T) {
	roster, groups := assignedFixture(t)
	source, target := groups[0], groups[1]

	newRoster, newGroups := MovePlayerBetweenGroups(roster, groups, "carol", target.ID)

	require.Equal(t, totalMembers(groups), totalMembers(newGroups))

	newSource := findGroup(t, newGroups, source.ID)
	newTarget := findGroup(t, newGroups, target.ID)
	require.Equal(t, []PlayerID{"alice", "ghost-bob"}, newSource.PlayerIDs)
	require.Equal(t, []PlayerID{"dave", "erin", "carol"}, newTarget.PlayerIDs)

	for _, p := range newRoster {
		if p.ID == "carol" {
			require.NotNil(t, p.GroupID)
			require.Equal(t, target.ID, *p.GroupID)
			require.False(t, p.IsGroupMarker, "arrival never auto-promotes to marker")
		}
	}
}

func TestMovePlayerBetweenGroups_MarkerReassignment(t *testing.T) {
	t.Run("prefers first remaining non-ghost", func(t *testing.T) {
		roster, groups := assignedFixture(t)

		_, newGroups := MovePlayerBetweenGroups(roster, groups, "alice", groups[1].ID)

		source := findGroup(t, newGroups, groups[0].ID)
		require.NotNil(t, source.MarkerID)
		require.Equal(t, PlayerID("carol"), *source.MarkerID, "ghost-bob skipped")
	})

	t.Run("falls back to first remaining player when only ghosts remain", func(t *testing.T) {
		roster := []OutingPlayer{
			{ID: "alice"},
			{ID: "ghost-bob", IsGhost: true},
			{ID: "dave"},
		}
		updated, groups, err := AutoAssignGroups(roster, 2)
		require.NoError(t, err)

		newRoster, newGroups := MovePlayerBetweenGroups(updated, groups, "alice", groups[1].ID)

		source := findGroup(t, newGroups, groups[0].ID)
		require.NotNil(t, source.MarkerID)
		require.Equal(t, PlayerID("ghost-bob"), *source.MarkerID)

		for _, p := range newRoster {
			require.Equal(t, p.ID == "ghost-bob" || p.ID == "dave", p.IsGroupMarker)
		}
	})

	t.Run("emptied group becomes markerless", func(t *testing.T) {
		roster := []OutingPlayer{{ID: "alice"}, {ID: "dave"}}
		updated, groups, err := AutoAssignGroups(roster, 1)
		require.NoError(t, err)

		newRoster, newGroups := MovePlayerBetweenGroups(updated, groups, "alice", groups[1].ID)

		source := findGroup(t, newGroups, groups[0].ID)
		require.Empty(t, source.PlayerIDs)
		require.Nil(t, source.MarkerID)

		for _, p := range newRoster {
			if p.ID == "alice" {
				require.False(t, p.IsGroupMarker)
			}
		}
	})

	t.Run("non-marker move leaves source marker alone", func(t *testing.T) {
		roster, groups := assignedFixture(t)

		_, newGroups := MovePlayerBetweenGroups(roster, groups, "erin", groups[0].ID)

		target := findGroup(t, newGroups, groups[1].ID)
		require.NotNil(t, target.MarkerID)
		require.Equal(t, PlayerID("dave"), *target.MarkerID)
	})
}

func TestMovePlayerBetweenGroups_DoesNotMutateInputs(t *testing.T) {
	roster, groups := assignedFixture(t)

	rosterCopy := make([]OutingPlayer, len(roster))
	copy(rosterCopy, roster)
	groupsCopy := make([]OutingGroup, len(groups))
	for i, g := range groups {
		groupsCopy[i] = cloneGroup(g)
	}

	MovePlayerBetweenGroups(roster, groups, "alice", groups[1].ID)

	if diff := cmp.Diff(rosterCopy, roster); diff != "" {
		t.Errorf("roster mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(groupsCopy, groups); diff != "" {
		t.Errorf("groups mutated (-want +got):\n%s", diff)
	}
}

func TestReassignGroupMarker(t *testing.T) {
	t.Run("sets marker and syncs flags across the group", func(t *testing.T) {
		roster, groups := assignedFixture(t)

		newRoster, newGroups, err := ReassignGroupMarker(roster, groups, groups[0].ID, "carol")
		require.NoError(t, err)

		group := findGroup(t, newGroups, groups[0].ID)
		require.NotNil(t, group.MarkerID)
		require.Equal(t, PlayerID("carol"), *group.MarkerID)

		for _, p := range newRoster {
			switch p.ID {
			case "carol", "dave":
				require.True(t, p.IsGroupMarker, "%s should be a marker", p.ID)
			default:
				require.False(t, p.IsGroupMarker, "%s should not be a marker", p.ID)
			}
		}
	})

	t.Run("rejects a marker outside the group", func(t *testing.T) {
		roster, groups := assignedFixture(t)

		_, _, err := ReassignGroupMarker(roster, groups, groups[0].ID, "erin")
		require.ErrorIs(t, err, ErrMarkerNotInGroup)
	})

	t.Run("rejects an unknown group", func(t *testing.T) {
		roster, groups := assignedFixture(t)

		_, _, err := ReassignGroupMarker(roster, groups, GroupID{}, "alice")
		require.ErrorIs(t, err, ErrGroupNotFound)
	})
}
