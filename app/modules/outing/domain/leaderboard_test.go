package outingdomain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// scoredFixture builds one active group with a round id plus a pending group
// without one.
func scoredFixture(t *testing.T, playerIDs ...PlayerID) ([]OutingPlayer, []OutingGroup, RoundID) {
	t.Helper()
	roster := make([]OutingPlayer, 0, len(playerIDs)+2)
	for _, pid := range playerIDs {
		roster = append(roster, OutingPlayer{ID: pid, DisplayName: string(pid)})
	}
	roster = append(roster,
		OutingPlayer{ID: "pending-1", DisplayName: "Pending One"},
		OutingPlayer{ID: "pending-2", DisplayName: "Pending Two"},
	)

	updated, groups, err := AutoAssignGroups(roster, len(playerIDs))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	roundID := uuid.New()
	groups[0].RoundID = &roundID
	groups[0].Status = GroupStatusActive
	return updated, groups, roundID
}

func TestBuildOutingLeaderboard_StrokeCompetitionRanking(t *testing.T) {
	roster, groups, roundID := scoredFixture(t, "p1", "p2", "p3", "p4")

	scores := LiveScores{
		roundID: {
			"p1": {CurrentGross: 74, CurrentNet: 70, ScoreToPar: -2, Thru: 18},
			"p2": {CurrentGross: 72, CurrentNet: 70, ScoreToPar: -2, Thru: 18},
			"p3": {CurrentGross: 75, CurrentNet: 71, ScoreToPar: -1, Thru: 18},
			"p4": {CurrentGross: 80, CurrentNet: 74, ScoreToPar: 2, Thru: 18},
		},
	}

	entries := BuildOutingLeaderboard(roster, groups, scores, FormatStroke)
	require.Len(t, entries, 4)

	// Gross orders the tied pair but does not affect position numbers.
	require.Equal(t, PlayerID("p2"), entries[0].PlayerID)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, PlayerID("p1"), entries[1].PlayerID)
	require.Equal(t, 1, entries[1].Position, "both net-70 players share position 1")
	require.Equal(t, PlayerID("p3"), entries[2].PlayerID)
	require.Equal(t, 3, entries[2].Position, "rank after a tie group is skipped")
	require.Equal(t, PlayerID("p4"), entries[3].PlayerID)
	require.Equal(t, 4, entries[3].Position)
}

func TestBuildOutingLeaderboard_GrossNeverDrivesPositions(t *testing.T) {
	roster, groups, roundID := scoredFixture(t, "p1", "p2")

	scores := LiveScores{
		roundID: {
			"p1": {CurrentGross: 74, CurrentNet: 70},
			"p2": {CurrentGross: 72, CurrentNet: 70},
		},
	}

	entries := BuildOutingLeaderboard(roster, groups, scores, FormatStroke)
	require.Len(t, entries, 2)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, 1, entries[1].Position)
}

func TestBuildOutingLeaderboard_StablefordDescendingWithTies(t *testing.T) {
	roster, groups, roundID := scoredFixture(t, "p1", "p2", "p3", "p4")

	scores := LiveScores{
		roundID: {
			"p1": {CurrentGross: 80, CurrentNet: 76, StablefordPoints: intPtr(31)},
			"p2": {CurrentGross: 74, CurrentNet: 70, StablefordPoints: intPtr(38)},
			"p3": {CurrentGross: 76, CurrentNet: 72, StablefordPoints: intPtr(38)},
			"p4": {CurrentGross: 90, CurrentNet: 86, StablefordPoints: intPtr(22)},
		},
	}

	entries := BuildOutingLeaderboard(roster, groups, scores, FormatStableford)
	require.Len(t, entries, 4)

	require.Equal(t, 38, entries[0].FormatScore)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, 38, entries[1].FormatScore)
	require.Equal(t, 1, entries[1].Position, "tie inherits predecessor position under descending sort")
	require.Equal(t, 31, entries[2].FormatScore)
	require.Equal(t, 3, entries[2].Position)
	require.Equal(t, 22, entries[3].FormatScore)
	require.Equal(t, 4, entries[3].Position)
}

func TestBuildOutingLeaderboard_MissingStablefordPointsScoreZero(t *testing.T) {
	roster, groups, roundID := scoredFixture(t, "p1", "p2")

	scores := LiveScores{
		roundID: {
			"p1": {CurrentNet: 70, StablefordPoints: intPtr(35)},
			"p2": {CurrentNet: 72},
		},
	}

	entries := BuildOutingLeaderboard(roster, groups, scores, FormatStableford)
	require.Len(t, entries, 2)
	require.Equal(t, PlayerID("p1"), entries[0].PlayerID)
	require.Equal(t, 0, entries[1].FormatScore)
}

func TestBuildOutingLeaderboard_SkipsMissingData(t *testing.T) {
	t.Run("group without a round id emits nothing", func(t *testing.T) {
		roster, groups, roundID := scoredFixture(t, "p1", "p2")

		scores := LiveScores{
			roundID: {
				"p1":        {CurrentNet: 70},
				"p2":        {CurrentNet: 72},
				"pending-1": {CurrentNet: 68},
			},
		}

		entries := BuildOutingLeaderboard(roster, groups, scores, FormatStroke)
		require.Len(t, entries, 2)
		for _, e := range entries {
			require.NotEqual(t, PlayerID("pending-1"), e.PlayerID)
		}
	})

	t.Run("round with an empty score table emits nothing", func(t *testing.T) {
		roster, groups, roundID := scoredFixture(t, "p1", "p2")

		entries := BuildOutingLeaderboard(roster, groups, LiveScores{roundID: {}}, FormatStroke)
		require.Empty(t, entries)
	})

	t.Run("round absent from the snapshot emits nothing", func(t *testing.T) {
		roster, groups, _ := scoredFixture(t, "p1", "p2")

		entries := BuildOutingLeaderboard(roster, groups, LiveScores{}, FormatStroke)
		require.Empty(t, entries)
	})

	t.Run("player without a score entry is skipped", func(t *testing.T) {
		roster, groups, roundID := scoredFixture(t, "p1", "p2", "p3")

		scores := LiveScores{roundID: {"p2": {CurrentNet: 71}}}

		entries := BuildOutingLeaderboard(roster, groups, scores, FormatStroke)
		require.Len(t, entries, 1)
		require.Equal(t, PlayerID("p2"), entries[0].PlayerID)
		require.Equal(t, 1, entries[0].Position)
	})
}

func TestBuildOutingLeaderboard_CarriesGroupAndPlayerFields(t *testing.T) {
	roster, groups, roundID := scoredFixture(t, "p1", "p2")

	scores := LiveScores{
		roundID: {"p1": {CurrentGross: 72, CurrentNet: 69, ScoreToPar: -3, Thru: 12}},
	}

	entries := BuildOutingLeaderboard(roster, groups, scores, FormatStroke)
	require.Len(t, entries, 1)

	e := entries[0]
	require.Equal(t, groups[0].ID, e.GroupID)
	require.Equal(t, groups[0].Name, e.GroupName)
	require.Equal(t, "p1", e.DisplayName)
	require.Equal(t, 72, e.GrossScore)
	require.Equal(t, 69, e.NetScore)
	require.Equal(t, -3, e.ScoreToPar)
	require.Equal(t, 12, e.Thru)
	require.Equal(t, 69, e.FormatScore)
}

func TestParseScoringFormat(t *testing.T) {
	tests := []struct {
		formatID string
		want     ScoringFormat
		wantErr  bool
	}{
		{formatID: "stroke_net", want: FormatStroke},
		{formatID: "stroke_gross", want: FormatStroke},
		{formatID: "stroke", want: FormatStroke},
		{formatID: "stableford", want: FormatStableford},
		{formatID: "modified_stableford", want: FormatStableford},
		{formatID: "stablefordd", wantErr: true},
		{formatID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.formatID, func(t *testing.T) {
			got, err := ParseScoringFormat(tt.formatID)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownScoringFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
