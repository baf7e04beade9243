package outingdomain

import (
	"fmt"

	"github.com/google/uuid"
)

// AutoAssignGroups partitions the roster into consecutive chunks of at most
// groupSize, preserving roster order. Each chunk becomes a fresh group named
// sequentially, with the first non-ghost player as marker (the chunk's first
// player when every member is a ghost). Returns rebuilt roster and group
// slices; the inputs are not mutated.
func AutoAssignGroups(roster []OutingPlayer, groupSize int) ([]OutingPlayer, []OutingGroup, error) {
	if len(roster) == 0 {
		return nil, nil, ErrEmptyRoster
	}
	if groupSize < 1 {
		return nil, nil, ErrInvalidGroupSize
	}

	groupCount := (len(roster) + groupSize - 1) / groupSize
	groups := make([]OutingGroup, 0, groupCount)
	updated := make([]OutingPlayer, len(roster))
	copy(updated, roster)

	for start := 0; start < len(updated); start += groupSize {
		end := start + groupSize
		if end > len(updated) {
			end = len(updated)
		}
		chunk := updated[start:end]

		groupID := uuid.New()
		markerID := selectMarker(chunk)

		playerIDs := make([]PlayerID, len(chunk))
		for i := range chunk {
			gid := groupID
			chunk[i].GroupID = &gid
			chunk[i].IsGroupMarker = chunk[i].ID == markerID
			playerIDs[i] = chunk[i].ID
		}

		marker := markerID
		groups = append(groups, OutingGroup{
			ID:           groupID,
			Name:         fmt.Sprintf("Group %d", len(groups)+1),
			PlayerIDs:    playerIDs,
			MarkerID:     &marker,
			StartingHole: 1,
			Status:       GroupStatusPending,
		})
	}

	return updated, groups, nil
}

// selectMarker picks the first non-ghost player, falling back to the chunk's
// first player when everyone is a ghost.
func selectMarker(chunk []OutingPlayer) PlayerID {
	for _, p := range chunk {
		if !p.IsGhost {
			return p.ID
		}
	}
	return chunk[0].ID
}

// ShotgunAssignStartingHoles assigns starting holes cyclically across the
// course and renames each group after its tee. More groups than holes means
// holes are intentionally shared; shotgun outings routinely send two groups
// off the same tee. The input slice is not mutated.
func ShotgunAssignStartingHoles(groups []OutingGroup, holeCount, baseHole int) []OutingGroup {
	if holeCount < 1 {
		holeCount = 1
	}
	updated := make([]OutingGroup, len(groups))
	for i, g := range groups {
		hole := baseHole + (i % holeCount)
		g.StartingHole = hole
		g.Name = fmt.Sprintf("Hole %d Start", hole)
		updated[i] = g
	}
	return updated
}
