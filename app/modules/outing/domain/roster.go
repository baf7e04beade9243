package outingdomain

// MovePlayerBetweenGroups removes playerID from whichever group currently
// contains it and appends it to the target group. The moved player never
// arrives as marker; if it was the source group's marker, that group gets a
// replacement drawn from its remaining members (first non-ghost preferred,
// any member otherwise, unset when the group empties). Returns rebuilt roster
// and group slices; the inputs are not mutated, so callers can keep snapshots
// for undo stacks.
func MovePlayerBetweenGroups(roster []OutingPlayer, groups []OutingGroup, playerID PlayerID, targetGroupID GroupID) ([]OutingPlayer, []OutingGroup) {
	updatedGroups := make([]OutingGroup, len(groups))
	for i, g := range groups {
		updatedGroups[i] = cloneGroup(g)
	}

	for i := range updatedGroups {
		g := &updatedGroups[i]
		if g.ID == targetGroupID {
			continue
		}
		idx := indexOfPlayer(g.PlayerIDs, playerID)
		if idx < 0 {
			continue
		}
		g.PlayerIDs = append(g.PlayerIDs[:idx], g.PlayerIDs[idx+1:]...)
		if g.MarkerID != nil && *g.MarkerID == playerID {
			g.MarkerID = chooseReplacementMarker(roster, g.PlayerIDs)
		}
	}

	for i := range updatedGroups {
		g := &updatedGroups[i]
		if g.ID != targetGroupID {
			continue
		}
		if indexOfPlayer(g.PlayerIDs, playerID) < 0 {
			g.PlayerIDs = append(g.PlayerIDs, playerID)
		}
	}

	updatedRoster := syncMarkerFlags(roster, updatedGroups)
	return updatedRoster, updatedGroups
}

// ReassignGroupMarker sets the target group's marker and syncs the marker
// flag across every member. Unlike the move path, this is a direct entry
// point, so membership is checked up front: a marker id outside the group is
// rejected instead of silently recorded.
func ReassignGroupMarker(roster []OutingPlayer, groups []OutingGroup, groupID GroupID, newMarkerID PlayerID) ([]OutingPlayer, []OutingGroup, error) {
	groupIdx := -1
	for i, g := range groups {
		if g.ID == groupID {
			groupIdx = i
			break
		}
	}
	if groupIdx < 0 {
		return nil, nil, ErrGroupNotFound
	}
	if indexOfPlayer(groups[groupIdx].PlayerIDs, newMarkerID) < 0 {
		return nil, nil, ErrMarkerNotInGroup
	}

	updatedGroups := make([]OutingGroup, len(groups))
	for i, g := range groups {
		updatedGroups[i] = cloneGroup(g)
	}
	marker := newMarkerID
	updatedGroups[groupIdx].MarkerID = &marker

	updatedRoster := syncMarkerFlags(roster, updatedGroups)
	return updatedRoster, updatedGroups, nil
}

// syncMarkerFlags rewrites GroupID and IsGroupMarker on a copied roster so
// that a player's flag is true iff its id equals its group's MarkerID.
func syncMarkerFlags(roster []OutingPlayer, groups []OutingGroup) []OutingPlayer {
	membership := make(map[PlayerID]GroupID, len(roster))
	markers := make(map[PlayerID]bool, len(groups))
	for _, g := range groups {
		for _, pid := range g.PlayerIDs {
			membership[pid] = g.ID
		}
		if g.MarkerID != nil {
			markers[*g.MarkerID] = true
		}
	}

	updated := make([]OutingPlayer, len(roster))
	for i, p := range roster {
		if gid, ok := membership[p.ID]; ok {
			id := gid
			p.GroupID = &id
		} else {
			p.GroupID = nil
		}
		p.IsGroupMarker = markers[p.ID]
		updated[i] = p
	}
	return updated
}

// chooseReplacementMarker prefers the first remaining non-ghost member,
// falls back to the first member of any kind, and returns nil for an empty
// group.
func chooseReplacementMarker(roster []OutingPlayer, remaining []PlayerID) *PlayerID {
	if len(remaining) == 0 {
		return nil
	}
	ghosts := make(map[PlayerID]bool, len(roster))
	for _, p := range roster {
		ghosts[p.ID] = p.IsGhost
	}
	for _, pid := range remaining {
		if !ghosts[pid] {
			marker := pid
			return &marker
		}
	}
	marker := remaining[0]
	return &marker
}

func cloneGroup(g OutingGroup) OutingGroup {
	playerIDs := make([]PlayerID, len(g.PlayerIDs))
	copy(playerIDs, g.PlayerIDs)
	g.PlayerIDs = playerIDs
	if g.MarkerID != nil {
		marker := *g.MarkerID
		g.MarkerID = &marker
	}
	if g.RoundID != nil {
		round := *g.RoundID
		g.RoundID = &round
	}
	return g
}

func indexOfPlayer(ids []PlayerID, id PlayerID) int {
	for i, pid := range ids {
		if pid == id {
			return i
		}
	}
	return -1
}
