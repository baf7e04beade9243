package outingdomain

import "fmt"

const minGroupMembers = 2

// ValidateOutingSetup inspects a roster/group snapshot and emits advisory
// warnings. Findings are independent and additive; a single group can trip
// several warning types at once. Warnings never block launching the outing.
func ValidateOutingSetup(roster []OutingPlayer, groups []OutingGroup) []ValidationWarning {
	warnings := []ValidationWarning{}

	unassigned := 0
	ghosts := make(map[PlayerID]bool, len(roster))
	for _, p := range roster {
		ghosts[p.ID] = p.IsGhost
		if p.GroupID == nil {
			unassigned++
		}
	}
	if unassigned > 0 {
		warnings = append(warnings, ValidationWarning{
			Type:    WarningUnassignedPlayers,
			Message: fmt.Sprintf("%d player(s) are not assigned to a group", unassigned),
		})
	}

	minSize, maxSize := -1, -1
	for _, g := range groups {
		gid := g.ID

		if g.MarkerID != nil && ghosts[*g.MarkerID] {
			id := gid
			warnings = append(warnings, ValidationWarning{
				Type:    WarningGhostMarker,
				GroupID: &id,
				Message: fmt.Sprintf("%s has a ghost player as marker and cannot record official scores", g.Name),
			})
		}

		if !hasNonGhostMember(g, ghosts) {
			id := gid
			warnings = append(warnings, ValidationWarning{
				Type:    WarningNoMarker,
				GroupID: &id,
				Message: fmt.Sprintf("%s has no player capable of scoring", g.Name),
			})
		}

		if len(g.PlayerIDs) < minGroupMembers {
			id := gid
			warnings = append(warnings, ValidationWarning{
				Type:    WarningSmallGroup,
				GroupID: &id,
				Message: fmt.Sprintf("%s has fewer than %d players", g.Name, minGroupMembers),
			})
		}

		size := len(g.PlayerIDs)
		if minSize < 0 || size < minSize {
			minSize = size
		}
		if size > maxSize {
			maxSize = size
		}
	}

	// Fixed threshold; it deliberately does not scale with average group size.
	if len(groups) > 1 && maxSize-minSize > 1 {
		warnings = append(warnings, ValidationWarning{
			Type:    WarningUnevenGroup,
			Message: fmt.Sprintf("group sizes range from %d to %d players", minSize, maxSize),
		})
	}

	return warnings
}

func hasNonGhostMember(g OutingGroup, ghosts map[PlayerID]bool) bool {
	for _, pid := range g.PlayerIDs {
		if !ghosts[pid] {
			return true
		}
	}
	return false
}
