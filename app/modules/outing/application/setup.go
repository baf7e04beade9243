package outingservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/results"
)

// AutoAssignGroups partitions the outing roster into fresh groups and persists
// the snapshot. Any prior grouping is discarded.
func (s *OutingService) AutoAssignGroups(ctx context.Context, outingID uuid.UUID, groupSize int) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "auto_assign_groups", outingID, func(ctx context.Context) (results.OperationResult, error) {
		return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult, error) {
			roster, err := s.repo.GetRoster(ctx, db, outingID)
			if err != nil {
				return results.OperationResult{}, err
			}

			newRoster, groups, err := outingdomain.AutoAssignGroups(roster, groupSize)
			if err != nil {
				if errors.Is(err, outingdomain.ErrEmptyRoster) || errors.Is(err, outingdomain.ErrInvalidGroupSize) {
					return results.OperationResult{Failure: &outingevents.GroupAssignmentFailedPayloadV1{
						OutingID: outingID,
						Reason:   err.Error(),
					}}, nil
				}
				return results.OperationResult{}, err
			}

			if err := s.repo.SaveSnapshot(ctx, db, outingID, newRoster, groups); err != nil {
				return results.OperationResult{}, err
			}

			return results.OperationResult{Success: &outingevents.GroupsAssignedPayloadV1{
				OutingID: outingID,
				Groups:   summarizeGroups(groups),
			}}, nil
		})
	})
}

// ApplyShotgunStart rotates starting holes across the existing groups.
func (s *OutingService) ApplyShotgunStart(ctx context.Context, outingID uuid.UUID, holeCount, baseHole int) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "apply_shotgun_start", outingID, func(ctx context.Context) (results.OperationResult, error) {
		return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult, error) {
			if holeCount < 1 {
				return results.OperationResult{Failure: &outingevents.GroupAssignmentFailedPayloadV1{
					OutingID: outingID,
					Reason:   fmt.Sprintf("invalid hole count %d", holeCount),
				}}, nil
			}
			if baseHole < 1 {
				baseHole = 1
			}

			roster, err := s.repo.GetRoster(ctx, db, outingID)
			if err != nil {
				return results.OperationResult{}, err
			}
			groups, err := s.repo.GetGroups(ctx, db, outingID)
			if err != nil {
				return results.OperationResult{}, err
			}

			staggered := outingdomain.ShotgunAssignStartingHoles(groups, holeCount, baseHole)

			if err := s.repo.SaveSnapshot(ctx, db, outingID, roster, staggered); err != nil {
				return results.OperationResult{}, err
			}

			return results.OperationResult{Success: &outingevents.GroupsAssignedPayloadV1{
				OutingID: outingID,
				Groups:   summarizeGroups(staggered),
			}}, nil
		})
	})
}

// MovePlayer transfers a player into the target group, removing them from any
// other group and reassigning markers as needed.
func (s *OutingService) MovePlayer(ctx context.Context, outingID uuid.UUID, playerID outingdomain.PlayerID, targetGroupID outingdomain.GroupID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "move_player", outingID, func(ctx context.Context) (results.OperationResult, error) {
		return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult, error) {
			roster, groups, err := s.loadSnapshot(ctx, db, outingID)
			if err != nil {
				return results.OperationResult{}, err
			}

			if indexOfGroup(groups, targetGroupID) < 0 {
				return results.OperationResult{Failure: &outingevents.PlayerMoveFailedPayloadV1{
					OutingID: outingID,
					PlayerID: playerID,
					Reason:   fmt.Sprintf("group %s not found", targetGroupID),
				}}, nil
			}
			if !rosterContains(roster, playerID) {
				return results.OperationResult{Failure: &outingevents.PlayerMoveFailedPayloadV1{
					OutingID: outingID,
					PlayerID: playerID,
					Reason:   fmt.Sprintf("player %s is not on the roster", playerID),
				}}, nil
			}

			newRoster, newGroups := outingdomain.MovePlayerBetweenGroups(roster, groups, playerID, targetGroupID)

			if err := s.repo.SaveSnapshot(ctx, db, outingID, newRoster, newGroups); err != nil {
				return results.OperationResult{}, err
			}

			return results.OperationResult{Success: &outingevents.PlayerMovedPayloadV1{
				OutingID:      outingID,
				PlayerID:      playerID,
				TargetGroupID: targetGroupID,
				Warnings:      outingdomain.ValidateOutingSetup(newRoster, newGroups),
			}}, nil
		})
	})
}

// ReassignMarker makes the named player the scorekeeper of their group.
func (s *OutingService) ReassignMarker(ctx context.Context, outingID uuid.UUID, groupID outingdomain.GroupID, newMarkerID outingdomain.PlayerID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "reassign_marker", outingID, func(ctx context.Context) (results.OperationResult, error) {
		return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult, error) {
			roster, groups, err := s.loadSnapshot(ctx, db, outingID)
			if err != nil {
				return results.OperationResult{}, err
			}

			newRoster, newGroups, err := outingdomain.ReassignGroupMarker(roster, groups, groupID, newMarkerID)
			if err != nil {
				if errors.Is(err, outingdomain.ErrGroupNotFound) || errors.Is(err, outingdomain.ErrMarkerNotInGroup) {
					return results.OperationResult{Failure: &outingevents.MarkerReassignFailedPayloadV1{
						OutingID: outingID,
						GroupID:  groupID,
						Reason:   err.Error(),
					}}, nil
				}
				return results.OperationResult{}, err
			}

			if err := s.repo.SaveSnapshot(ctx, db, outingID, newRoster, newGroups); err != nil {
				return results.OperationResult{}, err
			}

			return results.OperationResult{Success: &outingevents.MarkerReassignedPayloadV1{
				OutingID:    outingID,
				GroupID:     groupID,
				NewMarkerID: newMarkerID,
			}}, nil
		})
	})
}

// ValidateSetup reports advisory warnings for the outing's current grouping.
// Warnings never block anything.
func (s *OutingService) ValidateSetup(ctx context.Context, outingID uuid.UUID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "validate_setup", outingID, func(ctx context.Context) (results.OperationResult, error) {
		roster, groups, err := s.loadSnapshot(ctx, nil, outingID)
		if err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: &outingevents.ValidationReportPayloadV1{
			OutingID: outingID,
			Warnings: outingdomain.ValidateOutingSetup(roster, groups),
		}}, nil
	})
}

func (s *OutingService) loadSnapshot(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingPlayer, []outingdomain.OutingGroup, error) {
	roster, err := s.repo.GetRoster(ctx, db, outingID)
	if err != nil {
		return nil, nil, err
	}
	groups, err := s.repo.GetGroups(ctx, db, outingID)
	if err != nil {
		return nil, nil, err
	}
	return roster, groups, nil
}

func summarizeGroups(groups []outingdomain.OutingGroup) []outingevents.GroupSummaryV1 {
	summaries := make([]outingevents.GroupSummaryV1, len(groups))
	for i, g := range groups {
		summaries[i] = outingevents.GroupSummaryV1{
			GroupID:      g.ID,
			Name:         g.Name,
			PlayerCount:  len(g.PlayerIDs),
			MarkerID:     g.MarkerID,
			StartingHole: g.StartingHole,
		}
	}
	return summaries
}

func indexOfGroup(groups []outingdomain.OutingGroup, id outingdomain.GroupID) int {
	for i := range groups {
		if groups[i].ID == id {
			return i
		}
	}
	return -1
}

func rosterContains(roster []outingdomain.OutingPlayer, id outingdomain.PlayerID) bool {
	for i := range roster {
		if roster[i].ID == id {
			return true
		}
	}
	return false
}
