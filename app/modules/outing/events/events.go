// Package outingevents defines the versioned topics and payloads of the
// outing module.
package outingevents

import (
	"time"

	"github.com/google/uuid"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
)

// Stream groups all outing subjects under one JetStream stream.
const (
	Stream = "outing"
)

// Inbound command topics.
const (
	GroupAssignmentRequestedV1 = "outing.group.assignment.requested.v1"
	PlayerMoveRequestedV1      = "outing.player.move.requested.v1"
	MarkerReassignRequestedV1  = "outing.marker.reassign.requested.v1"
	LiveScoresUpdatedV1        = "outing.live.scores.updated.v1"
)

// Outbound topics.
const (
	GroupsAssignedV1         = "outing.groups.assigned.v1"
	GroupAssignmentFailedV1  = "outing.group.assignment.failed.v1"
	ShotgunAppliedV1         = "outing.shotgun.applied.v1"
	PlayerMovedV1            = "outing.player.moved.v1"
	PlayerMoveFailedV1       = "outing.player.move.failed.v1"
	MarkerReassignedV1       = "outing.marker.reassigned.v1"
	MarkerReassignFailedV1   = "outing.marker.reassign.failed.v1"
	ValidationReportV1       = "outing.validation.report.v1"
	LeaderboardUpdatedV1     = "outing.leaderboard.updated.v1"
	LeaderboardBuildFailedV1 = "outing.leaderboard.build.failed.v1"
	StartScheduledV1         = "outing.start.scheduled.v1"
	StartScheduleFailedV1    = "outing.start.schedule.failed.v1"
	StartedV1                = "outing.started.v1"
)

// GroupAssignmentRequestedPayloadV1 asks for a fresh auto-assignment of the
// outing roster.
type GroupAssignmentRequestedPayloadV1 struct {
	OutingID  uuid.UUID `json:"outing_id"`
	GroupSize int       `json:"group_size"`
}

// GroupSummaryV1 is the per-group slice of an assignment result.
type GroupSummaryV1 struct {
	GroupID      outingdomain.GroupID   `json:"group_id"`
	Name         string                 `json:"name"`
	PlayerCount  int                    `json:"player_count"`
	MarkerID     *outingdomain.PlayerID `json:"marker_id,omitempty"`
	StartingHole int                    `json:"starting_hole"`
}

type GroupsAssignedPayloadV1 struct {
	OutingID uuid.UUID        `json:"outing_id"`
	Groups   []GroupSummaryV1 `json:"groups"`
}

type GroupAssignmentFailedPayloadV1 struct {
	OutingID uuid.UUID `json:"outing_id"`
	Reason   string    `json:"reason"`
}

type PlayerMoveRequestedPayloadV1 struct {
	OutingID      uuid.UUID             `json:"outing_id"`
	PlayerID      outingdomain.PlayerID `json:"player_id"`
	TargetGroupID outingdomain.GroupID  `json:"target_group_id"`
}

type PlayerMovedPayloadV1 struct {
	OutingID      uuid.UUID             `json:"outing_id"`
	PlayerID      outingdomain.PlayerID `json:"player_id"`
	TargetGroupID outingdomain.GroupID  `json:"target_group_id"`
	// Warnings is the post-move advisory validation snapshot, so setup
	// screens can refresh messaging without a second round trip.
	Warnings []outingdomain.ValidationWarning `json:"warnings,omitempty"`
}

type PlayerMoveFailedPayloadV1 struct {
	OutingID uuid.UUID             `json:"outing_id"`
	PlayerID outingdomain.PlayerID `json:"player_id"`
	Reason   string                `json:"reason"`
}

type MarkerReassignRequestedPayloadV1 struct {
	OutingID    uuid.UUID             `json:"outing_id"`
	GroupID     outingdomain.GroupID  `json:"group_id"`
	NewMarkerID outingdomain.PlayerID `json:"new_marker_id"`
}

type MarkerReassignedPayloadV1 struct {
	OutingID    uuid.UUID             `json:"outing_id"`
	GroupID     outingdomain.GroupID  `json:"group_id"`
	NewMarkerID outingdomain.PlayerID `json:"new_marker_id"`
}

type MarkerReassignFailedPayloadV1 struct {
	OutingID uuid.UUID            `json:"outing_id"`
	GroupID  outingdomain.GroupID `json:"group_id"`
	Reason   string               `json:"reason"`
}

// LiveScoresUpdatedPayloadV1 is emitted by the live scoring subsystem when a
// round's score table changes.
type LiveScoresUpdatedPayloadV1 struct {
	OutingID uuid.UUID            `json:"outing_id"`
	RoundID  outingdomain.RoundID `json:"round_id"`
	FormatID string               `json:"format_id"`
}

type LeaderboardUpdatedPayloadV1 struct {
	OutingID uuid.UUID                       `json:"outing_id"`
	Format   outingdomain.ScoringFormat      `json:"format"`
	Entries  []outingdomain.LeaderboardEntry `json:"entries"`
}

type LeaderboardBuildFailedPayloadV1 struct {
	OutingID uuid.UUID `json:"outing_id"`
	Reason   string    `json:"reason"`
}

// ValidationReportPayloadV1 carries the advisory warning snapshot for an
// outing's current setup.
type ValidationReportPayloadV1 struct {
	OutingID uuid.UUID                        `json:"outing_id"`
	Warnings []outingdomain.ValidationWarning `json:"warnings"`
}

// StartScheduledPayloadV1 confirms a future start has been queued.
type StartScheduledPayloadV1 struct {
	OutingID  uuid.UUID `json:"outing_id"`
	StartTime time.Time `json:"start_time"`
}

type StartScheduleFailedPayloadV1 struct {
	OutingID uuid.UUID `json:"outing_id"`
	Reason   string    `json:"reason"`
}

// StartedPayloadV1 announces that a scheduled outing's groups went active.
type StartedPayloadV1 struct {
	OutingID uuid.UUID `json:"outing_id"`
}
