package outingdomain

import (
	"fmt"

	"github.com/google/uuid"
)

// PlayerID is the stable identifier of a roster entry.
type PlayerID string

// GroupID identifies a scoring group. Group ids are never reused across an
// assignment cycle; AutoAssignGroups mints fresh ones on every call.
type GroupID = uuid.UUID

// RoundID identifies a live scoring round owned by the external scoring
// subsystem.
type RoundID = uuid.UUID

// GroupStatus tracks a group's lifecycle. Transitions are driven by the
// scheduling/scoring side, never by the engine itself.
type GroupStatus string

const (
	GroupStatusPending  GroupStatus = "PENDING"
	GroupStatusActive   GroupStatus = "ACTIVE"
	GroupStatusComplete GroupStatus = "COMPLETE"
)

// OutingPlayer is a caller-owned roster entry. The engine only reads and
// rewrites GroupID/IsGroupMarker; it never creates or destroys players.
type OutingPlayer struct {
	ID            PlayerID `json:"player_id"`
	DisplayName   string   `json:"display_name"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
	IsGhost       bool     `json:"is_ghost"`
	GroupID       *GroupID `json:"group_id,omitempty"`
	IsGroupMarker bool     `json:"is_group_marker"`
}

// OutingGroup is a scoring group within an outing.
type OutingGroup struct {
	ID           GroupID     `json:"group_id"`
	Name         string      `json:"name"`
	PlayerIDs    []PlayerID  `json:"player_ids"`
	MarkerID     *PlayerID   `json:"marker_id,omitempty"`
	RoundID      *RoundID    `json:"round_id,omitempty"`
	StartingHole int         `json:"starting_hole"`
	Status       GroupStatus `json:"status"`
}

// LiveScoreEntry is a read-only snapshot row produced by the live scoring
// subsystem, keyed externally by round then player.
type LiveScoreEntry struct {
	CurrentGross     int  `json:"current_gross"`
	CurrentNet       int  `json:"current_net"`
	ScoreToPar       int  `json:"score_to_par"`
	Thru             int  `json:"thru"`
	StablefordPoints *int `json:"stableford_points,omitempty"`
}

// LiveScores maps round id -> player id -> current score snapshot.
type LiveScores map[RoundID]map[PlayerID]LiveScoreEntry

// LeaderboardEntry is a derived, output-only ranking row.
type LeaderboardEntry struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	GroupID     GroupID  `json:"group_id"`
	GroupName   string   `json:"group_name"`
	GrossScore  int      `json:"gross_score"`
	NetScore    int      `json:"net_score"`
	ScoreToPar  int      `json:"score_to_par"`
	Thru        int      `json:"thru"`
	FormatScore int      `json:"format_score"`
	Position    int      `json:"position"`
}

// WarningType enumerates advisory validation findings.
type WarningType string

const (
	WarningUnassignedPlayers WarningType = "unassigned_players"
	WarningGhostMarker       WarningType = "ghost_marker"
	WarningNoMarker          WarningType = "no_marker"
	WarningSmallGroup        WarningType = "small_group"
	WarningUnevenGroup       WarningType = "uneven_group"
)

// ValidationWarning is advisory only; it never blocks launching an outing.
type ValidationWarning struct {
	Type    WarningType `json:"type"`
	GroupID *GroupID    `json:"group_id,omitempty"`
	Message string      `json:"message"`
}

// ScoringFormat is a closed set of supported leaderboard formats.
type ScoringFormat string

const (
	FormatStroke     ScoringFormat = "STROKE"
	FormatStableford ScoringFormat = "STABLEFORD"
)

// ParseScoringFormat maps a caller-supplied format identifier onto the closed
// enum. Unknown identifiers are an error rather than a silent stroke-play
// fallback.
func ParseScoringFormat(formatID string) (ScoringFormat, error) {
	switch formatID {
	case "stroke", "stroke_gross", "stroke_net":
		return FormatStroke, nil
	case "stableford", "modified_stableford":
		return FormatStableford, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScoringFormat, formatID)
	}
}
