package outingdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
)

// Outing is the event record owning a roster and its groups.
type Outing struct {
	bun.BaseModel `bun:"table:outings,alias:o"`

	ID             uuid.UUID  `bun:"id,pk,type:uuid"`
	Name           string     `bun:"name,notnull"`
	CourseHoles    int        `bun:"course_holes,notnull,default:18"`
	FormatID       string     `bun:"format_id,notnull,default:'stroke_net'"`
	ScheduledStart *time.Time `bun:"scheduled_start,nullzero"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// OutingPlayerRow persists one roster entry. RosterOrder preserves the
// original roster ordering the assignment engine depends on.
type OutingPlayerRow struct {
	bun.BaseModel `bun:"table:outing_players,alias:op"`

	OutingID      uuid.UUID             `bun:"outing_id,pk,type:uuid"`
	PlayerID      outingdomain.PlayerID `bun:"player_id,pk"`
	RosterOrder   int                   `bun:"roster_order,notnull"`
	DisplayName   string                `bun:"display_name,notnull"`
	AvatarURL     string                `bun:"avatar_url,nullzero"`
	IsGhost       bool                  `bun:"is_ghost,notnull,default:false"`
	GroupID       *outingdomain.GroupID `bun:"group_id,type:uuid,nullzero"`
	IsGroupMarker bool                  `bun:"is_group_marker,notnull,default:false"`
}

// OutingGroupRow persists one scoring group. Seq preserves assignment order
// so shotgun hole rotation stays stable across reloads.
type OutingGroupRow struct {
	bun.BaseModel `bun:"table:outing_groups,alias:og"`

	ID           outingdomain.GroupID     `bun:"id,pk,type:uuid"`
	OutingID     uuid.UUID                `bun:"outing_id,notnull,type:uuid"`
	Seq          int                      `bun:"seq,notnull"`
	Name         string                   `bun:"name,notnull"`
	PlayerIDs    []outingdomain.PlayerID  `bun:"player_ids,type:jsonb"`
	MarkerID     *outingdomain.PlayerID   `bun:"marker_id,nullzero"`
	RoundID      *outingdomain.RoundID    `bun:"round_id,type:uuid,nullzero"`
	StartingHole int                      `bun:"starting_hole,notnull,default:1"`
	Status       outingdomain.GroupStatus `bun:"status,notnull,default:'PENDING'"`
}

// LiveScoreRow mirrors the live scoring subsystem's per-round score table.
// This service only reads it.
type LiveScoreRow struct {
	bun.BaseModel `bun:"table:live_scores,alias:ls"`

	RoundID          outingdomain.RoundID  `bun:"round_id,pk,type:uuid"`
	PlayerID         outingdomain.PlayerID `bun:"player_id,pk"`
	CurrentGross     int                   `bun:"current_gross,notnull"`
	CurrentNet       int                   `bun:"current_net,notnull"`
	ScoreToPar       int                   `bun:"score_to_par,notnull"`
	Thru             int                   `bun:"thru,notnull,default:0"`
	StablefordPoints *int                  `bun:"stableford_points,nullzero"`
	UpdatedAt        time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *OutingPlayerRow) toDomain() outingdomain.OutingPlayer {
	return outingdomain.OutingPlayer{
		ID:            r.PlayerID,
		DisplayName:   r.DisplayName,
		AvatarURL:     r.AvatarURL,
		IsGhost:       r.IsGhost,
		GroupID:       r.GroupID,
		IsGroupMarker: r.IsGroupMarker,
	}
}

func (r *OutingGroupRow) toDomain() outingdomain.OutingGroup {
	return outingdomain.OutingGroup{
		ID:           r.ID,
		Name:         r.Name,
		PlayerIDs:    r.PlayerIDs,
		MarkerID:     r.MarkerID,
		RoundID:      r.RoundID,
		StartingHole: r.StartingHole,
		Status:       r.Status,
	}
}
