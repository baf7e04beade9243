package outingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
)

// Impl is the bun-backed Repository.
type Impl struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

var _ Repository = (*Impl)(nil)

func (r *Impl) GetOuting(ctx context.Context, db bun.IDB, outingID uuid.UUID) (*Outing, error) {
	if db == nil {
		db = r.db
	}
	outing := new(Outing)
	err := db.NewSelect().
		Model(outing).
		Where("id = ?", outingID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOutingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outing: %w", err)
	}
	return outing, nil
}

func (r *Impl) GetRoster(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingPlayer, error) {
	if db == nil {
		db = r.db
	}
	var rows []OutingPlayerRow
	err := db.NewSelect().
		Model(&rows).
		Where("outing_id = ?", outingID).
		Order("roster_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}

	roster := make([]outingdomain.OutingPlayer, len(rows))
	for i := range rows {
		roster[i] = rows[i].toDomain()
	}
	return roster, nil
}

func (r *Impl) GetGroups(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingGroup, error) {
	if db == nil {
		db = r.db
	}
	var rows []OutingGroupRow
	err := db.NewSelect().
		Model(&rows).
		Where("outing_id = ?", outingID).
		Order("seq ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}

	groups := make([]outingdomain.OutingGroup, len(rows))
	for i := range rows {
		groups[i] = rows[i].toDomain()
	}
	return groups, nil
}

// SaveSnapshot replaces the outing's group rows and rewrites the engine-owned
// player fields in one transaction. Groups are replaced wholesale because
// group ids are never reused across an assignment cycle.
func (r *Impl) SaveSnapshot(ctx context.Context, db bun.IDB, outingID uuid.UUID, roster []outingdomain.OutingPlayer, groups []outingdomain.OutingGroup) error {
	if db == nil {
		db = r.db
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*OutingGroupRow)(nil)).
			Where("outing_id = ?", outingID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear groups: %w", err)
		}

		if len(groups) > 0 {
			rows := make([]*OutingGroupRow, len(groups))
			for i, g := range groups {
				rows[i] = &OutingGroupRow{
					ID:           g.ID,
					OutingID:     outingID,
					Seq:          i,
					Name:         g.Name,
					PlayerIDs:    g.PlayerIDs,
					MarkerID:     g.MarkerID,
					RoundID:      g.RoundID,
					StartingHole: g.StartingHole,
					Status:       g.Status,
				}
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert groups: %w", err)
			}
		}

		for _, p := range roster {
			if _, err := tx.NewUpdate().
				Model((*OutingPlayerRow)(nil)).
				Set("group_id = ?", p.GroupID).
				Set("is_group_marker = ?", p.IsGroupMarker).
				Where("outing_id = ? AND player_id = ?", outingID, p.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to update player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (r *Impl) GetLiveScores(ctx context.Context, db bun.IDB, roundIDs []outingdomain.RoundID) (outingdomain.LiveScores, error) {
	if db == nil {
		db = r.db
	}

	scores := make(outingdomain.LiveScores)
	if len(roundIDs) == 0 {
		return scores, nil
	}

	var rows []LiveScoreRow
	err := db.NewSelect().
		Model(&rows).
		Where("round_id IN (?)", bun.In(roundIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live scores: %w", err)
	}

	for _, row := range rows {
		if scores[row.RoundID] == nil {
			scores[row.RoundID] = make(map[outingdomain.PlayerID]outingdomain.LiveScoreEntry)
		}
		scores[row.RoundID][row.PlayerID] = outingdomain.LiveScoreEntry{
			CurrentGross:     row.CurrentGross,
			CurrentNet:       row.CurrentNet,
			ScoreToPar:       row.ScoreToPar,
			Thru:             row.Thru,
			StablefordPoints: row.StablefordPoints,
		}
	}
	return scores, nil
}

func (r *Impl) SetGroupStatuses(ctx context.Context, db bun.IDB, outingID uuid.UUID, status outingdomain.GroupStatus) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewUpdate().
		Model((*OutingGroupRow)(nil)).
		Set("status = ?", status).
		Where("outing_id = ?", outingID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update group statuses: %w", err)
	}
	return nil
}

func (r *Impl) SetScheduledStart(ctx context.Context, db bun.IDB, outingID uuid.UUID, startTime time.Time) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewUpdate().
		Model((*Outing)(nil)).
		Set("scheduled_start = ?", startTime).
		Set("updated_at = current_timestamp").
		Where("id = ?", outingID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set scheduled start: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrOutingNotFound
	}
	return nil
}
