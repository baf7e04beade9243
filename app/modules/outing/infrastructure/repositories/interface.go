package outingdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	outingdomain "github.com/fairway-social/outing-engine/app/modules/outing/domain"
)

// Repository is the persistence surface of the outing module. Every method
// accepts a bun.IDB so callers can thread a transaction; nil falls back to
// the pooled connection.
type Repository interface {
	GetOuting(ctx context.Context, db bun.IDB, outingID uuid.UUID) (*Outing, error)
	GetRoster(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingPlayer, error)
	GetGroups(ctx context.Context, db bun.IDB, outingID uuid.UUID) ([]outingdomain.OutingGroup, error)
	SaveSnapshot(ctx context.Context, db bun.IDB, outingID uuid.UUID, roster []outingdomain.OutingPlayer, groups []outingdomain.OutingGroup) error
	GetLiveScores(ctx context.Context, db bun.IDB, roundIDs []outingdomain.RoundID) (outingdomain.LiveScores, error)
	SetGroupStatuses(ctx context.Context, db bun.IDB, outingID uuid.UUID, status outingdomain.GroupStatus) error
	SetScheduledStart(ctx context.Context, db bun.IDB, outingID uuid.UUID, startTime time.Time) error
}
