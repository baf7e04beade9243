package outingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	outingdb "github.com/fairway-social/outing-engine/app/modules/outing/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating outing tables...")

		if _, err := db.NewCreateTable().Model((*outingdb.Outing)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*outingdb.OutingPlayerRow)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*outingdb.OutingGroupRow)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*outingdb.LiveScoreRow)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_outing_players_outing_id ON outing_players (outing_id, roster_order)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_outing_groups_outing_id ON outing_groups (outing_id, seq)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_live_scores_round_id ON live_scores (round_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Outing tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping outing tables...")

		for _, model := range []any{
			(*outingdb.LiveScoreRow)(nil),
			(*outingdb.OutingGroupRow)(nil),
			(*outingdb.OutingPlayerRow)(nil),
			(*outingdb.Outing)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Outing tables dropped successfully!")
		return nil
	})
}
