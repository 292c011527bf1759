package alliancemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating alliance_selections table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS alliance_selections (
					id BIGSERIAL PRIMARY KEY,
					event_key VARCHAR(32) NOT NULL UNIQUE,
					board JSONB NOT NULL DEFAULT '{}'::jsonb,
					update_id UUID,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_alliance_selections_event_key ON alliance_selections(event_key);
			`); err != nil {
				return fmt.Errorf("failed to create alliance_selections table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping alliance_selections table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS alliance_selections;`); err != nil {
				return fmt.Errorf("failed to drop alliance_selections table: %w", err)
			}
			return nil
		})
	})
}
