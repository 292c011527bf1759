package statsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating stats_snapshots table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS stats_snapshots (
					id BIGSERIAL PRIMARY KEY,
					event_key VARCHAR(32) NOT NULL UNIQUE,
					standings JSONB NOT NULL DEFAULT '[]'::jsonb,
					refreshed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_stats_snapshots_event_key ON stats_snapshots(event_key);
			`); err != nil {
				return fmt.Errorf("failed to create stats_snapshots table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping stats_snapshots table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS stats_snapshots;`); err != nil {
				return fmt.Errorf("failed to drop stats_snapshots table: %w", err)
			}
			return nil
		})
	})
}
