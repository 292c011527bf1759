package fieldmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating field_layouts table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS field_layouts (
					id BIGSERIAL PRIMARY KEY,
					event_key VARCHAR(32) NOT NULL UNIQUE,
					layout JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_field_layouts_event_key ON field_layouts(event_key);
			`); err != nil {
				return fmt.Errorf("failed to create field_layouts table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping field_layouts table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS field_layouts;`); err != nil {
				return fmt.Errorf("failed to drop field_layouts table: %w", err)
			}
			return nil
		})
	})
}
