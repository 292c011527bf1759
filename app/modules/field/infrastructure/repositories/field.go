package fielddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no layout exists for an event.
var ErrNotFound = errors.New("field layout not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new field layout repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Upsert creates or updates a layout keyed by its event key.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, layout *FieldLayout) error {
	db = r.resolveDB(db)
	layout.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(layout).
		On("CONFLICT (event_key) DO UPDATE").
		Set("layout = EXCLUDED.layout").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert field layout: %w", err)
	}
	return nil
}

// GetByEventKey retrieves the layout for an event.
func (r *Impl) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*FieldLayout, error) {
	db = r.resolveDB(db)
	layout := new(FieldLayout)
	err := db.NewSelect().
		Model(layout).
		Where("event_key = ?", eventKey).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get field layout: %w", err)
	}
	return layout, nil
}
