package alliancedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no selection exists for an event.
var ErrNotFound = errors.New("alliance selection not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new alliance selection repository.
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

// Upsert creates or updates a selection keyed by its event key. Every write
// refreshes the timestamp and the update id.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, selection *AllianceSelection) error {
	db = r.resolveDB(db)
	selection.UpdatedAt = time.Now()
	selection.UpdateID = uuid.New()
	_, err := db.NewInsert().
		Model(selection).
		On("CONFLICT (event_key) DO UPDATE").
		Set("board = EXCLUDED.board").
		Set("update_id = EXCLUDED.update_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert alliance selection: %w", err)
	}
	return nil
}

// GetByEventKey retrieves the selection for an event.
func (r *Impl) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*AllianceSelection, error) {
	db = r.resolveDB(db)
	selection := new(AllianceSelection)
	err := db.NewSelect().
		Model(selection).
		Where("event_key = ?", eventKey).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alliance selection: %w", err)
	}
	return selection, nil
}
