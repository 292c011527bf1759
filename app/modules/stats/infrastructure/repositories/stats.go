package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no snapshot exists for an event.
var ErrNotFound = errors.New("stats snapshot not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new stats snapshot repository.
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

// Upsert creates or updates a snapshot keyed by its event key.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, snapshot *Snapshot) error {
	db = r.resolveDB(db)
	snapshot.RefreshedAt = time.Now()
	_, err := db.NewInsert().
		Model(snapshot).
		On("CONFLICT (event_key) DO UPDATE").
		Set("standings = EXCLUDED.standings").
		Set("refreshed_at = EXCLUDED.refreshed_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert stats snapshot: %w", err)
	}
	return nil
}

// GetByEventKey retrieves the snapshot for an event.
func (r *Impl) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*Snapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(Snapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("event_key = ?", eventKey).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get stats snapshot: %w", err)
	}
	return snapshot, nil
}

// ListEventKeys returns the event keys of every stored snapshot.
func (r *Impl) ListEventKeys(ctx context.Context, db bun.IDB) ([]string, error) {
	db = r.resolveDB(db)
	var keys []string
	err := db.NewSelect().
		Model((*Snapshot)(nil)).
		Column("event_key").
		Order("event_key ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot event keys: %w", err)
	}
	return keys, nil
}
