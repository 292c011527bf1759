package statsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for ranking snapshot persistence.
type Repository interface {
	// Upsert creates or updates a snapshot keyed by its event key.
	Upsert(ctx context.Context, db bun.IDB, snapshot *Snapshot) error

	// GetByEventKey retrieves the snapshot for an event.
	GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*Snapshot, error)

	// ListEventKeys returns the event keys of every stored snapshot.
	ListEventKeys(ctx context.Context, db bun.IDB) ([]string, error)
}
