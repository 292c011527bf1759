package fielddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for field layout persistence.
type Repository interface {
	// Upsert creates or updates a layout keyed by its event key.
	Upsert(ctx context.Context, db bun.IDB, layout *FieldLayout) error

	// GetByEventKey retrieves the layout for an event.
	GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*FieldLayout, error)
}
