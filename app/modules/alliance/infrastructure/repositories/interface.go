package alliancedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for alliance selection persistence.
type Repository interface {
	// Upsert creates or updates a selection keyed by its event key.
	Upsert(ctx context.Context, db bun.IDB, selection *AllianceSelection) error

	// GetByEventKey retrieves the selection for an event.
	GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*AllianceSelection, error)
}
