package teamdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for team persistence.
type Repository interface {
	// Upsert creates or updates a team keyed by its team number.
	Upsert(ctx context.Context, db bun.IDB, team *Team) error

	// GetByNumber retrieves a team by its team number.
	GetByNumber(ctx context.Context, db bun.IDB, teamNumber string) (*Team, error)

	// List retrieves all teams ordered by team number.
	List(ctx context.Context, db bun.IDB) ([]Team, error)
}
