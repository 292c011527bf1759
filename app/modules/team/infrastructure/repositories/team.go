package teamdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a team is not found.
var ErrNotFound = errors.New("team not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new team repository.
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

// Upsert creates or updates a team keyed by its team number.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, team *Team) error {
	db = r.resolveDB(db)
	team.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(team).
		On("CONFLICT (team_number) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("raw = EXCLUDED.raw").
		Set("capabilities = EXCLUDED.capabilities").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert team: %w", err)
	}
	return nil
}

// GetByNumber retrieves a team by its team number.
func (r *Impl) GetByNumber(ctx context.Context, db bun.IDB, teamNumber string) (*Team, error) {
	db = r.resolveDB(db)
	team := new(Team)
	err := db.NewSelect().
		Model(team).
		Where("team_number = ?", teamNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team by number: %w", err)
	}
	return team, nil
}

// List retrieves all teams ordered by team number.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Team, error) {
	db = r.resolveDB(db)
	var teams []Team
	err := db.NewSelect().
		Model(&teams).
		OrderExpr("team_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}
