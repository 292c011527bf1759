package teamdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	UpsertFn      func(ctx context.Context, db bun.IDB, team *Team) error
	GetByNumberFn func(ctx context.Context, db bun.IDB, teamNumber string) (*Team, error)
	ListFn        func(ctx context.Context, db bun.IDB) ([]Team, error)
}

func (f *FakeRepository) Upsert(ctx context.Context, db bun.IDB, team *Team) error {
	if f.UpsertFn != nil {
		return f.UpsertFn(ctx, db, team)
	}
	return nil
}

func (f *FakeRepository) GetByNumber(ctx context.Context, db bun.IDB, teamNumber string) (*Team, error) {
	if f.GetByNumberFn != nil {
		return f.GetByNumberFn(ctx, db, teamNumber)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) List(ctx context.Context, db bun.IDB) ([]Team, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, db)
	}
	return nil, nil
}
