package alliancedb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	UpsertFn        func(ctx context.Context, db bun.IDB, selection *AllianceSelection) error
	GetByEventKeyFn func(ctx context.Context, db bun.IDB, eventKey string) (*AllianceSelection, error)
}

func (f *FakeRepository) Upsert(ctx context.Context, db bun.IDB, selection *AllianceSelection) error {
	if f.UpsertFn != nil {
		return f.UpsertFn(ctx, db, selection)
	}
	return nil
}

func (f *FakeRepository) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*AllianceSelection, error) {
	if f.GetByEventKeyFn != nil {
		return f.GetByEventKeyFn(ctx, db, eventKey)
	}
	return nil, ErrNotFound
}
