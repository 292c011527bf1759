package statsdb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	UpsertFn        func(ctx context.Context, db bun.IDB, snapshot *Snapshot) error
	GetByEventKeyFn func(ctx context.Context, db bun.IDB, eventKey string) (*Snapshot, error)
	ListEventKeysFn func(ctx context.Context, db bun.IDB) ([]string, error)
}

func (f *FakeRepository) Upsert(ctx context.Context, db bun.IDB, snapshot *Snapshot) error {
	if f.UpsertFn != nil {
		return f.UpsertFn(ctx, db, snapshot)
	}
	return nil
}

func (f *FakeRepository) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*Snapshot, error) {
	if f.GetByEventKeyFn != nil {
		return f.GetByEventKeyFn(ctx, db, eventKey)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) ListEventKeys(ctx context.Context, db bun.IDB) ([]string, error) {
	if f.ListEventKeysFn != nil {
		return f.ListEventKeysFn(ctx, db)
	}
	return nil, nil
}
