package fielddb

import (
	"context"

	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	UpsertFn        func(ctx context.Context, db bun.IDB, layout *FieldLayout) error
	GetByEventKeyFn func(ctx context.Context, db bun.IDB, eventKey string) (*FieldLayout, error)
}

func (f *FakeRepository) Upsert(ctx context.Context, db bun.IDB, layout *FieldLayout) error {
	if f.UpsertFn != nil {
		return f.UpsertFn(ctx, db, layout)
	}
	return nil
}

func (f *FakeRepository) GetByEventKey(ctx context.Context, db bun.IDB, eventKey string) (*FieldLayout, error) {
	if f.GetByEventKeyFn != nil {
		return f.GetByEventKeyFn(ctx, db, eventKey)
	}
	return nil, ErrNotFound
}
