package alliancedb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
)

// AllianceSelection is the saved board for one event.
type AllianceSelection struct {
	bun.BaseModel `bun:"table:alliance_selections,alias:als"`

	ID       int64                 `bun:"id,pk,autoincrement"`
	EventKey string                `bun:"event_key,notnull,unique"`
	Board    alliancedomain.Board  `bun:"board,type:jsonb,notnull"`
	UpdateID uuid.UUID             `bun:"update_id,type:uuid"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*AllianceSelection)(nil)

func (s *AllianceSelection) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if s.UpdateID == uuid.Nil {
		s.UpdateID = uuid.New()
	}
	return nil
}
