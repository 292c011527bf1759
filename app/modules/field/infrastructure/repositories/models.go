package fielddb

import (
	"time"

	"github.com/uptrace/bun"

	fielddomain "github.com/Panther-Scouting/reef-scout/app/modules/field/domain"
)

// FieldLayout is the saved match-planning layout for one event.
type FieldLayout struct {
	bun.BaseModel `bun:"table:field_layouts,alias:fl"`

	ID       int64              `bun:"id,pk,autoincrement"`
	EventKey string             `bun:"event_key,notnull,unique"`
	Layout   fielddomain.Layout `bun:"layout,type:jsonb,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
