package statsdb

import (
	"time"

	"github.com/uptrace/bun"

	statsdomain "github.com/Panther-Scouting/reef-scout/app/modules/stats/domain"
)

// Snapshot is the latest normalized ranking table fetched for one event.
type Snapshot struct {
	bun.BaseModel `bun:"table:stats_snapshots,alias:ss"`

	ID        int64                  `bun:"id,pk,autoincrement"`
	EventKey  string                 `bun:"event_key,notnull,unique"`
	Standings []statsdomain.Standing `bun:"standings,type:jsonb,notnull"`

	RefreshedAt time.Time `bun:"refreshed_at,nullzero,notnull,default:current_timestamp"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
