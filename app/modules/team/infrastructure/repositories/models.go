package teamdb

import (
	"time"

	"github.com/uptrace/bun"

	teamdomain "github.com/Panther-Scouting/reef-scout/app/modules/team/domain"
)

// Team is one scouted robot. Raw form answers and the derived capability
// flags are stored side by side; the flags are recomputed on every write.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID           int64                      `bun:"id,pk,autoincrement"`
	TeamNumber   string                     `bun:"team_number,notnull,unique"`
	Name         string                     `bun:"name"`
	Raw          teamdomain.RawScoutingData `bun:"raw,type:jsonb,notnull"`
	Capabilities teamdomain.Capabilities    `bun:"capabilities,type:jsonb,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
