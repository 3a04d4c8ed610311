package models

import (
	"time"

	"github.com/uptrace/bun"
)

// XPEvent is one ledger row per XP credit. A non-empty Reference makes the
// credit unique per (user, source, reference).
type XPEvent struct {
	bun.BaseModel `bun:"table:xp_events,alias:xe"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull"`
	Source     XPSource  `bun:"source,type:varchar(32),notnull"`
	Reference  string    `bun:"reference,notnull,default:''"`
	BaseAmount int64     `bun:"base_amount,notnull"`
	Multiplier float64   `bun:"multiplier,notnull,default:1"`
	Amount     int64     `bun:"amount,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
