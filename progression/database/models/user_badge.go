package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBadge records that a user unlocked a badge. Its existence is the unlock.
type UserBadge struct {
	bun.BaseModel `bun:"table:user_badges,alias:ub"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull,unique:user_badge"`
	BadgeKey   string    `bun:"badge_key,notnull,unique:user_badge"`
	Tier       BadgeTier `bun:"tier,type:varchar(16),notnull"`
	XPBonus    int64     `bun:"xp_bonus,notnull,default:0"`
	UnlockedAt time.Time `bun:"unlocked_at,notnull"`
}
