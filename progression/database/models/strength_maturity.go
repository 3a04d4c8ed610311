package models

import (
	"time"

	"github.com/uptrace/bun"
)

type StrengthMaturity struct {
	bun.BaseModel `bun:"table:strength_maturity,alias:sm"`

	UserID         string        `bun:"user_id,pk"`
	StrengthID     string        `bun:"strength_id,pk"`
	CurrentLevel   MaturityLevel `bun:"current_level,type:varchar(16),notnull"`
	XPCurrent      int64         `bun:"xp_current,notnull,default:0"`
	XPTotal        int64         `bun:"xp_total,notnull,default:0"`
	LevelReachedAt *time.Time    `bun:"level_reached_at"`
	CreatedAt      time.Time     `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time     `bun:"updated_at,notnull,default:current_timestamp"`
}

// NewStrengthMaturity returns the zero record every strength starts from.
func NewStrengthMaturity(userID, strengthID string) *StrengthMaturity {
	return &StrengthMaturity{
		UserID:       userID,
		StrengthID:   strengthID,
		CurrentLevel: MaturityNovice,
	}
}
