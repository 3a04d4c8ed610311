package models

import (
	"time"

	"github.com/uptrace/bun"
)

// The tables below are written by the assessment, learning and team
// workflows. The progression engine only reads them.

type Strength struct {
	bun.BaseModel `bun:"table:strengths,alias:s"`

	ID     string `bun:"id,pk"`
	Name   string `bun:"name,notnull,unique"`
	Domain string `bun:"domain"`
}

type UserStrength struct {
	bun.BaseModel `bun:"table:user_strengths,alias:us"`

	UserID     string    `bun:"user_id,pk"`
	StrengthID string    `bun:"strength_id,pk"`
	Rank       int       `bun:"rank,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Strength *Strength `bun:"rel:belongs-to,join:strength_id=id"`
}

// RankedStrength is a user's strength with its rank, 1 being strongest.
type RankedStrength struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

type LearningProgress struct {
	bun.BaseModel `bun:"table:learning_progress,alias:lp"`

	UserID              string    `bun:"user_id,pk"`
	ModulesCompleted    int       `bun:"modules_completed,notnull,default:0"`
	ChallengesCompleted int       `bun:"challenges_completed,notnull,default:0"`
	UpdatedAt           time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	TeamID   string    `bun:"team_id,pk"`
	UserID   string    `bun:"user_id,pk"`
	Active   bool      `bun:"active,notnull,default:true"`
	JoinedAt time.Time `bun:"joined_at,notnull,default:current_timestamp"`
}
