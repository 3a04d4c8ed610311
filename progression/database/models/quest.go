package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID             string      `bun:"id,pk" json:"id"`
	UserID         string      `bun:"user_id,notnull" json:"user_id"`
	Type           QuestType   `bun:"type,type:varchar(16),notnull" json:"type"`
	TemplateKey    string      `bun:"template_key,notnull" json:"template_key"`
	Title          string      `bun:"title,notnull" json:"title"`
	StrengthID     string      `bun:"strength_id,notnull" json:"strength_id"`
	SlotKey        string      `bun:"slot_key,notnull" json:"slot_key"`
	SlotIndex      int         `bun:"slot_index,notnull" json:"slot_index"`
	Round          int         `bun:"round,notnull,default:0" json:"round"`
	Status         QuestStatus `bun:"status,type:varchar(16),notnull" json:"status"`
	XPReward       int64       `bun:"xp_reward,notnull" json:"xp_reward"`
	ComboRequired  []string    `bun:"combo_required,array" json:"combo_required,omitempty"`
	IssuedOn       time.Time   `bun:"issued_on,type:date,notnull" json:"issued_on"`
	ExpiresAt      *time.Time  `bun:"expires_at" json:"expires_at,omitempty"`
	CooldownUntil  *time.Time  `bun:"cooldown_until" json:"cooldown_until,omitempty"`
	StartedAt      *time.Time  `bun:"started_at" json:"started_at,omitempty"`
	CompletedAt    *time.Time  `bun:"completed_at" json:"completed_at,omitempty"`
	ExpiredAt      *time.Time  `bun:"expired_at" json:"expired_at,omitempty"`
	SupersededAt   *time.Time  `bun:"superseded_at" json:"superseded_at,omitempty"`
	ConfirmedBy    *string     `bun:"confirmed_by" json:"confirmed_by,omitempty"`
	ReflectionNote *string     `bun:"reflection_note" json:"reflection_note,omitempty"`
	CreatedAt      time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// IsActive reports whether the quest still occupies a slot of its day.
func (q *Quest) IsActive() bool {
	return q.SupersededAt == nil
}

// IsOverdue reports whether an in-progress quest has passed its deadline.
func (q *Quest) IsOverdue(now time.Time) bool {
	return q.Status == QuestInProgress && q.ExpiresAt != nil && !q.ExpiresAt.After(now)
}

// Clone returns a deep copy.
func (q *Quest) Clone() *Quest {
	c := *q
	c.ComboRequired = append([]string(nil), q.ComboRequired...)
	c.ExpiresAt = cloneTime(q.ExpiresAt)
	c.CooldownUntil = cloneTime(q.CooldownUntil)
	c.StartedAt = cloneTime(q.StartedAt)
	c.CompletedAt = cloneTime(q.CompletedAt)
	c.ExpiredAt = cloneTime(q.ExpiredAt)
	c.SupersededAt = cloneTime(q.SupersededAt)
	if q.ConfirmedBy != nil {
		v := *q.ConfirmedBy
		c.ConfirmedBy = &v
	}
	if q.ReflectionNote != nil {
		v := *q.ReflectionNote
		c.ReflectionNote = &v
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
