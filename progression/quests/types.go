package quests

import (
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

type Request struct {
	UserID          string
	IncludeExpired  bool
	ForceRegenerate bool
}

type DailyQuests struct {
	Quests               []*models.Quest `json:"quests"`
	HasCompletedAll      bool            `json:"has_completed_all"`
	NextRegenerationTime time.Time       `json:"next_regeneration_time"`
}

type Completion struct {
	QuestID        string  `json:"-"`
	ReflectionNote *string `json:"reflection_note,omitempty"`
	ConfirmedBy    *string `json:"confirmed_by,omitempty"`
}

// CompletionResult reports the quest XP credit. LeveledUp, NewLevel and
// NewXPCurrent describe the quest's strength; AccountLevel and
// AccountLeveledUp the global level.
type CompletionResult struct {
	Success          bool                  `json:"success"`
	XPAwarded        int64                 `json:"xp_awarded"`
	LeveledUp        bool                  `json:"leveled_up"`
	NewLevel         *models.MaturityLevel `json:"new_level,omitempty"`
	NewXPCurrent     int64                 `json:"new_xp_current"`
	AccountLevel     int                   `json:"account_level"`
	AccountLeveledUp bool                  `json:"account_leveled_up"`
	XPTotal          int64                 `json:"xp_total"`
	UnlockedBadges   []string              `json:"unlocked_badges,omitempty"`
	Quest            *models.Quest         `json:"quest"`
}

type SweepResult struct {
	Expired  int64         `json:"expired"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"-"`
	Skipped  bool          `json:"skipped"`
}
