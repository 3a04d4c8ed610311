package leveling

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// EventKind is a domain event that earns XP.
type EventKind uint8

const (
	EventAssessmentCompleted EventKind = iota + 1
	EventFeedbackGiven
	EventFeedbackReceived
)

func (k EventKind) String() string {
	return string(k.Source())
}

// Source maps the event to its ledger source.
func (k EventKind) Source() models.XPSource {
	switch k {
	case EventAssessmentCompleted:
		return models.SourceAssessment
	case EventFeedbackGiven:
		return models.SourceFeedbackGiven
	case EventFeedbackReceived:
		return models.SourceFeedbackReceived
	default:
		return models.XPSource(fmt.Sprintf("EventKind(%d)", uint8(k)))
	}
}

func ParseEventKind(v string) (EventKind, error) {
	src, err := models.ParseXPSource(v)
	if err != nil {
		return 0, err
	}
	switch src {
	case models.SourceAssessment:
		return EventAssessmentCompleted, nil
	case models.SourceFeedbackGiven:
		return EventFeedbackGiven, nil
	case models.SourceFeedbackReceived:
		return EventFeedbackReceived, nil
	}
	return 0, fmt.Errorf("%s does not earn event XP", src)
}

// Event is fed by the assessment and feedback workflows. Reference, when set,
// makes redelivery of the same event a no-op.
type Event struct {
	UserID    string
	Kind      EventKind
	Reference string
}

type Award struct {
	XPAwarded      int64    `json:"xp_awarded"`
	BaseXP         int64    `json:"base_xp"`
	Multiplier     float64  `json:"multiplier"`
	XPTotal        int64    `json:"xp_total"`
	Level          int      `json:"level"`
	LeveledUp      bool     `json:"leveled_up"`
	CurrentStreak  int      `json:"current_streak"`
	Duplicate      bool     `json:"duplicate"`
	UnlockedBadges []string `json:"unlocked_badges,omitempty"`
}

// Progress is the derived account view. NextLevelXPRequired and XPToNextLevel
// are nil at the max level.
type Progress struct {
	XPTotal             int64   `json:"xp_total"`
	CurrentLevel        int     `json:"current_level"`
	CurrentLevelXP      int64   `json:"current_level_xp"`
	NextLevelXPRequired *int64  `json:"next_level_xp_required"`
	XPToNextLevel       *int64  `json:"xp_to_next_level"`
	LevelProgress       int     `json:"level_progress"`
	IsMaxLevel          bool    `json:"is_max_level"`
	CurrentStreak       int     `json:"current_streak"`
	LongestStreak       int     `json:"longest_streak"`
	StreakMultiplier    float64 `json:"streak_multiplier"`
}

type HistoryEntry struct {
	Source     models.XPSource `json:"source"`
	Reference  string          `json:"reference,omitempty"`
	BaseAmount int64           `json:"base_amount"`
	Multiplier float64         `json:"multiplier"`
	Amount     int64           `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BadgeEvaluator is run after every XP-affecting event.
type BadgeEvaluator interface {
	Evaluate(ctx context.Context, userID string) ([]*models.UserBadge, error)
}

// CalendarDay returns the civil date of t in loc as midnight UTC, the form
// stored in date columns.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// NextMidnight returns the start of the day after t in loc.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}
