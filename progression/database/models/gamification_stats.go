package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// GamificationStats is the per-user progression aggregate. The account level
// is not stored; it is always derived from XPTotal.
type GamificationStats struct {
	bun.BaseModel `bun:"table:gamification_stats,alias:gs"`

	UserID               string     `bun:"user_id,pk"`
	XPTotal              int64      `bun:"xp_total,notnull,default:0"`
	CurrentStreak        int        `bun:"current_streak,notnull,default:0"`
	LongestStreak        int        `bun:"longest_streak,notnull,default:0"`
	LastActivityDate     *time.Time `bun:"last_activity_date,type:date"`
	AssessmentsCompleted int64      `bun:"assessments_completed,notnull,default:0"`
	FeedbackGiven        int64      `bun:"feedback_given,notnull,default:0"`
	FeedbackReceived     int64      `bun:"feedback_received,notnull,default:0"`
	QuestsCompleted      int64      `bun:"quests_completed,notnull,default:0"`
	CreatedAt            time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt            time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// StatCounter names one of the monotonic counters on GamificationStats.
type StatCounter uint8

const (
	CounterAssessments StatCounter = iota + 1
	CounterFeedbackGiven
	CounterFeedbackReceived
	CounterQuests
)

// Column returns the column backing the counter.
func (c StatCounter) Column() (string, error) {
	switch c {
	case CounterAssessments:
		return "assessments_completed", nil
	case CounterFeedbackGiven:
		return "feedback_given", nil
	case CounterFeedbackReceived:
		return "feedback_received", nil
	case CounterQuests:
		return "quests_completed", nil
	default:
		return "", fmt.Errorf("unknown stat counter %d", uint8(c))
	}
}

// Bump adds delta to the counter on s.
func (c StatCounter) Bump(s *GamificationStats, delta int64) error {
	switch c {
	case CounterAssessments:
		s.AssessmentsCompleted += delta
	case CounterFeedbackGiven:
		s.FeedbackGiven += delta
	case CounterFeedbackReceived:
		s.FeedbackReceived += delta
	case CounterQuests:
		s.QuestsCompleted += delta
	default:
		return fmt.Errorf("unknown stat counter %d", uint8(c))
	}
	return nil
}

// CounterFor maps an event source to the counter it bumps.
func CounterFor(source XPSource) (StatCounter, bool) {
	switch source {
	case SourceAssessment:
		return CounterAssessments, true
	case SourceFeedbackGiven:
		return CounterFeedbackGiven, true
	case SourceFeedbackReceived:
		return CounterFeedbackReceived, true
	case SourceQuest:
		return CounterQuests, true
	case SourceBadge:
		return 0, false
	default:
		return 0, false
	}
}
