package repositories

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// StatsRepository reads and atomically updates GamificationStats.
type StatsRepository interface {
	// Get returns a NotFoundError when the user has no stats yet.
	Get(ctx context.Context, userID string) (*models.GamificationStats, error)
	// Ensure creates the row when missing and returns it locked for the
	// enclosing transaction.
	Ensure(ctx context.Context, userID string) (*models.GamificationStats, error)
	// AddXP increments xp_total in storage and returns the new total.
	AddXP(ctx context.Context, userID string, amount int64) (int64, error)
	IncrementCounter(ctx context.Context, userID string, counter models.StatCounter, delta int64) error
	UpdateStreak(ctx context.Context, userID string, current, longest int, day time.Time) error
}

// CompletionUpdate carries the fields written when a quest completes.
type CompletionUpdate struct {
	Now            time.Time
	CooldownUntil  time.Time
	ReflectionNote *string
	ConfirmedBy    *string
}

type QuestRepository interface {
	// Create inserts quests, skipping any that collide with an occupied slot,
	// and returns how many rows were written.
	Create(ctx context.Context, quests []*models.Quest) (int, error)
	GetByID(ctx context.Context, id string) (*models.Quest, error)
	// ListForDay returns every quest issued to the user on day, superseded ones included.
	ListForDay(ctx context.Context, userID string, day time.Time) ([]*models.Quest, error)
	// CooldownSlots returns the slot keys whose cooldown is still running at now.
	CooldownSlots(ctx context.Context, userID string, now time.Time) ([]string, error)
	// Start moves a PENDING, active quest issued on day to IN_PROGRESS.
	// ok is false when no row matched.
	Start(ctx context.Context, userID, questID string, day, now, expiresAt time.Time) (*models.Quest, bool, error)
	// Complete moves an IN_PROGRESS quest whose deadline is after u.Now to
	// COMPLETED. ok is false when no row matched.
	Complete(ctx context.Context, userID, questID string, u CompletionUpdate) (*models.Quest, bool, error)
	// SupersedePending marks the day's PENDING quests as superseded.
	SupersedePending(ctx context.Context, userID string, day, now time.Time) (int, error)
	// ExpireOverdue moves every IN_PROGRESS quest with expires_at < now to EXPIRED.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type MaturityRepository interface {
	// Get returns a NotFoundError when no row exists.
	Get(ctx context.Context, userID, strengthID string) (*models.StrengthMaturity, error)
	ListByUser(ctx context.Context, userID string) ([]*models.StrengthMaturity, error)
	// Ensure creates a NOVICE row when missing and returns it locked.
	Ensure(ctx context.Context, userID, strengthID string) (*models.StrengthMaturity, error)
	Save(ctx context.Context, maturity *models.StrengthMaturity) error
}

type BadgeRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.UserBadge, error)
	// Unlock inserts the row unless (user, badge) already exists; created
	// reports whether this call wrote it.
	Unlock(ctx context.Context, badge *models.UserBadge) (bool, error)
}

type LedgerRepository interface {
	// Append writes the event; created is false when an event with the same
	// non-empty reference already exists.
	Append(ctx context.Context, event *models.XPEvent) (bool, error)
	FindByReference(ctx context.Context, userID string, source models.XPSource, reference string) (*models.XPEvent, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.XPEvent, error)
}

type StrengthRepository interface {
	// RankedForUser returns the user's strengths ordered by rank.
	RankedForUser(ctx context.Context, userID string) ([]models.RankedStrength, error)
	// Known returns which of ids exist in the strength directory.
	Known(ctx context.Context, ids []string) (map[string]bool, error)
}

type LearningRepository interface {
	// Get returns zero counts when the user has no progress row.
	Get(ctx context.Context, userID string) (*models.LearningProgress, error)
}

type TeamRepository interface {
	// Members returns a NotFoundError for an unknown team.
	Members(ctx context.Context, teamID string) ([]*models.TeamMember, error)
}

// Repos is the set of repositories bound to one connection or transaction.
type Repos struct {
	Stats     StatsRepository
	Quests    QuestRepository
	Maturity  MaturityRepository
	Badges    BadgeRepository
	Ledger    LedgerRepository
	Strengths StrengthRepository
	Learning  LearningRepository
	Teams     TeamRepository
}

// UnitOfWork runs repository calls atomically.
type UnitOfWork interface {
	Repositories() Repos
	// Atomically runs fn in one transaction; any error rolls everything back.
	Atomically(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
