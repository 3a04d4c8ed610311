package leveling

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
)

// Entry is one XP credit.
type Entry struct {
	UserID     string
	Source     models.XPSource
	Reference  string
	BaseAmount int64
	Multiplier float64
	// At stamps the ledger row; zero means the wall clock.
	At time.Time
}

type Credited struct {
	Amount    int64
	XPBefore  int64
	XPAfter   int64
	Duplicate bool
}

// Credit appends the ledger row and increments xp_total through r. It must
// run inside the caller's unit of work. A repeated reference credits nothing.
func (c *Calculator) Credit(ctx context.Context, r repositories.Repos, e Entry) (Credited, error) {
	if e.Multiplier == 0 {
		e.Multiplier = 1
	}
	amount := c.ApplyMultiplier(e.BaseAmount, e.Multiplier)
	if e.At.IsZero() {
		e.At = time.Now()
	}

	created, err := r.Ledger.Append(ctx, &models.XPEvent{
		UserID:     e.UserID,
		Source:     e.Source,
		Reference:  e.Reference,
		BaseAmount: e.BaseAmount,
		Multiplier: e.Multiplier,
		Amount:     amount,
		CreatedAt:  e.At.UTC(),
	})
	if err != nil {
		return Credited{}, fmt.Errorf("append xp event: %w", err)
	}
	if !created {
		return Credited{Duplicate: true}, nil
	}

	after, err := r.Stats.AddXP(ctx, e.UserID, amount)
	if err != nil {
		return Credited{}, fmt.Errorf("add xp: %w", err)
	}
	return Credited{Amount: amount, XPBefore: after - amount, XPAfter: after}, nil
}

// RecordActivity advances the user's streak for today and returns the
// locked stats row with the new streak applied.
func RecordActivity(ctx context.Context, r repositories.Repos, userID string, today time.Time) (*models.GamificationStats, error) {
	stats, err := r.Stats.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure stats: %w", err)
	}

	streak := NextStreak(stats.LastActivityDate, stats.CurrentStreak, today)
	longest := stats.LongestStreak
	if streak > longest {
		longest = streak
	}
	if err := r.Stats.UpdateStreak(ctx, userID, streak, longest, today); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	stats.CurrentStreak = streak
	stats.LongestStreak = longest
	day := today
	stats.LastActivityDate = &day
	return stats, nil
}
