package badges

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

// BadgeReferencePrefix prefixes the ledger reference of a badge bonus.
const BadgeReferencePrefix = "badge:"

type Evaluator struct {
	catalog  *Catalog
	calc     *leveling.Calculator
	uow      repositories.UnitOfWork
	notifier notify.Notifier
	now      func() time.Time
}

func NewEvaluator(catalog *Catalog, calc *leveling.Calculator, uow repositories.UnitOfWork, notifier notify.Notifier) *Evaluator {
	return &Evaluator{
		catalog:  catalog,
		calc:     calc,
		uow:      uow,
		notifier: notifier,
		now:      time.Now,
	}
}

func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// metric reads the value a criterion compares against.
func (e *Evaluator) metric(s *models.GamificationStats, m Metric) int64 {
	switch m {
	case MetricXPTotal:
		return s.XPTotal
	case MetricLevel:
		return int64(e.calc.LevelForXP(s.XPTotal))
	case MetricCurrentStreak:
		return int64(s.CurrentStreak)
	case MetricLongestStreak:
		return int64(s.LongestStreak)
	case MetricQuestsCompleted:
		return s.QuestsCompleted
	case MetricFeedbackGiven:
		return s.FeedbackGiven
	case MetricFeedbackReceived:
		return s.FeedbackReceived
	case MetricAssessmentsCompleted:
		return s.AssessmentsCompleted
	default:
		return 0
	}
}

// Evaluate unlocks every active badge whose criterion now holds and credits
// its tier bonus in the same unit of work. A bonus may satisfy further XP
// criteria, so passes repeat until nothing new unlocks. The unique
// (user, badge) row is the only guard against double grants.
func (e *Evaluator) Evaluate(ctx context.Context, userID string) ([]*models.UserBadge, error) {
	ctx, span := telemetry.Tracer("badges").Start(ctx, "badges.Evaluate")
	span.SetAttributes(attribute.String("user.id", userID))

	var unlocked []*models.UserBadge
	err := e.uow.Atomically(ctx, func(ctx context.Context, r repositories.Repos) error {
		unlocked = nil
		stats, err := r.Stats.Get(ctx, userID)
		if apperr.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		owned, err := r.Badges.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(owned))
		for _, b := range owned {
			have[b.BadgeKey] = true
		}

		active := e.catalog.Active()
		for pass := 0; pass <= len(active); pass++ {
			progressed := false
			for _, b := range active {
				if have[b.Key] || e.metric(stats, b.Criterion.Metric) < b.Criterion.Threshold {
					continue
				}
				have[b.Key] = true
				ub, credited, err := e.unlock(ctx, r, userID, b)
				if err != nil {
					return err
				}
				if ub == nil {
					continue
				}
				unlocked = append(unlocked, ub)
				if credited.Amount > 0 {
					stats.XPTotal = credited.XPAfter
				}
				progressed = true
			}
			if !progressed {
				break
			}
		}
		return nil
	})
	telemetry.End(span, err)
	if err != nil {
		return nil, fmt.Errorf("evaluate badges: %w", err)
	}

	for _, ub := range unlocked {
		e.announce(ctx, ub)
	}
	return unlocked, nil
}

func (e *Evaluator) unlock(ctx context.Context, r repositories.Repos, userID string, b Badge) (*models.UserBadge, leveling.Credited, error) {
	ub := &models.UserBadge{
		UserID:     userID,
		BadgeKey:   b.Key,
		Tier:       b.Tier,
		XPBonus:    e.catalog.Bonus(b),
		UnlockedAt: e.now().UTC(),
	}
	created, err := r.Badges.Unlock(ctx, ub)
	if err != nil {
		return nil, leveling.Credited{}, fmt.Errorf("unlock %s: %w", b.Key, err)
	}
	if !created {
		return nil, leveling.Credited{}, nil
	}
	credited, err := e.calc.Credit(ctx, r, leveling.Entry{
		UserID:     userID,
		Source:     models.SourceBadge,
		Reference:  BadgeReferencePrefix + b.Key,
		BaseAmount: ub.XPBonus,
		Multiplier: 1,
		At:         ub.UnlockedAt,
	})
	if err != nil {
		return nil, leveling.Credited{}, fmt.Errorf("credit %s bonus: %w", b.Key, err)
	}
	return ub, credited, nil
}

func (e *Evaluator) announce(ctx context.Context, ub *models.UserBadge) {
	slog.Info("Badge unlocked",
		slog.String("type", "badge"),
		slog.String("user_id", ub.UserID),
		slog.String("badge", ub.BadgeKey),
		slog.String("tier", ub.Tier.String()),
		slog.Int64("xp_bonus", ub.XPBonus))
	if e.notifier == nil {
		return
	}
	b, _ := e.catalog.Get(ub.BadgeKey)
	notice := notify.BadgeNotice{Key: ub.BadgeKey, Name: b.Name, Tier: ub.Tier, XPBonus: ub.XPBonus}
	if err := e.notifier.BadgeUnlocked(ctx, ub.UserID, notice); err != nil {
		slog.Warn("Badge notification failed", slog.String("user_id", ub.UserID), slog.Any("error", err))
	}
}

type Unlocked struct {
	Badge
	XPBonus    int64     `json:"xp_bonus"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ListUnlocked returns the user's badges with their catalog details. Rows
// for badges no longer in the catalog keep only their key.
func (e *Evaluator) ListUnlocked(ctx context.Context, userID string) ([]Unlocked, error) {
	if userID == "" {
		return nil, apperr.Unauthenticated()
	}
	rows, err := e.uow.Repositories().Badges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Unlocked, 0, len(rows))
	for _, ub := range rows {
		b, ok := e.catalog.Get(ub.BadgeKey)
		if !ok {
			b = Badge{Key: ub.BadgeKey, Name: ub.BadgeKey, Tier: ub.Tier}
		}
		out = append(out, Unlocked{Badge: b, XPBonus: ub.XPBonus, UnlockedAt: ub.UnlockedAt})
	}
	return out, nil
}
