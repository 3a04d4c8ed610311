package leveling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

var errDuplicate = errors.New("duplicate event")

type Service struct {
	calc     *Calculator
	uow      repositories.UnitOfWork
	badges   BadgeEvaluator
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
}

// NewService wires the storage-backed leveling operations. badges and
// notifier may be nil.
func NewService(calc *Calculator, uow repositories.UnitOfWork, badges BadgeEvaluator, notifier notify.Notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		calc:     calc,
		uow:      uow,
		badges:   badges,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Service) Calculator() *Calculator {
	return s.calc
}

// AwardEvent credits the base reward for ev, scaled by the streak multiplier
// after today's activity is recorded. A redelivered event with the same
// reference returns the original amount with Duplicate set.
func (s *Service) AwardEvent(ctx context.Context, ev Event) (*Award, error) {
	ctx, span := telemetry.Tracer("leveling").Start(ctx, "leveling.AwardEvent")
	var err error
	defer func() { telemetry.End(span, err) }()
	span.SetAttributes(attribute.String("user.id", ev.UserID), attribute.String("event.kind", ev.Kind.String()))

	if strings.TrimSpace(ev.UserID) == "" {
		err = apperr.Validation("user_id", "user id is required")
		return nil, err
	}
	base, ok := s.calc.BaseReward(ev.Kind)
	if !ok {
		err = apperr.Validation("kind", "unknown event kind %d", uint8(ev.Kind))
		return nil, err
	}
	source := ev.Kind.Source()

	award := &Award{BaseXP: base}
	var before int64
	err = s.uow.Atomically(ctx, func(ctx context.Context, r repositories.Repos) error {
		stats, err := RecordActivity(ctx, r, ev.UserID, CalendarDay(s.now(), s.loc))
		if err != nil {
			return err
		}
		before = stats.XPTotal
		award.CurrentStreak = stats.CurrentStreak
		award.Multiplier = s.calc.StreakBonusMultiplier(stats.CurrentStreak)

		credited, err := s.calc.Credit(ctx, r, Entry{
			UserID:     ev.UserID,
			Source:     source,
			Reference:  ev.Reference,
			BaseAmount: base,
			Multiplier: award.Multiplier,
			At:         s.now(),
		})
		if err != nil {
			return err
		}
		if credited.Duplicate {
			return errDuplicate
		}
		if counter, ok := models.CounterFor(source); ok {
			if err := r.Stats.IncrementCounter(ctx, ev.UserID, counter, 1); err != nil {
				return fmt.Errorf("increment %s: %w", source, err)
			}
		}
		award.XPAwarded = credited.Amount
		award.XPTotal = credited.XPAfter
		return nil
	})
	if errors.Is(err, errDuplicate) {
		err = nil
		return s.duplicateAward(ctx, ev, source)
	}
	if err != nil {
		return nil, err
	}

	award.UnlockedBadges, award.XPTotal = s.AfterXP(ctx, ev.UserID, before, award.XPTotal)
	award.Level = s.calc.LevelForXP(award.XPTotal)
	award.LeveledUp = award.Level > s.calc.LevelForXP(before)

	slog.Info("XP awarded",
		slog.String("type", "sys"),
		slog.String("user_id", ev.UserID),
		slog.String("source", string(source)),
		slog.Int64("xp", award.XPAwarded),
		slog.Float64("multiplier", award.Multiplier),
		slog.Int("level", award.Level))
	return award, nil
}

func (s *Service) duplicateAward(ctx context.Context, ev Event, source models.XPSource) (*Award, error) {
	r := s.uow.Repositories()
	existing, err := r.Ledger.FindByReference(ctx, ev.UserID, source, ev.Reference)
	if err != nil {
		return nil, fmt.Errorf("load original award: %w", err)
	}
	stats, err := r.Stats.Get(ctx, ev.UserID)
	if err != nil {
		return nil, err
	}
	slog.Debug("Duplicate event ignored",
		slog.String("user_id", ev.UserID),
		slog.String("source", string(source)),
		slog.String("reference", ev.Reference))
	return &Award{
		XPAwarded:     existing.Amount,
		BaseXP:        existing.BaseAmount,
		Multiplier:    existing.Multiplier,
		XPTotal:       stats.XPTotal,
		Level:         s.calc.LevelForXP(stats.XPTotal),
		CurrentStreak: stats.CurrentStreak,
		Duplicate:     true,
	}, nil
}

// AfterXP runs the badge evaluator and sends level-up and badge
// announcements. It returns the unlocked badge keys and the XP total with
// their bonuses added. Failures are logged; the XP credit is already committed.
func (s *Service) AfterXP(ctx context.Context, userID string, before, after int64) ([]string, int64) {
	var unlocked []string
	if s.badges != nil {
		badges, err := s.badges.Evaluate(ctx, userID)
		if err != nil {
			slog.Error("Badge evaluation failed",
				slog.String("type", "badge"),
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
		for _, b := range badges {
			unlocked = append(unlocked, b.BadgeKey)
			after += b.XPBonus
		}
	}

	if s.notifier == nil {
		return unlocked, after
	}
	ctx, cancel := context.WithTimeout(ctx, config.NotifyTimeout)
	defer cancel()
	if level := s.calc.LevelForXP(after); level > s.calc.LevelForXP(before) {
		if err := s.notifier.LevelUp(ctx, userID, level); err != nil {
			slog.Warn("Level up notification failed", slog.String("user_id", userID), slog.Any("error", err))
		}
	}
	return unlocked, after
}

func (s *Service) GetProgress(ctx context.Context, userID string) (*Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Unauthenticated()
	}
	stats, err := s.uow.Repositories().Stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := s.calc.Snapshot(stats.XPTotal, stats.CurrentStreak, stats.LongestStreak)
	return &p, nil
}

// History returns the latest ledger entries, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Unauthenticated()
	}
	switch {
	case limit <= 0:
		limit = config.DefaultHistoryLimit
	case limit > config.MaxHistoryLimit:
		limit = config.MaxHistoryLimit
	}
	events, err := s.uow.Repositories().Ledger.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(events))
	for _, e := range events {
		out = append(out, HistoryEntry{
			Source:     e.Source,
			Reference:  e.Reference,
			BaseAmount: e.BaseAmount,
			Multiplier: e.Multiplier,
			Amount:     e.Amount,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}
