package leveling

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/memstore"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
)

type stubBadges struct {
	unlock []*models.UserBadge
	err    error
	calls  int
}

func (b *stubBadges) Evaluate(context.Context, string) ([]*models.UserBadge, error) {
	b.calls++
	out := b.unlock
	b.unlock = nil
	return out, b.err
}

type stubNotifier struct {
	levels []int
}

func (n *stubNotifier) LevelUp(_ context.Context, _ string, level int) error {
	n.levels = append(n.levels, level)
	return nil
}

func (n *stubNotifier) BadgeUnlocked(context.Context, string, notify.BadgeNotice) error {
	return nil
}

func (n *stubNotifier) MaturityRankUp(context.Context, string, string, models.MaturityLevel) error {
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, badges BadgeEvaluator, n notify.Notifier) (*Service, *memstore.Store, *clock) {
	t.Helper()
	store := memstore.New()
	svc := NewService(newTestCalculator(t), store, badges, n, time.UTC)
	clk := &clock{t: time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)}
	svc.now = clk.now
	return svc, store, clk
}

func TestService_AwardEvent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, nil, nil)

	award, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted, Reference: "phase-1"})
	require.NoError(t, err)
	require.Equal(t, int64(50), award.XPAwarded)
	require.Equal(t, int64(50), award.XPTotal)
	require.Equal(t, 1.0, award.Multiplier)
	require.Equal(t, 1, award.CurrentStreak)
	require.Equal(t, 1, award.Level)
	require.False(t, award.LeveledUp)

	stats, err := store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.AssessmentsCompleted)
}

func TestService_AwardEventDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, nil, nil)

	first, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackGiven, Reference: "fb-9"})
	require.NoError(t, err)
	second, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackGiven, Reference: "fb-9"})
	require.NoError(t, err)

	require.True(t, second.Duplicate)
	require.Equal(t, first.XPAwarded, second.XPAwarded)
	require.Equal(t, int64(20), second.XPTotal)

	stats, err := store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(20), stats.XPTotal)
	require.Equal(t, int64(1), stats.FeedbackGiven)
}

func TestService_AwardEventStreakMultiplier(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newTestService(t, nil, nil)

	var award *Award
	var err error
	for i := 0; i < 3; i++ {
		award, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted})
		require.NoError(t, err)
		clk.t = clk.t.Add(24 * time.Hour)
	}
	require.Equal(t, 3, award.CurrentStreak)
	require.Equal(t, 1.1, award.Multiplier)
	require.Equal(t, int64(55), award.XPAwarded)
	require.Equal(t, int64(155), award.XPTotal)
	require.False(t, award.LeveledUp)
}

func TestService_AwardEventValidation(t *testing.T) {
	svc, _, _ := newTestService(t, nil, nil)
	tests := []struct {
		name string
		ev   Event
	}{
		{name: "empty user", ev: Event{Kind: EventAssessmentCompleted}},
		{name: "unknown kind", ev: Event{UserID: "u1", Kind: EventKind(99)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AwardEvent(context.Background(), tt.ev)
			if !apperr.IsValidation(err) {
				t.Errorf("AwardEvent() error = %v, want validation error", err)
			}
		})
	}
}

func TestService_AwardEventBadgesAndNotifications(t *testing.T) {
	ctx := context.Background()
	badges := &stubBadges{unlock: []*models.UserBadge{{UserID: "u1", BadgeKey: "first_steps", XPBonus: 25}}}
	n := &stubNotifier{}
	svc, _, _ := newTestService(t, badges, n)

	award, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted})
	require.NoError(t, err)
	require.Equal(t, []string{"first_steps"}, award.UnlockedBadges)
	require.Equal(t, int64(50), award.XPAwarded)
	require.Equal(t, int64(75), award.XPTotal, "total includes the badge bonus")
	require.Equal(t, 1, award.Level)
	require.Equal(t, 1, badges.calls)
	require.Empty(t, n.levels)

	_, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted})
	require.NoError(t, err)
	require.Equal(t, []int{2}, n.levels)
}

func TestService_AwardEventBadgeFailureKeepsXP(t *testing.T) {
	badges := &stubBadges{err: errors.New("db down")}
	svc, _, _ := newTestService(t, badges, nil)

	award, err := svc.AwardEvent(context.Background(), Event{UserID: "u1", Kind: EventFeedbackReceived})
	require.NoError(t, err)
	require.Equal(t, int64(10), award.XPTotal)
}

func TestService_GetProgress(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, nil, nil)

	_, err := svc.GetProgress(ctx, "")
	require.True(t, apperr.IsUnauthenticated(err), "got %v", err)

	_, err = svc.GetProgress(ctx, "ghost")
	require.True(t, apperr.IsNotFound(err), "got %v", err)

	_, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted})
	require.NoError(t, err)
	_, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted})
	require.NoError(t, err)
	_, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackGiven})
	require.NoError(t, err)

	p, err := svc.GetProgress(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(120), p.XPTotal)
	require.Equal(t, 2, p.CurrentLevel)
	require.Equal(t, int64(20), p.CurrentLevelXP)
	require.NotNil(t, p.XPToNextLevel)
	require.Equal(t, int64(130), *p.XPToNextLevel)
	require.Equal(t, 1, p.CurrentStreak)
	require.Equal(t, 1, p.LongestStreak)
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, nil, nil)

	for _, kind := range []EventKind{EventAssessmentCompleted, EventFeedbackGiven, EventFeedbackReceived} {
		_, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: kind})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.SourceFeedbackReceived, history[0].Source)
	require.Equal(t, models.SourceFeedbackGiven, history[1].Source)
}

func TestService_HistoryUsesServiceClock(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := newTestService(t, nil, nil)
	first := clk.t

	_, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackGiven})
	require.NoError(t, err)
	clk.t = clk.t.Add(90 * time.Minute)
	_, err = svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackReceived})
	require.NoError(t, err)

	history, err := svc.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.True(t, history[0].CreatedAt.Equal(clk.t), "got %v", history[0].CreatedAt)
	require.True(t, history[1].CreatedAt.Equal(first), "got %v", history[1].CreatedAt)
}

func TestService_ConcurrentAwardsKeepEveryCredit(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, nil, nil)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventFeedbackGiven}); err != nil {
				t.Errorf("AwardEvent() error = %v", err)
			}
		}()
	}
	wg.Wait()

	stats, err := store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(n*20), stats.XPTotal)
	require.Equal(t, int64(n), stats.FeedbackGiven)
	require.Equal(t, 1, stats.CurrentStreak)

	history, err := svc.History(ctx, "u1", n+1)
	require.NoError(t, err)
	require.Len(t, history, n)
}

func TestService_ConcurrentRedeliveryCreditsOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t, nil, nil)

	var (
		wg    sync.WaitGroup
		fresh atomic.Int64
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			award, err := svc.AwardEvent(ctx, Event{UserID: "u1", Kind: EventAssessmentCompleted, Reference: "phase-2"})
			if err != nil {
				t.Errorf("AwardEvent() error = %v", err)
				return
			}
			if !award.Duplicate {
				fresh.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), fresh.Load())
	stats, err := store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(50), stats.XPTotal)
	require.Equal(t, int64(1), stats.AssessmentsCompleted)
}
