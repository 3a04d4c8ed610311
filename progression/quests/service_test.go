package quests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/badges"
	"github.com/ellavondegurechaff/strengthforge/progression/database/memstore"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
)

type fixture struct {
	svc     *Service
	sweeper *Sweeper
	store   *memstore.Store
	now     time.Time
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFixture(t *testing.T, cfg *Config) *fixture {
	t.Helper()
	store := memstore.New()
	store.SeedStrengths(
		models.Strength{ID: "focus", Name: "Focus"},
		models.Strength{ID: "empathy", Name: "Empathy"},
		models.Strength{ID: "strategic", Name: "Strategic"},
		models.Strength{ID: "achiever", Name: "Achiever"},
	)
	store.SetUserStrengths("u1", "focus", "empathy", "strategic")

	calc, err := leveling.NewCalculator(leveling.NewDefaultConfig())
	require.NoError(t, err)
	catalog, err := badges.NewCatalog(badges.NewDefaultConfig())
	require.NoError(t, err)
	tracker, err := maturity.NewTracker(maturity.NewDefaultConfig())
	require.NoError(t, err)

	evaluator := badges.NewEvaluator(catalog, calc, store, nil)
	lv := leveling.NewService(calc, store, evaluator, nil, time.UTC)
	mt := maturity.NewService(tracker, store, nil)
	svc, err := NewService(cfg, store, strengths.NewRepositorySource(store.Repositories().Strengths), lv, mt, time.UTC)
	require.NoError(t, err)

	f := &fixture{
		svc:     svc,
		sweeper: NewSweeper(store.Repositories().Quests, nil),
		store:   store,
		now:     time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	svc.now = f.clock
	f.sweeper.now = f.clock
	return f
}

func singleQuestConfig(reward int64) *Config {
	cfg := NewDefaultConfig()
	cfg.DailyQuestCount = 1
	cfg.TopStrengths = 1
	cfg.Templates = []Template{{Key: "spotlight", Type: models.QuestStandard, Title: "Use %s", XPReward: reward}}
	return cfg
}

func (f *fixture) firstQuest(t *testing.T) *models.Quest {
	t.Helper()
	daily, err := f.svc.GetQuests(context.Background(), Request{UserID: "u1"})
	require.NoError(t, err)
	require.NotEmpty(t, daily.Quests)
	return daily.Quests[0]
}

func TestService_GetQuestsIdempotentPerDay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewDefaultConfig())

	first, err := f.svc.GetQuests(ctx, Request{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, first.Quests, 3)
	require.False(t, first.HasCompletedAll)
	require.True(t, first.NextRegenerationTime.Equal(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)))

	slots := map[int]bool{}
	keys := map[string]bool{}
	for _, q := range first.Quests {
		require.Equal(t, models.QuestPending, q.Status)
		slots[q.SlotIndex] = true
		keys[q.SlotKey] = true
	}
	require.Len(t, slots, 3)
	require.Len(t, keys, 3)

	f.advance(time.Hour)
	second, err := f.svc.GetQuests(ctx, Request{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, second.Quests, 3)
	for i := range first.Quests {
		require.Equal(t, first.Quests[i].ID, second.Quests[i].ID)
	}
}

func TestService_GetQuestsNoStrengths(t *testing.T) {
	f := newFixture(t, NewDefaultConfig())
	daily, err := f.svc.GetQuests(context.Background(), Request{UserID: "newcomer"})
	require.NoError(t, err)
	require.Empty(t, daily.Quests)
	require.False(t, daily.HasCompletedAll)
}

func TestService_GetQuestsUnauthenticated(t *testing.T) {
	f := newFixture(t, NewDefaultConfig())
	_, err := f.svc.GetQuests(context.Background(), Request{})
	require.True(t, apperr.IsUnauthenticated(err), "got %v", err)
}

func TestService_ForceRegenerate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewDefaultConfig())

	first, err := f.svc.GetQuests(ctx, Request{UserID: "u1"})
	require.NoError(t, err)
	started, err := f.svc.StartQuest(ctx, "u1", first.Quests[0].ID)
	require.NoError(t, err)

	again, err := f.svc.GetQuests(ctx, Request{UserID: "u1", ForceRegenerate: true})
	require.NoError(t, err)
	require.Len(t, again.Quests, 3)

	var kept bool
	for _, q := range again.Quests {
		if q.ID == started.ID {
			kept = true
			require.Equal(t, models.QuestInProgress, q.Status)
			continue
		}
		require.Equal(t, 1, q.Round)
		require.NotEqual(t, first.Quests[1].ID, q.ID)
		require.NotEqual(t, first.Quests[2].ID, q.ID)
	}
	require.True(t, kept, "in-progress quest lost its slot")

	_, err = f.svc.StartQuest(ctx, "u1", first.Quests[1].ID)
	require.True(t, apperr.IsConflict(err), "superseded quest started: %v", err)
}

func TestService_QuestLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(40))
	q := f.firstQuest(t)

	_, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "pending quest completed: %v", err)

	started, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)
	require.Equal(t, models.QuestInProgress, started.Status)
	require.NotNil(t, started.ExpiresAt)
	require.True(t, started.ExpiresAt.Equal(f.now.Add(24*time.Hour)))

	_, err = f.svc.StartQuest(ctx, "u1", q.ID)
	require.True(t, apperr.IsConflict(err), "started twice: %v", err)

	note := "Led the planning session"
	res, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID, ReflectionNote: &note})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, int64(40), res.XPAwarded)
	require.Equal(t, models.QuestCompleted, res.Quest.Status)
	require.NotNil(t, res.Quest.CooldownUntil)

	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "completed twice: %v", err)

	stats, err := f.store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(40), stats.XPTotal)
	require.Equal(t, int64(1), stats.QuestsCompleted)

	daily, err := f.svc.GetQuests(ctx, Request{UserID: "u1"})
	require.NoError(t, err)
	require.True(t, daily.HasCompletedAll)
}

func TestService_CompleteAfterDeadline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(40))
	q := f.firstQuest(t)
	_, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)

	f.advance(25 * time.Hour)
	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "overdue quest completed: %v", err)

	first, err := f.sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Expired)
	second, err := f.sweeper.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), second.Expired)

	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "expired quest completed: %v", err)

	_, err = f.store.Repositories().Stats.Get(ctx, "u1")
	require.True(t, apperr.IsNotFound(err), "expired quest credited xp")
}

func TestService_CooperativeConfirmation(t *testing.T) {
	ctx := context.Background()
	cfg := singleQuestConfig(60)
	cfg.Templates = []Template{{Key: "pair_up", Type: models.QuestCooperative, Title: "Pair up with %s", XPReward: 60}}
	f := newFixture(t, cfg)
	q := f.firstQuest(t)
	require.Equal(t, models.QuestCooperative, q.Type)
	require.Equal(t, "focus", q.StrengthID)
	_, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)

	self, blank, mate := "u1", "  ", "u2"
	tests := []struct {
		name        string
		confirmedBy *string
	}{
		{name: "missing", confirmedBy: nil},
		{name: "blank", confirmedBy: &blank},
		{name: "self", confirmedBy: &self},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID, ConfirmedBy: tt.confirmedBy})
			require.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}

	res, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID, ConfirmedBy: &mate})
	require.NoError(t, err)
	require.NotNil(t, res.Quest.ConfirmedBy)
	require.Equal(t, "u2", *res.Quest.ConfirmedBy)
}

func TestService_CompleteValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(40))
	q := f.firstQuest(t)
	long := strings.Repeat("x", 2001)

	tests := []struct {
		name   string
		userID string
		c      Completion
		check  func(error) bool
	}{
		{name: "no identity", userID: "", c: Completion{QuestID: q.ID}, check: apperr.IsUnauthenticated},
		{name: "bad id", userID: "u1", c: Completion{QuestID: "quest-1"}, check: apperr.IsValidation},
		{name: "long note", userID: "u1", c: Completion{QuestID: q.ID, ReflectionNote: &long}, check: apperr.IsValidation},
		{name: "unknown quest", userID: "u1", c: Completion{QuestID: uuid.NewString()}, check: apperr.IsNotFound},
		{name: "other owner", userID: "u2", c: Completion{QuestID: q.ID}, check: apperr.IsAuthorization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CompleteQuest(ctx, tt.userID, tt.c)
			require.True(t, tt.check(err), "got %v", err)
		})
	}

	_, err := f.svc.StartQuest(ctx, "u2", q.ID)
	require.True(t, apperr.IsAuthorization(err), "got %v", err)
}

func TestService_EndToEndQuestReward(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(100))
	q := f.firstQuest(t)
	_, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)

	res, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.NoError(t, err)
	require.Equal(t, int64(100), res.XPAwarded)
	require.Equal(t, int64(125), res.XPTotal, "total includes the badge bonus")
	require.Equal(t, 2, res.AccountLevel)
	require.True(t, res.AccountLeveledUp)
	require.Equal(t, []string{"first_steps"}, res.UnlockedBadges)

	require.True(t, res.LeveledUp)
	require.NotNil(t, res.NewLevel)
	require.Equal(t, models.MaturityDeveloping, *res.NewLevel)
	require.Equal(t, int64(0), res.NewXPCurrent)

	r := f.store.Repositories()
	owned, err := r.Badges.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	// The badge bonus lands on top of the quest reward.
	stats, err := r.Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(125), stats.XPTotal)
	require.Equal(t, stats.XPTotal, res.XPTotal)
}

func TestService_CooldownBlocksSlot(t *testing.T) {
	ctx := context.Background()
	cfg := singleQuestConfig(30)
	cfg.TopStrengths = 2
	f := newFixture(t, cfg)

	q := f.firstQuest(t)
	_, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)
	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.NoError(t, err)

	for day := 1; day <= 2; day++ {
		f.advance(24 * time.Hour)
		next := f.firstQuest(t)
		require.NotEqual(t, q.SlotKey, next.SlotKey, "slot reissued during cooldown on day %d", day)
	}
}

func TestService_CompletionRacesSweep(t *testing.T) {
	const (
		reward    = 40
		completes = 8
		sweeps    = 8
	)
	for iter := 0; iter < 25; iter++ {
		ctx := context.Background()
		f := newFixture(t, singleQuestConfig(reward))
		q := f.firstQuest(t)
		_, err := f.svc.StartQuest(ctx, "u1", q.ID)
		require.NoError(t, err)

		// Completers still see the quest in time, the sweeper sees it overdue.
		inTime := f.now.Add(time.Hour)
		overdue := f.now.Add(25 * time.Hour)
		f.svc.now = func() time.Time { return inTime }
		f.sweeper.now = func() time.Time { return overdue }

		var (
			wg        sync.WaitGroup
			start     = make(chan struct{})
			wins      atomic.Int64
			expired   atomic.Int64
			conflicts atomic.Int64
		)
		for i := 0; i < completes; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
				switch {
				case err == nil:
					wins.Add(1)
				case apperr.IsConflict(err):
					conflicts.Add(1)
				default:
					t.Errorf("CompleteQuest() unexpected error = %v", err)
				}
			}()
		}
		for i := 0; i < sweeps; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				res, err := f.sweeper.Sweep(ctx)
				if err != nil {
					t.Errorf("Sweep() error = %v", err)
					return
				}
				expired.Add(res.Expired)
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, int64(1), wins.Load()+expired.Load(), "iteration %d: exactly one transition must win", iter)
		require.Equal(t, int64(completes)-wins.Load(), conflicts.Load())

		r := f.store.Repositories()
		final, err := r.Quests.GetByID(ctx, q.ID)
		require.NoError(t, err)

		var xp int64
		stats, err := r.Stats.Get(ctx, "u1")
		switch {
		case apperr.IsNotFound(err):
		case err != nil:
			t.Fatalf("Stats.Get() error = %v", err)
		default:
			xp = stats.XPTotal
		}

		if wins.Load() == 1 {
			require.Equal(t, models.QuestCompleted, final.Status)
			require.Equal(t, int64(reward), xp)
		} else {
			require.Equal(t, models.QuestExpired, final.Status)
			require.Zero(t, xp, "expired quest credited xp")
		}
	}
}

func TestService_ParallelCompletionCreditsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(40))
	q := f.firstQuest(t)
	_, err := f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		wins atomic.Int64
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID}); err == nil {
				wins.Add(1)
			} else if !apperr.IsConflict(err) {
				t.Errorf("CompleteQuest() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), wins.Load())
	stats, err := f.store.Repositories().Stats.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(40), stats.XPTotal)
	require.Equal(t, int64(1), stats.QuestsCompleted)
}

func TestService_CompletionConflictReasons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, singleQuestConfig(40))
	q := f.firstQuest(t)

	_, err := f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "got %v", err)
	require.Contains(t, err.Error(), "not been started")

	_, err = f.svc.StartQuest(ctx, "u1", q.ID)
	require.NoError(t, err)
	_, err = f.svc.StartQuest(ctx, "u1", q.ID)
	require.True(t, apperr.IsConflict(err), "restart got %v", err)

	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.NoError(t, err)
	_, err = f.svc.CompleteQuest(ctx, "u1", Completion{QuestID: q.ID})
	require.True(t, apperr.IsConflict(err), "got %v", err)
	require.Contains(t, err.Error(), "COMPLETED")
}
