package maturity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/memstore"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
)

type rankRecorder struct {
	levels []models.MaturityLevel
}

func (r *rankRecorder) LevelUp(context.Context, string, int) error { return nil }

func (r *rankRecorder) BadgeUnlocked(context.Context, string, notify.BadgeNotice) error { return nil }

func (r *rankRecorder) MaturityRankUp(_ context.Context, _, _ string, level models.MaturityLevel) error {
	r.levels = append(r.levels, level)
	return nil
}

func newTestService(t *testing.T) (*Service, *rankRecorder) {
	t.Helper()
	store := memstore.New()
	store.SeedStrengths(
		models.Strength{ID: "focus", Name: "Focus"},
		models.Strength{ID: "empathy", Name: "Empathy"},
	)
	rec := &rankRecorder{}
	return NewService(newTestTracker(t), store, rec), rec
}

func TestService_AwardXP(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t)

	p, tr, err := svc.AwardXP(ctx, "u1", "focus", 90)
	require.NoError(t, err)
	require.False(t, tr.RankedUp())
	require.Equal(t, int64(90), p.XPCurrent)

	p, tr, err = svc.AwardXP(ctx, "u1", "focus", 30)
	require.NoError(t, err)
	require.Equal(t, 1, tr.LevelsGained)
	require.Equal(t, models.MaturityDeveloping, p.Level)
	require.Equal(t, int64(20), p.XPCurrent)
	require.Equal(t, int64(120), p.XPTotal)
	require.Equal(t, []models.MaturityLevel{models.MaturityDeveloping}, rec.levels)
}

func TestService_AwardXPErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, _, err := svc.AwardXP(ctx, "u1", "unknown", 10)
	require.True(t, apperr.IsNotFound(err), "got %v", err)

	_, _, err = svc.AwardXP(ctx, "u1", "focus", -1)
	require.True(t, apperr.IsValidation(err), "got %v", err)

	_, _, err = svc.AwardXP(ctx, "", "focus", 10)
	require.True(t, apperr.IsValidation(err), "got %v", err)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, _, err := svc.AwardXP(ctx, "u1", "focus", 150)
	require.NoError(t, err)

	all, err := svc.Get(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "focus", all[0].StrengthID)

	picked, err := svc.Get(ctx, "u1", []string{"focus", "empathy"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	require.Equal(t, models.MaturityDeveloping, picked[0].Level)
	require.Equal(t, models.MaturityNovice, picked[1].Level)
	require.Equal(t, int64(0), picked[1].XPTotal)

	_, err = svc.Get(ctx, "u1", []string{"focus", "nope"})
	require.True(t, apperr.IsNotFound(err), "got %v", err)

	_, err = svc.Get(ctx, "", nil)
	require.True(t, apperr.IsUnauthenticated(err), "got %v", err)
}
