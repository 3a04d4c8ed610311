package maturity

import (
	"testing"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker(NewDefaultConfig())
	if err != nil {
		t.Fatalf("NewTracker() error = %v", err)
	}
	return tr
}

func TestTracker_Apply(t *testing.T) {
	tests := []struct {
		name        string
		level       models.MaturityLevel
		xpCurrent   int64
		xpTotal     int64
		amount      int64
		wantLevel   models.MaturityLevel
		wantCurrent int64
		wantTotal   int64
		wantGained  int
	}{
		{
			name:  "carry remainder",
			level: models.MaturityNovice, xpCurrent: 90, xpTotal: 90, amount: 30,
			wantLevel: models.MaturityDeveloping, wantCurrent: 20, wantTotal: 120, wantGained: 1,
		},
		{
			name:  "below threshold",
			level: models.MaturityNovice, xpCurrent: 10, xpTotal: 10, amount: 50,
			wantLevel: models.MaturityNovice, wantCurrent: 60, wantTotal: 60,
		},
		{
			name:  "exact threshold",
			level: models.MaturityNovice, amount: 100,
			wantLevel: models.MaturityDeveloping, wantCurrent: 0, wantTotal: 100, wantGained: 1,
		},
		{
			name:  "two rank ups",
			level: models.MaturityNovice, xpCurrent: 50, xpTotal: 50, amount: 330,
			wantLevel: models.MaturityProficient, wantCurrent: 30, wantTotal: 380, wantGained: 2,
		},
		{
			name:  "straight to mastery",
			level: models.MaturityNovice, amount: 5000,
			wantLevel: models.MaturityMastery, wantCurrent: 500, wantTotal: 5000, wantGained: 3,
		},
		{
			name:  "at mastery only total grows",
			level: models.MaturityMastery, xpCurrent: 500, xpTotal: 900, amount: 40,
			wantLevel: models.MaturityMastery, wantCurrent: 500, wantTotal: 940,
		},
		{
			name:  "zero amount",
			level: models.MaturityDeveloping, xpCurrent: 5, xpTotal: 105, amount: 0,
			wantLevel: models.MaturityDeveloping, wantCurrent: 5, wantTotal: 105,
		},
	}

	tracker := newTestTracker(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.StrengthMaturity{
				UserID: "u1", StrengthID: "s1",
				CurrentLevel: tt.level, XPCurrent: tt.xpCurrent, XPTotal: tt.xpTotal,
			}
			tr := tracker.Apply(m, tt.amount)
			if m.CurrentLevel != tt.wantLevel {
				t.Errorf("level = %v, want %v", m.CurrentLevel, tt.wantLevel)
			}
			if m.XPCurrent != tt.wantCurrent {
				t.Errorf("xp current = %d, want %d", m.XPCurrent, tt.wantCurrent)
			}
			if m.XPTotal != tt.wantTotal {
				t.Errorf("xp total = %d, want %d", m.XPTotal, tt.wantTotal)
			}
			if tr.LevelsGained != tt.wantGained {
				t.Errorf("levels gained = %d, want %d", tr.LevelsGained, tt.wantGained)
			}
			if tr.RankedUp() != (m.LevelReachedAt != nil) {
				t.Errorf("level reached at set = %v, ranked up = %v", m.LevelReachedAt != nil, tr.RankedUp())
			}
		})
	}
}

func TestTracker_Progress(t *testing.T) {
	tracker := newTestTracker(t)

	p := tracker.Progress(&models.StrengthMaturity{StrengthID: "s1", CurrentLevel: models.MaturityDeveloping, XPCurrent: 125})
	if p.IsMaxLevel || p.XPRequired == nil || *p.XPRequired != 250 || p.ProgressPercent != 50 {
		t.Errorf("Progress() developing = %+v", p)
	}

	p = tracker.Progress(&models.StrengthMaturity{StrengthID: "s1", CurrentLevel: models.MaturityMastery, XPCurrent: 500, XPTotal: 2000})
	if !p.IsMaxLevel || p.XPRequired != nil || p.ProgressPercent != 100 {
		t.Errorf("Progress() mastery = %+v", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if err := (&Config{Novice: 100, Developing: 0, Proficient: 500}).Validate(); err == nil {
		t.Errorf("zero threshold accepted")
	}
}
