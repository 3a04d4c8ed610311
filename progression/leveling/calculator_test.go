package leveling

import (
	"testing"
	"time"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(NewDefaultConfig())
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	return c
}

func TestCalculator_LevelForXP(t *testing.T) {
	c := newTestCalculator(t)
	tests := []struct {
		name string
		xp   int64
		want int
	}{
		{name: "zero", xp: 0, want: 1},
		{name: "negative clamps", xp: -5, want: 1},
		{name: "just below 2", xp: 99, want: 1},
		{name: "exactly 2", xp: 100, want: 2},
		{name: "mid 3", xp: 300, want: 3},
		{name: "exactly 5", xp: 1000, want: 5},
		{name: "max", xp: 12000, want: 10},
		{name: "beyond max", xp: 1_000_000, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.LevelForXP(tt.xp); got != tt.want {
				t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestCalculator_LevelForXPMonotonic(t *testing.T) {
	c := newTestCalculator(t)
	prev := c.LevelForXP(0)
	for xp := int64(0); xp <= 15000; xp += 7 {
		level := c.LevelForXP(xp)
		if level < prev {
			t.Fatalf("LevelForXP(%d) = %d dropped below %d", xp, level, prev)
		}
		prev = level

		p := c.LevelProgress(xp)
		if p < 0 || p > 100 {
			t.Fatalf("LevelProgress(%d) = %d out of range", xp, p)
		}
	}
}

func TestCalculator_MaxLevel(t *testing.T) {
	c := newTestCalculator(t)
	if got := c.MaxLevel(); got != 10 {
		t.Errorf("MaxLevel = %d, want 10", got)
	}
	if got := c.LevelForXP(1 << 40); got != c.MaxLevel() {
		t.Errorf("LevelForXP(huge) = %d, want %d", got, c.MaxLevel())
	}
	if _, ok := c.XPForNextLevel(12000); ok {
		t.Errorf("XPForNextLevel at max level reported a next level")
	}
	if got := c.LevelProgress(50000); got != 100 {
		t.Errorf("LevelProgress at max = %d, want 100", got)
	}
	p := c.Snapshot(20000, 0, 0)
	if !p.IsMaxLevel || p.NextLevelXPRequired != nil || p.XPToNextLevel != nil {
		t.Errorf("Snapshot at max = %+v, want max level without next", p)
	}
}

func TestCalculator_XPForNextLevel(t *testing.T) {
	c := newTestCalculator(t)
	remaining, ok := c.XPForNextLevel(130)
	if !ok || remaining != 120 {
		t.Errorf("XPForNextLevel(130) = (%d, %v), want (120, true)", remaining, ok)
	}
	into, width := c.LevelBand(130)
	if into != 30 || width != 150 {
		t.Errorf("LevelBand(130) = (%d, %d), want (30, 150)", into, width)
	}
	if got := c.LevelProgress(130); got != 20 {
		t.Errorf("LevelProgress(130) = %d, want 20", got)
	}
}

func TestCalculator_StreakBonusMultiplier(t *testing.T) {
	c := newTestCalculator(t)
	tests := []struct {
		days int
		want float64
	}{
		{days: 0, want: 1.0},
		{days: 2, want: 1.0},
		{days: 3, want: 1.1},
		{days: 7, want: 1.25},
		{days: 13, want: 1.25},
		{days: 14, want: 1.5},
		{days: 30, want: 2.0},
		{days: 365, want: 2.0},
	}
	for _, tt := range tests {
		if got := c.StreakBonusMultiplier(tt.days); got != tt.want {
			t.Errorf("StreakBonusMultiplier(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}

	prev := 1.0
	for d := 0; d <= 400; d++ {
		m := c.StreakBonusMultiplier(d)
		if m < prev || m < 1.0 || m > 2.0 {
			t.Fatalf("StreakBonusMultiplier(%d) = %v breaks monotonic bound (prev %v)", d, m, prev)
		}
		prev = m
	}
}

func TestCalculator_ApplyMultiplier(t *testing.T) {
	c := newTestCalculator(t)
	tests := []struct {
		base int64
		mult float64
		want int64
	}{
		{base: 50, mult: 1.0, want: 50},
		{base: 50, mult: 1.1, want: 55},
		{base: 10, mult: 1.25, want: 13},
		{base: 20, mult: 1.25, want: 25},
		{base: 0, mult: 2.0, want: 0},
		{base: -10, mult: 2.0, want: 0},
	}
	for _, tt := range tests {
		if got := c.ApplyMultiplier(tt.base, tt.mult); got != tt.want {
			t.Errorf("ApplyMultiplier(%d, %v) = %d, want %d", tt.base, tt.mult, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no levels", mutate: func(c *Config) { c.Levels = nil }, wantErr: true},
		{name: "first level not zero", mutate: func(c *Config) { c.Levels[0].MinXP = 10 }, wantErr: true},
		{name: "non increasing thresholds", mutate: func(c *Config) { c.Levels[2].MinXP = c.Levels[1].MinXP }, wantErr: true},
		{name: "multiplier below one", mutate: func(c *Config) { c.StreakTiers[0].Multiplier = 0.9 }, wantErr: true},
		{name: "decreasing tiers", mutate: func(c *Config) { c.StreakTiers[2].Multiplier = 1.2 }, wantErr: true},
		{name: "max multiplier below one", mutate: func(c *Config) { c.MaxMultiplier = 0.5 }, wantErr: true},
		{name: "negative reward", mutate: func(c *Config) { c.Rewards.FeedbackGiven = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextStreak(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	ptr := func(t time.Time) *time.Time { return &t }
	tests := []struct {
		name    string
		last    *time.Time
		current int
		today   time.Time
		want    int
	}{
		{name: "first activity", last: nil, current: 0, today: day(10), want: 1},
		{name: "same day", last: ptr(day(10)), current: 4, today: day(10), want: 4},
		{name: "next day", last: ptr(day(9)), current: 4, today: day(10), want: 5},
		{name: "gap resets", last: ptr(day(7)), current: 4, today: day(10), want: 1},
		{name: "month boundary", last: ptr(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)), current: 2, today: day(1), want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.last, tt.current, tt.today); got != tt.want {
				t.Errorf("NextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	at := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	want := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	if got := CalendarDay(at, loc); !got.Equal(want) {
		t.Errorf("CalendarDay() = %v, want %v", got, want)
	}
	next := NextMidnight(at, loc)
	if want := time.Date(2026, 5, 3, 0, 0, 0, 0, loc); !next.Equal(want) {
		t.Errorf("NextMidnight() = %v, want %v", next, want)
	}
}
