package leveling

import (
	"math"
	"sort"
	"time"
)

// Calculator is the pure XP arithmetic. It copies its config on construction
// and never changes afterwards.
type Calculator struct {
	levels        []Level
	tiers         []StreakTier
	maxMultiplier float64
	rewards       Rewards
}

func NewCalculator(config *Config) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	tiers := append([]StreakTier(nil), config.StreakTiers...)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Days < tiers[j].Days })
	return &Calculator{
		levels:        append([]Level(nil), config.Levels...),
		tiers:         tiers,
		maxMultiplier: config.MaxMultiplier,
		rewards:       config.Rewards,
	}, nil
}

// levelIndex is the index of the highest level whose threshold is <= xp.
func (c *Calculator) levelIndex(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	i := sort.Search(len(c.levels), func(i int) bool { return c.levels[i].MinXP > xp })
	return i - 1
}

func (c *Calculator) LevelForXP(xp int64) int {
	return c.levels[c.levelIndex(xp)].Number
}

func (c *Calculator) MaxLevel() int {
	return c.levels[len(c.levels)-1].Number
}

// XPForNextLevel returns the XP still needed for the next level. ok is false
// at the max level.
func (c *Calculator) XPForNextLevel(xp int64) (remaining int64, ok bool) {
	i := c.levelIndex(xp)
	if i == len(c.levels)-1 {
		return 0, false
	}
	if xp < 0 {
		xp = 0
	}
	return c.levels[i+1].MinXP - xp, true
}

// LevelBand returns the XP earned inside the current level and the width of
// the band up to the next one. width is 0 at the max level.
func (c *Calculator) LevelBand(xp int64) (into, width int64) {
	if xp < 0 {
		xp = 0
	}
	i := c.levelIndex(xp)
	into = xp - c.levels[i].MinXP
	if i == len(c.levels)-1 {
		return into, 0
	}
	return into, c.levels[i+1].MinXP - c.levels[i].MinXP
}

// LevelProgress is the 0-100 progress inside the current level, 100 at max.
func (c *Calculator) LevelProgress(xp int64) int {
	into, width := c.LevelBand(xp)
	if width == 0 {
		return 100
	}
	p := int(into * 100 / width)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// StreakBonusMultiplier is a non-decreasing step function of the streak,
// never below 1.0 and capped at the configured maximum.
func (c *Calculator) StreakBonusMultiplier(streakDays int) float64 {
	m := 1.0
	for _, t := range c.tiers {
		if streakDays < t.Days {
			break
		}
		if t.Multiplier > m {
			m = t.Multiplier
		}
	}
	return math.Min(m, c.maxMultiplier)
}

// ApplyMultiplier rounds half away from zero.
func (c *Calculator) ApplyMultiplier(base int64, multiplier float64) int64 {
	if base <= 0 {
		return 0
	}
	return int64(math.Round(float64(base) * multiplier))
}

// BaseReward returns the configured reward for an event kind.
func (c *Calculator) BaseReward(kind EventKind) (int64, bool) {
	switch kind {
	case EventAssessmentCompleted:
		return c.rewards.AssessmentCompleted, true
	case EventFeedbackGiven:
		return c.rewards.FeedbackGiven, true
	case EventFeedbackReceived:
		return c.rewards.FeedbackReceived, true
	default:
		return 0, false
	}
}

// Snapshot derives the progress view for an XP total and streak.
func (c *Calculator) Snapshot(xpTotal int64, currentStreak, longestStreak int) Progress {
	into, width := c.LevelBand(xpTotal)
	p := Progress{
		XPTotal:          xpTotal,
		CurrentLevel:     c.LevelForXP(xpTotal),
		CurrentLevelXP:   into,
		LevelProgress:    c.LevelProgress(xpTotal),
		CurrentStreak:    currentStreak,
		LongestStreak:    longestStreak,
		StreakMultiplier: c.StreakBonusMultiplier(currentStreak),
	}
	if width > 0 {
		p.NextLevelXPRequired = &width
		remaining, _ := c.XPForNextLevel(xpTotal)
		p.XPToNextLevel = &remaining
	} else {
		p.IsMaxLevel = true
	}
	return p
}

// NextStreak returns the streak after activity on today. lastActivity and
// today are calendar days; activity twice on one day keeps the streak.
func NextStreak(lastActivity *time.Time, current int, today time.Time) int {
	if lastActivity == nil || current <= 0 {
		return 1
	}
	gap := daysBetween(*lastActivity, today)
	switch {
	case gap <= 0:
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
