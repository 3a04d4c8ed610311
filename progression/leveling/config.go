package leveling

import (
	"fmt"
	"sort"
)

type Level struct {
	Number int   `toml:"level"`
	MinXP  int64 `toml:"min_xp"`
}

// StreakTier applies Multiplier from Days consecutive active days on.
type StreakTier struct {
	Days       int     `toml:"days"`
	Multiplier float64 `toml:"multiplier"`
}

// Rewards is the base XP per domain event, before the streak multiplier.
type Rewards struct {
	AssessmentCompleted int64 `toml:"assessment_completed"`
	FeedbackGiven       int64 `toml:"feedback_given"`
	FeedbackReceived    int64 `toml:"feedback_received"`
}

type Config struct {
	Levels        []Level      `toml:"levels"`
	StreakTiers   []StreakTier `toml:"streak_tiers"`
	MaxMultiplier float64      `toml:"max_multiplier"`
	Rewards       Rewards      `toml:"rewards"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Levels: []Level{
			{Number: 1, MinXP: 0},
			{Number: 2, MinXP: 100},
			{Number: 3, MinXP: 250},
			{Number: 4, MinXP: 500},
			{Number: 5, MinXP: 1000},
			{Number: 6, MinXP: 2000},
			{Number: 7, MinXP: 3500},
			{Number: 8, MinXP: 5500},
			{Number: 9, MinXP: 8000},
			{Number: 10, MinXP: 12000},
		},
		StreakTiers: []StreakTier{
			{Days: 3, Multiplier: 1.1},
			{Days: 7, Multiplier: 1.25},
			{Days: 14, Multiplier: 1.5},
			{Days: 30, Multiplier: 2.0},
		},
		MaxMultiplier: 2.0,
		Rewards: Rewards{
			AssessmentCompleted: 50,
			FeedbackGiven:       20,
			FeedbackReceived:    10,
		},
	}
}

// Validate checks the level table starts at 0 XP with strictly increasing
// thresholds, and that streak tiers never go below 1.0 or decrease.
func (c *Config) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("leveling: at least one level is required")
	}
	if c.Levels[0].MinXP != 0 {
		return fmt.Errorf("leveling: first level must start at 0 xp, got %d", c.Levels[0].MinXP)
	}
	for i := 1; i < len(c.Levels); i++ {
		prev, cur := c.Levels[i-1], c.Levels[i]
		if cur.MinXP <= prev.MinXP {
			return fmt.Errorf("leveling: level %d min xp %d must exceed level %d min xp %d", cur.Number, cur.MinXP, prev.Number, prev.MinXP)
		}
		if cur.Number <= prev.Number {
			return fmt.Errorf("leveling: level numbers must increase, got %d after %d", cur.Number, prev.Number)
		}
	}

	if c.MaxMultiplier < 1.0 {
		return fmt.Errorf("leveling: max multiplier %.2f must be at least 1.0", c.MaxMultiplier)
	}
	tiers := append([]StreakTier(nil), c.StreakTiers...)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Days < tiers[j].Days })
	last := 1.0
	for _, t := range tiers {
		if t.Days <= 0 {
			return fmt.Errorf("leveling: streak tier days must be positive, got %d", t.Days)
		}
		if t.Multiplier < last {
			return fmt.Errorf("leveling: streak multiplier %.2f at %d days is below the previous tier %.2f", t.Multiplier, t.Days, last)
		}
		last = t.Multiplier
	}

	if c.Rewards.AssessmentCompleted < 0 || c.Rewards.FeedbackGiven < 0 || c.Rewards.FeedbackReceived < 0 {
		return fmt.Errorf("leveling: event rewards must not be negative")
	}
	return nil
}
