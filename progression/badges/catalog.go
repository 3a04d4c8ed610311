// Package badges holds the badge catalog and the unlock evaluator.
package badges

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// Metric is a stat a badge criterion compares against.
type Metric uint8

const (
	MetricXPTotal Metric = iota + 1
	MetricLevel
	MetricCurrentStreak
	MetricLongestStreak
	MetricQuestsCompleted
	MetricFeedbackGiven
	MetricFeedbackReceived
	MetricAssessmentsCompleted
)

func (m Metric) String() string {
	switch m {
	case MetricXPTotal:
		return "xp_total"
	case MetricLevel:
		return "level"
	case MetricCurrentStreak:
		return "current_streak"
	case MetricLongestStreak:
		return "longest_streak"
	case MetricQuestsCompleted:
		return "quests_completed"
	case MetricFeedbackGiven:
		return "feedback_given"
	case MetricFeedbackReceived:
		return "feedback_received"
	case MetricAssessmentsCompleted:
		return "assessments_completed"
	default:
		return fmt.Sprintf("Metric(%d)", uint8(m))
	}
}

func ParseMetric(v string) (Metric, error) {
	for m := MetricXPTotal; m <= MetricAssessmentsCompleted; m++ {
		if strings.EqualFold(v, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown badge metric %q", v)
}

func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Metric) UnmarshalText(b []byte) error {
	parsed, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

type Criterion struct {
	Metric    Metric `toml:"metric" json:"metric"`
	Threshold int64  `toml:"threshold" json:"threshold"`
}

type Badge struct {
	Key         string           `toml:"key" json:"key"`
	Name        string           `toml:"name" json:"name"`
	Description string           `toml:"description" json:"description"`
	Tier        models.BadgeTier `toml:"tier" json:"tier"`
	Criterion   Criterion        `toml:"criterion" json:"criterion"`
	// Active defaults to true when omitted.
	Active *bool `toml:"active" json:"-"`
}

func (b Badge) IsActive() bool {
	return b.Active == nil || *b.Active
}

// TierXP is the bonus credited on unlock, per tier.
type TierXP struct {
	Bronze   int64 `toml:"bronze"`
	Silver   int64 `toml:"silver"`
	Gold     int64 `toml:"gold"`
	Platinum int64 `toml:"platinum"`
}

func (t TierXP) For(tier models.BadgeTier) int64 {
	switch tier {
	case models.TierBronze:
		return t.Bronze
	case models.TierSilver:
		return t.Silver
	case models.TierGold:
		return t.Gold
	case models.TierPlatinum:
		return t.Platinum
	default:
		return 0
	}
}

type Config struct {
	TierXP TierXP  `toml:"tier_xp"`
	Badges []Badge `toml:"badge"`
}

func NewDefaultConfig() *Config {
	return &Config{
		TierXP: TierXP{Bronze: 25, Silver: 50, Gold: 100, Platinum: 250},
		Badges: []Badge{
			{Key: "first_steps", Name: "First Steps", Description: "Earn 100 XP", Tier: models.TierBronze, Criterion: Criterion{MetricXPTotal, 100}},
			{Key: "self_aware", Name: "Self Aware", Description: "Complete an assessment phase", Tier: models.TierBronze, Criterion: Criterion{MetricAssessmentsCompleted, 1}},
			{Key: "quest_seeker", Name: "Quest Seeker", Description: "Complete 5 quests", Tier: models.TierBronze, Criterion: Criterion{MetricQuestsCompleted, 5}},
			{Key: "on_fire", Name: "On Fire", Description: "Keep a 7 day streak", Tier: models.TierSilver, Criterion: Criterion{MetricCurrentStreak, 7}},
			{Key: "generous", Name: "Generous", Description: "Give feedback 10 times", Tier: models.TierSilver, Criterion: Criterion{MetricFeedbackGiven, 10}},
			{Key: "open_mind", Name: "Open Mind", Description: "Receive feedback 10 times", Tier: models.TierSilver, Criterion: Criterion{MetricFeedbackReceived, 10}},
			{Key: "rising_star", Name: "Rising Star", Description: "Reach level 5", Tier: models.TierSilver, Criterion: Criterion{MetricLevel, 5}},
			{Key: "quest_master", Name: "Quest Master", Description: "Complete 50 quests", Tier: models.TierGold, Criterion: Criterion{MetricQuestsCompleted, 50}},
			{Key: "unstoppable", Name: "Unstoppable", Description: "Reach a 30 day streak", Tier: models.TierGold, Criterion: Criterion{MetricLongestStreak, 30}},
			{Key: "legend", Name: "Legend", Description: "Reach level 10", Tier: models.TierPlatinum, Criterion: Criterion{MetricLevel, 10}},
		},
	}
}

// Catalog is the validated, immutable badge list.
type Catalog struct {
	badges []Badge
	byKey  map[string]Badge
	tierXP TierXP
}

func NewCatalog(cfg *Config) (*Catalog, error) {
	if cfg.TierXP.Bronze < 0 || cfg.TierXP.Silver < 0 || cfg.TierXP.Gold < 0 || cfg.TierXP.Platinum < 0 {
		return nil, fmt.Errorf("badges: tier xp must not be negative")
	}
	c := &Catalog{
		badges: make([]Badge, 0, len(cfg.Badges)),
		byKey:  make(map[string]Badge, len(cfg.Badges)),
		tierXP: cfg.TierXP,
	}
	for _, b := range cfg.Badges {
		if strings.TrimSpace(b.Key) == "" {
			return nil, fmt.Errorf("badges: badge %q has no key", b.Name)
		}
		if _, dup := c.byKey[b.Key]; dup {
			return nil, fmt.Errorf("badges: duplicate badge key %q", b.Key)
		}
		if _, err := models.ParseBadgeTier(b.Tier.String()); err != nil {
			return nil, fmt.Errorf("badges: badge %q: %w", b.Key, err)
		}
		if _, err := ParseMetric(b.Criterion.Metric.String()); err != nil {
			return nil, fmt.Errorf("badges: badge %q: %w", b.Key, err)
		}
		if b.Criterion.Threshold <= 0 {
			return nil, fmt.Errorf("badges: badge %q threshold must be positive", b.Key)
		}
		if b.Name == "" {
			b.Name = b.Key
		}
		c.badges = append(c.badges, b)
		c.byKey[b.Key] = b
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.badges)
}

func (c *Catalog) Get(key string) (Badge, bool) {
	b, ok := c.byKey[key]
	return b, ok
}

func (c *Catalog) Bonus(b Badge) int64 {
	return c.tierXP.For(b.Tier)
}

// Active returns the active badges in catalog order.
func (c *Catalog) Active() []Badge {
	out := make([]Badge, 0, len(c.badges))
	for _, b := range c.badges {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

type nameSource []Badge

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// Search fuzzy-matches active badge names, best match first. An empty query
// lists every active badge.
func (c *Catalog) Search(query string) []Badge {
	active := c.Active()
	query = strings.TrimSpace(query)
	if query == "" {
		return active
	}
	matches := fuzzy.FindFrom(query, nameSource(active))
	out := make([]Badge, 0, len(matches))
	for _, m := range matches {
		out = append(out, active[m.Index])
	}
	return out
}
