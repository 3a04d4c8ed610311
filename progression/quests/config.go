// Package quests implements daily quest generation, the quest lifecycle and
// the expiration sweep.
package quests

import (
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// Template is a quest blueprint. Title may contain one %s, replaced by the
// bound strength name.
type Template struct {
	Key      string           `toml:"key"`
	Type     models.QuestType `toml:"type"`
	Title    string           `toml:"title"`
	XPReward int64            `toml:"xp_reward"`
	// Requires lists the strength names a COMBO_BREAKER needs in the user's
	// top strengths.
	Requires []string `toml:"requires"`
}

type Config struct {
	DailyQuestCount int             `toml:"daily_quest_count"`
	TopStrengths    int             `toml:"top_strengths"`
	QuestDuration   config.Duration `toml:"quest_duration"`
	Cooldown        config.Duration `toml:"cooldown"`
	Templates       []Template      `toml:"template"`
}

func NewDefaultConfig() *Config {
	return &Config{
		DailyQuestCount: config.DefaultDailyQuestCount,
		TopStrengths:    5,
		QuestDuration:   config.Duration(config.DefaultQuestDuration),
		Cooldown:        config.Duration(config.DefaultQuestCooldown),
		Templates: []Template{
			{Key: "spotlight", Type: models.QuestStandard, Title: "Put %s to work on today's hardest task", XPReward: 30},
			{Key: "reflect", Type: models.QuestStandard, Title: "Write down one moment %s helped you today", XPReward: 20},
			{Key: "teach", Type: models.QuestStandard, Title: "Explain to a colleague how you use %s", XPReward: 40},
			{Key: "stretch", Type: models.QuestStandard, Title: "Use %s in a situation outside your comfort zone", XPReward: 50},
			{Key: "pair_up", Type: models.QuestCooperative, Title: "Pair with a teammate and lead with %s", XPReward: 60},
			{Key: "strategic_empathy", Type: models.QuestComboBreaker, Title: "Plan a conversation that balances strategy and empathy", XPReward: 80, Requires: []string{"Strategic", "Empathy"}},
			{Key: "focused_achiever", Type: models.QuestComboBreaker, Title: "Finish a milestone end to end without context switching", XPReward: 80, Requires: []string{"Focus", "Achiever"}},
		},
	}
}

func (c *Config) Validate() error {
	if c.DailyQuestCount <= 0 {
		return fmt.Errorf("quests: daily quest count must be positive, got %d", c.DailyQuestCount)
	}
	if c.TopStrengths <= 0 {
		return fmt.Errorf("quests: top strengths must be positive, got %d", c.TopStrengths)
	}
	if c.QuestDuration <= 0 {
		return fmt.Errorf("quests: quest duration must be positive")
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("quests: cooldown must not be negative")
	}
	seen := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if strings.TrimSpace(t.Key) == "" {
			return fmt.Errorf("quests: template %q has no key", t.Title)
		}
		if seen[t.Key] {
			return fmt.Errorf("quests: duplicate template key %q", t.Key)
		}
		seen[t.Key] = true
		if _, err := models.ParseQuestType(t.Type.String()); err != nil {
			return fmt.Errorf("quests: template %q: %w", t.Key, err)
		}
		if t.XPReward <= 0 {
			return fmt.Errorf("quests: template %q xp reward must be positive", t.Key)
		}
		if t.Type == models.QuestComboBreaker && len(t.Requires) < 2 {
			return fmt.Errorf("quests: combo template %q needs at least two required strengths", t.Key)
		}
	}
	return nil
}
