// Package maturity tracks per-strength XP pools and their rank transitions.
package maturity

import (
	"fmt"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// Config holds the XP needed to leave each rank below the final one.
type Config struct {
	Novice     int64 `toml:"novice"`
	Developing int64 `toml:"developing"`
	Proficient int64 `toml:"proficient"`
}

func NewDefaultConfig() *Config {
	return &Config{Novice: 100, Developing: 250, Proficient: 500}
}

func (c *Config) Validate() error {
	if c.Novice <= 0 || c.Developing <= 0 || c.Proficient <= 0 {
		return fmt.Errorf("maturity: thresholds must be positive, got %d/%d/%d", c.Novice, c.Developing, c.Proficient)
	}
	return nil
}

// Tracker is the pure rank arithmetic.
type Tracker struct {
	thresholds map[models.MaturityLevel]int64
	final      int64
	now        func() time.Time
}

func NewTracker(cfg *Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		thresholds: map[models.MaturityLevel]int64{
			models.MaturityNovice:     cfg.Novice,
			models.MaturityDeveloping: cfg.Developing,
			models.MaturityProficient: cfg.Proficient,
		},
		final: cfg.Proficient,
		now:   time.Now,
	}, nil
}

// Required returns the XP needed to leave level. ok is false at the final rank.
func (t *Tracker) Required(level models.MaturityLevel) (int64, bool) {
	if level == models.MaxMaturityLevel {
		return 0, false
	}
	v, ok := t.thresholds[level]
	return v, ok
}

type Transition struct {
	From         models.MaturityLevel
	To           models.MaturityLevel
	LevelsGained int
}

func (tr Transition) RankedUp() bool {
	return tr.LevelsGained > 0
}

// Apply adds amount to m, ranking up as many times as the pool allows and
// carrying the remainder. At the final rank only xp_total grows and
// xp_current stays pinned at the last threshold.
func (t *Tracker) Apply(m *models.StrengthMaturity, amount int64) Transition {
	tr := Transition{From: m.CurrentLevel, To: m.CurrentLevel}
	if amount <= 0 {
		return tr
	}
	m.XPTotal += amount

	if m.CurrentLevel == models.MaxMaturityLevel {
		m.XPCurrent = t.final
		return tr
	}

	m.XPCurrent += amount
	for {
		required, ok := t.Required(m.CurrentLevel)
		if !ok || m.XPCurrent < required {
			break
		}
		next, _ := m.CurrentLevel.Next()
		m.XPCurrent -= required
		m.CurrentLevel = next
		tr.LevelsGained++
		if next == models.MaxMaturityLevel {
			m.XPCurrent = t.final
			break
		}
	}
	if tr.LevelsGained > 0 {
		at := t.now().UTC()
		m.LevelReachedAt = &at
	}
	tr.To = m.CurrentLevel
	return tr
}

type Progress struct {
	StrengthID      string               `json:"strength_id"`
	Level           models.MaturityLevel `json:"level"`
	XPCurrent       int64                `json:"xp_current"`
	XPRequired      *int64               `json:"xp_required"`
	XPTotal         int64                `json:"xp_total"`
	ProgressPercent int                  `json:"progress_percent"`
	IsMaxLevel      bool                 `json:"is_max_level"`
	LevelReachedAt  *time.Time           `json:"level_reached_at,omitempty"`
}

func (t *Tracker) Progress(m *models.StrengthMaturity) Progress {
	p := Progress{
		StrengthID:     m.StrengthID,
		Level:          m.CurrentLevel,
		XPCurrent:      m.XPCurrent,
		XPTotal:        m.XPTotal,
		LevelReachedAt: m.LevelReachedAt,
	}
	required, ok := t.Required(m.CurrentLevel)
	if !ok {
		p.IsMaxLevel = true
		p.ProgressPercent = 100
		return p
	}
	p.XPRequired = &required
	pct := int(m.XPCurrent * 100 / required)
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	p.ProgressPercent = pct
	return p
}
