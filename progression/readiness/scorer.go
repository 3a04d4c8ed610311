// Package readiness computes the weighted readiness score that gates team
// reports.
package readiness

import (
	"fmt"
	"math"
)

// Weights are percentage points and must sum to 100.
type Weights struct {
	Modules    int `toml:"modules" json:"modules"`
	XP         int `toml:"xp" json:"xp"`
	Challenges int `toml:"challenges" json:"challenges"`
	Strengths  int `toml:"strengths" json:"strengths"`
}

func (w Weights) Sum() int {
	return w.Modules + w.XP + w.Challenges + w.Strengths
}

// Thresholds are the values at which a continuous sub-score saturates.
type Thresholds struct {
	Modules    int   `toml:"modules"`
	XP         int64 `toml:"xp"`
	Challenges int   `toml:"challenges"`
}

type Config struct {
	Weights    Weights    `toml:"weights"`
	Thresholds Thresholds `toml:"thresholds"`
	// ReadyScore is the individual score at or above which a user is ready.
	ReadyScore float64 `toml:"ready_score"`
	// TeamProportion is the share of active members that must be ready.
	TeamProportion float64 `toml:"team_proportion"`
	// MinActiveMembers is how many active members must be ready.
	MinActiveMembers int `toml:"min_active_members"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Weights:          Weights{Modules: 30, XP: 30, Challenges: 25, Strengths: 15},
		Thresholds:       Thresholds{Modules: 5, XP: 1000, Challenges: 3},
		ReadyScore:       70,
		TeamProportion:   0.6,
		MinActiveMembers: 3,
	}
}

func (c *Config) Validate() error {
	w := c.Weights
	if w.Modules < 0 || w.XP < 0 || w.Challenges < 0 || w.Strengths < 0 {
		return fmt.Errorf("readiness: weights must not be negative")
	}
	if w.Sum() != 100 {
		return fmt.Errorf("readiness: weights must sum to 100, got %d", w.Sum())
	}
	t := c.Thresholds
	if t.Modules <= 0 || t.XP <= 0 || t.Challenges <= 0 {
		return fmt.Errorf("readiness: thresholds must be positive")
	}
	if c.ReadyScore < 0 || c.ReadyScore > 100 {
		return fmt.Errorf("readiness: ready score must be within 0..100, got %v", c.ReadyScore)
	}
	if c.TeamProportion <= 0 || c.TeamProportion > 1 {
		return fmt.Errorf("readiness: team proportion must be within (0, 1], got %v", c.TeamProportion)
	}
	if c.MinActiveMembers < 1 {
		return fmt.Errorf("readiness: min active members must be at least 1")
	}
	return nil
}

// Inputs are the counts a score is computed from.
type Inputs struct {
	ModulesCompleted    int   `json:"modules_completed"`
	XPTotal             int64 `json:"xp_total"`
	ChallengesCompleted int   `json:"challenges_completed"`
	HasStrengths        bool  `json:"has_strengths"`
}

// Breakdown holds each weighted sub-score.
type Breakdown struct {
	Modules    float64 `json:"modules"`
	XP         float64 `json:"xp"`
	Challenges float64 `json:"challenges"`
	Strengths  float64 `json:"strengths"`
}

type Score struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Ready     bool      `json:"ready"`
}

// Member is one team member's individual result.
type Member struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
	Score
}

type TeamScore struct {
	ReadyMembers  int     `json:"ready_members"`
	ActiveMembers int     `json:"active_members"`
	Proportion    float64 `json:"proportion"`
	Ready         bool    `json:"ready"`
}

type Scorer struct {
	cfg Config
}

// NewScorer validates cfg once; the scorer never re-checks it.
func NewScorer(cfg *Config) (*Scorer, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: *cfg}, nil
}

func (s *Scorer) Config() Config {
	return s.cfg
}

func ratio(value, threshold float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(value/threshold, 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Scorer) Individual(in Inputs) Score {
	w, t := s.cfg.Weights, s.cfg.Thresholds
	b := Breakdown{
		Modules:    round2(ratio(float64(in.ModulesCompleted), float64(t.Modules)) * float64(w.Modules)),
		XP:         round2(ratio(float64(in.XPTotal), float64(t.XP)) * float64(w.XP)),
		Challenges: round2(ratio(float64(in.ChallengesCompleted), float64(t.Challenges)) * float64(w.Challenges)),
	}
	if in.HasStrengths {
		b.Strengths = float64(w.Strengths)
	}
	total := round2(b.Modules + b.XP + b.Challenges + b.Strengths)
	return Score{Score: total, Breakdown: b, Ready: total >= s.cfg.ReadyScore}
}

// Team applies the AND gate: the ready share of active members must reach
// TeamProportion and the ready active members must number at least
// MinActiveMembers. Inactive members are left out of both.
func (s *Scorer) Team(members []Member) TeamScore {
	var active, ready int
	for _, m := range members {
		if !m.Active {
			continue
		}
		active++
		if m.Ready {
			ready++
		}
	}
	ts := TeamScore{ReadyMembers: ready, ActiveMembers: active}
	if active > 0 {
		ts.Proportion = round2(float64(ready) / float64(active))
	}
	ts.Ready = active > 0 &&
		float64(ready)/float64(active) >= s.cfg.TeamProportion &&
		ready >= s.cfg.MinActiveMembers
	return ts
}
