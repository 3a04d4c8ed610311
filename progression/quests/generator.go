package quests

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
)

// candidate is one quest that may fill a slot.
type candidate struct {
	template Template
	strength models.RankedStrength
	slotKey  string
}

// plan is the input of one generation round.
type plan struct {
	userID    string
	day       time.Time
	round     int
	open      []int
	ranked    []models.RankedStrength
	blocked   map[string]bool
	issued    map[string]bool
	createdAt time.Time
}

func slotKey(t Template, strengthID string) string {
	if t.Type == models.QuestComboBreaker {
		return t.Type.String() + ":" + t.Key
	}
	return t.Type.String() + ":" + strengthID
}

// candidates lists every eligible (template, strength) pairing for the
// user's top strengths, one per slot key.
func (c *Config) candidates(ranked []models.RankedStrength) [][]candidate {
	top := strengths.Top(ranked, c.TopStrengths)
	if len(top) == 0 {
		return nil
	}
	byName := make(map[string]models.RankedStrength, len(top))
	for _, s := range top {
		byName[strings.ToLower(s.Name)] = s
	}

	var order []string
	slots := make(map[string][]candidate)
	add := func(t Template, s models.RankedStrength) {
		key := slotKey(t, s.ID)
		if _, ok := slots[key]; !ok {
			order = append(order, key)
		}
		slots[key] = append(slots[key], candidate{template: t, strength: s, slotKey: key})
	}

	for _, t := range c.Templates {
		switch t.Type {
		case models.QuestStandard:
			for _, s := range top {
				add(t, s)
			}
		case models.QuestCooperative:
			add(t, top[0])
		case models.QuestComboBreaker:
			best, ok := comboAnchor(t, byName)
			if ok {
				add(t, best)
			}
		}
	}

	out := make([][]candidate, 0, len(order))
	for _, key := range order {
		out = append(out, slots[key])
	}
	return out
}

// comboAnchor returns the highest ranked of the template's required
// strengths; ok is false unless all of them are among the top strengths.
func comboAnchor(t Template, top map[string]models.RankedStrength) (models.RankedStrength, bool) {
	var best models.RankedStrength
	for i, name := range t.Requires {
		s, ok := top[strings.ToLower(name)]
		if !ok {
			return models.RankedStrength{}, false
		}
		if i == 0 || s.Rank < best.Rank {
			best = s
		}
	}
	return best, len(t.Requires) > 0
}

func seed(userID string, day time.Time, round int) (uint64, uint64) {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", userID, day.Format(time.DateOnly), round)
	s := h.Sum64()
	return s, s ^ 0x9e3779b97f4a7c15
}

// generate picks quests for p.open. Slots not yet issued today are preferred
// over slots whose quests were superseded earlier in the day.
func (c *Config) generate(p plan) []*models.Quest {
	if len(p.open) == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed(p.userID, p.day, p.round)))

	var fresh, reused []candidate
	for _, group := range c.candidates(p.ranked) {
		pick := group[rng.IntN(len(group))]
		switch {
		case p.blocked[pick.slotKey]:
		case p.issued[pick.slotKey]:
			reused = append(reused, pick)
		default:
			fresh = append(fresh, pick)
		}
	}
	rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	rng.Shuffle(len(reused), func(i, j int) { reused[i], reused[j] = reused[j], reused[i] })
	chosen := append(fresh, reused...)

	n := min(len(chosen), len(p.open))
	out := make([]*models.Quest, 0, n)
	for i := 0; i < n; i++ {
		cand := chosen[i]
		title := cand.template.Title
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, cand.strength.Name)
		}
		q := &models.Quest{
			ID:          uuid.NewString(),
			UserID:      p.userID,
			Type:        cand.template.Type,
			TemplateKey: cand.template.Key,
			Title:       title,
			StrengthID:  cand.strength.ID,
			SlotKey:     cand.slotKey,
			SlotIndex:   p.open[i],
			Round:       p.round,
			Status:      models.QuestPending,
			XPReward:    cand.template.XPReward,
			IssuedOn:    p.day,
			CreatedAt:   p.createdAt,
			UpdatedAt:   p.createdAt,
		}
		if cand.template.Type == models.QuestComboBreaker {
			q.ComboRequired = append([]string(nil), cand.template.Requires...)
		}
		out = append(out, q)
	}
	return out
}
