// Package memstore is an in-process implementation of the repositories for
// local development and tests. Transactions are serialized and applied to a
// copy of the state that is swapped in on success.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
)

type maturityKey struct {
	userID     string
	strengthID string
}

type badgeKey struct {
	userID   string
	badgeKey string
}

type ledgerKey struct {
	userID    string
	source    models.XPSource
	reference string
}

type state struct {
	stats         map[string]models.GamificationStats
	quests        map[string]*models.Quest
	maturity      map[maturityKey]models.StrengthMaturity
	badges        map[badgeKey]models.UserBadge
	ledger        []models.XPEvent
	ledgerRefs    map[ledgerKey]int
	strengths     map[string]models.Strength
	userStrengths map[string][]models.RankedStrength
	learning      map[string]models.LearningProgress
	teams         map[string][]models.TeamMember
	nextID        int64
}

func newState() *state {
	return &state{
		stats:         make(map[string]models.GamificationStats),
		quests:        make(map[string]*models.Quest),
		maturity:      make(map[maturityKey]models.StrengthMaturity),
		badges:        make(map[badgeKey]models.UserBadge),
		ledgerRefs:    make(map[ledgerKey]int),
		strengths:     make(map[string]models.Strength),
		userStrengths: make(map[string][]models.RankedStrength),
		learning:      make(map[string]models.LearningProgress),
		teams:         make(map[string][]models.TeamMember),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.stats {
		c.stats[k] = v
	}
	for k, v := range s.quests {
		c.quests[k] = v.Clone()
	}
	for k, v := range s.maturity {
		c.maturity[k] = v
	}
	for k, v := range s.badges {
		c.badges[k] = v
	}
	c.ledger = append([]models.XPEvent(nil), s.ledger...)
	for k, v := range s.ledgerRefs {
		c.ledgerRefs[k] = v
	}
	for k, v := range s.strengths {
		c.strengths[k] = v
	}
	for k, v := range s.userStrengths {
		c.userStrengths[k] = append([]models.RankedStrength(nil), v...)
	}
	for k, v := range s.learning {
		c.learning[k] = v
	}
	for k, v := range s.teams {
		c.teams[k] = append([]models.TeamMember(nil), v...)
	}
	c.nextID = s.nextID
	return c
}

// Store implements repositories.UnitOfWork in memory.
type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

// view routes repository calls either to the committed state, taking the
// lock per call, or to a transaction's working copy.
type view struct {
	s  *Store
	tx *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

func (v view) repos() repositories.Repos {
	return repositories.Repos{
		Stats:     statsRepo{v},
		Quests:    questRepo{v},
		Maturity:  maturityRepo{v},
		Badges:    badgeRepo{v},
		Ledger:    ledgerRepo{v},
		Strengths: strengthRepo{v},
		Learning:  learningRepo{v},
		Teams:     teamRepo{v},
	}
}

func (s *Store) Repositories() repositories.Repos {
	return view{s: s}.repos()
}

func (s *Store) Atomically(ctx context.Context, fn func(ctx context.Context, r repositories.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(ctx, view{s: s, tx: work}.repos()); err != nil {
		return err
	}
	s.st = work
	return nil
}

// SeedStrengths loads the strength directory.
func (s *Store) SeedStrengths(strengths ...models.Strength) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range strengths {
		s.st.strengths[st.ID] = st
	}
}

// SetUserStrengths replaces a user's ranked strengths, ids in rank order.
func (s *Store) SetUserStrengths(userID string, strengthIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranked := make([]models.RankedStrength, 0, len(strengthIDs))
	for i, id := range strengthIDs {
		name := id
		if st, ok := s.st.strengths[id]; ok {
			name = st.Name
		}
		ranked = append(ranked, models.RankedStrength{ID: id, Name: name, Rank: i + 1})
	}
	s.st.userStrengths[userID] = ranked
}

func (s *Store) SetLearningProgress(userID string, modules, challenges int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.learning[userID] = models.LearningProgress{
		UserID:              userID,
		ModulesCompleted:    modules,
		ChallengesCompleted: challenges,
		UpdatedAt:           time.Now().UTC(),
	}
}

func (s *Store) AddTeamMember(teamID, userID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.teams[teamID] = append(s.st.teams[teamID], models.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Active:   active,
		JoinedAt: time.Now().UTC(),
	})
}

// PutQuest stores q as is, bypassing slot checks.
func (s *Store) PutQuest(q *models.Quest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.quests[q.ID] = q.Clone()
}

type statsRepo struct{ v view }

func (r statsRepo) Get(_ context.Context, userID string) (*models.GamificationStats, error) {
	var out *models.GamificationStats
	err := r.v.do(func(st *state) error {
		s, ok := st.stats[userID]
		if !ok {
			return apperr.NotFound("gamification_stats", userID)
		}
		out = &s
		return nil
	})
	return out, err
}

func (r statsRepo) Ensure(_ context.Context, userID string) (*models.GamificationStats, error) {
	var out models.GamificationStats
	err := r.v.do(func(st *state) error {
		s, ok := st.stats[userID]
		if !ok {
			now := time.Now().UTC()
			s = models.GamificationStats{UserID: userID, CreatedAt: now, UpdatedAt: now}
			st.stats[userID] = s
		}
		out = s
		return nil
	})
	return &out, err
}

func (r statsRepo) AddXP(_ context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, apperr.Validation("amount", "negative xp amount %d", amount)
	}
	var total int64
	err := r.v.do(func(st *state) error {
		now := time.Now().UTC()
		s, ok := st.stats[userID]
		if !ok {
			s = models.GamificationStats{UserID: userID, CreatedAt: now}
		}
		s.XPTotal += amount
		s.UpdatedAt = now
		st.stats[userID] = s
		total = s.XPTotal
		return nil
	})
	return total, err
}

func (r statsRepo) IncrementCounter(_ context.Context, userID string, counter models.StatCounter, delta int64) error {
	return r.v.do(func(st *state) error {
		s, ok := st.stats[userID]
		if !ok {
			return apperr.NotFound("gamification_stats", userID)
		}
		if err := counter.Bump(&s, delta); err != nil {
			return err
		}
		s.UpdatedAt = time.Now().UTC()
		st.stats[userID] = s
		return nil
	})
}

func (r statsRepo) UpdateStreak(_ context.Context, userID string, current, longest int, day time.Time) error {
	return r.v.do(func(st *state) error {
		s, ok := st.stats[userID]
		if !ok {
			return apperr.NotFound("gamification_stats", userID)
		}
		s.CurrentStreak = current
		if longest > s.LongestStreak {
			s.LongestStreak = longest
		}
		d := day
		s.LastActivityDate = &d
		s.UpdatedAt = time.Now().UTC()
		st.stats[userID] = s
		return nil
	})
}

type questRepo struct{ v view }

func (r questRepo) Create(_ context.Context, quests []*models.Quest) (int, error) {
	created := 0
	err := r.v.do(func(st *state) error {
		for _, q := range quests {
			if _, exists := st.quests[q.ID]; exists {
				continue
			}
			if slotTaken(st, q) {
				continue
			}
			st.quests[q.ID] = q.Clone()
			created++
		}
		return nil
	})
	return created, err
}

func slotTaken(st *state, q *models.Quest) bool {
	for _, other := range st.quests {
		if other.UserID == q.UserID && other.IssuedOn.Equal(q.IssuedOn) &&
			other.SlotIndex == q.SlotIndex && other.IsActive() {
			return true
		}
	}
	return false
}

func (r questRepo) GetByID(_ context.Context, id string) (*models.Quest, error) {
	var out *models.Quest
	err := r.v.do(func(st *state) error {
		q, ok := st.quests[id]
		if !ok {
			return apperr.NotFound("quest", id)
		}
		out = q.Clone()
		return nil
	})
	return out, err
}

func (r questRepo) ListForDay(_ context.Context, userID string, day time.Time) ([]*models.Quest, error) {
	var out []*models.Quest
	err := r.v.do(func(st *state) error {
		for _, q := range st.quests {
			if q.UserID == userID && q.IssuedOn.Equal(day) {
				out = append(out, q.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].SlotIndex < out[j].SlotIndex
	})
	return out, err
}

func (r questRepo) CooldownSlots(_ context.Context, userID string, now time.Time) ([]string, error) {
	var out []string
	err := r.v.do(func(st *state) error {
		seen := make(map[string]bool)
		for _, q := range st.quests {
			if q.UserID == userID && q.CooldownUntil != nil && q.CooldownUntil.After(now) && !seen[q.SlotKey] {
				seen[q.SlotKey] = true
				out = append(out, q.SlotKey)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (r questRepo) Start(_ context.Context, userID, questID string, day, now, expiresAt time.Time) (*models.Quest, bool, error) {
	var out *models.Quest
	err := r.v.do(func(st *state) error {
		q, ok := st.quests[questID]
		if !ok || q.UserID != userID || !q.Status.CanTransitionTo(models.QuestInProgress) || !q.IsActive() || !q.IssuedOn.Equal(day) {
			return nil
		}
		started, expires := now, expiresAt
		q.Status = models.QuestInProgress
		q.StartedAt = &started
		q.ExpiresAt = &expires
		q.UpdatedAt = now
		out = q.Clone()
		return nil
	})
	return out, out != nil, err
}

func (r questRepo) Complete(_ context.Context, userID, questID string, u repositories.CompletionUpdate) (*models.Quest, bool, error) {
	var out *models.Quest
	err := r.v.do(func(st *state) error {
		q, ok := st.quests[questID]
		if !ok || q.UserID != userID || !q.Status.CanTransitionTo(models.QuestCompleted) ||
			q.ExpiresAt == nil || !q.ExpiresAt.After(u.Now) {
			return nil
		}
		completed, cooldown := u.Now, u.CooldownUntil
		q.Status = models.QuestCompleted
		q.CompletedAt = &completed
		q.CooldownUntil = &cooldown
		q.ReflectionNote = u.ReflectionNote
		q.ConfirmedBy = u.ConfirmedBy
		q.UpdatedAt = u.Now
		out = q.Clone()
		return nil
	})
	return out, out != nil, err
}

func (r questRepo) SupersedePending(_ context.Context, userID string, day, now time.Time) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, q := range st.quests {
			if q.UserID == userID && q.IssuedOn.Equal(day) && q.Status == models.QuestPending && q.IsActive() {
				at := now
				q.SupersededAt = &at
				q.UpdatedAt = now
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r questRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		for _, q := range st.quests {
			if q.Status.CanTransitionTo(models.QuestExpired) && q.ExpiresAt != nil && q.ExpiresAt.Before(now) {
				at := now
				q.Status = models.QuestExpired
				q.ExpiredAt = &at
				q.UpdatedAt = now
				n++
			}
		}
		return nil
	})
	return n, err
}

type maturityRepo struct{ v view }

func (r maturityRepo) Get(_ context.Context, userID, strengthID string) (*models.StrengthMaturity, error) {
	var out *models.StrengthMaturity
	err := r.v.do(func(st *state) error {
		m, ok := st.maturity[maturityKey{userID, strengthID}]
		if !ok {
			return apperr.NotFound("strength_maturity", userID+"/"+strengthID)
		}
		out = &m
		return nil
	})
	return out, err
}

func (r maturityRepo) ListByUser(_ context.Context, userID string) ([]*models.StrengthMaturity, error) {
	var out []*models.StrengthMaturity
	err := r.v.do(func(st *state) error {
		for k, m := range st.maturity {
			if k.userID == userID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StrengthID < out[j].StrengthID })
	return out, err
}

func (r maturityRepo) Ensure(_ context.Context, userID, strengthID string) (*models.StrengthMaturity, error) {
	var out models.StrengthMaturity
	err := r.v.do(func(st *state) error {
		key := maturityKey{userID, strengthID}
		m, ok := st.maturity[key]
		if !ok {
			now := time.Now().UTC()
			m = *models.NewStrengthMaturity(userID, strengthID)
			m.CreatedAt, m.UpdatedAt = now, now
			st.maturity[key] = m
		}
		out = m
		return nil
	})
	return &out, err
}

func (r maturityRepo) Save(_ context.Context, m *models.StrengthMaturity) error {
	return r.v.do(func(st *state) error {
		key := maturityKey{m.UserID, m.StrengthID}
		if _, ok := st.maturity[key]; !ok {
			return apperr.NotFound("strength_maturity", m.UserID+"/"+m.StrengthID)
		}
		saved := *m
		saved.UpdatedAt = time.Now().UTC()
		st.maturity[key] = saved
		return nil
	})
}

type badgeRepo struct{ v view }

func (r badgeRepo) ListByUser(_ context.Context, userID string) ([]*models.UserBadge, error) {
	var out []*models.UserBadge
	err := r.v.do(func(st *state) error {
		for k, b := range st.badges {
			if k.userID == userID {
				b := b
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r badgeRepo) Unlock(_ context.Context, badge *models.UserBadge) (bool, error) {
	created := false
	err := r.v.do(func(st *state) error {
		key := badgeKey{badge.UserID, badge.BadgeKey}
		if _, ok := st.badges[key]; ok {
			return nil
		}
		st.nextID++
		badge.ID = st.nextID
		st.badges[key] = *badge
		created = true
		return nil
	})
	return created, err
}

type ledgerRepo struct{ v view }

func (r ledgerRepo) Append(_ context.Context, event *models.XPEvent) (bool, error) {
	created := false
	err := r.v.do(func(st *state) error {
		key := ledgerKey{event.UserID, event.Source, event.Reference}
		if event.Reference != "" {
			if _, ok := st.ledgerRefs[key]; ok {
				return nil
			}
		}
		st.nextID++
		event.ID = st.nextID
		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now().UTC()
		}
		st.ledger = append(st.ledger, *event)
		if event.Reference != "" {
			st.ledgerRefs[key] = len(st.ledger) - 1
		}
		created = true
		return nil
	})
	return created, err
}

func (r ledgerRepo) FindByReference(_ context.Context, userID string, source models.XPSource, reference string) (*models.XPEvent, error) {
	var out *models.XPEvent
	err := r.v.do(func(st *state) error {
		idx, ok := st.ledgerRefs[ledgerKey{userID, source, reference}]
		if !ok {
			return apperr.NotFound("xp_event", reference)
		}
		e := st.ledger[idx]
		out = &e
		return nil
	})
	return out, err
}

func (r ledgerRepo) ListByUser(_ context.Context, userID string, limit int) ([]*models.XPEvent, error) {
	var out []*models.XPEvent
	err := r.v.do(func(st *state) error {
		for i := len(st.ledger) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			if st.ledger[i].UserID == userID {
				e := st.ledger[i]
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

type strengthRepo struct{ v view }

func (r strengthRepo) RankedForUser(_ context.Context, userID string) ([]models.RankedStrength, error) {
	var out []models.RankedStrength
	err := r.v.do(func(st *state) error {
		out = append(out, st.userStrengths[userID]...)
		return nil
	})
	return out, err
}

func (r strengthRepo) Known(_ context.Context, ids []string) (map[string]bool, error) {
	known := make(map[string]bool, len(ids))
	err := r.v.do(func(st *state) error {
		for _, id := range ids {
			if _, ok := st.strengths[id]; ok {
				known[id] = true
			}
		}
		return nil
	})
	return known, err
}

type learningRepo struct{ v view }

func (r learningRepo) Get(_ context.Context, userID string) (*models.LearningProgress, error) {
	out := &models.LearningProgress{UserID: userID}
	err := r.v.do(func(st *state) error {
		if p, ok := st.learning[userID]; ok {
			*out = p
		}
		return nil
	})
	return out, err
}

type teamRepo struct{ v view }

func (r teamRepo) Members(_ context.Context, teamID string) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	err := r.v.do(func(st *state) error {
		members, ok := st.teams[teamID]
		if !ok || len(members) == 0 {
			return apperr.NotFound("team", teamID)
		}
		for _, m := range members {
			m := m
			out = append(out, &m)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, err
}
