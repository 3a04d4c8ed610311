package quests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

var (
	errSlotRace     = errors.New("quest slot taken concurrently")
	errNotCompleted = errors.New("quest not completable")
)

type Service struct {
	cfg       *Config
	uow       repositories.UnitOfWork
	strengths strengths.Source
	leveling  *leveling.Service
	maturity  *maturity.Service
	loc       *time.Location
	now       func() time.Time
	group     singleflight.Group
}

func NewService(cfg *Config, uow repositories.UnitOfWork, source strengths.Source, lv *leveling.Service, mt *maturity.Service, loc *time.Location) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		cfg:       cfg,
		uow:       uow,
		strengths: source,
		leveling:  lv,
		maturity:  mt,
		loc:       loc,
		now:       time.Now,
	}, nil
}

// GetQuests returns the user's quests for today, generating them on the first
// call of the day. Concurrent calls for the same user and day share one pass.
func (s *Service) GetQuests(ctx context.Context, req Request) (*DailyQuests, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperr.Unauthenticated()
	}
	now := s.now()
	day := leveling.CalendarDay(now, s.loc)

	key := fmt.Sprintf("%s|%s|%t", req.UserID, day.Format(time.DateOnly), req.ForceRegenerate)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.dailySet(ctx, req.UserID, day, now, req.ForceRegenerate)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Quest generation shared", slog.String("user_id", req.UserID))
	}

	active := v.([]*models.Quest)
	out := &DailyQuests{
		Quests:               make([]*models.Quest, 0, len(active)),
		HasCompletedAll:      len(active) > 0,
		NextRegenerationTime: leveling.NextMidnight(now, s.loc),
	}
	for _, q := range active {
		if q.Status != models.QuestCompleted {
			out.HasCompletedAll = false
		}
		if q.Status == models.QuestExpired && !req.IncludeExpired {
			continue
		}
		out.Quests = append(out.Quests, q.Clone())
	}
	return out, nil
}

func (s *Service) dailySet(ctx context.Context, userID string, day, now time.Time, force bool) ([]*models.Quest, error) {
	ctx, span := telemetry.Tracer("quests").Start(ctx, "quests.Generate")
	span.SetAttributes(attribute.String("user.id", userID), attribute.Bool("quests.force", force))

	// Rankings are read before the unit of work; they come from another
	// workflow and may be cached.
	ranked, err := s.strengths.Ranked(ctx, userID)
	if err != nil {
		telemetry.End(span, err)
		return nil, fmt.Errorf("load strengths: %w", err)
	}

	var result []*models.Quest
	err = s.uow.Atomically(ctx, func(ctx context.Context, r repositories.Repos) error {
		var err error
		result, err = s.fill(ctx, r, userID, day, now, ranked, force)
		return err
	})
	if errors.Is(err, errSlotRace) {
		slog.Warn("Quest slot race, returning stored set", slog.String("user_id", userID))
		result, err = s.activeFor(ctx, s.uow.Repositories(), userID, day)
	}
	telemetry.End(span, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) activeFor(ctx context.Context, r repositories.Repos, userID string, day time.Time) ([]*models.Quest, error) {
	all, err := r.Quests.ListForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	active := make([]*models.Quest, 0, len(all))
	for _, q := range all {
		if q.IsActive() {
			active = append(active, q)
		}
	}
	return active, nil
}

func (s *Service) fill(ctx context.Context, r repositories.Repos, userID string, day, now time.Time, ranked []models.RankedStrength, force bool) ([]*models.Quest, error) {
	all, err := r.Quests.ListForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	round := 0
	issued := make(map[string]bool, len(all))
	var active []*models.Quest
	for _, q := range all {
		issued[q.SlotKey] = true
		if q.Round >= round {
			round = q.Round + 1
		}
		if q.IsActive() {
			active = append(active, q)
		}
	}
	if len(active) > 0 && !force {
		return active, nil
	}

	if force {
		superseded, err := r.Quests.SupersedePending(ctx, userID, day, now)
		if err != nil {
			return nil, err
		}
		kept := active[:0]
		for _, q := range active {
			if q.Status != models.QuestPending {
				kept = append(kept, q)
			}
		}
		active = kept
		slog.Info("Quests regenerated",
			slog.String("type", "quest"),
			slog.String("user_id", userID),
			slog.Int("superseded", superseded),
			slog.Int("round", round))
	}

	usedIdx := make(map[int]bool, len(active))
	blocked := make(map[string]bool)
	for _, q := range active {
		usedIdx[q.SlotIndex] = true
		blocked[q.SlotKey] = true
	}
	var open []int
	for i := 0; i < s.cfg.DailyQuestCount; i++ {
		if !usedIdx[i] {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return active, nil
	}

	cooling, err := r.Quests.CooldownSlots(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	for _, k := range cooling {
		blocked[k] = true
	}

	created := s.cfg.generate(plan{
		userID:    userID,
		day:       day,
		round:     round,
		open:      open,
		ranked:    ranked,
		blocked:   blocked,
		issued:    issued,
		createdAt: now.UTC(),
	})
	n, err := r.Quests.Create(ctx, created)
	if err != nil {
		return nil, err
	}
	if n < len(created) {
		return nil, errSlotRace
	}

	slog.Info("Daily quests issued",
		slog.String("type", "quest"),
		slog.String("user_id", userID),
		slog.String("day", day.Format(time.DateOnly)),
		slog.Int("count", n))
	return append(active, created...), nil
}

// StartQuest moves a PENDING quest of today to IN_PROGRESS and sets its deadline.
func (s *Service) StartQuest(ctx context.Context, userID, questID string) (*models.Quest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Unauthenticated()
	}
	if _, err := uuid.Parse(questID); err != nil {
		return nil, apperr.Validation("quest_id", "quest id must be a UUID")
	}

	now := s.now()
	day := leveling.CalendarDay(now, s.loc)
	r := s.uow.Repositories()
	q, ok, err := r.Quests.Start(ctx, userID, questID, day, now.UTC(), now.UTC().Add(s.cfg.QuestDuration.Std()))
	if err != nil {
		return nil, err
	}
	if ok {
		slog.Info("Quest started",
			slog.String("type", "quest"),
			slog.String("user_id", userID),
			slog.String("quest_id", questID))
		return q, nil
	}

	current, err := r.Quests.GetByID(ctx, questID)
	if err != nil {
		return nil, err
	}
	switch {
	case current.UserID != userID:
		return nil, apperr.Forbidden("quest belongs to another user")
	case !current.Status.CanTransitionTo(models.QuestInProgress):
		return nil, apperr.Conflict("quest", questID, "quest is "+current.Status.String())
	case !current.IsActive():
		return nil, apperr.Conflict("quest", questID, "quest was superseded by a regeneration")
	default:
		return nil, apperr.Conflict("quest", questID, "quest was issued on an earlier day")
	}
}

// CompleteQuest completes an IN_PROGRESS quest whose deadline has not passed
// and credits its reward to the account and to the quest's strength, all in
// one unit of work.
func (s *Service) CompleteQuest(ctx context.Context, userID string, c Completion) (*CompletionResult, error) {
	ctx, span := telemetry.Tracer("quests").Start(ctx, "quests.Complete")
	var err error
	defer func() { telemetry.End(span, err) }()
	span.SetAttributes(attribute.String("user.id", userID), attribute.String("quest.id", c.QuestID))

	if err = s.validateCompletion(userID, c); err != nil {
		return nil, err
	}

	var q *models.Quest
	q, err = s.uow.Repositories().Quests.GetByID(ctx, c.QuestID)
	if err != nil {
		return nil, err
	}
	if q.UserID != userID {
		err = apperr.Forbidden("quest belongs to another user")
		return nil, err
	}
	confirmedBy, err := confirmation(q, userID, c.ConfirmedBy)
	if err != nil {
		return nil, err
	}

	now := s.now()
	calc := s.leveling.Calculator()
	res := &CompletionResult{}
	var before int64
	var tr maturity.Transition
	err = s.uow.Atomically(ctx, func(ctx context.Context, r repositories.Repos) error {
		done, ok, err := r.Quests.Complete(ctx, userID, c.QuestID, repositories.CompletionUpdate{
			Now:            now.UTC(),
			CooldownUntil:  now.UTC().Add(s.cfg.Cooldown.Std()),
			ReflectionNote: c.ReflectionNote,
			ConfirmedBy:    confirmedBy,
		})
		if err != nil {
			return err
		}
		if !ok {
			return errNotCompleted
		}

		stats, err := leveling.RecordActivity(ctx, r, userID, leveling.CalendarDay(now, s.loc))
		if err != nil {
			return err
		}
		before = stats.XPTotal

		credited, err := calc.Credit(ctx, r, leveling.Entry{
			UserID:     userID,
			Source:     models.SourceQuest,
			Reference:  done.ID,
			BaseAmount: done.XPReward,
			Multiplier: 1,
			At:         now,
		})
		if err != nil {
			return err
		}
		if credited.Duplicate {
			return apperr.Conflict("quest", done.ID, "quest reward already credited")
		}
		if err := r.Stats.IncrementCounter(ctx, userID, models.CounterQuests, 1); err != nil {
			return err
		}

		m, t, err := s.maturity.Award(ctx, r, userID, done.StrengthID, credited.Amount)
		if err != nil {
			return err
		}
		tr = t

		res.Quest = done
		res.XPAwarded = credited.Amount
		res.XPTotal = credited.XPAfter
		res.NewXPCurrent = m.XPCurrent
		if t.RankedUp() {
			level := m.CurrentLevel
			res.LeveledUp = true
			res.NewLevel = &level
		}
		return nil
	})
	if errors.Is(err, errNotCompleted) {
		err = s.classifyCompletion(ctx, userID, c.QuestID, now)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	res.Success = true
	res.UnlockedBadges, res.XPTotal = s.leveling.AfterXP(ctx, userID, before, res.XPTotal)
	res.AccountLevel = calc.LevelForXP(res.XPTotal)
	res.AccountLeveledUp = res.AccountLevel > calc.LevelForXP(before)
	s.maturity.AnnounceRankUp(ctx, userID, q.StrengthID, tr)

	slog.Info("Quest completed",
		slog.String("type", "quest"),
		slog.String("user_id", userID),
		slog.String("quest_id", c.QuestID),
		slog.Int64("xp", res.XPAwarded),
		slog.Int("badges", len(res.UnlockedBadges)))
	return res, nil
}

func (s *Service) validateCompletion(userID string, c Completion) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.Unauthenticated()
	}
	if _, err := uuid.Parse(c.QuestID); err != nil {
		return apperr.Validation("quest_id", "quest id must be a UUID")
	}
	if c.ReflectionNote != nil && utf8.RuneCountInString(*c.ReflectionNote) > config.MaxReflectionNoteLen {
		return apperr.Validation("reflection_note", "reflection note exceeds %d characters", config.MaxReflectionNoteLen)
	}
	return nil
}

// confirmation returns the confirmer to store. COOPERATIVE quests need a
// confirmer other than the requester; other types ignore it.
func confirmation(q *models.Quest, userID string, confirmedBy *string) (*string, error) {
	if !q.Type.RequiresConfirmation() {
		return nil, nil
	}
	if confirmedBy == nil || strings.TrimSpace(*confirmedBy) == "" {
		return nil, apperr.Validation("confirmed_by", "cooperative quests must be confirmed by a teammate")
	}
	v := strings.TrimSpace(*confirmedBy)
	if v == userID {
		return nil, apperr.Validation("confirmed_by", "a quest cannot be confirmed by its owner")
	}
	return &v, nil
}

func (s *Service) classifyCompletion(ctx context.Context, userID, questID string, now time.Time) error {
	q, err := s.uow.Repositories().Quests.GetByID(ctx, questID)
	if err != nil {
		return err
	}
	switch {
	case q.UserID != userID:
		return apperr.Forbidden("quest belongs to another user")
	case q.Status.IsTerminal():
		return apperr.Conflict("quest", questID, "quest is already "+q.Status.String())
	case !q.Status.CanTransitionTo(models.QuestCompleted):
		return apperr.Conflict("quest", questID, "quest has not been started")
	case q.IsOverdue(now):
		return apperr.Conflict("quest", questID, "quest deadline has passed")
	default:
		return apperr.Conflict("quest", questID, "quest changed concurrently")
	}
}
