package maturity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
)

type Service struct {
	tracker  *Tracker
	uow      repositories.UnitOfWork
	notifier notify.Notifier
}

func NewService(tracker *Tracker, uow repositories.UnitOfWork, notifier notify.Notifier) *Service {
	return &Service{tracker: tracker, uow: uow, notifier: notifier}
}

func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// Award applies amount to the locked (user, strength) row through r, so it
// commits or rolls back with the caller's unit of work.
func (s *Service) Award(ctx context.Context, r repositories.Repos, userID, strengthID string, amount int64) (*models.StrengthMaturity, Transition, error) {
	m, err := r.Maturity.Ensure(ctx, userID, strengthID)
	if err != nil {
		return nil, Transition{}, fmt.Errorf("ensure maturity: %w", err)
	}
	tr := s.tracker.Apply(m, amount)
	if err := r.Maturity.Save(ctx, m); err != nil {
		return nil, Transition{}, fmt.Errorf("save maturity: %w", err)
	}
	return m, tr, nil
}

// AwardXP credits strength XP in its own unit of work.
func (s *Service) AwardXP(ctx context.Context, userID, strengthID string, amount int64) (*Progress, Transition, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, Transition{}, apperr.Validation("user_id", "user id is required")
	}
	if amount < 0 {
		return nil, Transition{}, apperr.Validation("amount", "amount must not be negative, got %d", amount)
	}
	if err := s.requireKnown(ctx, s.uow.Repositories(), []string{strengthID}); err != nil {
		return nil, Transition{}, err
	}

	var m *models.StrengthMaturity
	var tr Transition
	err := s.uow.Atomically(ctx, func(ctx context.Context, r repositories.Repos) error {
		var err error
		m, tr, err = s.Award(ctx, r, userID, strengthID, amount)
		return err
	})
	if err != nil {
		return nil, Transition{}, err
	}
	s.AnnounceRankUp(ctx, userID, strengthID, tr)

	p := s.tracker.Progress(m)
	return &p, tr, nil
}

// AnnounceRankUp logs a rank-up and notifies, best effort.
func (s *Service) AnnounceRankUp(ctx context.Context, userID, strengthID string, tr Transition) {
	if !tr.RankedUp() {
		return
	}
	slog.Info("Strength maturity increased",
		slog.String("user_id", userID),
		slog.String("strength_id", strengthID),
		slog.String("from", tr.From.String()),
		slog.String("to", tr.To.String()))
	if s.notifier == nil {
		return
	}
	if err := s.notifier.MaturityRankUp(ctx, userID, strengthID, tr.To); err != nil {
		slog.Warn("Maturity notification failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}

// Get returns the progress for strengthIDs, or every row the user has when
// none are given. A known strength without a row reads as a NOVICE zero record.
func (s *Service) Get(ctx context.Context, userID string, strengthIDs []string) ([]Progress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Unauthenticated()
	}
	r := s.uow.Repositories()

	if len(strengthIDs) == 0 {
		rows, err := r.Maturity.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]Progress, 0, len(rows))
		for _, m := range rows {
			out = append(out, s.tracker.Progress(m))
		}
		return out, nil
	}

	if err := s.requireKnown(ctx, r, strengthIDs); err != nil {
		return nil, err
	}
	out := make([]Progress, 0, len(strengthIDs))
	for _, id := range strengthIDs {
		m, err := r.Maturity.Get(ctx, userID, id)
		switch {
		case apperr.IsNotFound(err):
			m = models.NewStrengthMaturity(userID, id)
		case err != nil:
			return nil, err
		}
		out = append(out, s.tracker.Progress(m))
	}
	return out, nil
}

func (s *Service) requireKnown(ctx context.Context, r repositories.Repos, ids []string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return apperr.Validation("strength_id", "strength id must not be empty")
		}
	}
	known, err := r.Strengths.Known(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !known[id] {
			return apperr.NotFound("strength", id)
		}
	}
	return nil
}
