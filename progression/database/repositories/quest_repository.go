package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

const questEntity = "quest"

type questRepository struct {
	*BaseRepository
}

func NewQuestRepository(db bun.IDB) QuestRepository {
	return &questRepository{BaseRepository: NewBaseRepository(db)}
}

// Create relies on the partial unique index over (user_id, issued_on,
// slot_index) for active quests; colliding rows are skipped.
func (r *questRepository) Create(ctx context.Context, quests []*models.Quest) (int, error) {
	if len(quests) == 0 {
		return 0, nil
	}
	affected, err := r.Exec(ctx, "insert", questEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(&quests).
			On("CONFLICT DO NOTHING").
			Returning("NULL").
			Exec(ctx)
	})
	return int(affected), err
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*models.Quest, error) {
	quest := new(models.Quest)
	err := r.Run(ctx, "select", questEntity, id, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(quest).
			Where("id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return quest, nil
}

func (r *questRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := r.Run(ctx, "list_for_day", questEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&quests).
			Where("user_id = ?", userID).
			Where("issued_on = ?", day).
			Order("round ASC", "slot_index ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return quests, nil
}

func (r *questRepository) CooldownSlots(ctx context.Context, userID string, now time.Time) ([]string, error) {
	var slots []string
	err := r.Run(ctx, "cooldown_slots", questEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model((*models.Quest)(nil)).
			ColumnExpr("DISTINCT slot_key").
			Where("user_id = ?", userID).
			Where("cooldown_until > ?", now).
			Scan(ctx, &slots)
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *questRepository) Start(ctx context.Context, userID, questID string, day, now, expiresAt time.Time) (*models.Quest, bool, error) {
	quest := new(models.Quest)
	affected, err := r.Exec(ctx, "start", questEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model(quest).
			Set("status = ?", models.QuestInProgress).
			Set("started_at = ?", now).
			Set("expires_at = ?", expiresAt).
			Set("updated_at = ?", now).
			Where("id = ?", questID).
			Where("user_id = ?", userID).
			Where("status = ?", models.QuestPending).
			Where("superseded_at IS NULL").
			Where("issued_on = ?", day).
			Returning("*").
			Exec(ctx)
	})
	return matched(quest, affected, err)
}

// Complete keys the status flip on IN_PROGRESS and an unexpired deadline in
// one statement, so a concurrent sweep and completion cannot both win.
func (r *questRepository) Complete(ctx context.Context, userID, questID string, u CompletionUpdate) (*models.Quest, bool, error) {
	quest := new(models.Quest)
	affected, err := r.Exec(ctx, "complete", questEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model(quest).
			Set("status = ?", models.QuestCompleted).
			Set("completed_at = ?", u.Now).
			Set("cooldown_until = ?", u.CooldownUntil).
			Set("reflection_note = ?", u.ReflectionNote).
			Set("confirmed_by = ?", u.ConfirmedBy).
			Set("updated_at = ?", u.Now).
			Where("id = ?", questID).
			Where("user_id = ?", userID).
			Where("status = ?", models.QuestInProgress).
			Where("expires_at > ?", u.Now).
			Returning("*").
			Exec(ctx)
	})
	return matched(quest, affected, err)
}

func (r *questRepository) SupersedePending(ctx context.Context, userID string, day, now time.Time) (int, error) {
	affected, err := r.Exec(ctx, "supersede", questEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.Quest)(nil)).
			Set("superseded_at = ?", now).
			Set("updated_at = ?", now).
			Where("user_id = ?", userID).
			Where("issued_on = ?", day).
			Where("status = ?", models.QuestPending).
			Where("superseded_at IS NULL").
			Exec(ctx)
	})
	return int(affected), err
}

func (r *questRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return r.Exec(ctx, "expire_overdue", questEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.Quest)(nil)).
			Set("status = ?", models.QuestExpired).
			Set("expired_at = ?", now).
			Set("updated_at = ?", now).
			Where("status = ?", models.QuestInProgress).
			Where("expires_at < ?", now).
			Exec(ctx)
	})
}

// matched folds the no-row outcome of an UPDATE ... RETURNING into ok=false.
func matched(quest *models.Quest, affected int64, err error) (*models.Quest, bool, error) {
	if apperr.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil || affected == 0 {
		return nil, false, err
	}
	return quest, true, nil
}
