package repositories

import (
	"context"
	"database/sql"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

const badgeEntity = "user_badge"

type badgeRepository struct {
	*BaseRepository
}

func NewBadgeRepository(db bun.IDB) BadgeRepository {
	return &badgeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *badgeRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserBadge, error) {
	var badges []*models.UserBadge
	err := r.Run(ctx, "list", badgeEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&badges).
			Where("user_id = ?", userID).
			Order("unlocked_at ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) Unlock(ctx context.Context, badge *models.UserBadge) (bool, error) {
	affected, err := r.Exec(ctx, "unlock", badgeEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(badge).
			On("CONFLICT (user_id, badge_key) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
	})
	return affected > 0, err
}
