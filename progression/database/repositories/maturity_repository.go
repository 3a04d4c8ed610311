package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

const maturityEntity = "strength_maturity"

type maturityRepository struct {
	*BaseRepository
}

func NewMaturityRepository(db bun.IDB) MaturityRepository {
	return &maturityRepository{BaseRepository: NewBaseRepository(db)}
}

func maturityID(userID, strengthID string) string {
	return fmt.Sprintf("%s/%s", userID, strengthID)
}

func (r *maturityRepository) Get(ctx context.Context, userID, strengthID string) (*models.StrengthMaturity, error) {
	m := new(models.StrengthMaturity)
	err := r.Run(ctx, "select", maturityEntity, maturityID(userID, strengthID), func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(m).
			Where("user_id = ?", userID).
			Where("strength_id = ?", strengthID).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maturityRepository) ListByUser(ctx context.Context, userID string) ([]*models.StrengthMaturity, error) {
	var rows []*models.StrengthMaturity
	err := r.Run(ctx, "list", maturityEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("user_id = ?", userID).
			Order("strength_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *maturityRepository) Ensure(ctx context.Context, userID, strengthID string) (*models.StrengthMaturity, error) {
	now := time.Now().UTC()
	m := models.NewStrengthMaturity(userID, strengthID)
	m.CreatedAt, m.UpdatedAt = now, now
	err := r.Run(ctx, "ensure", maturityEntity, maturityID(userID, strengthID), func(ctx context.Context) error {
		if _, err := r.db.NewInsert().
			Model(m).
			On("CONFLICT (user_id, strength_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx); err != nil {
			return err
		}
		return r.db.NewSelect().
			Model(m).
			Where("user_id = ?", userID).
			Where("strength_id = ?", strengthID).
			For("UPDATE").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maturityRepository) Save(ctx context.Context, m *models.StrengthMaturity) error {
	m.UpdatedAt = time.Now().UTC()
	return r.Run(ctx, "save", maturityEntity, maturityID(m.UserID, m.StrengthID), func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model(m).
			Column("current_level", "xp_current", "xp_total", "level_reached_at", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
}
