package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

const statsEntity = "gamification_stats"

type statsRepository struct {
	*BaseRepository
}

func NewStatsRepository(db bun.IDB) StatsRepository {
	return &statsRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*models.GamificationStats, error) {
	stats := new(models.GamificationStats)
	err := r.Run(ctx, "select", statsEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(stats).
			Where("user_id = ?", userID).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *statsRepository) Ensure(ctx context.Context, userID string) (*models.GamificationStats, error) {
	now := time.Now().UTC()
	stats := &models.GamificationStats{UserID: userID, CreatedAt: now, UpdatedAt: now}
	err := r.Run(ctx, "ensure", statsEntity, userID, func(ctx context.Context) error {
		if _, err := r.db.NewInsert().
			Model(stats).
			On("CONFLICT (user_id) DO NOTHING").
			Returning("NULL").
			Exec(ctx); err != nil {
			return err
		}
		return r.db.NewSelect().
			Model(stats).
			Where("user_id = ?", userID).
			For("UPDATE").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// AddXP is a single upsert so concurrent awards never lose an update.
func (r *statsRepository) AddXP(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("negative xp amount %d", amount)
	}
	now := time.Now().UTC()
	var total int64
	err := r.Run(ctx, "add_xp", statsEntity, userID, func(ctx context.Context) error {
		return r.db.NewRaw(`
			INSERT INTO gamification_stats AS gs (user_id, xp_total, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id) DO UPDATE
			SET xp_total = gs.xp_total + EXCLUDED.xp_total,
			    updated_at = EXCLUDED.updated_at
			RETURNING xp_total`,
			userID, amount, now, now,
		).Scan(ctx, &total)
	})
	return total, err
}

func (r *statsRepository) IncrementCounter(ctx context.Context, userID string, counter models.StatCounter, delta int64) error {
	column, err := counter.Column()
	if err != nil {
		return err
	}
	affected, err := r.Exec(ctx, "increment_"+column, statsEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.GamificationStats)(nil)).
			Set("? = ? + ?", bun.Ident(column), bun.Ident(column), delta).
			Set("updated_at = ?", time.Now().UTC()).
			Where("user_id = ?", userID).
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.HandleErrorWithID("increment", statsEntity, userID, sql.ErrNoRows)
	}
	return nil
}

func (r *statsRepository) UpdateStreak(ctx context.Context, userID string, current, longest int, day time.Time) error {
	affected, err := r.Exec(ctx, "update_streak", statsEntity, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.GamificationStats)(nil)).
			Set("current_streak = ?", current).
			Set("longest_streak = GREATEST(longest_streak, ?)", longest).
			Set("last_activity_date = ?", day).
			Set("updated_at = ?", time.Now().UTC()).
			Where("user_id = ?", userID).
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.HandleErrorWithID("update_streak", statsEntity, userID, sql.ErrNoRows)
	}
	return nil
}
