package repositories

import (
	"context"
	"database/sql"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

type strengthRepository struct {
	*BaseRepository
}

func NewStrengthRepository(db bun.IDB) StrengthRepository {
	return &strengthRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *strengthRepository) RankedForUser(ctx context.Context, userID string) ([]models.RankedStrength, error) {
	var rows []*models.UserStrength
	err := r.Run(ctx, "ranked", "user_strength", userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Relation("Strength").
			Where("us.user_id = ?", userID).
			Order("us.rank ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedStrength, 0, len(rows))
	for _, row := range rows {
		name := row.StrengthID
		if row.Strength != nil {
			name = row.Strength.Name
		}
		ranked = append(ranked, models.RankedStrength{ID: row.StrengthID, Name: name, Rank: row.Rank})
	}
	return ranked, nil
}

func (r *strengthRepository) Known(ctx context.Context, ids []string) (map[string]bool, error) {
	known := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return known, nil
	}
	var found []string
	err := r.Run(ctx, "known", "strength", nil, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model((*models.Strength)(nil)).
			Column("id").
			Where("id IN (?)", bun.In(ids)).
			Scan(ctx, &found)
	})
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		known[id] = true
	}
	return known, nil
}

type learningRepository struct {
	*BaseRepository
}

func NewLearningRepository(db bun.IDB) LearningRepository {
	return &learningRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *learningRepository) Get(ctx context.Context, userID string) (*models.LearningProgress, error) {
	progress := &models.LearningProgress{UserID: userID}
	err := r.Run(ctx, "select", "learning_progress", userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(progress).
			Where("user_id = ?", userID).
			Scan(ctx)
	})
	if apperr.IsNotFound(err) {
		return &models.LearningProgress{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

type teamRepository struct {
	*BaseRepository
}

func NewTeamRepository(db bun.IDB) TeamRepository {
	return &teamRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *teamRepository) Members(ctx context.Context, teamID string) ([]*models.TeamMember, error) {
	var members []*models.TeamMember
	err := r.Run(ctx, "members", "team", teamID, func(ctx context.Context) error {
		err := r.db.NewSelect().
			Model(&members).
			Where("team_id = ?", teamID).
			Order("user_id ASC").
			Scan(ctx)
		if err == nil && len(members) == 0 {
			return sql.ErrNoRows
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
