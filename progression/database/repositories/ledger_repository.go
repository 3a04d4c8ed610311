package repositories

import (
	"context"
	"database/sql"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/uptrace/bun"
)

const ledgerEntity = "xp_event"

type ledgerRepository struct {
	*BaseRepository
}

func NewLedgerRepository(db bun.IDB) LedgerRepository {
	return &ledgerRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *ledgerRepository) Append(ctx context.Context, event *models.XPEvent) (bool, error) {
	affected, err := r.Exec(ctx, "append", ledgerEntity, func(ctx context.Context) (sql.Result, error) {
		q := r.db.NewInsert().Model(event)
		if event.Reference != "" {
			q = q.On("CONFLICT (user_id, source, reference) WHERE reference <> '' DO NOTHING")
		}
		return q.Returning("NULL").Exec(ctx)
	})
	return affected > 0, err
}

func (r *ledgerRepository) FindByReference(ctx context.Context, userID string, source models.XPSource, reference string) (*models.XPEvent, error) {
	event := new(models.XPEvent)
	err := r.Run(ctx, "find_by_reference", ledgerEntity, reference, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(event).
			Where("user_id = ?", userID).
			Where("source = ?", source).
			Where("reference = ?", reference).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.XPEvent, error) {
	var events []*models.XPEvent
	err := r.Run(ctx, "list", ledgerEntity, userID, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&events).
			Where("user_id = ?", userID).
			Order("created_at DESC", "id DESC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
