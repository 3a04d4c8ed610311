package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/logger"
	"github.com/uptrace/bun"
)

// BaseRepository provides common repository functionality. db is either the
// pool or a running transaction.
type BaseRepository struct {
	db             bun.IDB
	defaultTimeout time.Duration
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db bun.IDB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleErrorWithID translates driver errors into apperr kinds.
func (br *BaseRepository) HandleErrorWithID(operation, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}

	return apperr.Storage(operation, entity, err)
}

// Run executes query with the default timeout, logs it and translates its error.
func (br *BaseRepository) Run(ctx context.Context, operation, entity string, id interface{}, query func(context.Context) error) error {
	timeoutCtx, cancel := br.WithTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := query(timeoutCtx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.LogQuery(operation, time.Since(start), err, "entity", entity)
	} else {
		logger.LogQuery(operation, time.Since(start), nil, "entity", entity)
	}
	return br.HandleErrorWithID(operation, entity, id, err)
}

// Exec runs a write and returns the rows it affected.
func (br *BaseRepository) Exec(ctx context.Context, operation, entity string, query func(context.Context) (sql.Result, error)) (int64, error) {
	var affected int64
	err := br.Run(ctx, operation, entity, nil, func(ctx context.Context) error {
		res, err := query(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}
