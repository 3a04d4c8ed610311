package repositories

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

type unitOfWork struct {
	*BaseRepository
	bunDB *bun.DB
	repos Repos
}

// NewUnitOfWork binds every repository to db; Atomically rebinds them to a
// transaction.
func NewUnitOfWork(db *bun.DB) UnitOfWork {
	return &unitOfWork{
		BaseRepository: NewBaseRepository(db),
		bunDB:          db,
		repos:          bind(db),
	}
}

func bind(db bun.IDB) Repos {
	return Repos{
		Stats:     NewStatsRepository(db),
		Quests:    NewQuestRepository(db),
		Maturity:  NewMaturityRepository(db),
		Badges:    NewBadgeRepository(db),
		Ledger:    NewLedgerRepository(db),
		Strengths: NewStrengthRepository(db),
		Learning:  NewLearningRepository(db),
		Teams:     NewTeamRepository(db),
	}
}

func (u *unitOfWork) Repositories() Repos {
	return u.repos
}

func (u *unitOfWork) Atomically(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	timeoutCtx, cancel := u.WithTimeout(ctx)
	defer cancel()

	return u.bunDB.RunInTx(timeoutCtx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, bind(tx))
	})
}
