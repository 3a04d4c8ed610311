package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

// Tables lists every model the engine creates, collaborator tables included
// so a fresh database is usable in development.
var Tables = []interface{}{
	(*models.Strength)(nil),
	(*models.UserStrength)(nil),
	(*models.LearningProgress)(nil),
	(*models.TeamMember)(nil),
	(*models.GamificationStats)(nil),
	(*models.Quest)(nil),
	(*models.StrengthMaturity)(nil),
	(*models.UserBadge)(nil),
	(*models.XPEvent)(nil),
}

// Indexes are applied after the tables exist.
var Indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_quests_user_day ON quests(user_id, issued_on);",
	"CREATE INDEX IF NOT EXISTS idx_quests_in_progress_expires ON quests(expires_at) WHERE status = 'IN_PROGRESS';",
	"CREATE INDEX IF NOT EXISTS idx_quests_cooldown ON quests(user_id, slot_key, cooldown_until) WHERE cooldown_until IS NOT NULL;",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_quests_active_slot ON quests(user_id, issued_on, slot_index) WHERE superseded_at IS NULL;",
	"CREATE UNIQUE INDEX IF NOT EXISTS uq_xp_events_reference ON xp_events(user_id, source, reference) WHERE reference <> '';",
	"CREATE INDEX IF NOT EXISTS idx_xp_events_user_created ON xp_events(user_id, created_at DESC);",
	"CREATE INDEX IF NOT EXISTS idx_user_strengths_user_rank ON user_strengths(user_id, rank);",
	"CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members(team_id);",
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	for _, model := range Tables {
		if _, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, idx := range Indexes {
		if err := db.execDDL(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("tables", len(Tables)),
		slog.Int("indexes", len(Indexes)))
	return nil
}

// SeedStrengths upserts the strength directory.
func (db *DB) SeedStrengths(ctx context.Context, strengths []*models.Strength) error {
	if len(strengths) == 0 {
		return nil
	}
	_, err := db.bunDB.NewInsert().
		Model(&strengths).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("domain = EXCLUDED.domain").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed strengths: %w", err)
	}
	return nil
}
