package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/strengthforge/progression"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
)

var seedStrengths bool

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Create the progression tables and indexes in PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != progression.StoragePostgres {
			return fmt.Errorf("migrate needs storage.driver = %q, got %q", progression.StoragePostgres, cfg.Storage.Driver)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.StartupTimeout)
		defer cancel()

		start := time.Now()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Migration failed", slog.Any("error", err))
			return err
		}
		if seedStrengths || cfg.Storage.SeedStrengths {
			directory := strengths.DefaultDirectory()
			if err := db.SeedStrengths(ctx, directory); err != nil {
				return err
			}
			slog.Info("Strength directory seeded", slog.String("type", "db"), slog.Int("strengths", len(directory)))
		}

		slog.Info("Migration completed successfully",
			slog.String("type", "db"),
			slog.Duration("took", time.Since(start)))
		return nil
	},
}

func init() {
	migrateCMD.Flags().BoolVar(&seedStrengths, "seed-strengths", false, "upsert the default strength directory")
	rootCmd.AddCommand(migrateCMD)
}
