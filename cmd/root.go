package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/strengthforge/progression"
	"github.com/ellavondegurechaff/strengthforge/progression/logger"
)

var (
	configPath string
	version    = "dev"
	commit     = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "strengthforge",
	Short:         "Progression engine: XP, quests, badges, maturity and readiness",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(ctx context.Context, buildVersion, buildCommit string) {
	version, commit = buildVersion, buildCommit
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfig reads the config and installs the process logger from it.
func loadConfig() (*progression.Config, error) {
	cfg, err := progression.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New("strengthforge", cfg.Log.Format, cfg.Log.Level, cfg.Log.AddSource))
	slog.Info("Configuration loaded successfully",
		slog.String("type", "sys"),
		slog.String("path", configPath),
		slog.String("storage", cfg.Storage.Driver))
	return cfg, nil
}
