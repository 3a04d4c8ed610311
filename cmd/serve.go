package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/strengthforge/progression"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("Starting strengthforge",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))
	return progression.Run(cmd.Context(), cfg, version)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
