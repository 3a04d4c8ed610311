// Package api exposes the progression engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/strengthforge/progression/badges"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
	"github.com/ellavondegurechaff/strengthforge/progression/readiness"
)

type Config struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
	// JWTSecret verifies user bearer tokens.
	JWTSecret string `toml:"-"`
	// CronSecret guards /cron and /internal; empty leaves them open.
	CronSecret string `toml:"-"`
}

// Server holds the components every handler reaches into.
type Server struct {
	Leveling  *leveling.Service
	Quests    *quests.Service
	Sweeper   *quests.Sweeper
	Maturity  *maturity.Service
	Badges    *badges.Evaluator
	Readiness *readiness.Service
	// Ping reports storage health; nil means always healthy.
	Ping    func(ctx context.Context) error
	Version string
}

// New builds the fiber app with every route registered.
func New(cfg Config, s *Server) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "strengthforge",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if len(cfg.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		}))
	}
	app.Use(Logging())

	if cfg.CronSecret == "" {
		slog.Warn("Cron secret is empty, /cron and /internal endpoints are open",
			slog.String("type", "sys"))
	}

	app.Get("/health", s.health)

	service := ServiceToken(cfg.CronSecret)
	app.Post("/cron/expire-quests", service, s.expireQuests)
	app.Post("/internal/events", service, s.recordEvent)

	api := app.Group("/api", Identity(cfg.JWTSecret))
	api.Get("/progress", s.getProgress)
	api.Get("/progress/history", s.getHistory)

	api.Get("/quests", s.getQuests)
	api.Post("/quests/:id/start", s.startQuest)
	api.Post("/quests/:id/complete", s.completeQuest)

	api.Get("/maturity", s.getMaturity)

	api.Get("/badges", s.searchBadges)
	api.Get("/badges/unlocked", s.unlockedBadges)

	api.Get("/readiness", s.getReadiness)
	api.Get("/teams/:id/readiness", s.getTeamReadiness)
	api.Post("/teams/:id/report", s.generateTeamReport)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "The requested endpoint does not exist")
	})
	return app
}
