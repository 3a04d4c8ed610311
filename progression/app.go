// Package progression assembles the progression engine from its
// configuration.
package progression

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/api"
	"github.com/ellavondegurechaff/strengthforge/progression/badges"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database"
	"github.com/ellavondegurechaff/strengthforge/progression/database/memstore"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/lease"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/logger"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/notify"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
	"github.com/ellavondegurechaff/strengthforge/progression/readiness"
	"github.com/ellavondegurechaff/strengthforge/progression/reports"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

// Deps are the outer resources the engine runs on. Nil optional fields
// disable the matching feature.
type Deps struct {
	UoW      repositories.UnitOfWork
	Notifier notify.Notifier
	Lease    quests.Lease
	Archive  reports.Archive
	Ping     func(ctx context.Context) error
}

// Engine holds every built component.
type Engine struct {
	Leveling  *leveling.Service
	Maturity  *maturity.Service
	Badges    *badges.Evaluator
	Quests    *quests.Service
	Sweeper   *quests.Sweeper
	Readiness *readiness.Service
	Strengths *strengths.CachedSource
}

// NewEngine builds the components bottom-up from cfg, validating each
// domain configuration once.
func NewEngine(cfg *Config, deps Deps) (*Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	calc, err := leveling.NewCalculator(cfg.Leveling)
	if err != nil {
		return nil, err
	}
	tracker, err := maturity.NewTracker(cfg.Maturity)
	if err != nil {
		return nil, err
	}
	catalog, err := badges.NewCatalog(cfg.Badges)
	if err != nil {
		return nil, err
	}
	scorer, err := readiness.NewScorer(cfg.Readiness)
	if err != nil {
		return nil, err
	}
	source, err := strengths.NewCachedSource(
		strengths.NewRepositorySource(deps.UoW.Repositories().Strengths),
		config.StrengthCacheSize,
		config.StrengthCacheExpiration,
	)
	if err != nil {
		return nil, err
	}

	evaluator := badges.NewEvaluator(catalog, calc, deps.UoW, deps.Notifier)
	lv := leveling.NewService(calc, deps.UoW, evaluator, deps.Notifier, loc)
	mt := maturity.NewService(tracker, deps.UoW, deps.Notifier)
	qs, err := quests.NewService(cfg.Quests, deps.UoW, source, lv, mt, loc)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Leveling:  lv,
		Maturity:  mt,
		Badges:    evaluator,
		Quests:    qs,
		Sweeper:   quests.NewSweeper(deps.UoW.Repositories().Quests, deps.Lease),
		Readiness: readiness.NewService(scorer, deps.UoW, source, deps.Archive),
		Strengths: source,
	}, nil
}

// HTTP returns the fiber app serving e.
func (e *Engine) HTTP(cfg api.Config, ping func(ctx context.Context) error, version string) *fiber.App {
	return api.New(cfg, &api.Server{
		Leveling:  e.Leveling,
		Quests:    e.Quests,
		Sweeper:   e.Sweeper,
		Maturity:  e.Maturity,
		Badges:    e.Badges,
		Readiness: e.Readiness,
		Ping:      ping,
		Version:   version,
	})
}

// Run opens every resource cfg names, serves HTTP and blocks until ctx is
// cancelled, then shuts down in reverse order.
func Run(ctx context.Context, cfg *Config, version string) error {
	startCtx, cancel := context.WithTimeout(ctx, config.StartupTimeout)
	defer cancel()

	var closers []func(context.Context)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.ShutdownTimeout)
		defer cancel()
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i](shutdownCtx)
		}
	}()

	shutdownTracing, err := telemetry.Init(startCtx, cfg.Telemetry, version)
	if err != nil {
		return err
	}
	closers = append(closers, func(ctx context.Context) {
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("Tracer shutdown failed", slog.Any("error", err))
		}
	})

	var deps Deps
	switch cfg.Storage.Driver {
	case StoragePostgres:
		dbStart := time.Now()
		db, err := database.New(startCtx, cfg.DB)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		closers = append(closers, func(context.Context) { db.Close() })
		if err := db.InitializeSchema(startCtx); err != nil {
			return err
		}
		if cfg.Storage.SeedStrengths {
			if err := db.SeedStrengths(startCtx, strengths.DefaultDirectory()); err != nil {
				return err
			}
		}
		slog.Info("Database connected successfully",
			slog.String("type", "db"),
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(dbStart)))
		deps.UoW = repositories.NewUnitOfWork(db.BunDB())
		deps.Ping = db.Ping
	default:
		store := memstore.New()
		if cfg.Storage.SeedStrengths {
			for _, s := range strengths.DefaultDirectory() {
				store.SeedStrengths(*s)
			}
		}
		slog.Warn("Using in-memory storage, state is lost on exit", slog.String("type", "sys"))
		deps.UoW = store
	}

	if cfg.Redis.Addr != "" {
		client, err := lease.Dial(startCtx, cfg.Redis)
		if err != nil {
			return err
		}
		closers = append(closers, func(context.Context) { _ = client.Close() })
		deps.Lease = lease.NewRedis(client)
	}

	if cfg.Discord.Enabled {
		channelID, err := snowflake.Parse(cfg.Discord.ChannelID)
		if err != nil {
			return fmt.Errorf("discord channel id: %w", err)
		}
		deps.Notifier = notify.NewDiscord(cfg.Discord.Token, channelID)
	}

	if cfg.Reports.Enabled {
		archive, err := reports.NewS3Archive(startCtx, cfg.Reports)
		if err != nil {
			return err
		}
		deps.Archive = archive
	} else if cfg.Storage.Driver == StorageMemory {
		deps.Archive = reports.NewMemoryArchive()
	}

	engine, err := NewEngine(cfg, deps)
	if err != nil {
		return err
	}
	app := engine.HTTP(cfg.HTTP, deps.Ping, version)

	address := net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(cfg.HTTP.Port))
	errCh := make(chan error, 1)
	go func() {
		logger.LogSystem("Starting HTTP server", slog.String("address", address))
		errCh <- app.Listen(address)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.LogSystem("Shutting down HTTP server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), config.ShutdownTimeout)
	defer cancelShutdown()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.LogError("Server shutdown error", err)
	}
	return nil
}
