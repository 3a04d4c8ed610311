package quests

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

// Lease keeps sweeps on several replicas from overlapping.
type Lease interface {
	// Acquire returns ok=false when another holder has the lease.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context), ok bool, err error)
}

type Sweeper struct {
	quests repositories.QuestRepository
	lease  Lease
	now    func() time.Time
}

// NewSweeper builds the expiration sweep. lease may be nil.
func NewSweeper(quests repositories.QuestRepository, lease Lease) *Sweeper {
	return &Sweeper{quests: quests, lease: lease, now: time.Now}
}

// Sweep expires every IN_PROGRESS quest past its deadline in one statement.
// Running it again within the same window expires nothing further. A
// storage failure is reported in Failed and returned, never panics.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := telemetry.Tracer("quests").Start(ctx, "quests.Sweep")
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, config.SweepTimeout)
	defer cancel()

	if s.lease != nil {
		release, ok, err := s.lease.Acquire(ctx, config.SweepLeaseKey, config.SweepLeaseTTL)
		switch {
		case err != nil:
			slog.Warn("Sweep lease unavailable, sweeping without it", slog.Any("error", err))
		case !ok:
			slog.Info("Sweep skipped, lease held elsewhere", slog.String("type", "quest"))
			span.SetAttributes(attribute.Bool("sweep.skipped", true))
			telemetry.End(span, nil)
			return SweepResult{Skipped: true, Duration: time.Since(start)}, nil
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	expired, err := s.quests.ExpireOverdue(ctx, s.now().UTC())
	res := SweepResult{Expired: expired, Duration: time.Since(start)}
	if err != nil {
		res.Failed = 1
		slog.Error("Quest expiration sweep failed",
			slog.String("type", "quest"),
			slog.Duration("duration", res.Duration),
			slog.Any("error", err))
		telemetry.End(span, err)
		return res, err
	}

	span.SetAttributes(attribute.Int64("sweep.expired", expired))
	telemetry.End(span, nil)
	slog.Info("Quest expiration sweep finished",
		slog.String("type", "quest"),
		slog.Int64("expired", expired),
		slog.Duration("duration", res.Duration))
	return res, nil
}
