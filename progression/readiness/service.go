package readiness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
	"github.com/ellavondegurechaff/strengthforge/progression/reports"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
	"github.com/ellavondegurechaff/strengthforge/progression/telemetry"
)

// TeamReport is the snapshot archived when the team gate is open.
type TeamReport struct {
	TeamID      string    `json:"team_id"`
	Team        TeamScore `json:"team"`
	Members     []Member  `json:"members"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ReportResult names the archived object.
type ReportResult struct {
	Key    string     `json:"key"`
	Report TeamReport `json:"report"`
}

type Service struct {
	scorer    *Scorer
	uow       repositories.UnitOfWork
	strengths strengths.Source
	archive   reports.Archive
	workers   int64
	now       func() time.Time
}

func NewService(scorer *Scorer, uow repositories.UnitOfWork, source strengths.Source, archive reports.Archive) *Service {
	return &Service{
		scorer:    scorer,
		uow:       uow,
		strengths: source,
		archive:   archive,
		workers:   config.TeamScoreWorkers,
		now:       time.Now,
	}
}

// Inputs gathers the counts for one user. Missing stats or learning rows
// read as zero.
func (s *Service) Inputs(ctx context.Context, userID string) (Inputs, error) {
	r := s.uow.Repositories()
	var in Inputs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lp, err := r.Learning.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("learning progress: %w", err)
		}
		in.ModulesCompleted = lp.ModulesCompleted
		in.ChallengesCompleted = lp.ChallengesCompleted
		return nil
	})
	g.Go(func() error {
		stats, err := r.Stats.Get(gctx, userID)
		switch {
		case apperr.IsNotFound(err):
			return nil
		case err != nil:
			return fmt.Errorf("stats: %w", err)
		}
		in.XPTotal = stats.XPTotal
		return nil
	})
	g.Go(func() error {
		ranked, err := s.strengths.Ranked(gctx, userID)
		if err != nil {
			return fmt.Errorf("strengths: %w", err)
		}
		in.HasStrengths = len(ranked) > 0
		return nil
	})
	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

func (s *Service) Individual(ctx context.Context, userID string) (Score, error) {
	if strings.TrimSpace(userID) == "" {
		return Score{}, apperr.Unauthenticated()
	}
	in, err := s.Inputs(ctx, userID)
	if err != nil {
		return Score{}, err
	}
	return s.scorer.Individual(in), nil
}

// Team scores every member of teamID concurrently. The requester must be a
// member of the team.
func (s *Service) Team(ctx context.Context, requesterID, teamID string) (*TeamReport, error) {
	if strings.TrimSpace(requesterID) == "" {
		return nil, apperr.Unauthenticated()
	}
	if strings.TrimSpace(teamID) == "" {
		return nil, apperr.Validation("team_id", "team id is required")
	}
	ctx, span := telemetry.Tracer("readiness").Start(ctx, "readiness.Team")
	span.SetAttributes(attribute.String("team.id", teamID))

	report, err := s.team(ctx, requesterID, teamID)
	telemetry.End(span, err)
	return report, err
}

func (s *Service) team(ctx context.Context, requesterID, teamID string) (*TeamReport, error) {
	roster, err := s.uow.Repositories().Teams.Members(ctx, teamID)
	if err != nil {
		return nil, err
	}
	isMember := false
	for _, m := range roster {
		if m.UserID == requesterID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, apperr.Forbidden("not a member of team " + teamID)
	}

	members := make([]Member, len(roster))
	sem := semaphore.NewWeighted(s.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i, tm := range roster {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			in, err := s.Inputs(gctx, tm.UserID)
			if err != nil {
				return fmt.Errorf("score member %s: %w", tm.UserID, err)
			}
			members[i] = Member{UserID: tm.UserID, Active: tm.Active, Score: s.scorer.Individual(in)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TeamReport{
		TeamID:      teamID,
		Team:        s.scorer.Team(members),
		Members:     members,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// GenerateTeamReport archives the team snapshot as JSON. A closed team gate
// refuses with an authorization error and archives nothing.
func (s *Service) GenerateTeamReport(ctx context.Context, requesterID, teamID string) (*ReportResult, error) {
	report, err := s.Team(ctx, requesterID, teamID)
	if err != nil {
		return nil, err
	}
	if !report.Team.Ready {
		return nil, apperr.Forbidden(fmt.Sprintf("team %s is not ready for reports (%d of %d active members ready)",
			teamID, report.Team.ReadyMembers, report.Team.ActiveMembers))
	}
	if s.archive == nil {
		return nil, apperr.Storage("archive", "team_report", fmt.Errorf("no report archive configured"))
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode team report: %w", err)
	}
	key := fmt.Sprintf("teams/%s/%s.json", teamID, report.GeneratedAt.Format("20060102T150405Z"))
	if err := s.archive.Put(ctx, key, body, "application/json"); err != nil {
		return nil, apperr.Storage("archive", "team_report", err)
	}

	slog.Info("Team report archived",
		slog.String("type", "sys"),
		slog.String("team_id", teamID),
		slog.String("requested_by", requesterID),
		slog.String("key", key),
		slog.Int("bytes", len(body)))
	return &ReportResult{Key: key, Report: *report}, nil
}
