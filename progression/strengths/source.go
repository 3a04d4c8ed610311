// Package strengths reads users' ranked strengths written by the assessment
// workflow.
package strengths

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ellavondegurechaff/strengthforge/progression/config"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/database/repositories"
)

//go:generate mockgen -source=source.go -destination=mock/source.go -package=mock

// Source returns a user's strengths ordered by rank, strongest first.
type Source interface {
	Ranked(ctx context.Context, userID string) ([]models.RankedStrength, error)
}

// RepositorySource reads straight from storage.
type RepositorySource struct {
	repo repositories.StrengthRepository
}

func NewRepositorySource(repo repositories.StrengthRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Ranked(ctx context.Context, userID string) ([]models.RankedStrength, error) {
	return s.repo.RankedForUser(ctx, userID)
}

type cachedRanking struct {
	strengths []models.RankedStrength
	timestamp time.Time
}

// CachedSource keeps recent rankings in an LRU cache. Rankings only change
// when an assessment completes, so entries live for a fixed expiry.
type CachedSource struct {
	inner  Source
	cache  *lru.Cache
	expiry time.Duration
	now    func() time.Time
}

func NewCachedSource(inner Source, size int, expiry time.Duration) (*CachedSource, error) {
	if size <= 0 {
		size = config.StrengthCacheSize
	}
	if expiry <= 0 {
		expiry = config.StrengthCacheExpiration
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create strength cache: %w", err)
	}
	return &CachedSource{inner: inner, cache: cache, expiry: expiry, now: time.Now}, nil
}

func (s *CachedSource) Ranked(ctx context.Context, userID string) ([]models.RankedStrength, error) {
	cacheKey := "ranked:" + userID
	if cached, ok := s.cache.Get(cacheKey); ok {
		if c, ok := cached.(cachedRanking); ok && s.now().Sub(c.timestamp) < s.expiry {
			return append([]models.RankedStrength(nil), c.strengths...), nil
		}
	}

	ranked, err := s.inner.Ranked(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(cacheKey, cachedRanking{
		strengths: append([]models.RankedStrength(nil), ranked...),
		timestamp: s.now(),
	})
	slog.Debug("Strength ranking cached",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.Int("count", len(ranked)))
	return ranked, nil
}

// Invalidate drops the cached ranking for userID.
func (s *CachedSource) Invalidate(userID string) {
	s.cache.Remove("ranked:" + userID)
}

// Top returns at most n strengths from a ranked list.
func Top(ranked []models.RankedStrength, n int) []models.RankedStrength {
	if n < 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
