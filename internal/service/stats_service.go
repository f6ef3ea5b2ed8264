package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/store"
)

// StatsService answers aggregate queries over generated posts.
type StatsService interface {
	// Totals returns counts of generated posts overall, by provider,
	// and by content type. An empty store yields zero counts.
	Totals(ctx context.Context) (domain.GenerationStats, error)
}

// statsServiceImpl implements StatsService.
type statsServiceImpl struct {
	stats  store.StatsStore
	logger *slog.Logger
}

// NewStatsService creates a StatsService. It returns an error if the
// stats store is nil.
func NewStatsService(stats store.StatsStore, logger *slog.Logger) (StatsService, error) {
	if stats == nil {
		return nil, errors.New("stats store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &statsServiceImpl{
		stats:  stats,
		logger: logger.With(slog.String("component", "stats_service")),
	}, nil
}

// Totals implements StatsService.Totals.
func (s *statsServiceImpl) Totals(ctx context.Context) (domain.GenerationStats, error) {
	totals, err := s.stats.Totals(ctx)
	if err != nil {
		s.logger.Error("failed to load generation stats",
			slog.String("error", err.Error()))
		return domain.GenerationStats{}, fmt.Errorf("loading generation stats: %w", err)
	}

	// Callers serialize these; keep them non-nil for empty stores.
	if totals.ByProvider == nil {
		totals.ByProvider = map[string]int64{}
	}
	if totals.ByContentType == nil {
		totals.ByContentType = map[string]int64{}
	}

	return totals, nil
}
