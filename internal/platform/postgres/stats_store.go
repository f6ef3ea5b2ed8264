package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface. Counts
// are recomputed on demand from post metadata; nothing is cached.
type PostgresStatsStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface. If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db *sql.DB, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// Totals implements store.StatsStore.Totals.
func (s *PostgresStatsStore) Totals(ctx context.Context) (domain.GenerationStats, error) {
	stats := domain.GenerationStats{
		ByProvider:    make(map[string]int64),
		ByContentType: make(map[string]int64),
	}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_meta WHERE meta_key = $1 AND meta_value = 'true'`,
		domain.MetaGenerated,
	).Scan(&stats.Total)
	if err != nil {
		return domain.GenerationStats{}, fmt.Errorf("counting generated posts: %w", err)
	}

	if err := s.groupCounts(ctx,
		`SELECT meta_value, COUNT(*) FROM post_meta WHERE meta_key = $1 GROUP BY meta_value`,
		domain.MetaProvider, stats.ByProvider,
	); err != nil {
		return domain.GenerationStats{}, fmt.Errorf("counting by provider: %w", err)
	}

	if err := s.groupCounts(ctx,
		`SELECT p.content_type, COUNT(*)
		 FROM posts p
		 INNER JOIN post_meta pm ON p.id = pm.post_id
		 WHERE pm.meta_key = $1 AND pm.meta_value = 'true'
		 GROUP BY p.content_type`,
		domain.MetaGenerated, stats.ByContentType,
	); err != nil {
		return domain.GenerationStats{}, fmt.Errorf("counting by content type: %w", err)
	}

	return stats, nil
}

func (s *PostgresStatsStore) groupCounts(ctx context.Context, query, metaKey string, dest map[string]int64) error {
	rows, err := s.db.QueryContext(ctx, query, metaKey)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}

	return rows.Err()
}
