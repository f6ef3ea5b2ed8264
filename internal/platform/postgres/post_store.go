// Package postgres implements the store interfaces on PostgreSQL via
// database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/store"
)

// PostgresPostStore implements the store.PostStore interface using a
// PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the
// PostStore interface. The caller owns the database connection.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db *sql.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) (int64, error) {
	if err := post.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, body, content_type, status, author, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		post.Title, post.Body, string(post.ContentType), string(post.Status),
		post.Author, post.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting post: %w", err)
	}

	s.logger.DebugContext(ctx, "post created", "post_id", id, "content_type", post.ContentType)
	return id, nil
}

// SetMeta implements store.PostStore.SetMeta.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) SetMeta(ctx context.Context, postID int64, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO post_meta (post_id, meta_key, meta_value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (post_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		postID, key, value,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrPostNotFound
		}
		return fmt.Errorf("setting post meta %q: %w", key, err)
	}

	return nil
}
