// Package store defines the persistence interfaces the generation core
// depends on. Implementations live under internal/platform; tests use
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"github.com/phrazzld/pagegen/internal/domain"
)

// Common store errors.
var (
	// ErrPostNotFound is returned when a post ID does not exist.
	ErrPostNotFound = errors.New("post not found")
)

// PostStore persists generated content. It is the application-side
// analog of a CMS post table: posts carry free-form string metadata
// keyed per post.
type PostStore interface {
	// Create persists the post and returns its assigned ID.
	Create(ctx context.Context, post *domain.Post) (int64, error)

	// SetMeta attaches a metadata key/value pair to an existing post,
	// overwriting any previous value for the key.
	SetMeta(ctx context.Context, postID int64, key, value string) error
}

// StatsStore answers read-only aggregate queries over generated posts.
type StatsStore interface {
	// Totals counts generated posts overall, by provider, and by
	// content type. An empty store yields zero counts, not an error.
	Totals(ctx context.Context) (domain.GenerationStats, error)
}
