package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/pagegen/internal/cache"
	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/provider"
	"github.com/phrazzld/pagegen/internal/sanitize"
	"github.com/phrazzld/pagegen/internal/store"
)

// fallbackTitlePrefix is used when a request carries no title.
const fallbackTitlePrefix = "Generated Content - "

// CredentialSource resolves the configured API key for a provider.
// An empty string means the provider has no credential configured.
type CredentialSource interface {
	APIKey(providerID string) string
}

// GeneratorFactory builds a provider client for one registry entry.
type GeneratorFactory interface {
	// New returns a Generator for the given provider configuration and
	// credential. The credential has already passed format validation.
	New(ctx context.Context, cfg provider.Config, apiKey string) (generation.Generator, error)
}

// GenerationService runs the end-to-end generation pipeline.
type GenerationService interface {
	// GenerateAndCreatePost validates the request, obtains content from
	// the configured provider (or the cache), and persists exactly one
	// post with its metadata. It returns the new post's ID. Failures
	// carry a stable generation error code.
	GenerateAndCreatePost(ctx context.Context, req domain.GenerationRequest) (int64, error)

	// TestProvider verifies that the given provider is reachable with
	// the configured credential. It never creates a post.
	TestProvider(ctx context.Context, providerID string) error

	// FlushCache removes every cached generation response.
	FlushCache(ctx context.Context) error
}

// generationServiceImpl implements GenerationService.
type generationServiceImpl struct {
	creds     CredentialSource
	factory   GeneratorFactory
	posts     store.PostStore
	respCache cache.Cache // nil when caching is disabled
	cacheTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewGenerationService creates a GenerationService. A nil respCache
// disables caching; every request then reaches the provider. It
// returns an error if any required dependency is nil.
func NewGenerationService(
	creds CredentialSource,
	factory GeneratorFactory,
	posts store.PostStore,
	respCache cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) (GenerationService, error) {
	if creds == nil {
		return nil, errors.New("credential source cannot be nil")
	}
	if factory == nil {
		return nil, errors.New("generator factory cannot be nil")
	}
	if posts == nil {
		return nil, errors.New("post store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}

	return &generationServiceImpl{
		creds:     creds,
		factory:   factory,
		posts:     posts,
		respCache: respCache,
		cacheTTL:  cacheTTL,
		logger:    logger.With(slog.String("component", "generation_service")),
		now:       time.Now,
	}, nil
}

// GenerateAndCreatePost implements GenerationService.GenerateAndCreatePost.
func (s *generationServiceImpl) GenerateAndCreatePost(
	ctx context.Context,
	req domain.GenerationRequest,
) (int64, error) {
	requestID := uuid.New().String()
	log := s.logger.With(slog.String("request_id", requestID))

	if err := req.Validate(); err != nil {
		log.Warn("rejected generation request",
			slog.String("error", err.Error()))
		return 0, generation.WrapError(generation.CodeInvalidParameters,
			"invalid generation request", err)
	}

	cfg, ok := provider.Get(req.ProviderID)
	if !ok {
		log.Warn("unknown provider requested",
			slog.String("provider", req.ProviderID))
		return 0, generation.NewError(generation.CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider %q", req.ProviderID))
	}

	apiKey := s.creds.APIKey(req.ProviderID)
	if err := generation.ValidateAPIKey(apiKey); err != nil {
		log.Warn("credential check failed",
			slog.String("provider", req.ProviderID),
			slog.String("code", string(generation.CodeOf(err))))
		return 0, err
	}

	prompt := generation.BuildPrompt(req.Title, req.ContentType, req.WordCount)
	opts := map[string]any{}
	cacheKey := cache.Key(req.ProviderID, prompt, req.WordCount, opts)

	content, cached := s.lookupCache(ctx, log, cacheKey)
	if !cached {
		gen, err := s.factory.New(ctx, cfg, apiKey)
		if err != nil {
			log.Error("failed to build provider client",
				slog.String("provider", req.ProviderID),
				slog.String("error", err.Error()))
			return 0, err
		}

		content, err = gen.Generate(ctx, prompt, req.WordCount, opts)
		if err != nil {
			log.Error("generation failed",
				slog.String("provider", req.ProviderID),
				slog.String("code", string(generation.CodeOf(err))))
			return 0, err
		}

		s.storeCache(ctx, log, cacheKey, content)
	}

	body := sanitize.HTML(content)

	title := req.Title
	if title == "" {
		title = fallbackTitlePrefix + s.now().UTC().Format("2006-01-02 15:04:05")
	}

	post, err := domain.NewPost(title, body, req.ContentType, req.PostStatus, "")
	if err != nil {
		log.Error("generated content is not persistable",
			slog.String("provider", req.ProviderID),
			slog.String("error", err.Error()))
		return 0, generation.WrapError(generation.CodePostCreationFailed,
			"generated content is not persistable", err)
	}

	postID, err := s.posts.Create(ctx, post)
	if err != nil {
		log.Error("failed to create post",
			slog.String("provider", req.ProviderID),
			slog.String("error", err.Error()))
		return 0, generation.WrapError(generation.CodePostCreationFailed,
			"failed to create post", err)
	}

	if err := s.writeMetadata(ctx, postID, req); err != nil {
		log.Error("failed to write post metadata",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return 0, generation.WrapError(generation.CodePostCreationFailed,
			"failed to write post metadata", err)
	}

	log.Info("generated post created",
		slog.Int64("post_id", postID),
		slog.String("provider", req.ProviderID),
		slog.Int("word_count", req.WordCount),
		slog.Bool("cached", cached))

	return postID, nil
}

// lookupCache returns the cached content for key, if caching is
// enabled and the entry exists.
func (s *generationServiceImpl) lookupCache(
	ctx context.Context,
	log *slog.Logger,
	key string,
) (string, bool) {
	if s.respCache == nil {
		return "", false
	}

	content, ok := s.respCache.Get(ctx, key)
	if ok {
		log.Debug("cache hit", slog.String("cache_key", key))
	}
	return content, ok
}

// storeCache writes content to the cache. Cache failures are logged
// and swallowed; they never fail a generation that already succeeded.
func (s *generationServiceImpl) storeCache(
	ctx context.Context,
	log *slog.Logger,
	key, content string,
) {
	if s.respCache == nil {
		return
	}

	if err := s.respCache.Set(ctx, key, content, s.cacheTTL); err != nil {
		log.Warn("failed to cache generated content",
			slog.String("cache_key", key),
			slog.String("error", err.Error()))
	}
}

// writeMetadata records the generation provenance on the new post.
func (s *generationServiceImpl) writeMetadata(
	ctx context.Context,
	postID int64,
	req domain.GenerationRequest,
) error {
	meta := []struct {
		key   string
		value string
	}{
		{domain.MetaGenerated, "true"},
		{domain.MetaProvider, req.ProviderID},
		{domain.MetaWordCount, strconv.Itoa(req.WordCount)},
		{domain.MetaGeneratedAt, s.now().UTC().Format(time.RFC3339)},
		{domain.MetaVersion, domain.Version},
	}

	for _, m := range meta {
		if err := s.posts.SetMeta(ctx, postID, m.key, m.value); err != nil {
			return fmt.Errorf("setting %s: %w", m.key, err)
		}
	}
	return nil
}

// TestProvider implements GenerationService.TestProvider.
func (s *generationServiceImpl) TestProvider(ctx context.Context, providerID string) error {
	cfg, ok := provider.Get(providerID)
	if !ok {
		return generation.NewError(generation.CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider %q", providerID))
	}

	apiKey := s.creds.APIKey(providerID)
	if err := generation.ValidateAPIKey(apiKey); err != nil {
		return err
	}

	gen, err := s.factory.New(ctx, cfg, apiKey)
	if err != nil {
		return err
	}

	if err := gen.TestConnection(ctx); err != nil {
		s.logger.Warn("provider connection test failed",
			slog.String("provider", providerID),
			slog.String("code", string(generation.CodeOf(err))))
		return err
	}

	s.logger.Info("provider connection test succeeded",
		slog.String("provider", providerID))
	return nil
}

// FlushCache implements GenerationService.FlushCache.
func (s *generationServiceImpl) FlushCache(ctx context.Context) error {
	if s.respCache == nil {
		return nil
	}

	if err := s.respCache.DeletePrefix(ctx, cache.KeyPrefix); err != nil {
		s.logger.Error("failed to flush cache",
			slog.String("error", err.Error()))
		return fmt.Errorf("flushing cache: %w", err)
	}

	s.logger.Info("cache flushed")
	return nil
}
