package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/platform/anthropic"
	"github.com/phrazzld/pagegen/internal/platform/gemini"
	"github.com/phrazzld/pagegen/internal/platform/openai"
	"github.com/phrazzld/pagegen/internal/provider"
)

// generatorFactory builds real provider clients from registry entries.
type generatorFactory struct {
	logger *slog.Logger
}

var _ GeneratorFactory = (*generatorFactory)(nil)

// NewGeneratorFactory returns the production GeneratorFactory. Clients
// are built per request; they hold no connection state worth pooling.
func NewGeneratorFactory(logger *slog.Logger) GeneratorFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &generatorFactory{logger: logger}
}

// New implements GeneratorFactory.New.
func (f *generatorFactory) New(
	ctx context.Context,
	cfg provider.Config,
	apiKey string,
) (generation.Generator, error) {
	switch cfg.ID {
	case provider.OpenAI, provider.DeepSeek:
		return openai.NewClient(cfg, apiKey, f.logger), nil
	case provider.Anthropic:
		return anthropic.NewClient(cfg, apiKey, f.logger), nil
	case provider.Gemini:
		return gemini.NewClient(ctx, cfg, apiKey, f.logger)
	default:
		return nil, generation.NewError(generation.CodeUnsupportedProvider,
			fmt.Sprintf("unsupported provider %q", cfg.ID))
	}
}
