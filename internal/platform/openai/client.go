// Package openai implements the generation.Generator interface for
// providers speaking the OpenAI chat-completions protocol. Both OpenAI
// itself and DeepSeek are served by this client; DeepSeek differs only
// in base URL and model name.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openaisdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/provider"
)

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	providerID string
	model      string
	apiKey     string
	sdk        openaisdk.Client
	logger     *slog.Logger
}

// NewClient creates a chat-completions client for the given provider.
// cfg.Endpoint is the full completions URL from the registry; the SDK
// wants the API base, so the well-known path suffix is trimmed off.
// Extra request options (e.g. a test server base URL) override the
// defaults. If logger is nil, a default logger is used.
func NewClient(cfg provider.Config, apiKey string, logger *slog.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimSuffix(cfg.Endpoint, "/chat/completions")

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		// Retry is a caller concern, not the client's
		option.WithMaxRetries(0),
	}
	sdkOpts = append(sdkOpts, opts...)

	return &Client{
		providerID: cfg.ID,
		model:      cfg.Model,
		apiKey:     apiKey,
		sdk:        openaisdk.NewClient(sdkOpts...),
		logger:     logger.With(slog.String("component", "openai_client"), slog.String("provider", cfg.ID)),
	}
}

// Ensure Client implements the Generator interface
var _ generation.Generator = (*Client)(nil)

// Generate implements generation.Generator.Generate.
func (c *Client) Generate(ctx context.Context, prompt string, wordCount int, opts map[string]any) (string, error) {
	if prompt == "" {
		return "", generation.NewError(generation.CodeInvalidParameters, "prompt cannot be empty")
	}
	if wordCount <= 0 {
		return "", generation.NewError(generation.CodeInvalidParameters, "word count must be positive")
	}
	if err := generation.ValidateAPIKey(c.apiKey); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, generation.GenerateTimeout)
	defer cancel()

	c.logger.InfoContext(ctx, "generating content", "model", c.model, "word_count", wordCount)

	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(generation.SystemMessage),
			openaisdk.UserMessage(prompt),
		},
		MaxTokens:   openaisdk.Int(int64(generation.MaxTokens(wordCount))),
		Temperature: openaisdk.Float(generation.Temperature(opts)),
	})
	if err != nil {
		return "", c.mapError(ctx, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", generation.NewError(generation.CodeInvalidResponse,
			fmt.Sprintf("%s response has no message content", c.providerID))
	}

	return resp.Choices[0].Message.Content, nil
}

// TestConnection implements generation.Generator.TestConnection.
func (c *Client) TestConnection(ctx context.Context) error {
	if err := generation.ValidateAPIKey(c.apiKey); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, generation.TestConnectionTimeout)
	defer cancel()

	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage("Test"),
		},
		MaxTokens: openaisdk.Int(5),
	})
	if err != nil {
		return c.mapError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return generation.NewError(generation.CodeInvalidResponse,
			fmt.Sprintf("%s connection test returned no choices", c.providerID))
	}

	return nil
}

// mapError normalizes SDK failures into the stable error taxonomy.
// The raw API key never appears in messages or logs.
func (c *Client) mapError(ctx context.Context, err error) error {
	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) {
		c.logger.ErrorContext(ctx, "provider request failed", "status", apiErr.StatusCode)
		switch apiErr.StatusCode {
		case 401, 403:
			return generation.WrapError(generation.CodeInvalidAPIKey,
				fmt.Sprintf("%s rejected the API key", c.providerID), err)
		default:
			return generation.WrapError(generation.CodeAPIError,
				fmt.Sprintf("%s returned status %d", c.providerID, apiErr.StatusCode), err)
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return generation.WrapError(generation.CodeJSONError,
			fmt.Sprintf("failed to parse %s response", c.providerID), err)
	}

	c.logger.ErrorContext(ctx, "provider request failed", "error", err)
	return generation.WrapError(generation.CodeAPIError,
		fmt.Sprintf("%s request failed", c.providerID), err)
}
