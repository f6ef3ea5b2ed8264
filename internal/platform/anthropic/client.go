// Package anthropic implements the generation.Generator interface for
// Claude via the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/provider"
)

// Client calls the Anthropic Messages API.
type Client struct {
	providerID string
	model      string
	apiKey     string
	sdk        anthropicsdk.Client
	logger     *slog.Logger
}

// NewClient creates an Anthropic messages client. Extra request options
// (e.g. a test server base URL) override the defaults. If logger is
// nil, a default logger is used.
func NewClient(cfg provider.Config, apiKey string, logger *slog.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Retry is a caller concern, not the client's
		option.WithMaxRetries(0),
	}
	sdkOpts = append(sdkOpts, opts...)

	return &Client{
		providerID: cfg.ID,
		model:      cfg.Model,
		apiKey:     apiKey,
		sdk:        anthropicsdk.NewClient(sdkOpts...),
		logger:     logger.With(slog.String("component", "anthropic_client"), slog.String("provider", cfg.ID)),
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

	msg, err := c.sdk.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.model),
		MaxTokens: int64(generation.MaxTokens(wordCount)),
		System: []anthropicsdk.TextBlockParam{
			{Text: generation.SystemMessage},
		},
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
		Temperature: anthropicsdk.Float(generation.Temperature(opts)),
	})
	if err != nil {
		return "", c.mapError(ctx, err)
	}

	text := collectText(msg)
	if text == "" {
		return "", generation.NewError(generation.CodeInvalidResponse,
			fmt.Sprintf("%s response has no text content", c.providerID))
	}

	return text, nil
}

// TestConnection implements generation.Generator.TestConnection.
func (c *Client) TestConnection(ctx context.Context) error {
	if err := generation.ValidateAPIKey(c.apiKey); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, generation.TestConnectionTimeout)
	defer cancel()

	msg, err := c.sdk.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.model),
		MaxTokens: 5,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock("Test")),
		},
	})
	if err != nil {
		return c.mapError(ctx, err)
	}

	if len(msg.Content) == 0 {
		return generation.NewError(generation.CodeInvalidResponse,
			fmt.Sprintf("%s connection test returned no content", c.providerID))
	}

	return nil
}

// collectText concatenates the text blocks of a message.
func collectText(msg *anthropicsdk.Message) string {
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

func (c *Client) mapError(ctx context.Context, err error) error {
	var apiErr *anthropicsdk.Error
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
