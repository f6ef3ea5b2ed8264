// Package gemini implements the generation.Generator interface using
// Google's Gemini generateContent API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/provider"
)

// Option adjusts the underlying genai client configuration.
type Option func(*genai.ClientConfig)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = baseURL
	}
}

// Client calls the Gemini generateContent API.
type Client struct {
	providerID string
	model      string
	sdk        *genai.Client
	logger     *slog.Logger
}

// NewClient creates a Gemini client. The API key is format-checked
// before the SDK client is built so a malformed credential fails fast.
// If logger is nil, a default logger is used.
func NewClient(ctx context.Context, cfg provider.Config, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := generation.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	sdk, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, generation.WrapError(generation.CodeAPIError, "failed to create Gemini client", err)
	}

	return &Client{
		providerID: cfg.ID,
		model:      cfg.Model,
		sdk:        sdk,
		logger:     logger.With(slog.String("component", "gemini_client"), slog.String("provider", cfg.ID)),
	}, nil
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

	ctx, cancel := context.WithTimeout(ctx, generation.GenerateTimeout)
	defer cancel()

	c.logger.InfoContext(ctx, "generating content", "model", c.model, "word_count", wordCount)

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(generation.Temperature(opts))),
		MaxOutputTokens: int32(generation.MaxTokens(wordCount)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemMessage}},
		},
	}

	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", c.mapError(ctx, err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}

	return text, nil
}

// TestConnection implements generation.Generator.TestConnection.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, generation.TestConnectionTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: 5,
	}

	resp, err := c.sdk.Models.GenerateContent(ctx, c.model, genai.Text("Test"), config)
	if err != nil {
		return c.mapError(ctx, err)
	}

	if len(resp.Candidates) == 0 {
		return generation.NewError(generation.CodeInvalidResponse,
			"gemini connection test returned no candidates")
	}

	return nil
}

// extractText pulls the generated text out of the provider-specific
// response shape (candidates[0].content.parts[].text).
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", generation.NewError(generation.CodeInvalidResponse, "gemini response has no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", generation.NewError(generation.CodeInvalidResponse, "gemini response has no content parts")
	}

	text := ""
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}

	if text == "" {
		return "", generation.NewError(generation.CodeInvalidResponse, "gemini response contains no text")
	}

	return text, nil
}

func (c *Client) mapError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		c.logger.ErrorContext(ctx, "provider request failed", "status", apiErr.Code)
		switch apiErr.Code {
		case 401, 403:
			return generation.WrapError(generation.CodeInvalidAPIKey,
				fmt.Sprintf("%s rejected the API key", c.providerID), err)
		default:
			return generation.WrapError(generation.CodeAPIError,
				fmt.Sprintf("%s returned status %d", c.providerID, apiErr.Code), err)
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
