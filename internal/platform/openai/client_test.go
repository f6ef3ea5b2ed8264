package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/phrazzld/pagegen/internal/provider"
)

const testAPIKey = "sk-test-1234567890abcdef"

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg, ok := provider.Get(provider.OpenAI)
	require.True(t, ok)

	return NewClient(cfg, apiKey, nil, option.WithBaseURL(server.URL))
}

func completionResponse(content string) string {
	return `{"id":"chatcmpl-1","object":"chat.completion","created":1700000000,` +
		`"model":"gpt-3.5-turbo","choices":[{"index":0,"finish_reason":"stop",` +
		`"message":{"role":"assistant","content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("<h2>Title</h2><p>Body</p>")))
	})

	text, err := client.Generate(context.Background(), "Write about bees", 500, nil)
	require.NoError(t, err)
	assert.Equal(t, "<h2>Title</h2><p>Body</p>", text)

	// Request carries the computed token budget and default temperature
	assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
	assert.Equal(t, float64(780), gotBody["max_tokens"])
	assert.Equal(t, 0.7, gotBody["temperature"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Contains(t, system["content"], "expert content writer")
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Write about bees", user["content"])
}

func TestGenerateTemperatureOverride(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("text")))
	})

	_, err := client.Generate(context.Background(), "prompt", 100, map[string]any{"temperature": 0.2})
	require.NoError(t, err)
	assert.Equal(t, 0.2, gotBody["temperature"])
}

func TestGenerateRateLimited(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
	})

	_, err := client.Generate(context.Background(), "prompt", 100, nil)
	require.Error(t, err)
	assert.Equal(t, generation.CodeAPIError, generation.CodeOf(err))
}

func TestGenerateUnauthorized(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	})

	_, err := client.Generate(context.Background(), "prompt", 100, nil)
	require.Error(t, err)
	assert.Equal(t, generation.CodeInvalidAPIKey, generation.CodeOf(err))
}

func TestGenerateUnexpectedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"unexpected":1}`))
	})

	_, err := client.Generate(context.Background(), "prompt", 100, nil)
	require.Error(t, err)
	assert.Equal(t, generation.CodeInvalidResponse, generation.CodeOf(err))
}

func TestGenerateFailsFastWithoutCredential(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no HTTP request should be made without a credential")
	})

	_, err := client.Generate(context.Background(), "prompt", 100, nil)
	assert.Equal(t, generation.CodeMissingAPIKey, generation.CodeOf(err))

	client = newTestClient(t, "short", func(w http.ResponseWriter, r *http.Request) {
		t.Error("no HTTP request should be made with a malformed credential")
	})

	_, err = client.Generate(context.Background(), "prompt", 100, nil)
	assert.Equal(t, generation.CodeInvalidAPIKey, generation.CodeOf(err))
}

func TestGenerateInvalidParameters(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no HTTP request should be made for invalid parameters")
	})

	_, err := client.Generate(context.Background(), "", 100, nil)
	assert.Equal(t, generation.CodeInvalidParameters, generation.CodeOf(err))

	_, err = client.Generate(context.Background(), "prompt", 0, nil)
	assert.Equal(t, generation.CodeInvalidParameters, generation.CodeOf(err))
}

func TestTestConnection(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("ok")))
	})

	require.NoError(t, client.TestConnection(context.Background()))

	// Connectivity test uses a minimal 5-token budget
	assert.Equal(t, float64(5), gotBody["max_tokens"])
}

func TestTestConnectionFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, testAPIKey, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	})

	err := client.TestConnection(context.Background())
	assert.Equal(t, generation.CodeAPIError, generation.CodeOf(err))
}

func TestDeepSeekUsesProviderModel(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("text")))
	}))
	t.Cleanup(server.Close)

	cfg, ok := provider.Get(provider.DeepSeek)
	require.True(t, ok)

	client := NewClient(cfg, testAPIKey, nil, option.WithBaseURL(server.URL))
	_, err := client.Generate(context.Background(), "prompt", 100, nil)
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", gotBody["model"])
}
