package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/pagegen/internal/api"
	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerationService records calls and returns canned results.
type stubGenerationService struct {
	lastReq        domain.GenerationRequest
	postID         int64
	genErr         error
	testedProvider string
	testErr        error
	flushed        bool
	flushErr       error
}

func (s *stubGenerationService) GenerateAndCreatePost(
	_ context.Context,
	req domain.GenerationRequest,
) (int64, error) {
	s.lastReq = req
	if s.genErr != nil {
		return 0, s.genErr
	}
	return s.postID, nil
}

func (s *stubGenerationService) TestProvider(_ context.Context, providerID string) error {
	s.testedProvider = providerID
	return s.testErr
}

func (s *stubGenerationService) FlushCache(context.Context) error {
	s.flushed = true
	return s.flushErr
}

// stubStatsService returns canned totals.
type stubStatsService struct {
	stats domain.GenerationStats
	err   error
}

func (s *stubStatsService) Totals(context.Context) (domain.GenerationStats, error) {
	return s.stats, s.err
}

func testDefaults() api.GenerationDefaults {
	return api.GenerationDefaults{
		Provider:    "openai",
		WordCount:   500,
		ContentType: "post",
		PostStatus:  "draft",
	}
}

func newTestRouter(gen *stubGenerationService, stats *stubStatsService) http.Handler {
	return api.NewRouter(gen, stats, testDefaults(), nil)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndpoint(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{postID: 42}
	router := newTestRouter(gen, &stubStatsService{})

	body := `{"title":"Go Concurrency","provider":"anthropic","word_count":1000,` +
		`"content_type":"page","post_status":"publish"}`
	rec := doRequest(t, router, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.PostID)
	assert.Equal(t, "anthropic", resp.Provider)
	assert.Equal(t, 1000, resp.WordCount)

	assert.Equal(t, "Go Concurrency", gen.lastReq.Title)
	assert.Equal(t, "anthropic", gen.lastReq.ProviderID)
	assert.Equal(t, domain.ContentTypePage, gen.lastReq.ContentType)
	assert.Equal(t, domain.PostStatusPublish, gen.lastReq.PostStatus)
}

func TestGenerateEndpointAppliesDefaults(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{postID: 7}
	router := newTestRouter(gen, &stubStatsService{})

	rec := doRequest(t, router, http.MethodPost, "/api/generate", `{}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "openai", gen.lastReq.ProviderID)
	assert.Equal(t, 500, gen.lastReq.WordCount)
	assert.Equal(t, domain.ContentTypePost, gen.lastReq.ContentType)
	assert.Equal(t, domain.PostStatusDraft, gen.lastReq.PostStatus)
	assert.Empty(t, gen.lastReq.Title)
}

func TestGenerateEndpointMalformedBody(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{}
	router := newTestRouter(gen, &stubStatsService{})

	rec := doRequest(t, router, http.MethodPost, "/api/generate", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, gen.lastReq.ProviderID)
}

func TestGenerateEndpointErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid parameters",
			err:        generation.NewError(generation.CodeInvalidParameters, "bad request"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_parameters",
		},
		{
			name:       "missing api key",
			err:        generation.NewError(generation.CodeMissingAPIKey, "key not configured"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "missing_api_key",
		},
		{
			name:       "unsupported provider",
			err:        generation.NewError(generation.CodeUnsupportedProvider, "unknown provider"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "unsupported_provider",
		},
		{
			name:       "provider api error",
			err:        generation.NewError(generation.CodeAPIError, "rate limited"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "api_error",
		},
		{
			name:       "invalid response",
			err:        generation.NewError(generation.CodeInvalidResponse, "missing content"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "invalid_response",
		},
		{
			name:       "persistence failure",
			err:        generation.NewError(generation.CodePostCreationFailed, "insert failed"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "post_creation_failed",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := &stubGenerationService{genErr: tc.err}
			router := newTestRouter(gen, &stubStatsService{})

			rec := doRequest(t, router, http.MethodPost, "/api/generate", `{}`)

			require.Equal(t, tc.wantStatus, rec.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	stats := &stubStatsService{stats: domain.GenerationStats{
		Total:         5,
		ByProvider:    map[string]int64{"openai": 2, "anthropic": 3},
		ByContentType: map[string]int64{"post": 5},
	}}
	router := newTestRouter(&stubGenerationService{}, stats)

	rec := doRequest(t, router, http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.GenerationStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, int64(3), resp.ByProvider["anthropic"])
}

func TestStatsEndpointError(t *testing.T) {
	t.Parallel()

	stats := &stubStatsService{err: errors.New("connection refused")}
	router := newTestRouter(&stubGenerationService{}, stats)

	rec := doRequest(t, router, http.MethodGet, "/api/stats", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestProvidersEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubGenerationService{}, &stubStatsService{})

	rec := doRequest(t, router, http.MethodGet, "/api/providers", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []api.ProviderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 4)
	assert.Equal(t, "openai", resp[0].ID)
	assert.Equal(t, "gpt-3.5-turbo", resp[0].Model)
	assert.Equal(t, "anthropic", resp[3].ID)
}

func TestProviderTestEndpoint(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{}
	router := newTestRouter(gen, &stubStatsService{})

	rec := doRequest(t, router, http.MethodPost, "/api/providers/gemini/test", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gemini", gen.testedProvider)

	var resp api.TestProviderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestProviderTestEndpointFailure(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{
		testErr: generation.NewError(generation.CodeInvalidAPIKey, "credential rejected"),
	}
	router := newTestRouter(gen, &stubStatsService{})

	rec := doRequest(t, router, http.MethodPost, "/api/providers/openai/test", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_api_key", resp.Code)
}

func TestCacheFlushEndpoint(t *testing.T) {
	t.Parallel()

	gen := &stubGenerationService{}
	router := newTestRouter(gen, &stubStatsService{})

	rec := doRequest(t, router, http.MethodPost, "/api/cache/flush", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gen.flushed)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubGenerationService{}, &stubStatsService{})

	rec := doRequest(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
