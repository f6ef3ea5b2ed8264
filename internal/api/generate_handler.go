package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/pagegen/internal/domain"
	"github.com/phrazzld/pagegen/internal/service"
)

// GenerationDefaults fills in request fields the caller omitted. The
// values come from configuration at startup.
type GenerationDefaults struct {
	Provider    string
	WordCount   int
	ContentType string
	PostStatus  string
}

// GenerateHandler handles content generation HTTP requests.
type GenerateHandler struct {
	svc       service.GenerationService
	defaults  GenerationDefaults
	validator *validator.Validate
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(svc service.GenerationService, defaults GenerationDefaults) *GenerateHandler {
	return &GenerateHandler{
		svc:       svc,
		defaults:  defaults,
		validator: validator.New(),
	}
}

// CreatePost handles POST /api/generate requests.
func (h *GenerateHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "", "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "", "Validation error: "+err.Error())
		return
	}

	genReq := h.toDomainRequest(req)

	postID, err := h.svc.GenerateAndCreatePost(r.Context(), genReq)
	if err != nil {
		respondWithGenerationError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, GenerateResponse{
		PostID:    postID,
		Provider:  genReq.ProviderID,
		WordCount: genReq.WordCount,
	})
}

// toDomainRequest applies the configured defaults to omitted fields.
// Full validation happens in the service layer.
func (h *GenerateHandler) toDomainRequest(req GenerateRequest) domain.GenerationRequest {
	out := domain.GenerationRequest{
		Title:       req.Title,
		ProviderID:  req.Provider,
		WordCount:   req.WordCount,
		ContentType: domain.ContentType(req.ContentType),
		PostStatus:  domain.PostStatus(req.PostStatus),
	}

	if out.ProviderID == "" {
		out.ProviderID = h.defaults.Provider
	}
	if out.WordCount == 0 {
		out.WordCount = h.defaults.WordCount
	}
	if out.ContentType == "" {
		out.ContentType = domain.ContentType(h.defaults.ContentType)
	}
	if out.PostStatus == "" {
		out.PostStatus = domain.PostStatus(h.defaults.PostStatus)
	}

	return out
}

// FlushCache handles POST /api/cache/flush requests.
func (h *GenerateHandler) FlushCache(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.FlushCache(r.Context()); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "", "Failed to flush cache")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}
