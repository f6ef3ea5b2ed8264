package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/pagegen/internal/provider"
	"github.com/phrazzld/pagegen/internal/service"
)

// ProviderHandler handles provider listing and connectivity tests.
type ProviderHandler struct {
	svc service.GenerationService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(svc service.GenerationService) *ProviderHandler {
	return &ProviderHandler{svc: svc}
}

// List handles GET /api/providers requests.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := provider.IDs()
	out := make([]ProviderResponse, 0, len(ids))
	for _, id := range ids {
		cfg, ok := provider.Get(id)
		if !ok {
			continue
		}
		out = append(out, ProviderResponse{
			ID:          cfg.ID,
			DisplayName: cfg.DisplayName,
			Model:       cfg.Model,
			DocsURL:     cfg.DocsURL,
		})
	}

	RespondWithJSON(w, http.StatusOK, out)
}

// Test handles POST /api/providers/{id}/test requests.
func (h *ProviderHandler) Test(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")

	if err := h.svc.TestProvider(r.Context(), providerID); err != nil {
		respondWithGenerationError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, TestProviderResponse{
		Provider: providerID,
		Status:   "ok",
	})
}
