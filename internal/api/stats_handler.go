package api

import (
	"net/http"

	"github.com/phrazzld/pagegen/internal/service"
)

// StatsHandler handles statistics HTTP requests.
type StatsHandler struct {
	svc service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Totals handles GET /api/stats requests.
func (h *StatsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.Totals(r.Context())
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "", "Failed to load statistics")
		return
	}

	RespondWithJSON(w, http.StatusOK, totals)
}
