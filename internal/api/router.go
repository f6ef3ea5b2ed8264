package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/pagegen/internal/service"
)

// NewRouter builds the application router with all routes and the
// standard middleware stack.
func NewRouter(
	genSvc service.GenerationService,
	statsSvc service.StatsService,
	defaults GenerationDefaults,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	generateHandler := NewGenerateHandler(genSvc, defaults)
	providerHandler := NewProviderHandler(genSvc)
	statsHandler := NewStatsHandler(statsSvc)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", generateHandler.CreatePost)
		r.Post("/cache/flush", generateHandler.FlushCache)
		r.Get("/stats", statsHandler.Totals)
		r.Get("/providers", providerHandler.List)
		r.Post("/providers/{id}/test", providerHandler.Test)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
