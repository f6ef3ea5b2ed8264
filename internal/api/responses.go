package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pagegen/internal/generation"
)

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response. The code, when
// non-empty, is the stable generation error code clients branch on.
func RespondWithError(w http.ResponseWriter, status int, code, message string) {
	RespondWithJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// MapErrorToStatusCode maps a generation pipeline error to an HTTP
// status. Caller mistakes are 4xx; provider-side failures surface as
// 502 because the upstream service, not this one, misbehaved.
func MapErrorToStatusCode(err error) int {
	switch generation.CodeOf(err) {
	case generation.CodeInvalidParameters,
		generation.CodeUnsupportedProvider,
		generation.CodeMissingAPIKey,
		generation.CodeInvalidAPIKey:
		return http.StatusBadRequest

	case generation.CodeAPIError,
		generation.CodeInvalidResponse,
		generation.CodeJSONError:
		return http.StatusBadGateway

	case generation.CodePostCreationFailed:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// respondWithGenerationError sends the sanitized message and stable
// code for a pipeline failure. The raw error is logged by the service
// layer; only the typed message reaches the client.
func respondWithGenerationError(w http.ResponseWriter, err error) {
	status := MapErrorToStatusCode(err)

	message := "An unexpected error occurred"
	var genErr *generation.Error
	if errors.As(err, &genErr) {
		message = genErr.Message
	}

	RespondWithError(w, status, string(generation.CodeOf(err)), message)
}
