package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// internalErrorPrefix starts the error field of every 500 response.
const internalErrorPrefix = "Internal Server Error: "

// MapErrorToStatusCode maps internal errors to HTTP status codes.
//
// Absence and unparseable path segments map to 404, bad request bodies to
// 400. Everything else, including pool and query failures, is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTitle):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// InternalErrorMessage builds the client-facing description of a backend
// failure. Credentials and hosts are redacted.
func InternalErrorMessage(err error) string {
	return internalErrorPrefix + redact.Error(err)
}

// HandleAPIError writes the response for err. 404s have an empty body;
// 400s and 500s carry the JSON error envelope.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	switch status {
	case http.StatusNotFound:
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("resource not found", slog.String("error", redact.Error(err)))
		shared.RespondWithStatus(w, r, status)
	case http.StatusBadRequest:
		shared.RespondWithErrorAndLog(w, r, status, "Validation error: "+err.Error(), err)
	default:
		shared.RespondWithErrorAndLog(w, r, status, InternalErrorMessage(err), err)
	}
}
