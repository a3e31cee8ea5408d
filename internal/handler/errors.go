package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/traveler-app/backend/internal/domain"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service/domain error to an HTTP status and JSON body.
// Batch-level upload problems and validation failures are the client's to
// fix (400); everything else is a 500 with the detail kept out of the body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadUpload):
		writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "bad_upload", Message: err.Error()}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "validation_error", Message: err.Error()}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: "not found"}})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{Code: "internal", Message: "internal server error"}})
	}
}

// badRequest rejects a request before it reaches the service layer.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "validation_error", Message: message}})
}
