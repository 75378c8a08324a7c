package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/service"
	"polluxkart-admin/internal/storage"
	"polluxkart-admin/internal/validate"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// decodeValid decodes the JSON body into v and checks its validate tags.
// On failure it writes the 422 itself and returns false.
func decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "invalid JSON body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		if validate.IsSchemaError(err) {
			WriteJSONError(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
			return false
		}
		WriteJSONError(w, http.StatusInternalServerError, "Internal Server Error", "")
		return false
	}
	return true
}

// WriteServiceError maps service-layer errors onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFoundErr *service.NotFoundError
	var ruleErr *service.RuleError

	switch {
	case errors.As(err, &notFoundErr):
		WriteJSONError(w, http.StatusNotFound, "Not Found", notFoundErr.Error())
	case errors.As(err, &ruleErr):
		WriteJSONError(w, http.StatusBadRequest, "Bad Request", ruleErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
	case errors.Is(err, service.ErrInvalidSetupKey):
		WriteJSONError(w, http.StatusForbidden, "Forbidden", "Invalid setup key")
	case errors.Is(err, storage.ErrNotConfigured):
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Storage backend is not configured")
	default:
		logger.Error(r.Context(), "Unhandled service error", slog.String("error", err.Error()))
		WriteJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Internal server error")
	}
}

// parsePagination reads page and page_size with the defaults and bounds
// shared by every listing endpoint.
func parsePagination(r *http.Request) (page, pageSize int, ok bool, detail string) {
	page, pageSize = 1, 20

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false, "page must be an integer"
		}
		page = n
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false, "page_size must be an integer"
		}
		pageSize = n
	}

	if page < 1 {
		return 0, 0, false, "page must be >= 1"
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, false, "page_size must be between 1 and 100"
	}
	return page, pageSize, true, ""
}
