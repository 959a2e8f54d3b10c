package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps the service error taxonomy onto HTTP status
// codes. Anything outside the taxonomy is an internal error and its detail
// stays out of the response.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	default:
		h.Logger.Error("request failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
