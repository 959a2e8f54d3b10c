package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsService is the interface that wraps unit settings business logic.
type SettingsService interface {
	// Method Get returns the unit settings, falling back to defaults.
	Get(ctx context.Context) (*models.Settings, error)
	// Method Update applies a partial update to the unit settings.
	Update(ctx context.Context, upd *models.SettingsUpdate) (*models.Settings, error)
}

// SettingsHandler handles unit settings HTTP requests
type SettingsHandler struct {
	BaseHandler
	settingsService SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		settingsService: settingsService,
	}
}

// RegisterRoutes registers all settings handler routes
// Note: This assumes the router is already scoped to /api
func (h *SettingsHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Put("/", h.Update)
		})
	})
}

// Get handles GET /api/settings
// @Summary Get unit settings
// @Description Return the unit settings or built-in defaults when none are stored
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings
// @Summary Update unit settings
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Settings
// @Failure 400 {object} map[string]string "Empty update"
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &upd)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}
