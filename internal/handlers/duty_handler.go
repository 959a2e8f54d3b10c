package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bsheremet/unit-info-backend/internal/auth/middleware"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DutyService is the interface that wraps duty roster business logic.
type DutyService interface {
	// Method BulkAssign creates duties for several users at once and returns
	// how many new assignments were created.
	BulkAssign(ctx context.Context, assignments []models.DutyAssignment) (int, error)
	// Method ListAll returns every duty ordered by date.
	ListAll(ctx context.Context) ([]models.Duty, error)
	// Method ListForUser returns one user's duties ordered by date.
	ListForUser(ctx context.Context, userID string) ([]models.Duty, error)
	// Method ReplaceForUser replaces a user's whole schedule with new dates.
	ReplaceForUser(ctx context.Context, userID string, dates []string) (int, error)
	// Method DeleteForUser removes all of a user's duties and returns the count.
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

// DutyHandler handles duty roster HTTP requests
type DutyHandler struct {
	BaseHandler
	dutyService DutyService
}

// NewDutyHandler creates a new duty handler
func NewDutyHandler(dutyService DutyService, logger *zap.Logger) *DutyHandler {
	return &DutyHandler{
		BaseHandler: BaseHandler{Logger: logger},
		dutyService: dutyService,
	}
}

// RegisterRoutes registers all duty handler routes
// Note: This assumes the router is already scoped to /api
func (h *DutyHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/duties", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.ListAll)
		r.Get("/my", h.ListMine)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/bulk", h.BulkAssign)
			r.Get("/user/{id}", h.ListForUser)
			r.Put("/user/{id}", h.ReplaceForUser)
			r.Delete("/user/{id}", h.DeleteForUser)
		})
	})
}

// ListAll handles GET /api/duties
// @Summary List all duties
// @Tags duties
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Duty
// @Router /duties [get]
func (h *DutyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	duties, err := h.dutyService.ListAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, duties)
}

// ListMine handles GET /api/duties/my
// @Summary List own duties
// @Tags duties
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Duty
// @Router /duties/my [get]
func (h *DutyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	duties, err := h.dutyService.ListForUser(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, duties)
}

// BulkAssign handles POST /api/duties/bulk
// @Summary Assign duties in bulk
// @Description Create duty assignments for several users and dates at once, skipping ones that already exist
// @Tags duties
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Message with the number of created duties"
// @Failure 400 {object} map[string]string "Invalid payload or date format"
// @Failure 404 {object} map[string]string "Unknown user in assignments"
// @Router /duties/bulk [post]
func (h *DutyHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	var req models.BulkAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.dutyService.BulkAssign(r.Context(), req.Assignments)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "duties assigned",
		"count":   count,
	})
}

// ListForUser handles GET /api/duties/user/{id}
// @Summary List duties of a user
// @Tags duties
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {array} models.Duty
// @Failure 404 {object} map[string]string "User not found"
// @Router /duties/user/{id} [get]
func (h *DutyHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	duties, err := h.dutyService.ListForUser(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, duties)
}

// ReplaceForUser handles PUT /api/duties/user/{id}
// @Summary Replace a user's schedule
// @Description Drop all of the user's duties and assign the given dates instead
// @Tags duties
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{} "Message with the number of assigned duties"
// @Failure 400 {object} map[string]string "Invalid payload or date format"
// @Failure 404 {object} map[string]string "User not found"
// @Router /duties/user/{id} [put]
func (h *DutyHandler) ReplaceForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req models.ReplaceDutiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.dutyService.ReplaceForUser(r.Context(), userID, req.Dates)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "duties replaced",
		"count":   count,
	})
}

// DeleteForUser handles DELETE /api/duties/user/{id}
// @Summary Delete a user's duties
// @Tags duties
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{} "Message with the number of removed duties"
// @Router /duties/user/{id} [delete]
func (h *DutyHandler) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	count, err := h.dutyService.DeleteForUser(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "duties removed",
		"count":   count,
	})
}
