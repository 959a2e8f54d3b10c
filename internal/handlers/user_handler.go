package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps user administration logic.
type UserService interface {
	// Method List returns all registered users.
	List(ctx context.Context) ([]models.User, error)
	// Method Update applies an administrative update to a user.
	Update(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error)
	// Method Delete removes a user account.
	Delete(ctx context.Context, id string) error
}

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes
// Note: This assumes the router is already scoped to /api
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Get("/", h.List)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /api/users
// @Summary List users
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// Update handles PUT /api/users/{id}
// @Summary Update a user
// @Description Change a user's name, rank, email, role or password
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "Invalid payload, role or email already in use"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, &upd)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
