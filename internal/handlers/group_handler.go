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

// GroupService is the interface that wraps member group business logic.
type GroupService interface {
	// Method List returns all groups.
	List(ctx context.Context) ([]models.Group, error)
	// Method MyGroups returns the groups the user belongs to.
	MyGroups(ctx context.Context, userID string) ([]models.Group, error)
	// Method Create makes a new group.
	Create(ctx context.Context, req *models.GroupCreate) (*models.Group, error)
	// Method Update applies a partial update to a group.
	Update(ctx context.Context, id string, upd *models.GroupUpdate) (*models.Group, error)
	// Method Delete removes a group.
	Delete(ctx context.Context, id string) error
	// Method Members resolves a group's member profiles for an allowed caller.
	Members(ctx context.Context, groupID string, caller *models.User) ([]models.User, error)
}

// GroupHandler handles member group HTTP requests
type GroupHandler struct {
	BaseHandler
	groupService GroupService
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService GroupService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		BaseHandler: BaseHandler{Logger: logger},
		groupService: groupService,
	}
}

// RegisterRoutes registers all group handler routes
// Note: This assumes the router is already scoped to /api
func (h *GroupHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/groups", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Get("/my", h.MyGroups)
		r.Get("/{id}/members", h.Members)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /api/groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Group
// @Router /groups [get]
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, groups)
}

// MyGroups handles GET /api/groups/my
// @Summary List own groups
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Group
// @Router /groups/my [get]
func (h *GroupHandler) MyGroups(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	groups, err := h.groupService.MyGroups(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, groups)
}

// Members handles GET /api/groups/{id}/members
// @Summary List group members
// @Description Resolve member profiles, allowed for admins and group members
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id}/members [get]
func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")

	members, err := h.groupService.Members(r.Context(), id, user)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, members)
}

// Create handles POST /api/groups
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Group
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /groups [post]
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GroupCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, group)
}

// Update handles PUT /api/groups/{id}
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Success 200 {object} models.Group
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id} [put]
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.GroupUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.Update(r.Context(), id, &upd)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/groups/{id}
// @Summary Delete a group
// @Tags groups
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Group ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{id} [delete]
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.groupService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}
