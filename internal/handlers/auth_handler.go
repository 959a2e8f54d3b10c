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

// AuthService is the interface that wraps methods for authentication and
// own-profile business logic.
type AuthService interface {
	// Method Register creates a new user account from the request payload.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Method Login verifies credentials and issues an access token.
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	// Method UpdateProfile applies the caller's own profile changes.
	UpdateProfile(ctx context.Context, caller *models.User, upd *models.UserUpdate) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.Me)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create a user account with email, password, full name and optional rank
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.User "Created user without password hash"
// @Failure 400 {object} map[string]string "Invalid payload or email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and return a bearer token with the user profile
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, token)
}

// Me handles GET /api/auth/me
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/profile
// @Summary Update own profile
// @Description Change own name, rank, email or password
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} map[string]string "Invalid payload or email already in use"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var upd models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user, &upd)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, updated)
}
