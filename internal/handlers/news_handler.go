package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bsheremet/unit-info-backend/internal/auth/middleware"
	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewsService is the interface that wraps news feed business logic.
type NewsService interface {
	// Method List returns the newest articles first.
	List(ctx context.Context) ([]models.News, error)
	// Method Create publishes an article authored by the given user.
	Create(ctx context.Context, author *models.User, req *models.NewsCreate) (*models.News, error)
	// Method Update applies a partial update to an article.
	Update(ctx context.Context, id string, upd *models.NewsUpdate) (*models.News, error)
	// Method Delete removes an article.
	Delete(ctx context.Context, id string) error
}

// NewsSyncService is the interface that wraps external feed synchronization.
type NewsSyncService interface {
	// Method Sync pulls the external feed and stores articles not seen before,
	// returning how many were imported.
	Sync(ctx context.Context) int
}

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	BaseHandler
	newsService NewsService
	syncService NewsSyncService
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(newsService NewsService, syncService NewsSyncService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		newsService: newsService,
		syncService: syncService,
	}
}

// RegisterRoutes registers all news handler routes
// Note: This assumes the router is already scoped to /api
func (h *NewsHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/sync-armyinform", h.Sync)
		})
	})
}

// List handles GET /api/news
// @Summary List news
// @Description Return published articles, newest first
// @Tags news
// @Produce json
// @Success 200 {array} models.News
// @Router /news [get]
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	news, err := h.newsService.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, news)
}

// Create handles POST /api/news
// @Summary Publish an article
// @Tags news
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.News
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /news [post]
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.NewsCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	news, err := h.newsService.Create(r.Context(), user, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, news)
}

// Update handles PUT /api/news/{id}
// @Summary Update an article
// @Tags news
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "News ID"
// @Success 200 {object} models.News
// @Failure 404 {object} map[string]string "Article not found"
// @Router /news/{id} [put]
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.NewsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	news, err := h.newsService.Update(r.Context(), id, &upd)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, news)
}

// Delete handles DELETE /api/news/{id}
// @Summary Delete an article
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "News ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Article not found"
// @Router /news/{id} [delete]
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.newsService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "news deleted"})
}

// Sync handles POST /api/news/sync-armyinform
// @Summary Import news from ArmyInform
// @Description Pull the ArmyInform RSS feed and import articles not seen before
// @Tags news
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{} "Message with the number of imported articles"
// @Router /news/sync-armyinform [post]
func (h *NewsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	count := h.syncService.Sync(r.Context())

	h.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Синхронізовано %d новин", count),
		"count":   count,
	})
}
