package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TagService is the interface that wraps tag business logic
type TagService interface {
	List(ctx context.Context, filter models.TagFilter) (*models.TagList, error)
	ByCategory(ctx context.Context, category string, activeOnly bool) ([]models.Tag, error)
	Create(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error)
	Update(ctx context.Context, id int, req *models.UpdateTagRequest) (*models.Tag, error)
	// Method Delete removes an unused tag. A referenced tag yields *services.TagInUseError.
	Delete(ctx context.Context, id int) error
}

// TagHandler handles tag HTTP requests
type TagHandler struct {
	BaseHandler
	service TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(svc TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// Prefix returns the mount point of the tag routes
func (h *TagHandler) Prefix() string {
	return "/api/tags"
}

// Routes returns the tag routing table
func (h *TagHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "", Handler: h.List},
		{Method: http.MethodGet, Pattern: "/category/{category}", Handler: h.ByCategory},
		{Method: http.MethodPost, Pattern: "", Access: Admin, Handler: h.Create},
		{Method: http.MethodPatch, Pattern: "/{id}", Access: Admin, Handler: h.Update},
		{Method: http.MethodDelete, Pattern: "/{id}", Access: Admin, Handler: h.Delete},
	}
}

// List handles GET /api/tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Param category query string false "Category filter"
// @Param active query bool false "Only active tags"
// @Success 200 {object} models.TagList
// @Router /api/tags [get]
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.TagFilter{
		Category:   r.URL.Query().Get("category"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get tags")
		return
	}
	h.RespondJSON(w, http.StatusOK, list)
}

// ByCategory handles GET /api/tags/category/{category}
// @Summary Tags of a category
// @Tags tags
// @Produce json
// @Param category path string true "Category"
// @Param active query bool false "Only active tags"
// @Success 200 {object} map[string]any
// @Router /api/tags/category/{category} [get]
func (h *TagHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	tags, err := h.service.ByCategory(r.Context(), category, r.URL.Query().Get("active") == "true")
	if err != nil {
		h.RespondServiceError(w, err, "failed to get tags")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]any{"category": category, "tags": tags})
}

// Create handles POST /api/tags
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateTagRequest true "Tag"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/tags [post]
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTagRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create tag")
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]any{"message": "Tag created successfully", "tag": tag})
}

// Update handles PATCH /api/tags/{id}
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body models.UpdateTagRequest true "Fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/tags/{id} [patch]
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateTagRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to update tag")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]any{"message": "Tag updated successfully", "tag": tag})
}

// Delete handles DELETE /api/tags/{id}
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/tags/{id} [delete]
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), id)
	var inUse *services.TagInUseError
	if errors.As(err, &inUse) {
		h.RespondJSON(w, http.StatusBadRequest, map[string]any{
			"error":      "Tag is in use and cannot be deleted",
			"usageCount": inUse.UsageCount,
		})
		return
	}
	if err != nil {
		h.RespondServiceError(w, err, "failed to delete tag")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Tag deleted successfully"})
}
