package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/asmrapi/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps the public catalogue business logic
type ContentService interface {
	List(ctx context.Context) ([]models.Content, error)
	Search(ctx context.Context, query string) ([]models.Content, error)
	Detail(ctx context.Context, id int) (*models.ContentDetail, error)
}

// ContentHandler handles catalogue HTTP requests
type ContentHandler struct {
	BaseHandler
	service ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// Prefix returns the mount point of the catalogue routes
func (h *ContentHandler) Prefix() string {
	return "/api/contents"
}

// Routes returns the catalogue routing table
func (h *ContentHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "", Handler: h.List},
		{Method: http.MethodGet, Pattern: "/search/{query}", Handler: h.Search},
		{Method: http.MethodGet, Pattern: "/detail/{id}", Handler: h.Detail},
		{Method: http.MethodGet, Pattern: "/{id}", Handler: h.RedirectToDetail},
	}
}

// List handles GET /api/contents
// @Summary List contents
// @Tags contents
// @Produce json
// @Success 200 {array} models.Content
// @Failure 500 {object} map[string]string
// @Router /api/contents [get]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to get contents")
		return
	}
	h.RespondJSON(w, http.StatusOK, contents)
}

// Search handles GET /api/contents/search/{query}
// @Summary Search contents
// @Tags contents
// @Produce json
// @Param query path string true "Substring of title or description"
// @Success 200 {array} models.Content
// @Router /api/contents/search/{query} [get]
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.Search(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to search contents")
		return
	}
	h.RespondJSON(w, http.StatusOK, contents)
}

// Detail handles GET /api/contents/detail/{id}
// @Summary Content detail
// @Tags contents
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} models.ContentDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/contents/detail/{id} [get]
func (h *ContentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get content")
		return
	}
	h.RespondJSON(w, http.StatusOK, detail)
}

// RedirectToDetail handles GET /api/contents/{id}: numeric ids are sent to the detail route
func (h *ContentHandler) RedirectToDetail(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if id, err := strconv.Atoi(raw); err != nil || id <= 0 {
		h.RespondError(w, http.StatusNotFound, "content not found")
		return
	}
	http.Redirect(w, r, h.Prefix()+"/detail/"+raw, http.StatusFound)
}
