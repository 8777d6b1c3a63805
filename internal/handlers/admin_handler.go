package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

// StatsService provides the admin dashboard counters
type StatsService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// ContentAdminService is the interface that wraps content management business logic
type ContentAdminService interface {
	// Method CheckID reports whether a content ID is free.
	CheckID(ctx context.Context, id int) (*models.ContentIDCheck, error)
	// Method SuggestID returns the next free content ID.
	SuggestID(ctx context.Context) (*models.ContentIDSuggestion, error)
	// Method Create stores a content row, its tags and its uploaded files.
	//
	// On any error the uploaded files are not left behind.
	Create(ctx context.Context, req *models.CreateContentRequest, files []*multipart.FileHeader) (*models.CreateContentResult, error)
	// Method Delete removes a content row and its directory.
	Delete(ctx context.Context, id int) error
}

const (
	// MaxUploadBytes limits the body of a content upload
	MaxUploadBytes int64 = 10 << 30
	// multipartMemory is kept in memory while parsing uploads; the rest spills to temp files
	multipartMemory = 32 << 20
	uploadFileField = "files"
)

// AdminHandler handles admin HTTP requests
type AdminHandler struct {
	BaseHandler
	stats    StatsService
	contents ContentAdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(stats StatsService, contents ContentAdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{Logger: logger},
		stats:       stats,
		contents:    contents,
	}
}

// Prefix returns the mount point of the admin routes
func (h *AdminHandler) Prefix() string {
	return "/api/admin"
}

// Routes returns the admin routing table
func (h *AdminHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/stats", Access: Admin, Handler: h.Stats},
		{Method: http.MethodGet, Pattern: "/check-content-id/{id}", Access: Admin, Handler: h.CheckContentID},
		{Method: http.MethodGet, Pattern: "/suggest-content-id", Access: Admin, Handler: h.SuggestContentID},
		{Method: http.MethodPost, Pattern: "/contents", Access: Admin, Handler: h.CreateContent, MaxBodyBytes: MaxUploadBytes},
		{Method: http.MethodDelete, Pattern: "/contents/{contentId}", Access: Admin, Handler: h.DeleteContent},
	}
}

// Stats handles GET /api/admin/stats
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to get stats")
		return
	}
	h.RespondJSON(w, http.StatusOK, stats)
}

// CheckContentID handles GET /api/admin/check-content-id/{id}
// @Summary Check whether a content ID is free
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} models.ContentIDCheck
// @Failure 400 {object} map[string]string
// @Router /api/admin/check-content-id/{id} [get]
func (h *AdminHandler) CheckContentID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	check, err := h.contents.CheckID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err, "failed to check content id")
		return
	}
	h.RespondJSON(w, http.StatusOK, check)
}

// SuggestContentID handles GET /api/admin/suggest-content-id
// @Summary Suggest the next content ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ContentIDSuggestion
// @Router /api/admin/suggest-content-id [get]
func (h *AdminHandler) SuggestContentID(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.contents.SuggestID(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to suggest content id")
		return
	}
	h.RespondJSON(w, http.StatusOK, suggestion)
}

// CreateContent handles POST /api/admin/contents
// @Summary Upload a content
// @Description Multipart form with the content fields and up to 20 files in "files"
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param customId formData string false "Numeric content ID; leading zeros are kept for the directory name"
// @Param tagIds formData string false "Comma separated tag IDs"
// @Param files formData file true "Audio and image files"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/admin/contents [post]
func (h *AdminHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req, err := parseCreateContentForm(r.MultipartForm)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.contents.Create(r.Context(), req, r.MultipartForm.File[uploadFileField])
	if err != nil {
		h.RespondServiceError(w, err, "failed to create content")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message":    "Content created successfully",
		"contentId":  result.ContentID,
		"isCustomId": result.IsCustomID,
		"fileInfo":   result.FileInfo,
	})
}

// DeleteContent handles DELETE /api/admin/contents/{contentId}
// @Summary Delete a content and its files
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param contentId path int true "Content ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/admin/contents/{contentId} [delete]
func (h *AdminHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "contentId")
	if !ok {
		return
	}

	if err := h.contents.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err, "failed to delete content")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]any{"message": "Content deleted successfully", "contentId": id})
}

type formError string

func (e formError) Error() string { return string(e) }

// parseCreateContentForm reads the text fields of an upload form
func parseCreateContentForm(form *multipart.Form) (*models.CreateContentRequest, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := &models.CreateContentRequest{
		Title:         value("title"),
		Description:   value("description"),
		ContentRating: value("contentRating"),
		ContentType:   value("contentType"),
		AudioQuality:  value("audioQuality"),
		CustomID:      value("customId"),
		Featured:      value("featured") == "true",
	}

	if raw := value("durationMinutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return nil, formError("durationMinutes must be a number")
		}
		req.DurationMinutes = &minutes
	}

	for _, part := range strings.Split(value("tagIds"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, formError("tagIds must be a comma separated list of ids")
		}
		req.TagIDs = append(req.TagIDs, id)
	}

	return req, nil
}
