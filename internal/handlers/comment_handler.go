package handlers

import (
	"context"
	"net/http"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/middleware"
	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps comment business logic
type CommentService interface {
	ListByContent(ctx context.Context, contentID int) ([]models.Comment, error)
	Create(ctx context.Context, userID int, req *models.CreateCommentRequest) (*models.Comment, error)
	// Method Update edits a comment; models.ErrForbidden unless "caller" is the author or an administrator.
	Update(ctx context.Context, caller *auth.Identity, commentID int, req *models.UpdateCommentRequest) (*models.Comment, error)
	// Method Delete removes a comment with the same permission rule as Update.
	Delete(ctx context.Context, caller *auth.Identity, commentID int) error
	ListByUser(ctx context.Context, userID, page, limit int) (*models.UserCommentList, error)
}

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// Prefix returns the mount point of the comment routes
func (h *CommentHandler) Prefix() string {
	return "/api/comments"
}

// Routes returns the comment routing table
func (h *CommentHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/content/{contentId}", Handler: h.ListByContent},
		{Method: http.MethodGet, Pattern: "/user/{userId}", Handler: h.ListByUser},
		{Method: http.MethodPost, Pattern: "", Access: Authenticated, Handler: h.Create},
		{Method: http.MethodPatch, Pattern: "/{commentId}", Access: Authenticated, Handler: h.Update},
		{Method: http.MethodDelete, Pattern: "/{commentId}", Access: Authenticated, Handler: h.Delete},
	}
}

// ListByContent handles GET /api/comments/content/{contentId}
// @Summary Comments of a content
// @Tags comments
// @Produce json
// @Param contentId path int true "Content ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/comments/content/{contentId} [get]
func (h *CommentHandler) ListByContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.pathID(w, r, "contentId")
	if !ok {
		return
	}

	comments, err := h.service.ListByContent(r.Context(), contentID)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get comments")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]any{"contentId": contentID, "comments": comments})
}

// ListByUser handles GET /api/comments/user/{userId}
// @Summary Comments of a user
// @Tags comments
// @Produce json
// @Param userId path int true "User ID"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 20, at most 50"
// @Success 200 {object} models.UserCommentList
// @Failure 404 {object} map[string]string
// @Router /api/comments/user/{userId} [get]
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}

	list, err := h.service.ListByUser(r.Context(), userID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get user comments")
		return
	}
	h.RespondJSON(w, http.StatusOK, list)
}

// Create handles POST /api/comments
// @Summary Post a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCommentRequest true "Comment"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateCommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create comment")
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]any{"message": "Comment created successfully", "comment": comment})
}

// Update handles PATCH /api/comments/{commentId}
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Param request body models.UpdateCommentRequest true "New text"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/{commentId} [patch]
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	commentID, ok := h.pathID(w, r, "commentId")
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), identity, commentID, &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to update comment")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]any{"message": "Comment updated successfully", "comment": comment})
}

// Delete handles DELETE /api/comments/{commentId}
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param commentId path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/comments/{commentId} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	commentID, ok := h.pathID(w, r, "commentId")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, commentID); err != nil {
		h.RespondServiceError(w, err, "failed to delete comment")
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}
