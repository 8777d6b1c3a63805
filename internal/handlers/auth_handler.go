package handlers

import (
	"context"
	"net/http"

	"github.com/asmrapi/backend/internal/middleware"
	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps account business logic
type AuthService interface {
	// Method Register creates a user account and returns its ID.
	//
	// Validation failures are returned as *validation.RequestValidationError, a taken email or username as models.ErrConflict.
	Register(ctx context.Context, req *models.RegisterRequest) (int, error)
	// Method Login verifies credentials and returns an access token.
	//
	// Wrong credentials are reported as models.ErrUnauthorized.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// Method Me returns the profile of a user.
	Me(ctx context.Context, userID int) (*models.User, error)
	// Method ListUsers returns a page of users.
	ListUsers(ctx context.Context, page, limit int) (*models.UserList, error)
	// Method UpdateRole changes the role of another user on behalf of "actorID".
	UpdateRole(ctx context.Context, actorID int, req *models.UpdateRoleRequest) (*models.User, error)
	// Method ChangePassword replaces the password of a user after checking the current one.
	ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error
}

// AuthHandler handles account HTTP requests
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// Prefix returns the mount point of the auth routes
func (h *AuthHandler) Prefix() string {
	return "/api/auth"
}

// Routes returns the auth routing table
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: "/register", Handler: h.Register},
		{Method: http.MethodPost, Pattern: "/login", Handler: h.Login},
		{Method: http.MethodGet, Pattern: "/me", Access: Authenticated, Handler: h.Me},
		{Method: http.MethodGet, Pattern: "/users", Access: Admin, Handler: h.ListUsers},
		{Method: http.MethodPatch, Pattern: "/user-role", Access: Admin, Handler: h.UpdateRole},
		{Method: http.MethodPatch, Pattern: "/change-password", Access: Authenticated, Handler: h.ChangePassword},
	}
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	userID, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to register user")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"userId":  userID,
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to log in")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		h.RespondServiceError(w, err, "failed to get user")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ListUsers handles GET /api/auth/users
// @Summary List users
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 20"
// @Success 200 {object} models.UserList
// @Failure 403 {object} map[string]string
// @Router /api/auth/users [get]
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		h.RespondServiceError(w, err, "failed to list users")
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}

// UpdateRole handles PATCH /api/auth/user-role
// @Summary Change a user's role
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateRoleRequest true "Target user and role"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/auth/user-role [patch]
func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateRoleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateRole(r.Context(), identity.UserID, &req)
	if err != nil {
		h.RespondServiceError(w, err, "failed to update role")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "User role updated successfully",
		"user":    user,
	})
}

// ChangePassword handles PATCH /api/auth/change-password
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Router /api/auth/change-password [patch]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.ChangePasswordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), identity.UserID, &req); err != nil {
		h.RespondServiceError(w, err, "failed to change password")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
