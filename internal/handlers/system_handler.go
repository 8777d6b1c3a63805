package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/asmrapi/backend/internal/repositories"
	"github.com/asmrapi/backend/internal/services"
	"go.uber.org/zap"
)

// DiagnosticsService is the interface that wraps the debug probes
type DiagnosticsService interface {
	CheckDatabase(ctx context.Context) (*repositories.DBCheck, error)
	SystemInfo() *services.SystemInfo
}

// SystemHandler serves health, banner, debug and fallback routes
type SystemHandler struct {
	BaseHandler
	diagnostics DiagnosticsService
	endpoints   []string
}

// NewSystemHandler creates a new system handler.
// endpoints is the list advertised on the banner and on 404 responses.
func NewSystemHandler(diagnostics DiagnosticsService, endpoints []string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: BaseHandler{Logger: logger},
		diagnostics: diagnostics,
		endpoints:   endpoints,
	}
}

// SetEndpoints replaces the advertised endpoint list
func (h *SystemHandler) SetEndpoints(endpoints []string) {
	h.endpoints = endpoints
}

// Prefix returns the mount point of the system routes
func (h *SystemHandler) Prefix() string {
	return ""
}

// Routes returns the system routing table
func (h *SystemHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/", Handler: h.Root},
		{Method: http.MethodGet, Pattern: "/api/health", Handler: h.Health},
		{Method: http.MethodGet, Pattern: "/api/debug/health", Handler: h.Health},
		{Method: http.MethodGet, Pattern: "/api/debug/db-test", Access: Admin, Handler: h.DBTest},
		{Method: http.MethodGet, Pattern: "/api/debug/system-info", Access: Admin, Handler: h.SystemInfo},
	}
}

// Root handles GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]any{
		"message":   "ASMR audio content API",
		"status":    "running",
		"endpoints": h.endpoints,
	})
}

// Health handles GET /api/health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DBTest handles GET /api/debug/db-test
// @Summary Database probe
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repositories.DBCheck
// @Failure 500 {object} map[string]string
// @Router /api/debug/db-test [get]
func (h *SystemHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	check, err := h.diagnostics.CheckDatabase(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "database check failed")
		return
	}
	h.RespondJSON(w, http.StatusOK, check)
}

// SystemInfo handles GET /api/debug/system-info
// @Summary Runtime information
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.SystemInfo
// @Router /api/debug/system-info [get]
func (h *SystemHandler) SystemInfo(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.diagnostics.SystemInfo())
}

// NotFound answers unknown paths
func (h *SystemHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusNotFound, map[string]any{
		"error":              "Endpoint not found",
		"path":               r.URL.Path,
		"availableEndpoints": h.endpoints,
	})
}
