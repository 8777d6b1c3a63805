package services

import (
	"context"
	"runtime"
	"time"

	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/repositories"
	"go.uber.org/zap"
)

// AdminRepository is the interface that wraps the dashboard and diagnostics queries
type AdminRepository interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	CheckDatabase(ctx context.Context, tables []string) (*repositories.DBCheck, error)
}

// SystemInfo describes the running process
type SystemInfo struct {
	GoVersion     string `json:"goVersion"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	NumCPU        int    `json:"numCpu"`
	Goroutines    int    `json:"goroutines"`
	HeapAllocMB   uint64 `json:"heapAllocMb"`
	SysMB         uint64 `json:"sysMb"`
	NumGC         uint32 `json:"numGc"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	StartedAt     string `json:"startedAt"`
	AudioRoot     string `json:"audioRoot"`
	Environment   string `json:"environment"`
}

// checkedTables are the tables reported by the database probe
var checkedTables = []string{"users", "contents", "tags", "content_tags", "comments"}

type adminService struct {
	repo      AdminRepository
	startedAt time.Time
	audioRoot string
	env       string
	logger    *zap.Logger
}

// NewAdminService creates a new admin service. startedAt is used for the uptime report.
func NewAdminService(repo AdminRepository, startedAt time.Time, audioRoot, env string, logger *zap.Logger) *adminService {
	return &adminService{
		repo:      repo,
		startedAt: startedAt,
		audioRoot: audioRoot,
		env:       env,
		logger:    logger,
	}
}

// Stats returns the dashboard counters
func (s *adminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return s.repo.Stats(ctx)
}

// CheckDatabase probes the database and reports the core tables
func (s *adminService) CheckDatabase(ctx context.Context) (*repositories.DBCheck, error) {
	check, err := s.repo.CheckDatabase(ctx, checkedTables)
	if err != nil {
		s.logger.Error("database check failed", zap.Error(err))
		return nil, err
	}
	return check, nil
}

// SystemInfo reports runtime details of the process
func (s *adminService) SystemInfo() *SystemInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &SystemInfo{
		GoVersion:     runtime.Version(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   mem.HeapAlloc >> 20,
		SysMB:         mem.Sys >> 20,
		NumGC:         mem.NumGC,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		StartedAt:     s.startedAt.UTC().Format(time.RFC3339),
		AudioRoot:     s.audioRoot,
		Environment:   s.env,
	}
}
