package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

// DBCheck is the result of a database connectivity probe
type DBCheck struct {
	Connected   bool            `json:"connected"`
	ServerTime  time.Time       `json:"serverTime"`
	TablesFound map[string]bool `json:"tablesFound"`
}

type adminRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB, logger *zap.Logger) *adminRepository {
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

// Stats returns the dashboard counters. Only active contents are counted.
func (r *adminRepository) Stats(ctx context.Context) (*models.AdminStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM contents WHERE status = 'active'),
			(SELECT COALESCE(SUM(view_count), 0) FROM contents WHERE status = 'active'),
			(SELECT COUNT(*) FROM tags)
	`

	stats := &models.AdminStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalUsers, &stats.TotalContents, &stats.TotalViews, &stats.TotalTags)
	if err != nil {
		r.logger.Error("failed to get admin stats", zap.Error(err))
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}
	return stats, nil
}

// CheckDatabase runs a trivial query and reports which core tables exist
func (r *adminRepository) CheckDatabase(ctx context.Context, tables []string) (*DBCheck, error) {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}

	check := &DBCheck{Connected: true, TablesFound: make(map[string]bool, len(tables))}
	if err := r.db.QueryRowContext(ctx, "SELECT NOW()").Scan(&check.ServerTime); err != nil {
		return nil, fmt.Errorf("failed to read server time: %w", err)
	}

	for _, table := range tables {
		var exists bool
		query := "SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?)"
		if err := r.db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		check.TablesFound[table] = exists
	}

	return check, nil
}
