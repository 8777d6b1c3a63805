package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

type contentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *sql.DB, logger *zap.Logger) *contentRepository {
	return &contentRepository{
		db:     db,
		logger: logger,
	}
}

const contentColumns = `id, title, description, profile_image_url, content_rating, content_type,
	duration_minutes, total_files, audio_quality, featured, view_count, like_count, status,
	created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }, c *models.Content) error {
	return row.Scan(
		&c.ID, &c.Title, &c.Description, &c.ProfileImageURL, &c.ContentRating, &c.ContentType,
		&c.DurationMinutes, &c.TotalFiles, &c.AudioQuality, &c.Featured, &c.ViewCount, &c.LikeCount, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *contentRepository) queryContents(ctx context.Context, query string, args ...any) ([]models.Content, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query contents", zap.Error(err))
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	contents := []models.Content{}
	for rows.Next() {
		var c models.Content
		if err := scanContent(rows, &c); err != nil {
			r.logger.Error("failed to scan content", zap.Error(err))
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return contents, nil
}

// List returns all contents, newest first
func (r *contentRepository) List(ctx context.Context) ([]models.Content, error) {
	return r.queryContents(ctx, "SELECT "+contentColumns+" FROM contents ORDER BY created_at DESC")
}

// Search returns contents whose title or description contains query
func (r *contentRepository) Search(ctx context.Context, query string) ([]models.Content, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.queryContents(ctx,
		"SELECT "+contentColumns+" FROM contents WHERE title LIKE ? OR description LIKE ? ORDER BY created_at DESC",
		pattern, pattern,
	)
}

// escapeLike escapes LIKE wildcards so the query matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetByID retrieves a content by id
func (r *contentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	c := &models.Content{}
	err := scanContent(r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM contents WHERE id = ?", id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: content", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get content", zap.Error(err), zap.Int("contentId", id))
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return c, nil
}

// GetTags returns the tags attached to a content
func (r *contentRepository) GetTags(ctx context.Context, contentID int) ([]models.ContentTag, error) {
	query := `
		SELECT t.name, t.category
		FROM tags t
		JOIN content_tags ct ON ct.tag_id = t.id
		WHERE ct.content_id = ?
		ORDER BY t.category, t.sort_order, t.name
	`

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		r.logger.Error("failed to query content tags", zap.Error(err))
		return nil, fmt.Errorf("failed to query content tags: %w", err)
	}
	defer rows.Close()

	tags := []models.ContentTag{}
	for rows.Next() {
		var t models.ContentTag
		if err := rows.Scan(&t.Name, &t.Category); err != nil {
			return nil, fmt.Errorf("failed to scan content tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return tags, nil
}

// Exists checks whether a content id is taken
func (r *contentRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM contents WHERE id = ?)", id).Scan(&exists); err != nil {
		r.logger.Error("failed to check content existence", zap.Error(err))
		return false, fmt.Errorf("failed to check content existence: %w", err)
	}
	return exists, nil
}

// MaxID returns the highest content id, or 0 when there are none
func (r *contentRepository) MaxID(ctx context.Context) (int, error) {
	var maxID int
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM contents").Scan(&maxID); err != nil {
		r.logger.Error("failed to get max content id", zap.Error(err))
		return 0, fmt.Errorf("failed to get max content id: %w", err)
	}
	return maxID, nil
}

// ExistingTagIDs returns the subset of ids that exist in tags
func (r *contentRepository) ExistingTagIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id FROM tags WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		r.logger.Error("failed to query tag ids", zap.Error(err))
		return nil, fmt.Errorf("failed to query tag ids: %w", err)
	}
	defer rows.Close()

	existing := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tag id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return existing, nil
}

// CreateWithTags inserts a content row and its tag links in one transaction.
// When customID is non-zero it is used as the row id.
func (r *contentRepository) CreateWithTags(ctx context.Context, c *models.Content, customID int, tagIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	columns := "title, description, content_rating, content_type, duration_minutes, total_files, audio_quality, featured"
	args := []any{c.Title, c.Description, c.ContentRating, c.ContentType, c.DurationMinutes, c.TotalFiles, c.AudioQuality, c.Featured}
	if customID > 0 {
		columns = "id, " + columns
		args = append([]any{customID}, args...)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")

	result, err := tx.ExecContext(ctx, "INSERT INTO contents ("+columns+") VALUES ("+placeholders+")", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: content id %d is already in use", models.ErrConflict, customID)
		}
		r.logger.Error("failed to insert content", zap.Error(err))
		return fmt.Errorf("failed to insert content: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = int(id)

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, "INSERT IGNORE INTO content_tags (content_id, tag_id) VALUES (?, ?)", c.ID, tagID); err != nil {
			r.logger.Error("failed to link tag", zap.Error(err), zap.Int("tagId", tagID))
			return fmt.Errorf("failed to link tag %d: %w", tagID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a content row and its tag links in one transaction
func (r *contentRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM content_tags WHERE content_id = ?", id); err != nil {
		r.logger.Error("failed to delete content tags", zap.Error(err), zap.Int("contentId", id))
		return fmt.Errorf("failed to delete content tags: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM contents WHERE id = ?", id)
	if err != nil {
		r.logger.Error("failed to delete content", zap.Error(err), zap.Int("contentId", id))
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if err := requireAffected(result, "content"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
