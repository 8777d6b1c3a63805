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

type tagRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sql.DB, logger *zap.Logger) *tagRepository {
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

const tagColumns = "id, name, category, first_letter, description, color, is_active, sort_order, created_at"

func scanTag(row interface{ Scan(...any) error }, t *models.Tag) error {
	return row.Scan(&t.ID, &t.Name, &t.Category, &t.FirstLetter, &t.Description, &t.Color, &t.IsActive, &t.SortOrder, &t.CreatedAt)
}

// List returns tags matching the filter ordered by category, sort order and name
func (r *tagRepository) List(ctx context.Context, filter models.TagFilter) ([]models.Tag, error) {
	var conditions []string
	var args []any
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	query := "SELECT " + tagColumns + " FROM tags"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY category, sort_order, name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query tags", zap.Error(err))
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := scanTag(rows, &t); err != nil {
			r.logger.Error("failed to scan tag", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}

// GetByID retrieves a tag by id
func (r *tagRepository) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	t := &models.Tag{}
	err := scanTag(r.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = ?", id), t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tag", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get tag", zap.Error(err), zap.Int("tagId", id))
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return t, nil
}

// ExistsByNameAndCategory checks for another tag with the same name in the category
func (r *tagRepository) ExistsByNameAndCategory(ctx context.Context, name, category string, excludeID int) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM tags WHERE name = ? AND category = ? AND id <> ?)"
	if err := r.db.QueryRowContext(ctx, query, name, category, excludeID).Scan(&exists); err != nil {
		r.logger.Error("failed to check tag existence", zap.Error(err))
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}
	return exists, nil
}

// Create inserts a tag
func (r *tagRepository) Create(ctx context.Context, t *models.Tag) error {
	if t.FirstLetter == nil {
		t.FirstLetter = firstLetter(t.Name)
	}
	query := `
		INSERT INTO tags (name, category, first_letter, description, color, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, t.Name, t.Category, t.FirstLetter, t.Description, t.Color, t.IsActive, t.SortOrder)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: tag %q in category %q", models.ErrConflict, t.Name, t.Category)
		}
		r.logger.Error("failed to create tag", zap.Error(err))
		return fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	t.ID = int(id)
	return nil
}

// Update applies the non-nil fields of req to a tag
func (r *tagRepository) Update(ctx context.Context, id int, req *models.UpdateTagRequest) error {
	var sets []string
	var args []any
	if req.Name != nil {
		sets = append(sets, "name = ?", "first_letter = ?")
		args = append(args, *req.Name, firstLetter(*req.Name))
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *req.Color)
	}
	if req.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if req.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *req.SortOrder)
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: nothing to update", models.ErrInvalidInput)
	}

	args = append(args, id)
	_, err := r.db.ExecContext(ctx, "UPDATE tags SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: tag name already used in category", models.ErrConflict)
		}
		r.logger.Error("failed to update tag", zap.Error(err), zap.Int("tagId", id))
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return nil
}

// UsageCount returns how many contents reference a tag
func (r *tagRepository) UsageCount(ctx context.Context, id int) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_tags WHERE tag_id = ?", id).Scan(&count); err != nil {
		r.logger.Error("failed to count tag usage", zap.Error(err))
		return 0, fmt.Errorf("failed to count tag usage: %w", err)
	}
	return count, nil
}

// Delete removes a tag
func (r *tagRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		r.logger.Error("failed to delete tag", zap.Error(err), zap.Int("tagId", id))
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return requireAffected(result, "tag")
}

// firstLetter returns the upper-cased first rune of name, used for alphabetical indexes
func firstLetter(name string) *string {
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		s := string(r)
		return &s
	}
	return nil
}
