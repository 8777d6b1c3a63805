package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

const commentSelect = `
	SELECT c.id, c.content_id, c.user_id, u.username, c.comment_text, c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.user_id
`

func scanComment(row interface{ Scan(...any) error }, c *models.Comment) error {
	return row.Scan(&c.ID, &c.ContentID, &c.UserID, &c.Username, &c.CommentText, &c.CreatedAt, &c.UpdatedAt)
}

// ListByContent returns the comments on a content, newest first
func (r *commentRepository) ListByContent(ctx context.Context, contentID int) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, commentSelect+" WHERE c.content_id = ? ORDER BY c.created_at DESC", contentID)
	if err != nil {
		r.logger.Error("failed to query comments", zap.Error(err))
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := scanComment(rows, &c); err != nil {
			r.logger.Error("failed to scan comment", zap.Error(err))
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return comments, nil
}

// GetByID retrieves a comment by id
func (r *commentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	c := &models.Comment{}
	err := scanComment(r.db.QueryRowContext(ctx, commentSelect+" WHERE c.id = ?", id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: comment", models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get comment", zap.Error(err), zap.Int("commentId", id))
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

// Create inserts a comment and returns its id
func (r *commentRepository) Create(ctx context.Context, contentID, userID int, text string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (content_id, user_id, comment_text) VALUES (?, ?, ?)",
		contentID, userID, text,
	)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err))
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return int(id), nil
}

// UpdateText replaces a comment's text
func (r *commentRepository) UpdateText(ctx context.Context, id int, text string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE comments SET comment_text = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", text, id)
	if err != nil {
		r.logger.Error("failed to update comment", zap.Error(err), zap.Int("commentId", id))
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		r.logger.Error("failed to delete comment", zap.Error(err), zap.Int("commentId", id))
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(result, "comment")
}

// ListByUser returns a page of a user's comments with content titles, and the total count
func (r *commentRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]models.UserComment, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments WHERE user_id = ?", userID).Scan(&total); err != nil {
		r.logger.Error("failed to count user comments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count user comments: %w", err)
	}

	query := `
		SELECT c.id, c.content_id, c.user_id, u.username, c.comment_text, c.created_at, c.updated_at, ct.title
		FROM comments c
		JOIN users u ON u.id = c.user_id
		JOIN contents ct ON ct.id = c.content_id
		WHERE c.user_id = ?
		ORDER BY c.created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("failed to query user comments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query user comments: %w", err)
	}
	defer rows.Close()

	comments := []models.UserComment{}
	for rows.Next() {
		var c models.UserComment
		if err := rows.Scan(&c.ID, &c.ContentID, &c.UserID, &c.Username, &c.CommentText, &c.CreatedAt, &c.UpdatedAt, &c.ContentTitle); err != nil {
			r.logger.Error("failed to scan user comment", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan user comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}
	return comments, total, nil
}
