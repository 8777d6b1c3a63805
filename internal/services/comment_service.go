package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/validation"
	"go.uber.org/zap"
)

// CommentRepository is the interface that wraps methods for Comments table data access
type CommentRepository interface {
	ListByContent(ctx context.Context, contentID int) ([]models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, contentID, userID int, text string) (int, error)
	UpdateText(ctx context.Context, id int, text string) error
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID, limit, offset int) ([]models.UserComment, int, error)
}

// ContentChecker reports whether a content exists
type ContentChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// UserFinder retrieves users by ID
type UserFinder interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

const (
	defaultCommentLimit = 20
	maxCommentLimit     = 50
)

type commentService struct {
	repo     CommentRepository
	contents ContentChecker
	users    UserFinder
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo CommentRepository, contents ContentChecker, users UserFinder, logger *zap.Logger) *commentService {
	return &commentService{
		repo:     repo,
		contents: contents,
		users:    users,
		logger:   logger,
	}
}

// ListByContent returns the comments of an existing content
func (s *commentService) ListByContent(ctx context.Context, contentID int) ([]models.Comment, error) {
	if err := s.requireContent(ctx, contentID); err != nil {
		return nil, err
	}
	return s.repo.ListByContent(ctx, contentID)
}

// Create posts a comment as the given user
func (s *commentService) Create(ctx context.Context, userID int, req *models.CreateCommentRequest) (*models.Comment, error) {
	req.CommentText = strings.TrimSpace(req.CommentText)
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.requireContent(ctx, req.ContentID); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, req.ContentID, userID, req.CommentText)
	if err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Update edits a comment. Only its author or an administrator may edit it.
func (s *commentService) Update(ctx context.Context, caller *auth.Identity, commentID int, req *models.UpdateCommentRequest) (*models.Comment, error) {
	req.CommentText = strings.TrimSpace(req.CommentText)
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	comment, err := s.authorize(ctx, caller, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateText(ctx, comment.ID, req.CommentText); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, comment.ID)
}

// Delete removes a comment. Only its author or an administrator may delete it.
func (s *commentService) Delete(ctx context.Context, caller *auth.Identity, commentID int) error {
	comment, err := s.authorize(ctx, caller, commentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		zap.Int("commentId", comment.ID),
		zap.Int("authorId", comment.UserID),
		zap.Int("deletedBy", caller.UserID),
	)
	return nil
}

// ListByUser returns a page of one user's comments. Limit is capped at 50.
func (s *commentService) ListByUser(ctx context.Context, userID, page, limit int) (*models.UserCommentList, error) {
	page, limit = normalizePage(page, limit, defaultCommentLimit, maxCommentLimit)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &models.UserCommentList{
		User:       user,
		Comments:   comments,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

func (s *commentService) authorize(ctx context.Context, caller *auth.Identity, commentID int) (*models.Comment, error) {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only the author or an administrator can modify this comment", models.ErrForbidden)
	}
	return comment, nil
}

func (s *commentService) requireContent(ctx context.Context, contentID int) error {
	exists, err := s.contents.Exists(ctx, contentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: content %d", models.ErrNotFound, contentID)
	}
	return nil
}
