package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/validation"
	"go.uber.org/zap"
)

// TagRepository is the interface that wraps methods for Tags table data access
type TagRepository interface {
	List(ctx context.Context, filter models.TagFilter) ([]models.Tag, error)
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	ExistsByNameAndCategory(ctx context.Context, name, category string, excludeID int) (bool, error)
	Create(ctx context.Context, t *models.Tag) error
	Update(ctx context.Context, id int, req *models.UpdateTagRequest) error
	UsageCount(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

// TagInUseError is returned when a tag still referenced by contents is deleted
type TagInUseError struct {
	UsageCount int
}

func (e *TagInUseError) Error() string {
	return fmt.Sprintf("tag is used by %d contents", e.UsageCount)
}

// Unwrap lets errors.Is match models.ErrInvalidInput
func (e *TagInUseError) Unwrap() error {
	return models.ErrInvalidInput
}

type tagService struct {
	repo   TagRepository
	logger *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository, logger *zap.Logger) *tagService {
	return &tagService{
		repo:   repo,
		logger: logger,
	}
}

// List returns tags matching filter together with a per-category grouping
func (s *tagService) List(ctx context.Context, filter models.TagFilter) (*models.TagList, error) {
	tags, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.Tag)
	for _, t := range tags {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	return &models.TagList{Tags: tags, TagsByCategory: byCategory}, nil
}

// ByCategory returns the tags of one category
func (s *tagService) ByCategory(ctx context.Context, category string, activeOnly bool) ([]models.Tag, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", models.ErrInvalidInput)
	}
	return s.repo.List(ctx, models.TagFilter{Category: category, ActiveOnly: activeOnly})
}

// Create adds a tag. Name must be unique within its category.
func (s *tagService) Create(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNameAndCategory(ctx, req.Name, req.Category, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: tag %q already exists in category %q", models.ErrConflict, req.Name, req.Category)
	}

	tag := &models.Tag{
		Name:      req.Name,
		Category:  req.Category,
		Color:     orDefault(req.Color, models.DefaultTagColor),
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		tag.Description = &desc
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", zap.Int("tagId", tag.ID), zap.String("name", tag.Name), zap.String("category", tag.Category))
	return tag, nil
}

// Update applies a partial update and returns the updated tag
func (s *tagService) Update(ctx context.Context, id int, req *models.UpdateTagRequest) (*models.Tag, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", models.ErrInvalidInput)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Category != nil {
		name, category := current.Name, current.Category
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
			req.Name = &name
		}
		if req.Category != nil {
			category = strings.TrimSpace(*req.Category)
			req.Category = &category
		}
		exists, err := s.repo.ExistsByNameAndCategory(ctx, name, category, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: tag %q already exists in category %q", models.ErrConflict, name, category)
		}
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a tag that no content references
func (s *tagService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.UsageCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &TagInUseError{UsageCount: count}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("tag deleted", zap.Int("tagId", id))
	return nil
}
