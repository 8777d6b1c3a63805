package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/asmrapi/backend/internal/metrics"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/storage"
	"github.com/asmrapi/backend/internal/validation"
	"go.uber.org/zap"
)

// ContentRepository is the interface that wraps methods for Contents table data access
type ContentRepository interface {
	// Method List retrieves all contents, newest first.
	List(ctx context.Context) ([]models.Content, error)
	// Method Search retrieves contents whose title or description contains "query".
	Search(ctx context.Context, query string) ([]models.Content, error)
	// Method GetByID retrieves a content by ID.
	//
	// If content with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Content, error)
	// Method GetTags retrieves the tags attached to a content.
	GetTags(ctx context.Context, contentID int) ([]models.ContentTag, error)
	// Method Exists checks if a content with such ID exists.
	Exists(ctx context.Context, id int) (bool, error)
	// Method MaxID returns the highest content ID, or 0 for an empty catalogue.
	MaxID(ctx context.Context) (int, error)
	// Method ExistingTagIDs returns the subset of "ids" that are known tags.
	ExistingTagIDs(ctx context.Context, ids []int) ([]int, error)
	// Method CreateWithTags inserts a content and its tag associations in one transaction.
	//
	// "customID" is used as the row ID when positive. A taken ID is reported as models.ErrConflict.
	CreateWithTags(ctx context.Context, c *models.Content, customID int, tagIDs []int) error
	// Method Delete removes a content and its tag associations in one transaction.
	Delete(ctx context.Context, id int) error
}

// FileStager copies uploads into a staging area
type FileStager interface {
	Stage(headers []*multipart.FileHeader) ([]storage.StagedFile, error)
	Cleanup(staged []storage.StagedFile)
}

// FileOrganizer moves staged files into content directories
type FileOrganizer interface {
	Place(dirID string, staged []storage.StagedFile) (*models.FileInfo, error)
	Remove(dir string) error
}

// DirectoryLocator finds the directory of a content on disk
type DirectoryLocator interface {
	ResolveDirectory(contentID string) (string, bool)
}

// maxSuggestProbes bounds the search for a free ID after the sequential one is taken
const maxSuggestProbes = 100

type contentService struct {
	repo      ContentRepository
	stager    FileStager
	organizer FileOrganizer
	locator   DirectoryLocator
	logger    *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(
	repo ContentRepository,
	stager FileStager,
	organizer FileOrganizer,
	locator DirectoryLocator,
	logger *zap.Logger,
) *contentService {
	return &contentService{
		repo:      repo,
		stager:    stager,
		organizer: organizer,
		locator:   locator,
		logger:    logger,
	}
}

// List returns the whole catalogue
func (s *contentService) List(ctx context.Context) ([]models.Content, error) {
	return s.repo.List(ctx)
}

// Search returns contents matching query by substring
func (s *contentService) Search(ctx context.Context, query string) ([]models.Content, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", models.ErrInvalidInput)
	}
	return s.repo.Search(ctx, query)
}

// Detail returns a content with its tags
func (s *contentService) Detail(ctx context.Context, id int) (*models.ContentDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid content id", models.ErrInvalidInput)
	}

	content, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.repo.GetTags(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ContentDetail{Content: *content, Tags: tags}, nil
}

// CheckID reports whether id can be used for a new content
func (s *contentService) CheckID(ctx context.Context, id int) (*models.ContentIDCheck, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: content id must be a positive number", models.ErrInvalidInput)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &models.ContentIDCheck{ID: id, Available: true, Message: fmt.Sprintf("ID %d is available", id)}, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.ContentIDCheck{
		ID:              id,
		Available:       false,
		Message:         fmt.Sprintf("ID %d is already used", id),
		ExistingContent: existing,
	}, nil
}

// SuggestID returns the next free content ID, normally max(id)+1
func (s *contentService) SuggestID(ctx context.Context) (*models.ContentIDSuggestion, error) {
	maxID, err := s.repo.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	next := maxID + 1
	for candidate := next; candidate <= next+maxSuggestProbes; candidate++ {
		taken, err := s.repo.Exists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		message := fmt.Sprintf("Next sequential ID is %d", candidate)
		if candidate != next {
			message = fmt.Sprintf("ID %d is taken, %d is the next free ID", next, candidate)
		}
		return &models.ContentIDSuggestion{
			SuggestedID:      candidate,
			MaxExistingID:    maxID,
			Message:          message,
			IsNextSequential: candidate == next,
		}, nil
	}

	return nil, fmt.Errorf("%w: no free content id after %d", models.ErrConflict, maxID)
}

// Create stores a new content: the row and its tags in one transaction, then the files
// in the content directory named after the custom ID (as typed) or the generated ID.
// Staged files are removed on every failure.
func (s *contentService) Create(ctx context.Context, req *models.CreateContentRequest, files []*multipart.FileHeader) (*models.CreateContentResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.CustomID = strings.TrimSpace(req.CustomID)
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	if !hasAudio(files) {
		return nil, fmt.Errorf("%w: at least one audio file is required", models.ErrInvalidInput)
	}

	customID := 0
	if req.CustomID != "" {
		id, err := strconv.Atoi(req.CustomID)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: custom id must be a positive number", models.ErrInvalidInput)
		}
		taken, err := s.repo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: content id %d already exists", models.ErrConflict, id)
		}
		customID = id
	}

	tagIDs, err := s.knownTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	staged, err := s.stager.Stage(files)
	if err != nil {
		metrics.RecordUpload(0, false)
		return nil, err
	}

	result, err := s.store(ctx, req, customID, tagIDs, staged)
	if err != nil {
		s.stager.Cleanup(staged)
		metrics.RecordUpload(0, false)
		return nil, err
	}

	metrics.RecordUpload(stagedBytes(staged), true)
	return result, nil
}

func (s *contentService) store(ctx context.Context, req *models.CreateContentRequest, customID int, tagIDs []int, staged []storage.StagedFile) (*models.CreateContentResult, error) {
	content := &models.Content{
		Title:           req.Title,
		Description:     req.Description,
		ContentRating:   orDefault(req.ContentRating, models.DefaultContentRating),
		ContentType:     orDefault(req.ContentType, models.DefaultContentType),
		DurationMinutes: req.DurationMinutes,
		TotalFiles:      len(staged),
		AudioQuality:    orDefault(req.AudioQuality, models.DefaultAudioQuality),
		Featured:        req.Featured,
	}
	if err := s.repo.CreateWithTags(ctx, content, customID, tagIDs); err != nil {
		return nil, err
	}

	dirID := strconv.Itoa(content.ID)
	if customID > 0 {
		dirID = req.CustomID
	}

	info, err := s.organizer.Place(dirID, staged)
	if err != nil {
		// The row is committed at this point and stays without files.
		s.logger.Error("failed to organize content files",
			zap.Error(err),
			zap.Int("contentId", content.ID),
			zap.String("dirId", dirID),
		)
		return nil, err
	}
	info.UsedCustomID = customID > 0

	s.logger.Info("content created",
		zap.Int("contentId", content.ID),
		zap.Bool("customId", customID > 0),
		zap.Int("files", info.TotalFiles),
	)

	return &models.CreateContentResult{ContentID: content.ID, IsCustomID: customID > 0, FileInfo: *info}, nil
}

// knownTags drops tag IDs that do not exist
func (s *contentService) knownTags(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	known, err := s.repo.ExistingTagIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(known) != len(ids) {
		s.logger.Warn("ignoring unknown tag ids", zap.Ints("requested", ids), zap.Ints("known", known))
	}
	return known, nil
}

// Delete removes a content row and then its directory
func (s *contentService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid content id", models.ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	dir, ok := s.locator.ResolveDirectory(strconv.Itoa(id))
	if !ok {
		s.logger.Warn("content deleted without a directory", zap.Int("contentId", id))
		return nil
	}
	if err := s.organizer.Remove(dir); err != nil {
		s.logger.Error("failed to remove content directory", zap.Error(err), zap.Int("contentId", id), zap.String("directory", dir))
	}

	s.logger.Info("content deleted", zap.Int("contentId", id))
	return nil
}

func hasAudio(files []*multipart.FileHeader) bool {
	for _, f := range files {
		if storage.KindOf(f.Filename) == storage.KindAudio {
			return true
		}
	}
	return false
}

func stagedBytes(staged []storage.StagedFile) int64 {
	var total int64
	for _, f := range staged {
		total += f.Size
	}
	return total
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
