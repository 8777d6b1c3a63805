package services

import (
	"context"
	"mime/multipart"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/repositories"
	"github.com/asmrapi/backend/internal/storage"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user         *models.User
	users        []models.User
	total        int
	exists       bool
	err          error
	createErr    error
	updatedRole  string
	updatedHash  string
	listedLimit  int
	listedOffset int
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.user = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	return m.exists, nil
}

func (m *mockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	m.listedLimit, m.listedOffset = limit, offset
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.users, m.total, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id int, role string) error {
	m.updatedRole = role
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	m.updatedHash = passwordHash
	return nil
}

// mockTokenGenerator is a mock implementation of AccessTokenGenerator
type mockTokenGenerator struct {
	identity auth.Identity
	err      error
}

func (m *mockTokenGenerator) GenerateAccessToken(identity auth.Identity) (string, error) {
	m.identity = identity
	if m.err != nil {
		return "", m.err
	}
	return "token", nil
}

// mockContentRepository is a mock implementation of ContentRepository
type mockContentRepository struct {
	contents   []models.Content
	content    *models.Content
	tags       []models.ContentTag
	taken      map[int]bool
	maxID      int
	knownTags  []int
	err        error
	createErr  error
	deleteErr  error
	createdID  int
	customID   int
	linkedTags []int
	deleted    []int
}

func (m *mockContentRepository) List(ctx context.Context) ([]models.Content, error) {
	return m.contents, m.err
}

func (m *mockContentRepository) Search(ctx context.Context, query string) ([]models.Content, error) {
	return m.contents, m.err
}

func (m *mockContentRepository) GetByID(ctx context.Context, id int) (*models.Content, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.content, nil
}

func (m *mockContentRepository) GetTags(ctx context.Context, contentID int) ([]models.ContentTag, error) {
	return m.tags, nil
}

func (m *mockContentRepository) Exists(ctx context.Context, id int) (bool, error) {
	return m.taken[id], nil
}

func (m *mockContentRepository) MaxID(ctx context.Context) (int, error) {
	return m.maxID, m.err
}

func (m *mockContentRepository) ExistingTagIDs(ctx context.Context, ids []int) ([]int, error) {
	return m.knownTags, nil
}

func (m *mockContentRepository) CreateWithTags(ctx context.Context, c *models.Content, customID int, tagIDs []int) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.customID = customID
	m.linkedTags = tagIDs
	c.ID = m.createdID
	if customID > 0 {
		c.ID = customID
	}
	return nil
}

func (m *mockContentRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockStager is a mock implementation of FileStager
type mockStager struct {
	staged    []storage.StagedFile
	err       error
	cleanedUp bool
}

func (m *mockStager) Stage(headers []*multipart.FileHeader) ([]storage.StagedFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.staged, nil
}

func (m *mockStager) Cleanup(staged []storage.StagedFile) {
	m.cleanedUp = true
}

// mockOrganizer is a mock implementation of FileOrganizer
type mockOrganizer struct {
	placedDir string
	removed   []string
	err       error
}

func (m *mockOrganizer) Place(dirID string, staged []storage.StagedFile) (*models.FileInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.placedDir = dirID
	return &models.FileInfo{ContentDir: "content-" + dirID, TotalFiles: len(staged)}, nil
}

func (m *mockOrganizer) Remove(dir string) error {
	m.removed = append(m.removed, dir)
	return nil
}

// mockLocator is a mock implementation of DirectoryLocator
type mockLocator struct {
	dirs map[string]string
}

func (m *mockLocator) ResolveDirectory(contentID string) (string, bool) {
	dir, ok := m.dirs[contentID]
	return dir, ok
}

// mockTagRepository is a mock implementation of TagRepository
type mockTagRepository struct {
	tags      []models.Tag
	tag       *models.Tag
	exists    bool
	usage     int
	err       error
	created   *models.Tag
	updated   *models.UpdateTagRequest
	deletedID int
}

func (m *mockTagRepository) List(ctx context.Context, filter models.TagFilter) ([]models.Tag, error) {
	return m.tags, m.err
}

func (m *mockTagRepository) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tag, nil
}

func (m *mockTagRepository) ExistsByNameAndCategory(ctx context.Context, name, category string, excludeID int) (bool, error) {
	return m.exists, nil
}

func (m *mockTagRepository) Create(ctx context.Context, t *models.Tag) error {
	t.ID = 7
	m.created = t
	return nil
}

func (m *mockTagRepository) Update(ctx context.Context, id int, req *models.UpdateTagRequest) error {
	m.updated = req
	return nil
}

func (m *mockTagRepository) UsageCount(ctx context.Context, id int) (int, error) {
	return m.usage, nil
}

func (m *mockTagRepository) Delete(ctx context.Context, id int) error {
	m.deletedID = id
	return nil
}

// mockCommentRepository is a mock implementation of CommentRepository
type mockCommentRepository struct {
	comments     []models.Comment
	comment      *models.Comment
	userComments []models.UserComment
	total        int
	err          error
	updatedText  string
	deletedID    int
	listedLimit  int
}

func (m *mockCommentRepository) ListByContent(ctx context.Context, contentID int) ([]models.Comment, error) {
	return m.comments, m.err
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.comment, nil
}

func (m *mockCommentRepository) Create(ctx context.Context, contentID, userID int, text string) (int, error) {
	m.comment = &models.Comment{ID: 1, ContentID: contentID, UserID: userID, CommentText: text}
	return 1, nil
}

func (m *mockCommentRepository) UpdateText(ctx context.Context, id int, text string) error {
	m.updatedText = text
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id int) error {
	m.deletedID = id
	return nil
}

func (m *mockCommentRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]models.UserComment, int, error) {
	m.listedLimit = limit
	return m.userComments, m.total, m.err
}

// mockAdminRepository is a mock implementation of AdminRepository
type mockAdminRepository struct {
	stats  *models.AdminStats
	check  *repositories.DBCheck
	err    error
	tables []string
}

func (m *mockAdminRepository) Stats(ctx context.Context) (*models.AdminStats, error) {
	return m.stats, m.err
}

func (m *mockAdminRepository) CheckDatabase(ctx context.Context, tables []string) (*repositories.DBCheck, error) {
	m.tables = tables
	return m.check, m.err
}
