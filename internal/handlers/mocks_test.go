package handlers

import (
	"context"
	"mime/multipart"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/repositories"
	"github.com/asmrapi/backend/internal/services"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	userID      int
	user        *models.User
	login       *models.LoginResponse
	users       *models.UserList
	err         error
	gotActor    int
	gotPage     int
	gotLimit    int
	gotPassword *models.ChangePasswordRequest
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (int, error) {
	return m.userID, m.err
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	return m.login, m.err
}

func (m *mockAuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	return m.user, m.err
}

func (m *mockAuthService) ListUsers(ctx context.Context, page, limit int) (*models.UserList, error) {
	m.gotPage, m.gotLimit = page, limit
	return m.users, m.err
}

func (m *mockAuthService) UpdateRole(ctx context.Context, actorID int, req *models.UpdateRoleRequest) (*models.User, error) {
	m.gotActor = actorID
	return m.user, m.err
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	m.gotActor = userID
	m.gotPassword = req
	return m.err
}

// mockContentService is a mock implementation of ContentService and ContentAdminService
type mockContentService struct {
	contents   []models.Content
	detail     *models.ContentDetail
	check      *models.ContentIDCheck
	suggestion *models.ContentIDSuggestion
	result     *models.CreateContentResult
	err        error
	gotQuery   string
	gotID      int
	gotRequest *models.CreateContentRequest
	gotFiles   []string
}

func (m *mockContentService) List(ctx context.Context) ([]models.Content, error) {
	return m.contents, m.err
}

func (m *mockContentService) Search(ctx context.Context, query string) ([]models.Content, error) {
	m.gotQuery = query
	return m.contents, m.err
}

func (m *mockContentService) Detail(ctx context.Context, id int) (*models.ContentDetail, error) {
	m.gotID = id
	return m.detail, m.err
}

func (m *mockContentService) CheckID(ctx context.Context, id int) (*models.ContentIDCheck, error) {
	m.gotID = id
	return m.check, m.err
}

func (m *mockContentService) SuggestID(ctx context.Context) (*models.ContentIDSuggestion, error) {
	return m.suggestion, m.err
}

func (m *mockContentService) Create(ctx context.Context, req *models.CreateContentRequest, files []*multipart.FileHeader) (*models.CreateContentResult, error) {
	m.gotRequest = req
	for _, f := range files {
		m.gotFiles = append(m.gotFiles, f.Filename)
	}
	return m.result, m.err
}

func (m *mockContentService) Delete(ctx context.Context, id int) error {
	m.gotID = id
	return m.err
}

// mockTagService is a mock implementation of TagService
type mockTagService struct {
	list        *models.TagList
	tags        []models.Tag
	tag         *models.Tag
	err         error
	gotFilter   models.TagFilter
	gotCategory string
	gotActive   bool
	gotID       int
}

func (m *mockTagService) List(ctx context.Context, filter models.TagFilter) (*models.TagList, error) {
	m.gotFilter = filter
	return m.list, m.err
}

func (m *mockTagService) ByCategory(ctx context.Context, category string, activeOnly bool) ([]models.Tag, error) {
	m.gotCategory, m.gotActive = category, activeOnly
	return m.tags, m.err
}

func (m *mockTagService) Create(ctx context.Context, req *models.CreateTagRequest) (*models.Tag, error) {
	return m.tag, m.err
}

func (m *mockTagService) Update(ctx context.Context, id int, req *models.UpdateTagRequest) (*models.Tag, error) {
	m.gotID = id
	return m.tag, m.err
}

func (m *mockTagService) Delete(ctx context.Context, id int) error {
	m.gotID = id
	return m.err
}

// mockCommentService is a mock implementation of CommentService
type mockCommentService struct {
	comments  []models.Comment
	comment   *models.Comment
	list      *models.UserCommentList
	err       error
	gotCaller *auth.Identity
	gotUserID int
	gotID     int
}

func (m *mockCommentService) ListByContent(ctx context.Context, contentID int) ([]models.Comment, error) {
	m.gotID = contentID
	return m.comments, m.err
}

func (m *mockCommentService) Create(ctx context.Context, userID int, req *models.CreateCommentRequest) (*models.Comment, error) {
	m.gotUserID = userID
	return m.comment, m.err
}

func (m *mockCommentService) Update(ctx context.Context, caller *auth.Identity, commentID int, req *models.UpdateCommentRequest) (*models.Comment, error) {
	m.gotCaller, m.gotID = caller, commentID
	return m.comment, m.err
}

func (m *mockCommentService) Delete(ctx context.Context, caller *auth.Identity, commentID int) error {
	m.gotCaller, m.gotID = caller, commentID
	return m.err
}

func (m *mockCommentService) ListByUser(ctx context.Context, userID, page, limit int) (*models.UserCommentList, error) {
	m.gotUserID = userID
	return m.list, m.err
}

// mockAdminService is a mock implementation of StatsService and DiagnosticsService
type mockAdminService struct {
	stats *models.AdminStats
	check *repositories.DBCheck
	info  *services.SystemInfo
	err   error
}

func (m *mockAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	return m.stats, m.err
}

func (m *mockAdminService) CheckDatabase(ctx context.Context) (*repositories.DBCheck, error) {
	return m.check, m.err
}

func (m *mockAdminService) SystemInfo() *services.SystemInfo {
	return m.info
}
