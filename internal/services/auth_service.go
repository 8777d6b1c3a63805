package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database and sets its ID.
	//
	// A duplicate email or username is reported as models.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// If user with such email does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method ExistsByEmailOrUsername checks if a user already uses the email or the username.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// Method List retrieves a page of users (newest first) and the total number of users.
	List(ctx context.Context, limit, offset int) ([]models.User, int, error)
	// Method UpdateRole sets the role of a user. It does not check that the user exists.
	UpdateRole(ctx context.Context, id int, role string) error
	// Method UpdatePassword replaces the password hash of a user.
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

// AccessTokenGenerator issues access tokens for authenticated users
type AccessTokenGenerator interface {
	GenerateAccessToken(identity auth.Identity) (string, error)
}

const (
	defaultPage      = 1
	defaultUserLimit = 20
	maxUserLimit     = 100
)

type authService struct {
	userRepo       UserRepository
	tokenGenerator AccessTokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator AccessTokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account with the "user" role and returns its ID
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (int, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateStruct(req); err != nil {
		return 0, err
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: user with this email or username already exists", models.ErrConflict)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID), zap.String("username", user.Username))
	return user.ID, nil
}

// Login verifies the credentials and returns an access token with the user profile
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: wrong email or password", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: wrong email or password", models.ErrUnauthorized)
	}

	token, err := s.tokenGenerator.GenerateAccessToken(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Error(err), zap.Int("userId", user.ID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.LoginResponse{Message: "Login successful", Token: token, User: user}, nil
}

// Me returns the profile of the authenticated user
func (s *authService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers returns a page of users. Page defaults to 1, limit to 20 (at most 100).
func (s *authService) ListUsers(ctx context.Context, page, limit int) (*models.UserList, error) {
	page, limit = normalizePage(page, limit, defaultUserLimit, maxUserLimit)

	users, total, err := s.userRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &models.UserList{Users: users, Pagination: models.NewPagination(page, limit, total)}, nil
}

// UpdateRole changes the role of another user. Administrators cannot change their own role.
func (s *authService) UpdateRole(ctx context.Context, actorID int, req *models.UpdateRoleRequest) (*models.User, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.UserID == actorID {
		return nil, fmt.Errorf("%w: you cannot change your own role", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, req.UserID, req.Role); err != nil {
		return nil, err
	}

	s.logger.Info("user role updated",
		zap.Int("userId", req.UserID),
		zap.String("from", user.Role),
		zap.String("to", req.Role),
		zap.Int("changedBy", actorID),
	)
	user.Role = req.Role
	return user, nil
}

// ChangePassword replaces the password of the authenticated user after checking the current one
func (s *authService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if err := validation.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", models.ErrInvalidInput)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(passwordHash))
}

// normalizePage applies the default page and limit and caps limit at max
func normalizePage(page, limit, def, max int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit
}
