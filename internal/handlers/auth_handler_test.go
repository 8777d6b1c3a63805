package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "validation",
			err:          &validation.RequestValidationError{Fields: []validation.FieldError{{Field: "email", Tag: "email", Message: "email must be a valid email"}}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid input",
			err:          fmt.Errorf("%w: bad", models.ErrInvalidInput),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid input: bad",
		},
		{
			name:         "conflict",
			err:          fmt.Errorf("%w: taken", models.ErrConflict),
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "not found",
			err:          fmt.Errorf("%w: user", models.ErrNotFound),
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "unauthorized",
			err:          models.ErrUnauthorized,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "forbidden",
			err:          models.ErrForbidden,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "unexpected",
			err:          errors.New("connection reset"),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "something failed",
		},
	}

	h := &BaseHandler{Logger: testLogger()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.RespondServiceError(w, tt.err, "something failed")

			assert.Equal(t, tt.expectedCode, w.Code)
			body := decodeBody(t, w)
			assert.NotEmpty(t, body["error"])
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["error"])
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name         string
		body         any
		serviceErr   error
		expectedCode int
	}{
		{
			name:         "success",
			body:         models.RegisterRequest{Username: "mika", Email: "mika@example.com", Password: "secret1", ConfirmPassword: "secret1"},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "malformed body",
			body:         "{not json",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "duplicate",
			body:         models.RegisterRequest{Username: "mika", Email: "mika@example.com", Password: "secret1", ConfirmPassword: "secret1"},
			serviceErr:   fmt.Errorf("%w: email or username already registered", models.ErrConflict),
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{userID: 7, err: tt.serviceErr}
			router := newTestRouter(t, NewAuthHandler(svc, testLogger()), nil)

			w := doRequest(router, http.MethodPost, "/api/auth/register", tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				assert.Equal(t, float64(7), decodeBody(t, w)["userId"])
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{login: &models.LoginResponse{Message: "Login successful", Token: "tok", User: &models.User{ID: 2}}}
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "a@b.c", Password: "x"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok", decodeBody(t, w)["token"])
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc := &mockAuthService{err: fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)}
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodPost, "/api/auth/login", models.LoginRequest{Email: "a@b.c", Password: "x"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &mockAuthService{user: &models.User{ID: 2, Username: "mika"}}

	t.Run("authenticated", func(t *testing.T) {
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), userIdentity)

		w := doRequest(router, http.MethodGet, "/api/auth/me", nil)

		require.Equal(t, http.StatusOK, w.Code)
		user := decodeBody(t, w)["user"].(map[string]any)
		assert.Equal(t, "mika", user["username"])
	})

	t.Run("anonymous", func(t *testing.T) {
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodGet, "/api/auth/me", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_ListUsers(t *testing.T) {
	svc := &mockAuthService{users: &models.UserList{Users: []models.User{{ID: 1}}, Pagination: models.NewPagination(2, 10, 11)}}

	t.Run("admin", func(t *testing.T) {
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), adminIdentity)

		w := doRequest(router, http.MethodGet, "/api/auth/users?page=2&limit=10", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, svc.gotPage)
		assert.Equal(t, 10, svc.gotLimit)
	})

	t.Run("regular user", func(t *testing.T) {
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), userIdentity)

		w := doRequest(router, http.MethodGet, "/api/auth/users", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandler_UpdateRole(t *testing.T) {
	svc := &mockAuthService{user: &models.User{ID: 5, Role: models.RoleAdmin}}
	router := newTestRouter(t, NewAuthHandler(svc, testLogger()), adminIdentity)

	w := doRequest(router, http.MethodPatch, "/api/auth/user-role", models.UpdateRoleRequest{UserID: 5, Role: models.RoleAdmin})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminIdentity.UserID, svc.gotActor)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAuthService{}
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), userIdentity)

		w := doRequest(router, http.MethodPatch, "/api/auth/change-password", models.ChangePasswordRequest{
			CurrentPassword: "old", NewPassword: "newpass", ConfirmPassword: "newpass",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userIdentity.UserID, svc.gotActor)
		assert.Equal(t, "old", svc.gotPassword.CurrentPassword)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc := &mockAuthService{err: fmt.Errorf("%w: current password is incorrect", models.ErrInvalidInput)}
		router := newTestRouter(t, NewAuthHandler(svc, testLogger()), userIdentity)

		w := doRequest(router, http.MethodPatch, "/api/auth/change-password", models.ChangePasswordRequest{
			CurrentPassword: "bad", NewPassword: "newpass", ConfirmPassword: "newpass",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
