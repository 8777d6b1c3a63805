package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/asmrapi/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandler_ListByContent(t *testing.T) {
	svc := &mockCommentService{comments: []models.Comment{{ID: 1, ContentID: 8, CommentText: "lovely"}}}
	router := newTestRouter(t, NewCommentHandler(svc, testLogger()), nil)

	w := doRequest(router, http.MethodGet, "/api/comments/content/8", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, svc.gotID)
	assert.Len(t, decodeBody(t, w)["comments"], 1)
}

func TestCommentHandler_ListByUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mockCommentService{list: &models.UserCommentList{User: &models.User{ID: 2}}}
		router := newTestRouter(t, NewCommentHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodGet, "/api/comments/user/2?page=1&limit=5", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, svc.gotUserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &mockCommentService{err: fmt.Errorf("%w: user 2", models.ErrNotFound)}
		router := newTestRouter(t, NewCommentHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodGet, "/api/comments/user/2", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentHandler_Create(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		svc := &mockCommentService{comment: &models.Comment{ID: 10}}
		router := newTestRouter(t, NewCommentHandler(svc, testLogger()), userIdentity)

		w := doRequest(router, http.MethodPost, "/api/comments", models.CreateCommentRequest{ContentID: 1, CommentText: "nice"})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, userIdentity.UserID, svc.gotUserID)
	})

	t.Run("anonymous", func(t *testing.T) {
		svc := &mockCommentService{}
		router := newTestRouter(t, NewCommentHandler(svc, testLogger()), nil)

		w := doRequest(router, http.MethodPost, "/api/comments", models.CreateCommentRequest{ContentID: 1, CommentText: "nice"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCommentHandler_UpdateAndDelete(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		serviceErr   error
		expectedCode int
	}{
		{name: "update own", method: http.MethodPatch, expectedCode: http.StatusOK},
		{name: "update foreign", method: http.MethodPatch, serviceErr: models.ErrForbidden, expectedCode: http.StatusForbidden},
		{name: "delete own", method: http.MethodDelete, expectedCode: http.StatusOK},
		{name: "delete missing", method: http.MethodDelete, serviceErr: fmt.Errorf("%w: comment 5", models.ErrNotFound), expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCommentService{comment: &models.Comment{ID: 5}, err: tt.serviceErr}
			router := newTestRouter(t, NewCommentHandler(svc, testLogger()), userIdentity)

			var body any
			if tt.method == http.MethodPatch {
				body = models.UpdateCommentRequest{CommentText: "edited"}
			}
			w := doRequest(router, tt.method, "/api/comments/5", body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, 5, svc.gotID)
			assert.Equal(t, userIdentity, svc.gotCaller)
		})
	}
}

func TestCommentHandler_InvalidID(t *testing.T) {
	router := newTestRouter(t, NewCommentHandler(&mockCommentService{}, testLogger()), userIdentity)

	w := doRequest(router, http.MethodDelete, "/api/comments/0", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
