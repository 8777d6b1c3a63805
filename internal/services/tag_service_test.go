package services

import (
	"context"
	"errors"
	"testing"

	"github.com/asmrapi/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTagService_List(t *testing.T) {
	repo := &mockTagRepository{tags: []models.Tag{
		{ID: 1, Name: "Soft", Category: "voice"},
		{ID: 2, Name: "Rain", Category: "ambience"},
		{ID: 3, Name: "Whisper", Category: "voice"},
	}}
	svc := NewTagService(repo, zap.NewNop())

	list, err := svc.List(context.Background(), models.TagFilter{})
	require.NoError(t, err)
	assert.Len(t, list.Tags, 3)
	assert.Len(t, list.TagsByCategory["voice"], 2)
	assert.Len(t, list.TagsByCategory["ambience"], 1)
}

func TestTagService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.CreateTagRequest
		repo          *mockTagRepository
		expectedError error
		expectedColor string
	}{
		{
			name:          "default color",
			req:           &models.CreateTagRequest{Name: " Soft ", Category: "voice"},
			repo:          &mockTagRepository{},
			expectedColor: models.DefaultTagColor,
		},
		{
			name:          "custom color",
			req:           &models.CreateTagRequest{Name: "Soft", Category: "voice", Color: "#ff0000"},
			repo:          &mockTagRepository{},
			expectedColor: "#ff0000",
		},
		{
			name:          "duplicate",
			req:           &models.CreateTagRequest{Name: "Soft", Category: "voice"},
			repo:          &mockTagRepository{exists: true},
			expectedError: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTagService(tt.repo, zap.NewNop())

			tag, err := svc.Create(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tt.repo.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, tag.ID)
			assert.Equal(t, "Soft", tag.Name)
			assert.Equal(t, tt.expectedColor, tag.Color)
			assert.True(t, tag.IsActive)
			assert.Nil(t, tag.Description)
		})
	}
}

func TestTagService_Update(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		svc := NewTagService(&mockTagRepository{}, zap.NewNop())
		_, err := svc.Update(context.Background(), 1, &models.UpdateTagRequest{})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("unknown tag", func(t *testing.T) {
		name := "x"
		svc := NewTagService(&mockTagRepository{err: models.ErrNotFound}, zap.NewNop())
		_, err := svc.Update(context.Background(), 1, &models.UpdateTagRequest{Name: &name})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("rename clash", func(t *testing.T) {
		name := "Rain"
		repo := &mockTagRepository{tag: &models.Tag{ID: 1, Name: "Soft", Category: "voice"}, exists: true}
		svc := NewTagService(repo, zap.NewNop())
		_, err := svc.Update(context.Background(), 1, &models.UpdateTagRequest{Name: &name})
		assert.ErrorIs(t, err, models.ErrConflict)
		assert.Nil(t, repo.updated)
	})

	t.Run("success", func(t *testing.T) {
		active := false
		repo := &mockTagRepository{tag: &models.Tag{ID: 1, Name: "Soft", Category: "voice"}}
		svc := NewTagService(repo, zap.NewNop())
		tag, err := svc.Update(context.Background(), 1, &models.UpdateTagRequest{IsActive: &active})
		require.NoError(t, err)
		assert.Equal(t, 1, tag.ID)
		require.NotNil(t, repo.updated)
		assert.False(t, *repo.updated.IsActive)
	})
}

func TestTagService_Delete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		repo := &mockTagRepository{tag: &models.Tag{ID: 2}, usage: 4}
		svc := NewTagService(repo, zap.NewNop())

		err := svc.Delete(context.Background(), 2)

		var inUse *TagInUseError
		require.True(t, errors.As(err, &inUse))
		assert.Equal(t, 4, inUse.UsageCount)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Zero(t, repo.deletedID)
	})

	t.Run("unused", func(t *testing.T) {
		repo := &mockTagRepository{tag: &models.Tag{ID: 2}}
		svc := NewTagService(repo, zap.NewNop())

		require.NoError(t, svc.Delete(context.Background(), 2))
		assert.Equal(t, 2, repo.deletedID)
	})

	t.Run("unknown", func(t *testing.T) {
		svc := NewTagService(&mockTagRepository{err: models.ErrNotFound}, zap.NewNop())
		assert.ErrorIs(t, svc.Delete(context.Background(), 2), models.ErrNotFound)
	})
}
