package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploads(names ...string) []*multipart.FileHeader {
	headers := make([]*multipart.FileHeader, len(names))
	for i, n := range names {
		headers[i] = &multipart.FileHeader{Filename: n, Size: 10}
	}
	return headers
}

func newTestContentService(repo *mockContentRepository, stager *mockStager, organizer *mockOrganizer, loc *mockLocator) *contentService {
	if loc == nil {
		loc = &mockLocator{}
	}
	return NewContentService(repo, stager, organizer, loc, zap.NewNop())
}

func TestContentService_Search(t *testing.T) {
	svc := newTestContentService(&mockContentRepository{contents: []models.Content{{ID: 1}}}, &mockStager{}, &mockOrganizer{}, nil)

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	result, err := svc.Search(context.Background(), "rain")
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestContentService_Detail(t *testing.T) {
	repo := &mockContentRepository{
		content: &models.Content{ID: 4, Title: "Rain"},
		tags:    []models.ContentTag{{Name: "soft", Category: "voice"}},
	}
	svc := newTestContentService(repo, &mockStager{}, &mockOrganizer{}, nil)

	detail, err := svc.Detail(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Rain", detail.Title)
	assert.Len(t, detail.Tags, 1)

	_, err = svc.Detail(context.Background(), 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	repo.err = models.ErrNotFound
	_, err = svc.Detail(context.Background(), 4)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestContentService_CheckID(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		svc := newTestContentService(&mockContentRepository{err: models.ErrNotFound}, &mockStager{}, &mockOrganizer{}, nil)
		check, err := svc.CheckID(context.Background(), 12)
		require.NoError(t, err)
		assert.True(t, check.Available)
		assert.Nil(t, check.ExistingContent)
	})

	t.Run("taken", func(t *testing.T) {
		svc := newTestContentService(&mockContentRepository{content: &models.Content{ID: 12, Title: "Rain"}}, &mockStager{}, &mockOrganizer{}, nil)
		check, err := svc.CheckID(context.Background(), 12)
		require.NoError(t, err)
		assert.False(t, check.Available)
		assert.Equal(t, "Rain", check.ExistingContent.Title)
	})

	t.Run("invalid", func(t *testing.T) {
		svc := newTestContentService(&mockContentRepository{}, &mockStager{}, &mockOrganizer{}, nil)
		_, err := svc.CheckID(context.Background(), -3)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestContentService_SuggestID(t *testing.T) {
	tests := []struct {
		name          string
		repo          *mockContentRepository
		expectedID    int
		expectedSeq   bool
		expectedErrIs error
	}{
		{
			name:        "next sequential",
			repo:        &mockContentRepository{maxID: 41, taken: map[int]bool{}},
			expectedID:  42,
			expectedSeq: true,
		},
		{
			name:        "empty catalogue",
			repo:        &mockContentRepository{taken: map[int]bool{}},
			expectedID:  1,
			expectedSeq: true,
		},
		{
			name:       "sequential taken",
			repo:       &mockContentRepository{maxID: 41, taken: map[int]bool{42: true, 43: true}},
			expectedID: 44,
		},
		{
			name: "nothing free",
			repo: func() *mockContentRepository {
				taken := map[int]bool{}
				for i := 2; i <= 102; i++ {
					taken[i] = true
				}
				return &mockContentRepository{maxID: 1, taken: taken}
			}(),
			expectedErrIs: models.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestContentService(tt.repo, &mockStager{}, &mockOrganizer{}, nil)

			suggestion, err := svc.SuggestID(context.Background())

			if tt.expectedErrIs != nil {
				assert.ErrorIs(t, err, tt.expectedErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, suggestion.SuggestedID)
			assert.Equal(t, tt.expectedSeq, suggestion.IsNextSequential)
			assert.Equal(t, tt.repo.maxID, suggestion.MaxExistingID)
		})
	}
}

func TestContentService_Create(t *testing.T) {
	staged := []storage.StagedFile{
		{Path: "/tmp/x/a.mp3", OriginalName: "a.mp3", Size: 100, Kind: storage.KindAudio},
		{Path: "/tmp/x/a.jpg", OriginalName: "a.jpg", Size: 20, Kind: storage.KindImage},
	}
	baseReq := func() *models.CreateContentRequest {
		return &models.CreateContentRequest{Title: " Rain ", Description: "soft rain"}
	}

	tests := []struct {
		name            string
		req             *models.CreateContentRequest
		files           []*multipart.FileHeader
		repo            *mockContentRepository
		stager          *mockStager
		organizer       *mockOrganizer
		expectedErrIs   error
		expectedDir     string
		expectedCustom  bool
		expectedCleanup bool
	}{
		{
			name:        "generated id",
			req:         baseReq(),
			files:       uploads("a.mp3", "a.jpg"),
			repo:        &mockContentRepository{createdID: 17},
			stager:      &mockStager{staged: staged},
			organizer:   &mockOrganizer{},
			expectedDir: "17",
		},
		{
			name: "custom id keeps leading zeros",
			req: func() *models.CreateContentRequest {
				r := baseReq()
				r.CustomID = "0042"
				return r
			}(),
			files:          uploads("a.mp3"),
			repo:           &mockContentRepository{taken: map[int]bool{}},
			stager:         &mockStager{staged: staged},
			organizer:      &mockOrganizer{},
			expectedDir:    "0042",
			expectedCustom: true,
		},
		{
			name: "custom id taken",
			req: func() *models.CreateContentRequest {
				r := baseReq()
				r.CustomID = "5"
				return r
			}(),
			files:         uploads("a.mp3"),
			repo:          &mockContentRepository{taken: map[int]bool{5: true}},
			stager:        &mockStager{staged: staged},
			organizer:     &mockOrganizer{},
			expectedErrIs: models.ErrConflict,
		},
		{
			name:          "no audio",
			req:           baseReq(),
			files:         uploads("cover.jpg"),
			repo:          &mockContentRepository{},
			stager:        &mockStager{},
			organizer:     &mockOrganizer{},
			expectedErrIs: models.ErrInvalidInput,
		},
		{
			name:            "database failure cleans up",
			req:             baseReq(),
			files:           uploads("a.mp3"),
			repo:            &mockContentRepository{createErr: errors.New("db down")},
			stager:          &mockStager{staged: staged},
			organizer:       &mockOrganizer{},
			expectedCleanup: true,
		},
		{
			name:            "organize failure cleans up",
			req:             baseReq(),
			files:           uploads("a.mp3"),
			repo:            &mockContentRepository{createdID: 3},
			stager:          &mockStager{staged: staged},
			organizer:       &mockOrganizer{err: errors.New("disk full")},
			expectedCleanup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestContentService(tt.repo, tt.stager, tt.organizer, nil)

			result, err := svc.Create(context.Background(), tt.req, tt.files)

			switch {
			case tt.expectedErrIs != nil:
				assert.ErrorIs(t, err, tt.expectedErrIs)
				assert.Nil(t, result)
			case tt.expectedCleanup:
				assert.Error(t, err)
				assert.True(t, tt.stager.cleanedUp)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedDir, tt.organizer.placedDir)
				assert.Equal(t, tt.expectedCustom, result.IsCustomID)
				assert.Equal(t, tt.expectedCustom, result.FileInfo.UsedCustomID)
				assert.False(t, tt.stager.cleanedUp)
			}
		})
	}
}

func TestContentService_CreateDropsUnknownTags(t *testing.T) {
	repo := &mockContentRepository{createdID: 9, knownTags: []int{1}}
	svc := newTestContentService(repo, &mockStager{staged: []storage.StagedFile{{OriginalName: "a.mp3", Kind: storage.KindAudio}}}, &mockOrganizer{}, nil)

	req := &models.CreateContentRequest{Title: "Rain", Description: "d", TagIDs: []int{1, 99}}
	_, err := svc.Create(context.Background(), req, uploads("a.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, repo.linkedTags)
}

func TestContentService_Delete(t *testing.T) {
	t.Run("removes resolved directory", func(t *testing.T) {
		repo := &mockContentRepository{}
		organizer := &mockOrganizer{}
		loc := &mockLocator{dirs: map[string]string{"7": "/audio/content-00000007"}}
		svc := newTestContentService(repo, &mockStager{}, organizer, loc)

		require.NoError(t, svc.Delete(context.Background(), 7))
		assert.Equal(t, []int{7}, repo.deleted)
		assert.Equal(t, []string{"/audio/content-00000007"}, organizer.removed)
	})

	t.Run("missing directory", func(t *testing.T) {
		organizer := &mockOrganizer{}
		svc := newTestContentService(&mockContentRepository{}, &mockStager{}, organizer, &mockLocator{})

		require.NoError(t, svc.Delete(context.Background(), 7))
		assert.Empty(t, organizer.removed)
	})

	t.Run("unknown content", func(t *testing.T) {
		organizer := &mockOrganizer{}
		svc := newTestContentService(&mockContentRepository{deleteErr: models.ErrNotFound}, &mockStager{}, organizer, &mockLocator{})

		assert.ErrorIs(t, svc.Delete(context.Background(), 7), models.ErrNotFound)
		assert.Empty(t, organizer.removed)
	})
}
