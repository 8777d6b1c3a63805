package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/asmrapi/backend/internal/locator"
	"github.com/asmrapi/backend/internal/streaming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAudioRouter writes files (path relative to the audio root -> content) and mounts an audio handler over them
func setupAudioRouter(t *testing.T, files map[string]string) http.Handler {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	logger := testLogger()
	h := NewAudioHandler(locator.NewLocator(root, logger), streaming.NewFileServer(logger), logger)
	return newTestRouter(t, h, nil)
}

func TestAudioHandler_AudioFull(t *testing.T) {
	router := setupAudioRouter(t, map[string]string{
		"content-00000001/00000001.mp3":   "0123456789",
		"content-00000001/00000001_1.mp3": "part one",
		"content-abc/abc.m4a":             "custom",
	})

	tests := []struct {
		name         string
		path         string
		rangeHeader  string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "padded directory",
			path:         "/api/audio/audio-full/1",
			expectedCode: http.StatusOK,
			expectedBody: "0123456789",
		},
		{
			name:         "byte range",
			path:         "/api/audio/audio-full/1",
			rangeHeader:  "bytes=2-5",
			expectedCode: http.StatusPartialContent,
			expectedBody: "2345",
		},
		{
			name:         "unsatisfiable range",
			path:         "/api/audio/audio-full/1",
			rangeHeader:  "bytes=50-60",
			expectedCode: http.StatusRequestedRangeNotSatisfiable,
		},
		{
			name:         "custom token",
			path:         "/api/audio/audio-full/abc",
			expectedCode: http.StatusOK,
			expectedBody: "custom",
		},
		{
			name:         "part",
			path:         "/api/audio/audio-part/1/1",
			expectedCode: http.StatusOK,
			expectedBody: "part one",
		},
		{
			name:         "invalid content id",
			path:         "/api/audio/audio-full/bad.id",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid part number",
			path:         "/api/audio/audio-part/1/a.b",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.rangeHeader != "" {
				req.Header.Set("Range", tt.rangeHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAudioHandler_Head(t *testing.T) {
	router := setupAudioRouter(t, map[string]string{
		"content-7/7.wav": "wavedata",
	})

	w := doRequest(router, http.MethodHead, "/api/audio/audio-full/7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "8", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Empty(t, w.Body.String())
}

func TestAudioHandler_NotFoundBodies(t *testing.T) {
	router := setupAudioRouter(t, map[string]string{
		"content-00000002/cover.txt": "x",
	})

	t.Run("directory miss", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/audio-full/3", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "3", body["contentId"])
		assert.Equal(t, []any{"3", "00000003"}, body["idPatterns"])
		assert.Equal(t, []any{"content-3", "content-00000003"}, body["searchedDirectories"])
	})

	t.Run("file miss", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/audio-part/2/4", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "content-00000002", body["directory"])
		assert.Equal(t, "4", body["partNumber"])
		assert.Equal(t, []any{"cover.txt"}, body["availableFiles"])
	})

	t.Run("image miss", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/image-main/2", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Image file not found", body["error"])
	})
}

func TestAudioHandler_Images(t *testing.T) {
	router := setupAudioRouter(t, map[string]string{
		"content-5/5.jpg":   "main",
		"content-5/5_1.png": "one",
		"content-5/5_2.jpg": "two",
		"content-5/5_4.jpg": "four",
	})

	t.Run("list stops at first gap", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/images/5", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["totalImages"])
		images := body["images"].([]any)
		first := images[0].(map[string]any)
		assert.Equal(t, true, first["isMain"])
		assert.Equal(t, "/api/audio/image-main/5", first["url"])
		second := images[1].(map[string]any)
		assert.Equal(t, "5_1.png", second["filename"])
		assert.Equal(t, "/api/audio/image-part/5/1", second["url"])
	})

	t.Run("image part", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/image-part/5/1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "one", w.Body.String())
	})

	t.Run("legacy redirect", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/image/5", nil)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/api/audio/image-main/5", w.Header().Get("Location"))
	})
}

func TestAudioHandler_Debug(t *testing.T) {
	router := setupAudioRouter(t, map[string]string{
		"content-9/9.mp3": "audio",
	})

	t.Run("found", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/debug/9", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "content-9", body["directory"])
		assert.Equal(t, "9.mp3", body["mainAudio"])
		assert.Len(t, body["files"], 1)
		assert.Equal(t, float64(1), body["fileCount"])
	})

	t.Run("missing", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/audio/debug/10", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "10", body["contentId"])
		assert.NotEmpty(t, body["error"])
		assert.Equal(t, []any{"10", "00000010"}, body["idPatterns"])
		assert.NotEmpty(t, body["searchedDirectories"])
		assert.Equal(t, []any{"content-9"}, body["availableDirectories"])
	})
}
