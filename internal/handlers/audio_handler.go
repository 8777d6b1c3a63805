package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/asmrapi/backend/internal/locator"
	"github.com/asmrapi/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentLocator resolves content ids to directories and files on disk
type ContentLocator interface {
	// Method Patterns returns the id spellings tried for contentID, raw first.
	Patterns(contentID string) []string
	// Method ResolveDirectory returns the first existing content directory for contentID.
	ResolveDirectory(contentID string) (string, bool)
	// Method ResolveFile returns the first existing file for the slot inside "dir".
	//
	// "slotKey" is "" (or "full") for the main file and the part number otherwise.
	ResolveFile(dir, contentID, slotKey string, extensions []string) (string, bool)
	// Method ListImages returns the main image and the contiguous image parts of a content.
	ListImages(dir, contentID string) []locator.ImageEntry
	// Method ListDirectory describes every entry of "dir".
	ListDirectory(dir string) ([]locator.FileEntry, error)
	// Method DirectoryListing returns the entry names of "dir", or an empty list.
	DirectoryListing(dir string) []string
	// Method ContentDirectories returns the content directories under the root.
	ContentDirectories() []string
}

// FileStreamer writes resolved files to HTTP responses
type FileStreamer interface {
	ServeAudio(w http.ResponseWriter, r *http.Request, path string)
	ServeImage(w http.ResponseWriter, r *http.Request, path string)
}

// ImageInfo is one entry of the image listing
type ImageInfo struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	IsMain   bool   `json:"isMain"`
	URL      string `json:"url"`
}

const audioPrefix = "/api/audio"

// AudioHandler serves content audio and image files
type AudioHandler struct {
	BaseHandler
	locator  ContentLocator
	streamer FileStreamer
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(loc ContentLocator, streamer FileStreamer, logger *zap.Logger) *AudioHandler {
	return &AudioHandler{
		BaseHandler: BaseHandler{Logger: logger},
		locator:     loc,
		streamer:    streamer,
	}
}

// Prefix returns the mount point of the audio routes
func (h *AudioHandler) Prefix() string {
	return audioPrefix
}

// Routes returns the audio routing table
func (h *AudioHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/images/{contentId}", Handler: h.ListImages},
		{Method: http.MethodGet, Pattern: "/image-part/{contentId}/{imageNumber}", Handler: h.ImagePart},
		{Method: http.MethodHead, Pattern: "/image-part/{contentId}/{imageNumber}", Handler: h.ImagePart},
		{Method: http.MethodGet, Pattern: "/image-main/{contentId}", Handler: h.ImageMain},
		{Method: http.MethodHead, Pattern: "/image-main/{contentId}", Handler: h.ImageMain},
		{Method: http.MethodGet, Pattern: "/image/{contentId}", Handler: h.LegacyImage},
		{Method: http.MethodGet, Pattern: "/audio-full/{contentId}", Handler: h.AudioFull},
		{Method: http.MethodHead, Pattern: "/audio-full/{contentId}", Handler: h.AudioFull},
		{Method: http.MethodGet, Pattern: "/audio-part/{contentId}/{partNumber}", Handler: h.AudioPart},
		{Method: http.MethodHead, Pattern: "/audio-part/{contentId}/{partNumber}", Handler: h.AudioPart},
		{Method: http.MethodGet, Pattern: "/debug/{contentId}", Handler: h.Debug},
	}
}

// contentID reads and validates the contentId parameter
func (h *AudioHandler) contentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "contentId")
	if !locator.IsValidToken(id) {
		h.RespondError(w, http.StatusBadRequest, "invalid content id")
		return "", false
	}
	return id, true
}

// slotParam reads and validates a part or image number parameter
func (h *AudioHandler) slotParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if !locator.IsValidToken(v) {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

// searchedDirectories lists the directory names probed for contentID
func (h *AudioHandler) searchedDirectories(contentID string) []string {
	patterns := h.locator.Patterns(contentID)
	dirs := make([]string, len(patterns))
	for i, p := range patterns {
		dirs[i] = "content-" + p
	}
	return dirs
}

// resolve finds the file for a slot, answering 404 with diagnostics on a miss.
// slotName and slotKey describe the part for the 404 body and are empty for main slots.
func (h *AudioHandler) resolve(w http.ResponseWriter, contentID, kind, slotName, slotKey string, extensions []string) (string, bool) {
	metricSlot := kind + "-main"
	if !locator.IsMainSlot(slotKey) {
		metricSlot = kind + "-part"
	}

	body := map[string]any{
		"contentId":  contentID,
		"idPatterns": h.locator.Patterns(contentID),
	}
	if slotName != "" {
		body[slotName] = slotKey
	}

	dir, ok := h.locator.ResolveDirectory(contentID)
	if !ok {
		metrics.RecordLookup(metricSlot, false)
		body["error"] = "Content directory not found"
		body["searchedDirectories"] = h.searchedDirectories(contentID)
		h.RespondJSON(w, http.StatusNotFound, body)
		return "", false
	}

	path, ok := h.locator.ResolveFile(dir, contentID, slotKey, extensions)
	metrics.RecordLookup(metricSlot, ok)
	if !ok {
		h.Logger.Warn("content file not found",
			zap.String("contentId", contentID),
			zap.String("slot", slotKey),
			zap.String("directory", dir),
		)
		body["error"] = fmt.Sprintf("%s file not found", kindTitle(kind))
		body["directory"] = filepath.Base(dir)
		body["availableFiles"] = h.locator.DirectoryListing(dir)
		h.RespondJSON(w, http.StatusNotFound, body)
		return "", false
	}

	return path, true
}

func kindTitle(kind string) string {
	if kind == "image" {
		return "Image"
	}
	return "Audio"
}

// ListImages handles GET /api/audio/images/{contentId}
// @Summary List content images
// @Description List the main image and the numbered image parts of a content
// @Tags audio
// @Produce json
// @Param contentId path string true "Content ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]any
// @Router /api/audio/images/{contentId} [get]
func (h *AudioHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}

	dir, ok := h.locator.ResolveDirectory(contentID)
	if !ok {
		h.RespondJSON(w, http.StatusNotFound, map[string]any{
			"error":               "Content directory not found",
			"contentId":           contentID,
			"idPatterns":          h.locator.Patterns(contentID),
			"searchedDirectories": h.searchedDirectories(contentID),
		})
		return
	}

	entries := h.locator.ListImages(dir, contentID)
	images := make([]ImageInfo, len(entries))
	for i, e := range entries {
		url := audioPrefix + "/image-main/" + contentID
		if !e.IsMain {
			url = audioPrefix + "/image-part/" + contentID + "/" + strconv.Itoa(e.Index)
		}
		images[i] = ImageInfo{Index: e.Index, Filename: e.Filename, IsMain: e.IsMain, URL: url}
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"contentId":   contentID,
		"directory":   filepath.Base(dir),
		"images":      images,
		"totalImages": len(images),
	})
}

// ImagePart handles GET /api/audio/image-part/{contentId}/{imageNumber}
// @Summary Get image part
// @Tags audio
// @Produce image/jpeg,image/png,image/webp
// @Param contentId path string true "Content ID"
// @Param imageNumber path string true "Image number"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]any
// @Router /api/audio/image-part/{contentId}/{imageNumber} [get]
func (h *AudioHandler) ImagePart(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}
	number, ok := h.slotParam(w, r, "imageNumber")
	if !ok {
		return
	}

	path, ok := h.resolve(w, contentID, "image", "imageNumber", number, locator.ImageExtensions)
	if !ok {
		return
	}
	h.streamer.ServeImage(w, r, path)
}

// ImageMain handles GET /api/audio/image-main/{contentId}
// @Summary Get main image
// @Tags audio
// @Produce image/jpeg,image/png,image/webp
// @Param contentId path string true "Content ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]any
// @Router /api/audio/image-main/{contentId} [get]
func (h *AudioHandler) ImageMain(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}

	path, ok := h.resolve(w, contentID, "image", "", "", locator.ImageExtensions)
	if !ok {
		return
	}
	h.streamer.ServeImage(w, r, path)
}

// LegacyImage handles GET /api/audio/image/{contentId} by redirecting to the main image
func (h *AudioHandler) LegacyImage(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, audioPrefix+"/image-main/"+contentID, http.StatusFound)
}

// AudioFull handles GET /api/audio/audio-full/{contentId}
// @Summary Stream main audio
// @Description Streams the main audio file; honours single byte ranges
// @Tags audio
// @Produce audio/mpeg,audio/mp4,audio/wav,audio/aac
// @Param contentId path string true "Content ID"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 404 {object} map[string]any
// @Failure 416 {object} map[string]string
// @Router /api/audio/audio-full/{contentId} [get]
func (h *AudioHandler) AudioFull(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}

	path, ok := h.resolve(w, contentID, "audio", "", locator.MainSlot, locator.AudioExtensions)
	if !ok {
		return
	}
	h.streamer.ServeAudio(w, r, path)
}

// AudioPart handles GET /api/audio/audio-part/{contentId}/{partNumber}
// @Summary Stream audio part
// @Tags audio
// @Produce audio/mpeg,audio/mp4,audio/wav,audio/aac
// @Param contentId path string true "Content ID"
// @Param partNumber path string true "Part number"
// @Param Range header string false "Byte range"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 404 {object} map[string]any
// @Router /api/audio/audio-part/{contentId}/{partNumber} [get]
func (h *AudioHandler) AudioPart(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}
	part, ok := h.slotParam(w, r, "partNumber")
	if !ok {
		return
	}

	path, ok := h.resolve(w, contentID, "audio", "partNumber", part, locator.AudioExtensions)
	if !ok {
		return
	}
	h.streamer.ServeAudio(w, r, path)
}

// Debug handles GET /api/audio/debug/{contentId}
// @Summary Describe how a content id resolves
// @Tags audio
// @Produce json
// @Param contentId path string true "Content ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/audio/debug/{contentId} [get]
func (h *AudioHandler) Debug(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.contentID(w, r)
	if !ok {
		return
	}

	patterns := h.locator.Patterns(contentID)
	body := map[string]any{
		"contentId":           contentID,
		"idPatterns":          patterns,
		"searchedDirectories": h.searchedDirectories(contentID),
		"audioCandidates":     locator.Candidates(patterns, "", locator.AudioExtensions),
		"imageCandidates":     locator.Candidates(patterns, "", locator.ImageExtensions),
	}

	dir, found := h.locator.ResolveDirectory(contentID)
	if !found {
		h.RespondJSON(w, http.StatusNotFound, map[string]any{
			"error":                "Content directory not found",
			"contentId":            contentID,
			"idPatterns":           patterns,
			"searchedDirectories":  body["searchedDirectories"],
			"availableDirectories": h.locator.ContentDirectories(),
		})
		return
	}

	body["directory"] = filepath.Base(dir)
	files, err := h.locator.ListDirectory(dir)
	if err != nil {
		h.Logger.Warn("failed to list content directory", zap.String("directory", dir), zap.Error(err))
		files = []locator.FileEntry{}
	}
	body["files"] = files
	body["fileCount"] = len(files)

	if path, ok := h.locator.ResolveFile(dir, contentID, "", locator.AudioExtensions); ok {
		body["mainAudio"] = filepath.Base(path)
	}
	body["images"] = h.locator.ListImages(dir, contentID)

	h.RespondJSON(w, http.StatusOK, body)
}
