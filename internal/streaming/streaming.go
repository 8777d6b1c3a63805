// Package streaming serves resolved audio and image files over HTTP.
//
// Audio responses honour single byte-range requests so players can seek.
// Images are always sent whole with a long-lived cache directive.
package streaming

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/asmrapi/backend/internal/metrics"
	"go.uber.org/zap"
)

var (
	// ErrMalformedRange is returned for Range headers that cannot be parsed.
	// Such headers are ignored and the whole file is served.
	ErrMalformedRange = errors.New("malformed range header")
	// ErrUnsatisfiableRange is returned when the range lies outside the file.
	ErrUnsatisfiableRange = errors.New("range not satisfiable")
)

const (
	imageCacheControl = "public, max-age=86400"
	audioCacheControl = "no-cache"
)

var audioContentTypes = map[string]string{
	".m4a": "audio/mp4",
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".aac": "audio/aac",
}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var rangeRegex = regexp.MustCompile(`^bytes=(\d*)-(\d*)$`)

// AudioContentType returns the MIME type for an audio file, defaulting to audio/mpeg.
func AudioContentType(path string) string {
	if ct, ok := audioContentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "audio/mpeg"
}

// ImageContentType returns the MIME type for an image file.
func ImageContentType(path string) string {
	if ct, ok := imageContentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ByteRange is an inclusive byte span.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes in the range.
func (br ByteRange) Length() int64 {
	return br.End - br.Start + 1
}

// ContentRange formats the Content-Range header value for a file of size bytes.
func (br ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, size)
}

// ParseRange parses a single-range header of the form bytes=<start>-[<end>] or bytes=-<suffix>.
// A missing end means the rest of the file; an end past the file is clamped.
func ParseRange(header string, size int64) (ByteRange, error) {
	matches := rangeRegex.FindStringSubmatch(strings.TrimSpace(header))
	if matches == nil {
		return ByteRange{}, ErrMalformedRange
	}
	startStr, endStr := matches[1], matches[2]

	if startStr == "" && endStr == "" {
		return ByteRange{}, ErrMalformedRange
	}

	// Suffix range: last N bytes
	if startStr == "" {
		suffix, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return ByteRange{}, ErrMalformedRange
		}
		if suffix == 0 || size == 0 {
			return ByteRange{}, ErrUnsatisfiableRange
		}
		if suffix > size {
			suffix = size
		}
		return ByteRange{Start: size - suffix, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return ByteRange{}, ErrMalformedRange
	}
	if start >= size {
		return ByteRange{}, ErrUnsatisfiableRange
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return ByteRange{}, ErrMalformedRange
		}
		if end < start {
			return ByteRange{}, ErrUnsatisfiableRange
		}
		if end > size-1 {
			end = size - 1
		}
	}

	return ByteRange{Start: start, End: end}, nil
}

// FileServer writes files to HTTP clients.
type FileServer struct {
	logger *zap.Logger
}

// NewFileServer creates a new file server
func NewFileServer(logger *zap.Logger) *FileServer {
	return &FileServer{logger: logger}
}

// setCORSHeaders keeps an origin already granted by the CORS middleware
func setCORSHeaders(w http.ResponseWriter) {
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Access-Control-Allow-Headers", "Range, Content-Type, Authorization")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Range, Content-Length, Accept-Ranges")
}

func (s *FileServer) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		s.logger.Error("failed to encode error response", zap.Error(err))
	}
}

// ServeAudio streams the audio file at path, honouring a single Range request.
// The file handle is closed on every return path, including client disconnects.
func (s *FileServer) ServeAudio(w http.ResponseWriter, r *http.Request, path string) {
	f, info, err := openRegular(path)
	if err != nil {
		s.logger.Error("failed to open audio file", zap.String("path", path), zap.Error(err))
		metrics.RecordStream("audio", "error", 0)
		s.respondError(w, http.StatusInternalServerError, "failed to stream audio file")
		return
	}
	defer f.Close()

	size := info.Size()
	setCORSHeaders(w)
	w.Header().Set("Content-Type", AudioContentType(path))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Cache-Control", audioCacheControl)

	if header := r.Header.Get("Range"); header != "" {
		br, err := ParseRange(header, size)
		switch {
		case err == nil:
			s.servePartial(w, r, f, br, size)
			return
		case errors.Is(err, ErrUnsatisfiableRange):
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			metrics.RecordStream("audio", "unsatisfiable", 0)
			s.respondError(w, http.StatusRequestedRangeNotSatisfiable, "requested range not satisfiable")
			return
		default:
			s.logger.Debug("ignoring malformed range header", zap.String("range", header))
		}
	}

	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	n, err := io.Copy(w, f)
	s.finish(r, "audio", "full", path, n, err)
}

func (s *FileServer) servePartial(w http.ResponseWriter, r *http.Request, f *os.File, br ByteRange, size int64) {
	if _, err := f.Seek(br.Start, io.SeekStart); err != nil {
		s.logger.Error("failed to seek audio file", zap.String("path", f.Name()), zap.Error(err))
		metrics.RecordStream("audio", "error", 0)
		s.respondError(w, http.StatusInternalServerError, "failed to stream audio file")
		return
	}

	w.Header().Set("Content-Range", br.ContentRange(size))
	w.Header().Set("Content-Length", strconv.FormatInt(br.Length(), 10))
	w.WriteHeader(http.StatusPartialContent)
	if r.Method == http.MethodHead {
		return
	}

	n, err := io.CopyN(w, f, br.Length())
	s.finish(r, "audio", "partial", f.Name(), n, err)
}

// ServeImage sends the whole image at path.
func (s *FileServer) ServeImage(w http.ResponseWriter, r *http.Request, path string) {
	f, info, err := openRegular(path)
	if err != nil {
		s.logger.Error("failed to open image file", zap.String("path", path), zap.Error(err))
		metrics.RecordStream("image", "error", 0)
		s.respondError(w, http.StatusInternalServerError, "failed to serve image")
		return
	}
	defer f.Close()

	setCORSHeaders(w)
	w.Header().Set("Content-Type", ImageContentType(path))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Cache-Control", imageCacheControl)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	n, err := io.Copy(w, f)
	s.finish(r, "image", "full", path, n, err)
}

// finish records the outcome of a copy. Headers are already sent, so errors are only logged.
func (s *FileServer) finish(r *http.Request, kind, outcome, path string, n int64, err error) {
	if err != nil {
		if r.Context().Err() != nil {
			s.logger.Debug("client disconnected during stream",
				zap.String("path", path),
				zap.Int64("bytes", n),
			)
		} else {
			s.logger.Error("failed to stream file",
				zap.String("path", path),
				zap.Int64("bytes", n),
				zap.Error(err),
			)
		}
		metrics.RecordStream(kind, "error", n)
		return
	}
	metrics.RecordStream(kind, outcome, n)
}

func openRegular(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}
	return f, info, nil
}
