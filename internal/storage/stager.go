// Package storage moves uploaded files into content directories.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/asmrapi/backend/internal/locator"
	"github.com/asmrapi/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload limits
const (
	MaxFileSize  = 500 << 20
	MaxFileCount = 20
)

// File kinds
const (
	KindAudio = "audio"
	KindImage = "image"
)

// StagedFile is an uploaded file waiting in the temp directory
type StagedFile struct {
	Path         string
	OriginalName string
	Size         int64
	Kind         string
}

// Stager copies multipart uploads into a per-request temp directory
type Stager struct {
	tempDir string
	logger  *zap.Logger
}

// NewStager creates a new stager writing under tempDir
func NewStager(tempDir string, logger *zap.Logger) *Stager {
	return &Stager{tempDir: tempDir, logger: logger}
}

// KindOf classifies a filename by extension. It returns "" for unsupported files.
func KindOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case slices.Contains(locator.AudioExtensions, ext):
		return KindAudio
	case slices.Contains(locator.ImageExtensions, ext):
		return KindImage
	}
	return ""
}

func sanitizeName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: invalid file name %q", models.ErrInvalidInput, name)
	}
	return base, nil
}

// Stage validates and copies the uploaded files. On error nothing is left behind.
func (s *Stager) Stage(headers []*multipart.FileHeader) ([]StagedFile, error) {
	if len(headers) > MaxFileCount {
		return nil, fmt.Errorf("%w: at most %d files can be uploaded", models.ErrInvalidInput, MaxFileCount)
	}

	for _, h := range headers {
		if KindOf(h.Filename) == "" {
			return nil, fmt.Errorf("%w: unsupported file type: %s", models.ErrInvalidInput, h.Filename)
		}
		if h.Size > MaxFileSize {
			return nil, fmt.Errorf("%w: file %s exceeds %d bytes", models.ErrInvalidInput, h.Filename, MaxFileSize)
		}
	}

	dir := filepath.Join(s.tempDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	staged := make([]StagedFile, 0, len(headers))
	for _, h := range headers {
		sf, err := s.stageOne(dir, h)
		if err != nil {
			os.RemoveAll(dir)
			return nil, err
		}
		staged = append(staged, sf)
	}

	return staged, nil
}

func (s *Stager) stageOne(dir string, h *multipart.FileHeader) (StagedFile, error) {
	name, err := sanitizeName(h.Filename)
	if err != nil {
		return StagedFile{}, err
	}

	src, err := h.Open()
	if err != nil {
		return StagedFile{}, fmt.Errorf("failed to open upload %s: %w", name, err)
	}
	defer src.Close()

	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("failed to create staged file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return StagedFile{}, fmt.Errorf("failed to stage %s: %w", name, err)
	}
	if n > MaxFileSize {
		return StagedFile{}, fmt.Errorf("%w: file %s exceeds %d bytes", models.ErrInvalidInput, name, MaxFileSize)
	}

	return StagedFile{Path: path, OriginalName: name, Size: n, Kind: KindOf(name)}, nil
}

// Cleanup removes staged files and their staging directories
func (s *Stager) Cleanup(staged []StagedFile) {
	dirs := map[string]struct{}{}
	for _, f := range staged {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove staged file", zap.String("path", f.Path), zap.Error(err))
		}
		dirs[filepath.Dir(f.Path)] = struct{}{}
	}
	for dir := range dirs {
		os.RemoveAll(dir)
	}
}
