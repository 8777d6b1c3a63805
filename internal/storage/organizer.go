package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asmrapi/backend/internal/models"
	"go.uber.org/zap"
)

// DirectoryResolver maps a directory id to its content directory path
type DirectoryResolver interface {
	DirectoryPath(dirID string) string
}

// Organizer places staged uploads into content directories and removes them again
type Organizer struct {
	dirs   DirectoryResolver
	logger *zap.Logger
}

// NewOrganizer creates a new organizer
func NewOrganizer(dirs DirectoryResolver, logger *zap.Logger) *Organizer {
	return &Organizer{dirs: dirs, logger: logger}
}

// Place moves staged files into content-<dirID>, keeping their original names
func (o *Organizer) Place(dirID string, staged []StagedFile) (*models.FileInfo, error) {
	dir := o.dirs.DirectoryPath(dirID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	info := &models.FileInfo{
		ContentDir: filepath.Base(dir),
		AudioFiles: []string{},
		ImageFiles: []string{},
	}

	for _, f := range staged {
		dest := filepath.Join(dir, f.OriginalName)
		if err := moveFile(f.Path, dest); err != nil {
			return nil, fmt.Errorf("failed to move %s: %w", f.OriginalName, err)
		}
		switch f.Kind {
		case KindAudio:
			info.AudioFiles = append(info.AudioFiles, f.OriginalName)
		case KindImage:
			info.ImageFiles = append(info.ImageFiles, f.OriginalName)
		}
		info.TotalFiles++
	}

	o.logger.Info("content files organized",
		zap.String("directory", dir),
		zap.Int("audioFiles", len(info.AudioFiles)),
		zap.Int("imageFiles", len(info.ImageFiles)),
	)

	return info, nil
}

// Remove deletes a content directory recursively
func (o *Organizer) Remove(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove content directory: %w", err)
	}
	o.logger.Info("content directory removed", zap.String("directory", dir))
	return nil
}

// moveFile renames src to dst, copying when they are on different devices
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile writes to a temp file in the destination directory and renames it into place
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
