// Package locator resolves content identifiers to on-disk directories and asset files.
//
// Content lives under a single root as content-<id>/ directories. Files inside are named
// <pattern><ext> for the main slot and <pattern>_<slot><ext> for numbered parts, where a
// pattern is either the raw id or the id zero-padded to a fixed width. Older uploads used
// both conventions, so every lookup tries each pattern before giving up.
package locator

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultPadWidth is the zero-padding width used by legacy uploads.
const DefaultPadWidth = 8

const dirPrefix = "content-"

// MainSlot is the slot key clients use for the main audio file.
const MainSlot = "full"

// AudioExtensions lists accepted audio extensions in preference order.
var AudioExtensions = []string{".m4a", ".mp3", ".wav", ".aac"}

// ImageExtensions lists accepted image extensions in preference order.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

var tokenRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExistsFunc reports whether a path exists.
type ExistsFunc func(path string) bool

// ImageEntry is one image found by ListImages.
type ImageEntry struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	IsMain   bool   `json:"isMain"`
}

// FileEntry describes a file inside a content directory.
type FileEntry struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	IsFile    bool   `json:"isFile"`
	Extension string `json:"extension"`
}

// Locator finds content directories and files under a root directory.
// It keeps no state between calls, so changes on disk are visible immediately.
type Locator struct {
	root     string
	padWidth int
	exists   ExistsFunc
	logger   *zap.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithPadWidth overrides the zero-padding width.
func WithPadWidth(width int) Option {
	return func(l *Locator) {
		if width > 0 {
			l.padWidth = width
		}
	}
}

// WithExistsFunc replaces the filesystem existence check.
func WithExistsFunc(fn ExistsFunc) Option {
	return func(l *Locator) {
		if fn != nil {
			l.exists = fn
		}
	}
}

// NewLocator creates a locator rooted at root
func NewLocator(root string, logger *zap.Logger, opts ...Option) *Locator {
	l := &Locator{
		root:     root,
		padWidth: DefaultPadWidth,
		exists:   pathExists,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsValidToken reports whether s is safe to use as a content id or slot key.
func IsValidToken(s string) bool {
	return tokenRegex.MatchString(s)
}

// IsMainSlot reports whether slotKey addresses the main file rather than a part.
func IsMainSlot(slotKey string) bool {
	return slotKey == "" || slotKey == MainSlot
}

// IDPatterns returns the filename stems a content id may appear under:
// the id as given, then the id left-padded with zeros to width.
// Duplicates are removed while keeping order.
func IDPatterns(contentID string, width int) []string {
	patterns := []string{contentID}
	if len(contentID) < width {
		padded := strings.Repeat("0", width-len(contentID)) + contentID
		patterns = append(patterns, padded)
	}
	return patterns
}

// Candidates builds every candidate filename for a slot.
// Iteration is pattern-major, extension-minor.
func Candidates(patterns []string, slotKey string, extensions []string) []string {
	candidates := make([]string, 0, len(patterns)*len(extensions))
	for _, pattern := range patterns {
		stem := pattern
		if !IsMainSlot(slotKey) {
			stem = pattern + "_" + slotKey
		}
		for _, ext := range extensions {
			candidates = append(candidates, stem+ext)
		}
	}
	return candidates
}

// Root returns the directory that holds all content directories.
func (l *Locator) Root() string {
	return l.root
}

// PadWidth returns the configured padding width.
func (l *Locator) PadWidth() int {
	return l.padWidth
}

// Patterns returns the id patterns for contentID using the configured width.
func (l *Locator) Patterns(contentID string) []string {
	return IDPatterns(contentID, l.padWidth)
}

// DirectoryPath returns the directory a content id is stored under, without checking it exists.
func (l *Locator) DirectoryPath(dirID string) string {
	return filepath.Join(l.root, dirPrefix+dirID)
}

// ResolveDirectory returns the first existing content directory for contentID.
// On a miss the content directories that do exist are logged.
func (l *Locator) ResolveDirectory(contentID string) (string, bool) {
	for _, pattern := range l.Patterns(contentID) {
		dir := l.DirectoryPath(pattern)
		if l.exists(dir) {
			return dir, true
		}
	}

	l.logger.Warn("content directory not found",
		zap.String("contentId", contentID),
		zap.Strings("idPatterns", l.Patterns(contentID)),
		zap.Strings("availableDirectories", l.ContentDirectories()),
	)
	return "", false
}

// ResolveFile returns the first existing file for the slot inside dir.
func (l *Locator) ResolveFile(dir, contentID, slotKey string, extensions []string) (string, bool) {
	for _, name := range Candidates(l.Patterns(contentID), slotKey, extensions) {
		path := filepath.Join(dir, name)
		if l.exists(path) {
			return path, true
		}
	}
	return "", false
}

// ListImages returns the main image (index 0) if present, followed by
// image parts 1, 2, ... up to the first missing index.
func (l *Locator) ListImages(dir, contentID string) []ImageEntry {
	images := []ImageEntry{}

	if path, ok := l.ResolveFile(dir, contentID, "", ImageExtensions); ok {
		images = append(images, ImageEntry{Index: 0, Filename: filepath.Base(path), IsMain: true})
	}

	for i := 1; ; i++ {
		path, ok := l.ResolveFile(dir, contentID, strconv.Itoa(i), ImageExtensions)
		if !ok {
			break
		}
		images = append(images, ImageEntry{Index: i, Filename: filepath.Base(path)})
	}

	return images
}

// ListDirectory describes every entry in dir.
func (l *Locator) ListDirectory(dir string) ([]FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		fe := FileEntry{
			Name:      entry.Name(),
			IsFile:    entry.Type().IsRegular(),
			Extension: filepath.Ext(entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			fe.Size = info.Size()
		}
		files = append(files, fe)
	}
	return files, nil
}

// DirectoryListing returns the names of the entries in dir.
// Read errors yield an empty list.
func (l *Locator) DirectoryListing(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug("failed to list directory", zap.String("directory", dir), zap.Error(err))
		return []string{}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// ContentDirectories returns the names of content directories under the root.
// Read errors yield an empty list.
func (l *Locator) ContentDirectories() []string {
	names := []string{}
	for _, name := range l.DirectoryListing(l.root) {
		if strings.HasPrefix(name, dirPrefix) {
			names = append(names, name)
		}
	}
	return names
}
