// Package uploads stores profile file uploads (images, resumes,
// certifications) on local disk and serves the paths the API embeds in
// profiles.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload limits, matching what the board's clients are built against.
const (
	MaxFileSize        = 10 << 20 // 10MB per file
	MaxFilesPerRequest = 7
	MaxCertifications  = 5
)

// allowedTypes are the accepted upload MIME types.
var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ErrInvalidFileType is returned for uploads outside the allowed MIME types.
var ErrInvalidFileType = fmt.Errorf("invalid file type")

// ErrFileTooLarge is returned for uploads over MaxFileSize.
var ErrFileTooLarge = fmt.Errorf("file exceeds %d bytes", MaxFileSize)

// Storage saves uploaded files under a base directory. Stored paths returned
// to callers are relative ("uploads/<name>") so they can be served from the
// static file route and embedded in profiles directly.
type Storage struct {
	dir string
}

// NewStorage creates the upload directory if needed and returns a Storage
// rooted there.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the base directory files are stored in.
func (s *Storage) Dir() string {
	return s.dir
}

// Save validates and stores one uploaded file, returning the relative path
// to embed in the profile. File names are unique per upload:
// <field>-<millis>-<suffix><ext>.
func (s *Storage) Save(field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return "", ErrInvalidFileType
	}

	name := UniqueName(field, fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path.Join("uploads", name), nil
}

// Remove deletes a previously stored file given its relative path. Missing
// files and paths outside the storage dir are ignored: removal is cleanup,
// not correctness.
func (s *Storage) Remove(relPath string) {
	name := path.Base(relPath)
	if name == "." || name == "/" || name == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, name))
}

// UniqueName builds a collision-free stored file name preserving the
// original extension.
func UniqueName(field, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), suffix, ext)
}
