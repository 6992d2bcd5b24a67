package media

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/kapu/ai-creative-studio-go/internal/domain"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileStore writes generated media under a directory. Every Save produces a
// new file; existing files are never overwritten.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data to <dir>/<requestID>-<uuid><ext> and returns the path and size.
func (s *FileStore) Save(requestID, mimeType string, data []byte) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", 0, fmt.Errorf("create output dir: %w", err)
	}

	name := unsafeNameChars.ReplaceAllString(requestID, "_")
	if name == "" {
		name = "media"
	}
	name = fmt.Sprintf("%s-%s%s", name, uuid.NewString(), extensionFor(mimeType))
	finalPath := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".partial-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	written, err := tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return "", 0, fmt.Errorf("write media: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", 0, fmt.Errorf("sync media: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("close media: %w", err)
	}

	// Link fails when the target exists, so a name collision cannot clobber a result.
	if err := os.Link(tmpPath, finalPath); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("publish media: %w", err)
	}
	cleanup()

	return finalPath, int64(written), nil
}

// SaveImage writes img as PNG, re-encoding when the provider returned another format.
func (s *FileStore) SaveImage(requestID string, img *domain.GeneratedImage) (string, error) {
	if img == nil || img.Image == nil {
		return "", fmt.Errorf("no image to save")
	}

	data := img.Bytes
	if img.MIMEType != "image/png" || len(data) == 0 {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.Image); err != nil {
			return "", fmt.Errorf("encode png: %w", err)
		}
		data = buf.Bytes()
	}

	path, _, err := s.Save(requestID, "image/png", data)
	return path, err
}

func extensionFor(mimeType string) string {
	if mime := mimetype.Lookup(mimeType); mime != nil && mime.Extension() != "" {
		return mime.Extension()
	}
	return ".bin"
}
