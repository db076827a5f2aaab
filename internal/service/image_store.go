package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"discussion_board/internal/apperr"

	"github.com/google/uuid"
)

// DiskImageStore writes uploaded attachments under a single directory and
// hands back the relative path stored on the thread row.
type DiskImageStore struct {
	dir string
}

var _ ImageStore = (*DiskImageStore)(nil)

// NewDiskImageStore ensures the upload directory exists.
func NewDiskImageStore(dir string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &DiskImageStore{dir: dir}, nil
}

// Save stores the upload under a fresh UUID name, keeping the original
// extension. A filename without an extension is rejected before any write.
func (s *DiskImageStore) Save(filename string, data io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", apperr.Validation("uploaded file has no extension")
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file %q: %w", name, err)
	}
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write image file %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("close image file %q: %w", name, err)
	}
	return name, nil
}

// Remove deletes a previously stored attachment. Used to undo the file write
// when the thread insert fails afterwards.
func (s *DiskImageStore) Remove(path string) error {
	return os.Remove(filepath.Join(s.dir, path))
}
