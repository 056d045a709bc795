// Package upload is the file-storage collaborator: it writes uploaded
// files to disk and issues the URL path clients embed in messages. The hub
// only ever forwards that path string; it never inspects file content.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads/"

type Store struct {
	dir string
}

// NewStore ensures the uploads directory exists.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save stores the content under a unique filename derived from the original
// name and returns the URL path it will be served at. Any path components
// in the client-supplied name are discarded.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	filename := uuid.NewString() + "-" + filepath.Base(name)
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return URLPrefix + filename, nil
}

// Dir returns the directory backing the store, for static serving.
func (s *Store) Dir() string {
	return s.dir
}
