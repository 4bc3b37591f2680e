package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the document in a plain JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates the file (and its directory) holding an empty array
// when it does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	// O_EXCL leaves an existing collection alone
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case errors.Is(err, fs.ErrExist):
		return &FileStore{path: path}, nil
	case err != nil:
		return nil, fmt.Errorf("file store: %w", err)
	}

	_, err = f.Write(emptyDocument)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.path)
}

// Save writes to a temporary file next to the target and renames it over the
// old document, so readers see either the old or the new collection.
func (s *FileStore) Save(_ context.Context, doc []byte) error {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return err
	}
	// no-op once the rename went through
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(doc)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	err = os.Chmod(tmp.Name(), 0o644)
	if err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
