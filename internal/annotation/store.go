package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoDocument is returned by Load when the document file does not exist.
var ErrNoDocument = errors.New("annotation document not found")

// Store persists a Document.
type Store interface {
	Load() (*Document, error) // returns ErrNoDocument if the file is missing
	Save(d *Document) error
	Path() string
}

// fileStore is the Store backed by a single JSON file.
type fileStore struct {
	path string
}

// NewFileStore returns a Store reading and writing path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (f *fileStore) Path() string { return f.path }

// Load reads and validates the document.
func (f *fileStore) Load() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to read annotation document: %w", err)
	}
	return Parse(data)
}

// Save writes the document atomically via a temp file + os.Rename.
func (f *fileStore) Save(d *Document) error {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to save annotation document: %w", err)
	}

	// Same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tracklet-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to save annotation document: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save annotation document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save annotation document: %w", err)
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to save annotation document: %w", err)
	}
	return nil
}
