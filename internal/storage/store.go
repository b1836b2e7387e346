// Package storage persists small JSON artifacts under a single data
// directory. Files are human-readable and written atomically.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NumbersFile is the on-disk name of the stored numbers document.
const NumbersFile = "numbers.json"

// Store reads and writes JSON documents inside one directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a file inside the data directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

type numbersDocument struct {
	Numbers []float64 `json:"numbers"`
}

// SaveNumbers writes the list to numbers.json, replacing any previous
// content. Returns the path written.
func (s *Store) SaveNumbers(numbers []float64) (string, error) {
	doc := numbersDocument{Numbers: numbers}
	if doc.Numbers == nil {
		doc.Numbers = []float64{}
	}

	if err := s.WriteJSON(NumbersFile, doc); err != nil {
		return "", err
	}
	return s.Path(NumbersFile), nil
}

// LoadNumbers reads numbers.json. A missing file or unreadable content
// yields an empty list, never an error: stored data is a convenience, not
// a source of truth.
func (s *Store) LoadNumbers() []float64 {
	var doc numbersDocument
	if err := s.ReadJSON(NumbersFile, &doc); err != nil {
		return []float64{}
	}
	if doc.Numbers == nil {
		return []float64{}
	}
	return doc.Numbers
}

// WriteJSON marshals v with two-space indentation and writes it to name
// inside the data directory via a temp file and rename.
func (s *Store) WriteJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	path := s.Path(name)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}

	return nil
}

// ReadJSON reads name from the data directory and unmarshals it into out.
func (s *Store) ReadJSON(name string, out interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}
