package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Store = (*JSONStore)(nil)

// JSONStore persists the data of a repository as an indented JSON file in a directory.
// It relies on the json (un)marshalling of the entities, so entities that validate
// in UnmarshalJSON are validated again when they are loaded.
//
// CAUTION: This is only intended for local development and prototyping.
type JSONStore struct {
	dir string

	mu sync.Mutex
}

// NewJSONStore panics, if the directory path can not be created.
func NewJSONStore(path string) *JSONStore {
	err := os.MkdirAll(path, 0o750)
	if err != nil {
		panic("could not create path: " + path + ": " + err.Error())
	}

	return &JSONStore{dir: path, mu: sync.Mutex{}}
}

// Store writes data into a temporary file first, so a failed write leaves the previous file intact.
func (s *JSONStore) Store(fileName string, data any) error {
	if data == nil {
		return nil
	}

	b, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // after the rename the file is gone

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, fileName)); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *JSONStore) Load(fileName string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, fileName))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return nil
}
