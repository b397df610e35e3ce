package repository

import "errors"

var (
	ErrStore = errors.New("could not store repository data")
	ErrLoad  = errors.New("could not load repository data")
)

// Store persists the whole collection of a memory repository at once.
// Load is expected to return an error matching os.ErrNotExist, if nothing was stored under fileName yet.
type Store interface {
	Store(fileName string, data any) error
	Load(fileName string, data any) error
}

var _ Store = (*noopStore)(nil)

type noopStore struct{}

func (noopStore) Store(string, any) error { return nil }

func (noopStore) Load(string, any) error { return nil }
