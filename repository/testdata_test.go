package repository_test

import (
	"context"
	"errors"

	"github.com/go-arrower/catalog/domain"
	"github.com/go-arrower/catalog/repository"
	"github.com/go-arrower/catalog/repository/testdata"
)

var (
	ctx            = context.Background()
	errStoreFailed = errors.New("store failed")
)

func newMemoryRepo(opts ...repository.Option) *repository.MemoryRepository[*testdata.Entity, domain.UUID] {
	return repository.NewMemoryRepository[*testdata.Entity, domain.UUID](opts...)
}

// storeSpy records the calls to it, and fails if failStore or failLoad are set.
type storeSpy struct {
	failStore bool
	failLoad  error
	stored    int
	fileName  string
}

func (s *storeSpy) Store(fileName string, _ any) error {
	s.fileName = fileName

	if s.failStore {
		return errStoreFailed
	}

	s.stored++

	return nil
}

func (s *storeSpy) Load(fileName string, _ any) error {
	s.fileName = fileName

	return s.failLoad
}
