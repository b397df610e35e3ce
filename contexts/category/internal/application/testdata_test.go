package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
)

var ctx = context.Background()

func ptr[T any](v T) *T {
	return &v
}

func newRepository(t *testing.T, categories ...*domain.Category) *repository.CategoryMemoryRepository {
	t.Helper()

	repo := repository.NewCategoryMemoryRepository()

	err := repo.BulkInsert(ctx, categories)
	require.NoError(t, err)

	return repo
}
