package repository_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
	arepo "github.com/go-arrower/catalog/repository"
	"github.com/go-arrower/catalog/sqlite"
)

var ctx = context.Background()

func newCategory() *domain.Category {
	return domain.ACategory().Build()
}

func newNamedCategory(name string) *domain.Category {
	return domain.ACategory().WithName(name).Build()
}

func changeCategory(category *domain.Category) {
	_ = category.ChangeName(gofakeit.Name())
	category.Deactivate()
}

func names(categories []*domain.Category) []string {
	n := make([]string, 0, len(categories))
	for _, c := range categories {
		n = append(n, c.Name())
	}

	return n
}

func newSQLiteCategoryRepository(t *testing.T) *repository.CategorySQLRepository {
	t.Helper()

	h, err := sqlite.OpenAndMigrate(ctx, sqlite.Config{DSN: sqlite.InMemory, Migrations: repository.SQLiteMigrations})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Shutdown(ctx) })

	return repository.NewCategorySQLRepository(h.DB, arepo.SQLite)
}
