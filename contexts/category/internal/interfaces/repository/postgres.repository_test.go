//go:build integration

package repository_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
	shared "github.com/go-arrower/catalog/domain"
	arepo "github.com/go-arrower/catalog/repository"
	"github.com/go-arrower/catalog/tests"
)

var pg *tests.PostgresDocker

func TestMain(m *testing.M) {
	pg = tests.GetPostgresDockerForIntegrationTestingInstance(tests.WithMigrations(repository.PostgresMigrations))

	//
	// Run tests
	code := m.Run()

	pg.Cleanup()
	os.Exit(code)
}

func newPostgresCategoryRepository(t *testing.T, fixtures ...string) *repository.CategorySQLRepository {
	t.Helper()

	handler := pg.NewTestDatabase(fixtures...)
	t.Cleanup(func() { _ = handler.Shutdown(context.Background()) })

	return repository.NewCategorySQLRepository(handler.DB, arepo.Postgres)
}

func TestCategorySQLRepository_Postgres(t *testing.T) {
	t.Parallel()

	arepo.TestSuite(t,
		func(t *testing.T) arepo.Repository[*domain.Category, shared.UUID] {
			return newPostgresCategoryRepository(t)
		},
		newCategory,
		changeCategory,
	)

	arepo.SearchTestSuite(t,
		func(t *testing.T) arepo.SearchableRepository[*domain.Category, shared.UUID] {
			return newPostgresCategoryRepository(t)
		},
		newNamedCategory,
	)
}

func TestCategorySQLRepository_PostgresFixtures(t *testing.T) {
	t.Parallel()

	t.Run("find fixture", func(t *testing.T) {
		t.Parallel()

		repo := newPostgresCategoryRepository(t, "testdata/fixtures/categories.yaml")

		category, err := repo.FindByID(ctx, shared.MustParseUUID("7b9d6a54-1e3c-4f0a-b8e2-5c4d3a2b1f09"))
		require.NoError(t, err)
		assert.Equal(t, "Documentaries", category.Name())
		assert.Nil(t, category.Description())
		assert.False(t, category.IsActive())
		assert.Equal(t, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), category.CreatedAt())
	})

	t.Run("search newest first", func(t *testing.T) {
		t.Parallel()

		repo := newPostgresCategoryRepository(t, "testdata/fixtures/categories.yaml")

		result, err := repo.Search(ctx, arepo.NewSearchParams(arepo.SearchInput{}))
		require.NoError(t, err)
		assert.Equal(t, []string{"Documentaries", "Movies", "Series"}, names(result.Items))
		assert.Equal(t, 1, result.LastPage)
	})

	t.Run("filter escapes like patterns", func(t *testing.T) {
		t.Parallel()

		repo := newPostgresCategoryRepository(t, "testdata/fixtures/categories.yaml")
		_ = repo.Insert(ctx, newNamedCategory("100% Fun"))

		result, err := repo.Search(ctx, arepo.NewSearchParams(arepo.SearchInput{Filter: "%"}))
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Fun"}, names(result.Items))
	})

	t.Run("constraint violation", func(t *testing.T) {
		t.Parallel()

		repo := newPostgresCategoryRepository(t)
		category := newCategory()

		require.NoError(t, repo.Insert(ctx, category))

		err := repo.Insert(ctx, category)
		assert.ErrorIs(t, err, arepo.ErrStorage)
	})

	t.Run("transaction from context", func(t *testing.T) {
		t.Parallel()

		repo := newPostgresCategoryRepository(t)

		tx, err := repo.DB.BeginTx(ctx, &sql.TxOptions{})
		require.NoError(t, err)

		category := newCategory()
		err = repo.Insert(context.WithValue(ctx, arepo.CtxTX, tx), category)
		require.NoError(t, err)

		require.NoError(t, tx.Rollback())

		got, err := repo.FindByID(ctx, category.ID())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
