package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	"github.com/go-arrower/catalog/contexts/category/internal/interfaces/repository"
	shared "github.com/go-arrower/catalog/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

func TestTracedCategoryRepository(t *testing.T) {
	t.Parallel()

	arepo.TestSuite(t,
		func(*testing.T) arepo.Repository[*domain.Category, shared.UUID] {
			return repository.NewTracedCategoryRepository(
				sdktrace.NewTracerProvider(),
				repository.NewCategoryMemoryRepository(),
			)
		},
		newCategory,
		changeCategory,
	)

	t.Run("span per call", func(t *testing.T) {
		t.Parallel()

		recorder := tracetest.NewSpanRecorder()
		repo := repository.NewTracedCategoryRepository(
			sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
			repository.NewCategoryMemoryRepository(),
		)

		category := newCategory()

		_ = repo.Insert(ctx, category)
		_, _ = repo.FindByID(ctx, category.ID())
		_, _ = repo.Search(ctx, arepo.NewSearchParams(arepo.SearchInput{Filter: "x"}))

		spans := recorder.Ended()
		require.Len(t, spans, 3)

		for _, span := range spans {
			assert.Equal(t, "repo", span.Name())
		}

		assert.Contains(t, spans[0].Attributes(), attribute.String("method", "Insert"))
		assert.Contains(t, spans[0].Attributes(), attribute.String("category_id", category.ID().String()))
		assert.Contains(t, spans[1].Attributes(), attribute.String("method", "FindByID"))
		assert.Contains(t, spans[2].Attributes(), attribute.String("filter", "x"))
		assert.Contains(t, spans[2].Attributes(), attribute.Int("total", 0))
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()

		recorder := tracetest.NewSpanRecorder()
		repo := repository.NewTracedCategoryRepository(
			sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
			repository.NewCategoryMemoryRepository(),
		)

		err := repo.Delete(ctx, shared.NewUUID())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("sortable fields", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewTracedCategoryRepository(sdktrace.NewTracerProvider(), repository.NewCategoryMemoryRepository())
		assert.Equal(t, []string{"created_at", "name"}, repo.SortableFields())
	})
}
