package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

func NewTracedCategoryRepository(traceProvider trace.TracerProvider, repo domain.Repository) *TracedCategoryRepository {
	return &TracedCategoryRepository{
		tracer: traceProvider.Tracer("catalog.category.repository"),
		repo:   repo,
	}
}

// TracedCategoryRepository starts a span for every call to the repository it decorates.
type TracedCategoryRepository struct {
	tracer trace.Tracer
	repo   domain.Repository
}

var _ domain.Repository = (*TracedCategoryRepository)(nil)

func (repo *TracedCategoryRepository) start(ctx context.Context, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return repo.tracer.Start(ctx, "repo", trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("method", method)}, attrs...)...,
	))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func (repo *TracedCategoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	ctx, span := repo.start(ctx, "Insert", attribute.String("category_id", category.ID().String()))

	err := repo.repo.Insert(ctx, category)
	end(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) BulkInsert(ctx context.Context, categories []*domain.Category) error {
	ctx, span := repo.start(ctx, "BulkInsert", attribute.Int("count", len(categories)))

	err := repo.repo.BulkInsert(ctx, categories)
	end(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	ctx, span := repo.start(ctx, "Update", attribute.String("category_id", category.ID().String()))

	err := repo.repo.Update(ctx, category)
	end(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) Delete(ctx context.Context, id shared.UUID) error {
	ctx, span := repo.start(ctx, "Delete", attribute.String("category_id", id.String()))

	err := repo.repo.Delete(ctx, id)
	end(span, err)

	return err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) FindByID(ctx context.Context, id shared.UUID) (*domain.Category, error) {
	ctx, span := repo.start(ctx, "FindByID", attribute.String("category_id", id.String()))

	category, err := repo.repo.FindByID(ctx, id)
	end(span, err)

	return category, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	ctx, span := repo.start(ctx, "FindAll")

	categories, err := repo.repo.FindAll(ctx)
	end(span, err)

	return categories, err //nolint:wrapcheck // this is decorator
}

func (repo *TracedCategoryRepository) SortableFields() []string {
	return repo.repo.SortableFields()
}

func (repo *TracedCategoryRepository) Search(ctx context.Context, params arepo.SearchParams) (arepo.SearchResult[*domain.Category], error) {
	ctx, span := repo.start(ctx, "Search",
		attribute.Int("page", params.Page()),
		attribute.Int("per_page", params.PerPage()),
		attribute.String("sort", params.Sort()),
		attribute.String("sort_dir", string(params.SortDir())),
		attribute.String("filter", params.Filter()),
	)

	result, err := repo.repo.Search(ctx, params)
	if err == nil {
		span.SetAttributes(attribute.Int("total", result.Total))
	}

	end(span, err)

	return result, err //nolint:wrapcheck // this is decorator
}
