package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

var ErrListCategoriesFailed = errors.New("list categories failed")

// NewListCategoriesQueryHandler returns pages of perPage categories, if a query does not ask for a size.
// If perPage is smaller than one, repository.DefaultPerPage is used.
func NewListCategoriesQueryHandler(
	repo domain.Repository,
	perPage int,
) app.UseCase[ListCategoriesQuery, arepo.SearchResult[CategoryOutput]] {
	if perPage < 1 {
		perPage = arepo.DefaultPerPage
	}

	return &listCategoriesQueryHandler{repo: repo, perPage: perPage}
}

type listCategoriesQueryHandler struct {
	repo    domain.Repository
	perPage int
}

// ListCategoriesQuery filters the categories by name.
// The categories are sorted by name or created_at, the newest come first by default.
type ListCategoriesQuery struct {
	Page    int    `json:"page"     validate:"gte=0"`
	PerPage int    `json:"per_page" validate:"gte=0,lte=100"`
	Sort    string `json:"sort"     validate:"omitempty,oneof=name created_at"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=asc desc ASC DESC"`
	Filter  string `json:"filter"`
}

func (h *listCategoriesQueryHandler) H(
	ctx context.Context,
	query ListCategoriesQuery,
) (arepo.SearchResult[CategoryOutput], error) {
	if query.PerPage == 0 {
		query.PerPage = h.perPage
	}

	result, err := h.repo.Search(ctx, arepo.NewSearchParams(arepo.SearchInput{
		Page:    query.Page,
		PerPage: query.PerPage,
		Sort:    query.Sort,
		SortDir: query.SortDir,
		Filter:  query.Filter,
	}))
	if err != nil {
		return arepo.SearchResult[CategoryOutput]{}, fmt.Errorf("%w: %w", ErrListCategoriesFailed, err)
	}

	return arepo.MapResult(result, toOutput), nil
}
