package repository

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

// NewCategoryMemoryRepository returns a domain.Repository keeping all categories in memory.
// It keeps copies of the categories, so like the SQL repository, a change to a category
// is only stored by Insert or Update.
// Use the arepo options to persist them with a Store.
func NewCategoryMemoryRepository(opts ...arepo.Option) *CategoryMemoryRepository {
	opts = append([]arepo.Option{arepo.WithClone((*domain.Category).Clone)}, opts...)

	return &CategoryMemoryRepository{
		MemorySearchableRepository: arepo.NewMemorySearchableRepository(
			arepo.NewMemoryRepository[*domain.Category, shared.UUID](opts...),
			arepo.WithFilter(matchName),
			arepo.WithSortableFields(map[string]arepo.Comparator[*domain.Category]{
				domain.SortByName:      arepo.SortBy((*domain.Category).Name),
				domain.SortByCreatedAt: arepo.SortByTime((*domain.Category).CreatedAt),
			}),
			arepo.WithDefaultSort[*domain.Category](domain.SortByCreatedAt, arepo.SortDesc),
		),
	}
}

type CategoryMemoryRepository struct {
	*arepo.MemorySearchableRepository[*domain.Category, shared.UUID]
}

var _ domain.Repository = (*CategoryMemoryRepository)(nil)

// matchName reports whether the name of category contains filter, ignoring the case.
func matchName(category *domain.Category, filter string) bool {
	return strings.Contains(cases.Fold().String(category.Name()), cases.Fold().String(filter))
}
