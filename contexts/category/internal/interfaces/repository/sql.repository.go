package repository

import (
	"database/sql"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

// NewCategorySQLRepository returns a domain.Repository storing categories in the categories table.
// The schema is created by PostgresMigrations or SQLiteMigrations, depending on dialect.
func NewCategorySQLRepository(db *sql.DB, dialect arepo.Dialect) *CategorySQLRepository {
	return &CategorySQLRepository{
		SQLRepository: arepo.NewSQLRepository[*domain.Category, shared.UUID, CategoryModel](
			db,
			dialect,
			CategoryModelMapper{},
			arepo.WithTable("categories"),
			arepo.WithIDColumn("category_id"),
			arepo.WithFilterColumns("name"),
			arepo.WithSortableColumns(map[string]string{
				domain.SortByName:      "name",
				domain.SortByCreatedAt: "created_at",
			}),
			arepo.WithDefaultOrder(domain.SortByCreatedAt, arepo.SortDesc),
		),
	}
}

type CategorySQLRepository struct {
	*arepo.SQLRepository[*domain.Category, shared.UUID, CategoryModel]
}

var _ domain.Repository = (*CategorySQLRepository)(nil)
