// Package application contains the use cases of the category context.
package application

import (
	"time"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	arepo "github.com/go-arrower/catalog/repository"
)

// App is a dependency injection container.
type App struct {
	CreateCategory app.UseCase[CreateCategoryRequest, CategoryOutput]
	UpdateCategory app.UseCase[UpdateCategoryRequest, CategoryOutput]
	DeleteCategory app.UseCase[DeleteCategoryCommand, struct{}]
	GetCategory    app.UseCase[GetCategoryQuery, CategoryOutput]
	ListCategories app.UseCase[ListCategoriesQuery, arepo.SearchResult[CategoryOutput]]
}

// CategoryOutput is the representation of a category returned by all use cases.
type CategoryOutput struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toOutput(category *domain.Category) CategoryOutput {
	return CategoryOutput{
		ID:          category.ID().String(),
		Name:        category.Name(),
		Description: category.Description(),
		IsActive:    category.IsActive(),
		CreatedAt:   category.CreatedAt(),
	}
}
