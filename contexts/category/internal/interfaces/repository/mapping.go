package repository

import (
	"time"

	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
)

// CategoryModel is the row of a category in the categories table.
type CategoryModel struct {
	CategoryID  string    `db:"category_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// CategoryModelMapper converts between a Category and its CategoryModel.
type CategoryModelMapper struct{}

// ToEntity validates the row with the same rules as a new category,
// it returns a *shared.ValidationError or a *shared.InvalidUUIDError for invalid rows.
func (CategoryModelMapper) ToEntity(model CategoryModel) (*domain.Category, error) {
	id, err := shared.ParseUUID(model.CategoryID)
	if err != nil {
		return nil, err
	}

	return domain.Restore(domain.CategoryProps{
		ID:          id,
		Name:        model.Name,
		Description: model.Description,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
	})
}

func (CategoryModelMapper) ToModel(category *domain.Category) CategoryModel {
	return CategoryModel{
		CategoryID:  category.ID().String(),
		Name:        category.Name(),
		Description: category.Description(),
		IsActive:    category.IsActive(),
		CreatedAt:   category.CreatedAt(),
	}
}
