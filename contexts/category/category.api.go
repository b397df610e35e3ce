// Package category is the intraprocess API of what the category Context is exposing to other Contexts to use.
package category

import (
	"github.com/go-arrower/catalog/contexts/category/internal/application"
)

// API is the api of the category Context.
type API = application.App

type (
	CreateCategoryRequest = application.CreateCategoryRequest
	UpdateCategoryRequest = application.UpdateCategoryRequest
	DeleteCategoryCommand = application.DeleteCategoryCommand
	GetCategoryQuery      = application.GetCategoryQuery
	ListCategoriesQuery   = application.ListCategoriesQuery

	Category = application.CategoryOutput
)

var (
	ErrCreateCategoryFailed = application.ErrCreateCategoryFailed
	ErrUpdateCategoryFailed = application.ErrUpdateCategoryFailed
	ErrDeleteCategoryFailed = application.ErrDeleteCategoryFailed
	ErrGetCategoryFailed    = application.ErrGetCategoryFailed
	ErrListCategoriesFailed = application.ErrListCategoriesFailed
)
