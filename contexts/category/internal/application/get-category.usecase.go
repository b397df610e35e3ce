package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
)

var ErrGetCategoryFailed = errors.New("get category failed")

func NewGetCategoryQueryHandler(repo domain.Repository) app.UseCase[GetCategoryQuery, CategoryOutput] {
	return &getCategoryQueryHandler{repo: repo}
}

type getCategoryQueryHandler struct {
	repo domain.Repository
}

type GetCategoryQuery struct {
	ID string `json:"id" validate:"required,uuid"`
}

// H returns a *shared.NotFoundError, if there is no category with the ID.
func (h *getCategoryQueryHandler) H(ctx context.Context, query GetCategoryQuery) (CategoryOutput, error) {
	id, err := shared.ParseUUID(query.ID)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrGetCategoryFailed, err)
	}

	category, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrGetCategoryFailed, err)
	}

	if category == nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrGetCategoryFailed, shared.NewNotFoundError(id, category))
	}

	return toOutput(category), nil
}
