package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
)

var ErrUpdateCategoryFailed = errors.New("update category failed")

func NewUpdateCategoryRequestHandler(repo domain.Repository) app.UseCase[UpdateCategoryRequest, CategoryOutput] {
	return &updateCategoryRequestHandler{repo: repo}
}

type updateCategoryRequestHandler struct {
	repo domain.Repository
}

// UpdateCategoryRequest changes only the fields that are given.
// ClearDescription removes the description and takes precedence over Description.
type UpdateCategoryRequest struct {
	ID               string  `json:"id"                validate:"required,uuid"`
	Name             *string `json:"name"              validate:"omitempty,max=250"`
	Description      *string `json:"description"`
	ClearDescription bool    `json:"clear_description"`
	IsActive         *bool   `json:"is_active"`
}

func (h *updateCategoryRequestHandler) H(ctx context.Context, req UpdateCategoryRequest) (CategoryOutput, error) {
	id, err := shared.ParseUUID(req.ID)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, err)
	}

	category, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, err)
	}

	if category == nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, shared.NewNotFoundError(id, category))
	}

	if req.Name != nil {
		if err := category.ChangeName(*req.Name); err != nil {
			return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, err)
		}
	}

	switch {
	case req.ClearDescription:
		err = category.ChangeDescription(nil)
	case req.Description != nil:
		err = category.ChangeDescription(req.Description)
	}

	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, err)
	}

	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	err = h.repo.Update(ctx, category)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrUpdateCategoryFailed, err)
	}

	return toOutput(category), nil
}
