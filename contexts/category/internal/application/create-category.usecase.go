package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
)

var ErrCreateCategoryFailed = errors.New("create category failed")

func NewCreateCategoryRequestHandler(repo domain.Repository) app.UseCase[CreateCategoryRequest, CategoryOutput] {
	return &createCategoryRequestHandler{repo: repo}
}

type createCategoryRequestHandler struct {
	repo domain.Repository
}

// CreateCategoryRequest creates an active category, if IsActive is not given.
type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=250"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *createCategoryRequestHandler) H(ctx context.Context, req CreateCategoryRequest) (CategoryOutput, error) {
	category, err := domain.Create(domain.CreateCategoryProps{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrCreateCategoryFailed, err)
	}

	err = h.repo.Insert(ctx, category)
	if err != nil {
		return CategoryOutput{}, fmt.Errorf("%w: %w", ErrCreateCategoryFailed, err)
	}

	return toOutput(category), nil
}
