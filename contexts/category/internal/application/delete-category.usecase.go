package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/contexts/category/internal/domain"
	shared "github.com/go-arrower/catalog/domain"
)

var ErrDeleteCategoryFailed = errors.New("delete category failed")

func NewDeleteCategoryCommandHandler(repo domain.Repository) app.UseCase[DeleteCategoryCommand, struct{}] {
	return &deleteCategoryCommandHandler{repo: repo}
}

type deleteCategoryCommandHandler struct {
	repo domain.Repository
}

type DeleteCategoryCommand struct {
	ID string `json:"id" validate:"required,uuid"`
}

func (h *deleteCategoryCommandHandler) H(ctx context.Context, cmd DeleteCategoryCommand) (struct{}, error) {
	id, err := shared.ParseUUID(cmd.ID)
	if err != nil {
		return struct{}{}, fmt.Errorf("%w: %w", ErrDeleteCategoryFailed, err)
	}

	err = h.repo.Delete(ctx, id)
	if err != nil {
		return struct{}{}, fmt.Errorf("%w: %w", ErrDeleteCategoryFailed, err)
	}

	return struct{}{}, nil
}
