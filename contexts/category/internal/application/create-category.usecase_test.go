package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/contexts/category/internal/application"
	shared "github.com/go-arrower/catalog/domain"
)

func TestCreateCategoryRequestHandler_H(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		repo := newRepository(t)
		handler := application.NewCreateCategoryRequestHandler(repo)

		out, err := handler.H(ctx, application.CreateCategoryRequest{Name: "Movies", Description: ptr("Films")})
		require.NoError(t, err)
		assert.Equal(t, "Movies", out.Name)
		assert.Equal(t, ptr("Films"), out.Description)
		assert.True(t, out.IsActive, "active by default")
		assert.False(t, out.CreatedAt.IsZero())

		stored, err := repo.FindByID(ctx, shared.MustParseUUID(out.ID))
		assert.NoError(t, err)
		assert.Equal(t, "Movies", stored.Name())
	})

	t.Run("inactive", func(t *testing.T) {
		t.Parallel()

		handler := application.NewCreateCategoryRequestHandler(newRepository(t))

		out, err := handler.H(ctx, application.CreateCategoryRequest{Name: "Movies", IsActive: ptr(false)})
		assert.NoError(t, err)
		assert.False(t, out.IsActive)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		repo := newRepository(t)
		handler := application.NewCreateCategoryRequestHandler(repo)

		_, err := handler.H(ctx, application.CreateCategoryRequest{Name: ""})
		assert.ErrorIs(t, err, application.ErrCreateCategoryFailed)
		assert.ErrorIs(t, err, shared.ErrValidation)

		all, _ := repo.FindAll(ctx)
		assert.Empty(t, all)
	})
}
