package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/catalog/app"
	"github.com/go-arrower/catalog/domain"
)

func TestValidatingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()

		useCase := app.NewValidated(nil, app.Func[input, response](func(ctx context.Context, _ input) (response, error) {
			assert.True(t, app.PassedValidation(ctx))
			return response{Value: "ok"}, nil
		}))

		out, err := useCase.H(ctx, validInput)
		assert.NoError(t, err)
		assert.Equal(t, "ok", out.Value)
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		useCase := app.NewValidated(nil, app.Func[input, response](func(context.Context, input) (response, error) {
			assert.Fail(t, "use case should not be called")
			return response{}, nil
		}))

		out, err := useCase.H(ctx, input{Name: "too long", Email: "no-email"})
		assert.Empty(t, out)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var validationErr *domain.ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Equal(t, domain.FieldsErrors{
			"name":  {"name must be shorter than or equal to 5 characters"},
			"email": {"email failed on email"},
			"Count": {"Count must be at least 1"},
		}, validationErr.Errors)
	})

	t.Run("required", func(t *testing.T) {
		t.Parallel()

		useCase := app.NewValidated(nil, app.TestSuccessUseCase[input, response]())

		_, err := useCase.H(ctx, input{Count: 1})

		var validationErr *domain.ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Equal(t, []string{"name should not be empty"}, validationErr.Errors["name"])
	})

	t.Run("custom validator", func(t *testing.T) {
		t.Parallel()

		useCase := app.NewValidated(validator.New(), app.TestSuccessUseCase[input, response]())

		_, err := useCase.H(ctx, input{Count: 1})

		var validationErr *domain.ValidationError
		assert.True(t, errors.As(err, &validationErr))
		assert.Contains(t, validationErr.Errors, "Name", "without NewValidator the struct field name is used")
	})

	t.Run("not a struct", func(t *testing.T) {
		t.Parallel()

		useCase := app.NewValidated(nil, app.TestSuccessUseCase[string, response]())

		_, err := useCase.H(ctx, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPassedValidation(t *testing.T) {
	t.Parallel()

	assert.False(t, app.PassedValidation(ctx))
	assert.True(t, app.PassedValidation(context.WithValue(ctx, app.CtxValidated, true)))
}
