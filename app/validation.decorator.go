package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/go-arrower/catalog/ctx"
	"github.com/go-arrower/catalog/domain"
)

const CtxValidated ctx.CTXKey = "catalog.validated"

// PassedValidation reports whether the input of a use case passed the validation of NewValidated.
// Use it in case you want to ensure the decorator was called before continuing with your business logic.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxValidated).(bool); ok {
		return v
	}

	return false
}

// NewValidator returns a validator reporting fields by their json name.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		if name == "" {
			return field.Name
		}

		return name
	})

	return validate
}

// NewValidated validates the input with the `validate` struct tags, before useCase is called.
// Violations are returned as *domain.ValidationError.
// If validate is nil, NewValidator is used.
func NewValidated[In any, Out any](validate *validator.Validate, useCase UseCase[In, Out]) UseCase[In, Out] {
	if validate == nil {
		validate = NewValidator()
	}

	return &validatingDecorator[In, Out]{
		validate: validate,
		base:     useCase,
	}
}

type validatingDecorator[In any, Out any] struct {
	validate *validator.Validate
	base     UseCase[In, Out]
}

func (d *validatingDecorator[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn,lll // valid use of generics
	err := d.validate.Struct(in)
	if err != nil {
		return *new(Out), toValidationError(err)
	}

	return d.base.H(context.WithValue(ctx, CtxValidated, true), in) //nolint:wrapcheck // decorate but not change anything
}

func toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err) //nolint:errorlint // prevent err in api
	}

	fields := domain.FieldsErrors{}

	for _, fe := range fieldErrors {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}

	return &domain.ValidationError{Errors: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " should not be empty"
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "uuid":
		return fe.Field() + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
