package domain

import (
	"github.com/go-playground/validator/v10"

	shared "github.com/go-arrower/catalog/domain"
)

const MaxNameLength = 250

var categoryValidator = shared.NewValidator(validator.New(), //nolint:gochecknoglobals // safe for concurrent use
	shared.Field("name", shared.NotEmpty(), shared.IsString(), shared.MaxLength(MaxNameLength)),
	shared.OptionalField("description", shared.IsString()),
	shared.OptionalField("is_active", shared.IsBoolean()),
)

// ValidateCategory checks the attributes of a category, keyed by their json name.
// It returns nil or a *shared.ValidationError with all violated rules.
func ValidateCategory(values map[string]any) error {
	return categoryValidator.Validate(values)
}
