package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldsErrors maps a field name to all messages of the rules the field violates,
// in the order the rules are declared.
type FieldsErrors map[string][]string

// ValidationError is returned when one or more field rules are violated.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Errors FieldsErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Errors[field], ", "))
	}

	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation //nolint:errorlint,err113 // sentinel comparison
}

// Count returns the number of fields with at least one violated rule.
func (e *ValidationError) Count() int {
	return len(e.Errors)
}

type (
	// Predicate reports whether value satisfies a rule.
	Predicate func(validate *validator.Validate, value any) bool

	// Rule is a single check of a field.
	// Message is a format string that receives the field name.
	Rule struct {
		Message string
		Valid   Predicate
	}

	// FieldRules is the ordered list of rules for one field.
	FieldRules struct {
		Field    string
		Optional bool
		Rules    []Rule
	}
)

// Field declares the rules of a required field.
func Field(name string, rules ...Rule) FieldRules {
	return FieldRules{Field: name, Rules: rules}
}

// OptionalField declares rules that are only checked if the value of the field is not nil.
func OptionalField(name string, rules ...Rule) FieldRules {
	return FieldRules{Field: name, Optional: true, Rules: rules}
}

func NotEmpty() Rule {
	return Rule{
		Message: "%s should not be empty",
		Valid: func(validate *validator.Validate, value any) bool {
			if value == nil {
				return false
			}

			if s, ok := value.(string); ok {
				return validate.Var(s, "required") == nil
			}

			return true
		},
	}
}

func IsString() Rule {
	return Rule{
		Message: "%s must be a string",
		Valid: func(_ *validator.Validate, value any) bool {
			_, ok := value.(string)
			return ok
		},
	}
}

// MaxLength is violated by values that are not strings or have more than n characters.
func MaxLength(n int) Rule {
	return Rule{
		Message: "%s must be shorter than or equal to " + strconv.Itoa(n) + " characters",
		Valid: func(validate *validator.Validate, value any) bool {
			s, ok := value.(string)
			if !ok {
				return false
			}

			return validate.Var(s, "max="+strconv.Itoa(n)) == nil
		},
	}
}

func IsBoolean() Rule {
	return Rule{
		Message: "%s must be a boolean value",
		Valid: func(_ *validator.Validate, value any) bool {
			_, ok := value.(bool)
			return ok
		},
	}
}

// NewValidator returns a Validator checking the given fields.
// If validate is nil, a new validator.Validate is used.
func NewValidator(validate *validator.Validate, fields ...FieldRules) *Validator {
	if validate == nil {
		validate = validator.New()
	}

	return &Validator{validate: validate, fields: fields}
}

// Validator evaluates a fixed set of FieldRules.
// All rules of a field are evaluated, also after one failed.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	fields   []FieldRules
}

// Validate checks values, keyed by field name, against all rules.
// It returns nil or a *ValidationError.
func (v *Validator) Validate(values map[string]any) error {
	errs := FieldsErrors{}

	for _, field := range v.fields {
		value := values[field.Field]
		if field.Optional && value == nil {
			continue
		}

		for _, rule := range field.Rules {
			if !rule.Valid(v.validate, value) {
				errs[field.Field] = append(errs[field.Field], fmt.Sprintf(rule.Message, field.Field))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return &ValidationError{Errors: errs}
}

// Nullable converts p into a value for Validate, so a nil pointer becomes a nil value.
func Nullable[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}
