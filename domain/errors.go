package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// NewNotFoundError reports that no entity of the type of entity exists with id.
// entity is only used for its type, a typed nil like (*Category)(nil) is fine.
func NewNotFoundError(id fmt.Stringer, entity any) *NotFoundError {
	return &NotFoundError{
		ID:         id.String(),
		EntityName: EntityName(entity),
	}
}

// NotFoundError is returned by repositories, if the entity to act on does not exist.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	ID         string
	EntityName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found using ID %s", e.EntityName, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound //nolint:errorlint,err113 // sentinel comparison
}
