package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidUUID = errors.New("invalid uuid")

// InvalidUUIDError is returned when a value is not a UUID in its canonical,
// hyphenated form. It matches ErrInvalidUUID with errors.Is.
type InvalidUUIDError struct {
	Value string
}

func (e *InvalidUUIDError) Error() string {
	return fmt.Sprintf("ID must be a valid UUID: %q", e.Value)
}

func (e *InvalidUUIDError) Is(target error) bool {
	return target == ErrInvalidUUID //nolint:errorlint,err113 // sentinel comparison
}

// NewUUID generates a new random UUID.
func NewUUID() UUID {
	return UUID{id: uuid.NewString()}
}

// ParseUUID wraps id, if it is a valid UUID.
// Only the canonical 36 character form is accepted, the case of id is kept as is.
func ParseUUID(id string) (UUID, error) {
	const canonicalLength = 36

	if len(id) != canonicalLength {
		return UUID{}, &InvalidUUIDError{Value: id}
	}

	if err := uuid.Validate(id); err != nil {
		return UUID{}, &InvalidUUIDError{Value: id}
	}

	return UUID{id: id}, nil
}

// MustParseUUID is like ParseUUID but panics on an invalid id.
// Use it for constants and in tests.
func MustParseUUID(id string) UUID {
	u, err := ParseUUID(id)
	if err != nil {
		panic(err)
	}

	return u
}

// UUID is the identity value object used by all entities of the catalog.
// The zero value is not a valid identity, use NewUUID or ParseUUID.
type UUID struct {
	id string
}

func (u UUID) ID() string { return u.id }

func (u UUID) String() string { return u.id }

func (u UUID) IsZero() bool { return u.id == "" }

func (u UUID) Equals(other UUID) bool {
	return u.id == other.id
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id), nil
}

func (u *UUID) UnmarshalText(data []byte) error {
	parsed, err := ParseUUID(string(data))
	if err != nil {
		return err
	}

	*u = parsed

	return nil
}
