package repository

import (
	"context"
	"errors"

	"github.com/go-arrower/catalog/domain"
)

var (
	ErrStorage      = errors.New("storage error")
	ErrInvalidQuery = errors.New("invalid query")
)

// Repository is the persistence contract every implementation fulfils, in memory or in a database,
// so calling code does not depend on where entities are stored.
//
// Update and Delete return a *domain.NotFoundError, if the entity does not exist.
// FindByID returns the zero value of E and no error, if the entity does not exist.
type Repository[E domain.Entity[ID], ID domain.Identity] interface {
	Insert(ctx context.Context, entity E) error
	BulkInsert(ctx context.Context, entities []E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id ID) error

	FindByID(ctx context.Context, id ID) (E, error)
	FindAll(ctx context.Context) ([]E, error)
}

// SearchableRepository is a Repository that can filter, sort, and paginate its entities.
type SearchableRepository[E domain.Entity[ID], ID domain.Identity] interface {
	Repository[E, ID]

	// SortableFields returns the fields that are allowed as SearchParams.Sort, in alphabetical order.
	SortableFields() []string
	Search(ctx context.Context, params SearchParams) (SearchResult[E], error)
}
