package domain

import (
	shared "github.com/go-arrower/catalog/domain"
	"github.com/go-arrower/catalog/repository"
)

// Repository manages the persistence of categories.
// Sortable fields are name and created_at, a filter matches the name case-insensitively,
// and without a sort field the newest categories come first.
type Repository interface {
	repository.SearchableRepository[*Category, shared.UUID]
}

const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
)
