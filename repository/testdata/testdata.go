// Package testdata provides an entity to exercise the generic repositories with.
package testdata

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/go-arrower/catalog/domain"
)

// NewEntity returns an entity with the given name and random other values.
func NewEntity(name string) *Entity {
	return &Entity{
		ID:        domain.NewUUID(),
		Name:      name,
		Price:     gofakeit.IntRange(1, 1000),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

// RandomEntity returns an entity with a random name.
func RandomEntity() *Entity {
	return NewEntity(gofakeit.Name())
}

// Entity is the entity the repositories are tested with.
type Entity struct {
	ID        domain.UUID `json:"id"`
	Name      string      `json:"name"`
	Price     int         `json:"price"`
	CreatedAt time.Time   `json:"created_at"`
}

func (e *Entity) EntityID() domain.UUID { return e.ID }

func (e *Entity) ToJSON() any {
	return *e
}

// Model is the row of an Entity in the entities table.
type Model struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Price     int       `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}

// Schema creates the entities table, the statement works in SQLite and PostgreSQL.
const Schema = `CREATE TABLE IF NOT EXISTS entities
(
    id         TEXT PRIMARY KEY,
    name       TEXT      NOT NULL,
    price      INTEGER   NOT NULL,
    created_at TIMESTAMP NOT NULL
);`

// Mapper converts between Entity and Model. Rows with an empty name are rejected.
type Mapper struct{}

func (Mapper) ToEntity(model Model) (*Entity, error) {
	id, err := domain.ParseUUID(model.ID)
	if err != nil {
		return nil, err
	}

	if model.Name == "" {
		return nil, &domain.ValidationError{Errors: domain.FieldsErrors{"name": {"name should not be empty"}}}
	}

	return &Entity{
		ID:        id,
		Name:      model.Name,
		Price:     model.Price,
		CreatedAt: model.CreatedAt.UTC(),
	}, nil
}

func (Mapper) ToModel(entity *Entity) Model {
	return Model{
		ID:        entity.ID.String(),
		Name:      entity.Name,
		Price:     entity.Price,
		CreatedAt: entity.CreatedAt,
	}
}
