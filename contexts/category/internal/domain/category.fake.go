package domain

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	shared "github.com/go-arrower/catalog/domain"
)

// ACategory returns a builder for one category with random, valid values.
func ACategory() *FakeBuilder {
	return TheCategories(1)
}

// TheCategories returns a builder for n categories with random, valid values.
// Use the With methods to overwrite values, the functions receive the index of the category.
func TheCategories(n int) *FakeBuilder {
	return &FakeBuilder{
		count: n,
		id:    func(int) shared.UUID { return shared.NewUUID() },
		name:  func(int) string { return gofakeit.Name() },
		description: func(int) *string {
			d := gofakeit.Sentence(10)
			return &d
		},
		isActive:  func(int) bool { return true },
		createdAt: func(int) time.Time { return time.Now() },
	}
}

// FakeBuilder builds categories for tests and demos.
// Categories are not validated, so invalid ones can be built on purpose.
type FakeBuilder struct {
	count       int
	id          func(i int) shared.UUID
	name        func(i int) string
	description func(i int) *string
	isActive    func(i int) bool
	createdAt   func(i int) time.Time
}

func (b *FakeBuilder) WithID(id shared.UUID) *FakeBuilder {
	b.id = func(int) shared.UUID { return id }
	return b
}

func (b *FakeBuilder) WithName(name string) *FakeBuilder {
	return b.WithNameFunc(func(int) string { return name })
}

func (b *FakeBuilder) WithNameFunc(fn func(i int) string) *FakeBuilder {
	b.name = fn
	return b
}

// WithInvalidNameTooLong sets a name one character longer than allowed.
func (b *FakeBuilder) WithInvalidNameTooLong() *FakeBuilder {
	return b.WithName(strings.Repeat("a", MaxNameLength+1))
}

// WithDescription sets the description, nil for none.
func (b *FakeBuilder) WithDescription(description *string) *FakeBuilder {
	b.description = func(int) *string { return description }
	return b
}

func (b *FakeBuilder) Active() *FakeBuilder {
	b.isActive = func(int) bool { return true }
	return b
}

func (b *FakeBuilder) Deactivate() *FakeBuilder {
	b.isActive = func(int) bool { return false }
	return b
}

func (b *FakeBuilder) WithCreatedAt(t time.Time) *FakeBuilder {
	return b.WithCreatedAtFunc(func(int) time.Time { return t })
}

func (b *FakeBuilder) WithCreatedAtFunc(fn func(i int) time.Time) *FakeBuilder {
	b.createdAt = fn
	return b
}

// Build returns the first category.
func (b *FakeBuilder) Build() *Category {
	return b.build(0)
}

func (b *FakeBuilder) BuildAll() []*Category {
	categories := make([]*Category, 0, b.count)
	for i := range b.count {
		categories = append(categories, b.build(i))
	}

	return categories
}

func (b *FakeBuilder) build(i int) *Category {
	return NewCategory(CategoryProps{
		ID:          b.id(i),
		Name:        b.name(i),
		Description: b.description(i),
		IsActive:    b.isActive(i),
		CreatedAt:   b.createdAt(i),
	})
}
