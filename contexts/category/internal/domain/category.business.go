package domain

import (
	"encoding/json"
	"fmt"
	"time"

	shared "github.com/go-arrower/catalog/domain"
)

// CreateCategoryProps are the inputs to create a new Category.
// Description and IsActive are optional, a new category is active by default.
type CreateCategoryProps struct {
	Name        string
	Description *string
	IsActive    *bool
}

// Create returns a new and valid Category, or a *shared.ValidationError.
func Create(props CreateCategoryProps) (*Category, error) {
	isActive := true
	if props.IsActive != nil {
		isActive = *props.IsActive
	}

	category := NewCategory(CategoryProps{
		ID:          shared.NewUUID(),
		Name:        props.Name,
		Description: props.Description,
		IsActive:    isActive,
		CreatedAt:   time.Time{},
	})

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// CategoryProps are all attributes of an existing Category.
type CategoryProps struct {
	ID          shared.UUID
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

// NewCategory builds a Category from props, without validating it.
// A zero ID is replaced by a new one, a zero CreatedAt by the current time.
// Use Create for new categories and Restore for categories loaded from a store.
func NewCategory(props CategoryProps) *Category {
	if props.ID.IsZero() {
		props.ID = shared.NewUUID()
	}

	if props.CreatedAt.IsZero() {
		props.CreatedAt = time.Now()
	}

	return &Category{
		id:          props.ID,
		name:        props.Name,
		description: copyString(props.Description),
		isActive:    props.IsActive,
		createdAt:   normaliseTime(props.CreatedAt),
	}
}

// Restore builds a Category from props and validates it,
// so a category read from a store satisfies the same rules as a created one.
func Restore(props CategoryProps) (*Category, error) {
	category := NewCategory(props)

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Category is the aggregate of the catalog.
// Every change of the name or description is validated.
type Category struct {
	id          shared.UUID
	name        string
	description *string
	isActive    bool
	createdAt   time.Time
}

var _ shared.Entity[shared.UUID] = (*Category)(nil)

func (c *Category) ID() shared.UUID       { return c.id }
func (c *Category) EntityID() shared.UUID { return c.id }
func (c *Category) Name() string          { return c.name }
func (c *Category) IsActive() bool        { return c.isActive }
func (c *Category) CreatedAt() time.Time  { return c.createdAt }

// Description returns a copy, nil if the category has no description.
func (c *Category) Description() *string {
	return copyString(c.description)
}

// ChangeName sets the name and validates the category.
// If the validation fails, the category keeps the invalid name.
func (c *Category) ChangeName(name string) error {
	c.name = name

	return c.Validate()
}

// ChangeDescription sets the description, nil removes it.
// If the validation fails, the category keeps the invalid description.
func (c *Category) ChangeDescription(description *string) error {
	c.description = copyString(description)

	return c.Validate()
}

// Clone returns a deep copy, so changes to it do not affect c.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}

	clone := *c
	clone.description = copyString(c.description)

	return &clone
}

func (c *Category) Activate() {
	c.isActive = true
}

func (c *Category) Deactivate() {
	c.isActive = false
}

func (c *Category) Validate() error {
	return ValidateCategory(map[string]any{
		"name":        c.name,
		"description": shared.Nullable(c.description),
		"is_active":   c.isActive,
	})
}

// CategoryJSON is the serialised form of a Category.
type CategoryJSON struct {
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) ToJSON() any {
	return c.JSON()
}

func (c *Category) JSON() CategoryJSON {
	return CategoryJSON{
		CategoryID:  c.id.String(),
		Name:        c.name,
		Description: c.Description(),
		IsActive:    c.isActive,
		CreatedAt:   c.createdAt,
	}
}

func (c *Category) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(c.JSON())
	if err != nil {
		return nil, fmt.Errorf("could not marshal category: %w", err)
	}

	return b, nil
}

// UnmarshalJSON validates the category, the same as Restore.
// Values of the wrong type are reported as *shared.ValidationError, not as json errors.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		CategoryID  string    `json:"category_id"`
		Name        any       `json:"name"`
		Description any       `json:"description"`
		IsActive    any       `json:"is_active"`
		CreatedAt   time.Time `json:"created_at"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not unmarshal category: %w", err)
	}

	id, err := shared.ParseUUID(raw.CategoryID)
	if err != nil {
		return err
	}

	if raw.IsActive == nil {
		raw.IsActive = true
	}

	err = ValidateCategory(map[string]any{
		"name":        raw.Name,
		"description": raw.Description,
		"is_active":   raw.IsActive,
	})
	if err != nil {
		return err
	}

	var description *string
	if d, ok := raw.Description.(string); ok {
		description = &d
	}

	*c = *NewCategory(CategoryProps{
		ID:          id,
		Name:        raw.Name.(string),   //nolint:forcetypeassert // validated
		Description: description,
		IsActive:    raw.IsActive.(bool), //nolint:forcetypeassert // validated
		CreatedAt:   raw.CreatedAt,
	})

	return nil
}

// normaliseTime drops what a database column can not keep:
// the location and the precision below microseconds.
func normaliseTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}

	c := *s

	return &c
}
