package domain

import "reflect"

// Identity is the constraint for identity value objects.
// It is comparable, so identities can be compared with == and used as map keys.
type Identity interface {
	comparable
	String() string
}

// Entity is implemented by every aggregate that is kept in a repository.
type Entity[ID Identity] interface {
	EntityID() ID
	// ToJSON returns the serialisable form of the entity.
	ToJSON() any
}

// Equal reports whether a and b are the same entity.
// Entities are equal if they are of the same concrete type and have the same identity,
// their attributes are not compared.
func Equal[ID Identity](a, b Entity[ID]) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	return reflect.TypeOf(a) == reflect.TypeOf(b) && a.EntityID() == b.EntityID()
}

// EntityName returns the name of the type of entity, with pointers dereferenced.
// It is used to report which kind of entity was not found.
func EntityName(entity any) string {
	t := reflect.TypeOf(entity)
	if t == nil {
		return ""
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)

	return val.Kind() == reflect.Pointer && val.IsNil()
}
