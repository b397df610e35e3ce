package aassert

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// NumFields asserts that the struct object has the expected number of exported fields.
// Exported fields of nested structs, also behind pointers, slices, and map values, are counted as well.
//
// Use it on structs that are mapped between layers, e.g. a database model and an entity,
// so a new field fails the test until the mapping is updated.
func NumFields(t *testing.T, expected int, object any, msgAndArgs ...any) bool {
	t.Helper()

	typ := reflect.TypeOf(object)
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return assert.Fail(t, fmt.Sprintf("invalid argument %T, it has to be a struct", object), msgAndArgs...)
	}

	fields := countFields(typ)
	if fields != expected {
		t.Logf("the exported fields of %s changed: check all functions mapping it and the test data using it", typ)

		return assert.Fail(t, fmt.Sprintf("struct changed, it has: %d fields, expected: %d", fields, expected), msgAndArgs...)
	}

	return true
}

func countFields(typ reflect.Type) int {
	for typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array || typ.Kind() == reflect.Map {
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return 0
	}

	fields := 0

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		fields++
		fields += countFields(field.Type)
	}

	return fields
}
