package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/catalog/domain"
)

func TestParseUUID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id    string
		valid bool
	}{
		"empty":        {"", false},
		"fake":         {"fake id", false},
		"too short":    {"d8a7c5f2-1f23-4c4e-9f0a", false},
		"no hyphens":   {"d8a7c5f21f234c4e9f0a3b2c1d0e9f8a", false},
		"urn":          {"urn:uuid:d8a7c5f2-1f23-4c4e-9f0a-3b2c1d0e9f8a", false},
		"braces":       {"{d8a7c5f2-1f23-4c4e-9f0a-3b2c1d0e9f8a}", false},
		"v4":           {"d8a7c5f2-1f23-4c4e-9f0a-3b2c1d0e9f8a", true},
		"upper case":   {"D8A7C5F2-1F23-4C4E-9F0A-3B2C1D0E9F8A", true},
		"invalid char": {"g8a7c5f2-1f23-4c4e-9f0a-3b2c1d0e9f8a", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			id, err := domain.ParseUUID(tt.id)
			if tt.valid {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, id.String())
				return
			}

			assert.ErrorIs(t, err, domain.ErrInvalidUUID)

			var uErr *domain.InvalidUUIDError
			assert.ErrorAs(t, err, &uErr)
			assert.Equal(t, tt.id, uErr.Value)
			assert.True(t, id.IsZero())
		})
	}
}

func TestNewUUID(t *testing.T) {
	t.Parallel()

	id := domain.NewUUID()

	parsed, err := domain.ParseUUID(id.ID())
	assert.NoError(t, err)
	assert.True(t, id.Equals(parsed))
	assert.False(t, id.Equals(domain.NewUUID()))
	assert.Len(t, id.String(), 36)
}

func TestMustParseUUID(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { domain.MustParseUUID("invalid") })
	assert.NotPanics(t, func() { domain.MustParseUUID(domain.NewUUID().String()) })
}

func TestUUID_JSON(t *testing.T) {
	t.Parallel()

	t.Run("marshal as plain string", func(t *testing.T) {
		t.Parallel()

		id := domain.NewUUID()

		b, err := json.Marshal(id)
		assert.NoError(t, err)
		assert.Equal(t, `"`+id.String()+`"`, string(b))

		var got domain.UUID
		err = json.Unmarshal(b, &got)
		assert.NoError(t, err)
		assert.True(t, id.Equals(got))
	})

	t.Run("unmarshal validates", func(t *testing.T) {
		t.Parallel()

		var got domain.UUID
		err := json.NewDecoder(strings.NewReader(`"not-a-uuid"`)).Decode(&got)
		assert.ErrorIs(t, err, domain.ErrInvalidUUID)
	})
}
