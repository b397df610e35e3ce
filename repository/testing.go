package repository

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/domain"
)

// TestSuite verifies that a Repository implementation fulfils the contract of Repository.
// newRepo has to return a new and empty repository on every call,
// newEntity a new valid entity, and change has to alter an attribute of an entity.
//
// Entities are compared by their ToJSON representation, so implementations that
// return a copy of an entity, e.g. read from a database, are supported.
func TestSuite[E domain.Entity[ID], ID domain.Identity](
	t *testing.T,
	newRepo func(t *testing.T) Repository[E, ID],
	newEntity func() E,
	change func(entity E),
) { //nolint:tparallel // t.Parallel can only be called ones! The caller decides
	t.Helper()

	if newRepo == nil || newEntity == nil || change == nil {
		t.Fatal("repository suite is missing a constructor")
	}

	ctx := context.Background()

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entity := newEntity()

		err := repo.Insert(ctx, entity)
		assert.NoError(t, err)

		got, err := repo.FindByID(ctx, entity.EntityID())
		assert.NoError(t, err)
		assert.Equal(t, entity.ToJSON(), got.ToJSON())
	})

	t.Run("BulkInsert", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entities := []E{newEntity(), newEntity(), newEntity()}

		err := repo.BulkInsert(ctx, entities)
		assert.NoError(t, err)

		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		assert.ElementsMatch(t, toJSON(entities), toJSON(all))

		err = repo.BulkInsert(ctx, []E{})
		assert.NoError(t, err, "nothing to insert")
	})

	t.Run("FindByID", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entity := newEntity()

		err := repo.BulkInsert(ctx, []E{newEntity(), entity, newEntity()})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, entity.EntityID())
		assert.NoError(t, err)
		assert.True(t, domain.Equal[ID](entity, got))

		got, err = repo.FindByID(ctx, newEntity().EntityID())
		assert.NoError(t, err, "absent entity is not an error")
		assert.Nil(t, got)
	})

	t.Run("FindAll", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("Update", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entity := newEntity()
		other := newEntity()

		err := repo.BulkInsert(ctx, []E{entity, other})
		require.NoError(t, err)

		change(entity)

		err = repo.Update(ctx, entity)
		assert.NoError(t, err)

		got, _ := repo.FindByID(ctx, entity.EntityID())
		assert.Equal(t, entity.ToJSON(), got.ToJSON())

		got, _ = repo.FindByID(ctx, other.EntityID())
		assert.Equal(t, other.ToJSON(), got.ToJSON(), "other entities are unchanged")
	})

	t.Run("Update not existing", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entity := newEntity()

		err := repo.Update(ctx, entity)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var nfErr *domain.NotFoundError
		if assert.ErrorAs(t, err, &nfErr) {
			assert.Equal(t, entity.EntityID().String(), nfErr.ID)
			assert.Equal(t, domain.EntityName(entity), nfErr.EntityName)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		entity := newEntity()
		other := newEntity()

		err := repo.BulkInsert(ctx, []E{entity, other})
		require.NoError(t, err)

		err = repo.Delete(ctx, entity.EntityID())
		assert.NoError(t, err)

		got, err := repo.FindByID(ctx, entity.EntityID())
		assert.NoError(t, err)
		assert.Nil(t, got)

		all, _ := repo.FindAll(ctx)
		assert.Equal(t, toJSON([]E{other}), toJSON(all))
	})

	t.Run("Delete not existing", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)
		id := newEntity().EntityID()

		err := repo.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var nfErr *domain.NotFoundError
		if assert.ErrorAs(t, err, &nfErr) {
			assert.Equal(t, id.String(), nfErr.ID)
			assert.Equal(t, domain.EntityName(*new(E)), nfErr.EntityName)
		}
	})
}

// SearchTestSuite verifies the search contract of a SearchableRepository.
// newNamed returns a new valid entity, that matches a filter by its name.
// The order of results is not verified, as it depends on the default sort of the repository.
func SearchTestSuite[E domain.Entity[ID], ID domain.Identity](
	t *testing.T,
	newRepo func(t *testing.T) SearchableRepository[E, ID],
	newNamed func(name string) E,
) { //nolint:tparallel // t.Parallel can only be called ones! The caller decides
	t.Helper()

	ctx := context.Background()

	t.Run("default params", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		entities := make([]E, 16)
		for i := range entities {
			entities[i] = newNamed("Movie")
		}

		err := repo.BulkInsert(ctx, entities)
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{}))
		assert.NoError(t, err)
		assert.Len(t, result.Items, 15)
		assert.Equal(t, 16, result.Total)
		assert.Equal(t, 1, result.CurrentPage)
		assert.Equal(t, 15, result.PerPage)
		assert.Equal(t, 2, result.LastPage)
	})

	t.Run("filter", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		err := repo.BulkInsert(ctx, []E{
			newNamed("Test"), newNamed("a"), newNamed("TeST"), newNamed("b"), newNamed("TEST"),
		})
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{Page: 1, PerPage: 2, Filter: "TEST"}))
		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, 3, result.Total, "total is counted before pagination")
		assert.Equal(t, 2, result.LastPage)

		result, err = repo.Search(ctx, NewSearchParams(SearchInput{Page: 2, PerPage: 2, Filter: "test"}))
		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 3, result.Total)
	})

	t.Run("filter with non ASCII letters", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		err := repo.BulkInsert(ctx, []E{newNamed("École"), newNamed("ecole"), newNamed("Éclair"), newNamed("cole")})
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{Filter: "École"}))
		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)

		result, err = repo.Search(ctx, NewSearchParams(SearchInput{Filter: "ÉCL"}))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Total, "ASCII letters after a non ASCII one are case insensitive")
	})

	t.Run("page out of range", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		err := repo.BulkInsert(ctx, []E{newNamed("a"), newNamed("b")})
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{Page: 3, PerPage: 2}))
		assert.NoError(t, err)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("page too large to be reached", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		err := repo.BulkInsert(ctx, []E{newNamed("a"), newNamed("b"), newNamed("c")})
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{Page: math.MaxInt / 2, PerPage: 3}))
		assert.NoError(t, err)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, math.MaxInt/2, result.CurrentPage)
	})

	t.Run("pages reconstruct all entities", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		entities := make([]E, 7)
		for i := range entities {
			entities[i] = newNamed(string(rune('a' + i)))
		}

		err := repo.BulkInsert(ctx, entities)
		require.NoError(t, err)

		var all []E

		for page := 1; page <= 3; page++ {
			result, err := repo.Search(ctx, NewSearchParams(SearchInput{Page: page, PerPage: 3}))
			require.NoError(t, err)

			all = append(all, result.Items...)
		}

		assert.ElementsMatch(t, toJSON(entities), toJSON(all))
	})

	t.Run("unknown sort field", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t)

		err := repo.BulkInsert(ctx, []E{newNamed("a"), newNamed("b")})
		require.NoError(t, err)

		result, err := repo.Search(ctx, NewSearchParams(SearchInput{Sort: "unknown", SortDir: "desc"}))
		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
	})
}

func toJSON[E interface{ ToJSON() any }](entities []E) []any {
	result := make([]any, 0, len(entities))
	for _, e := range entities {
		result = append(result, e.ToJSON())
	}

	return result
}
