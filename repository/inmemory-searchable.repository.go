package repository

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"time"

	"github.com/go-arrower/catalog/domain"
)

// Comparator returns a negative number if a sorts before b, a positive number if after, and zero if equal.
type Comparator[E any] func(a, b E) int

// SortBy compares entities by the ordered value key returns.
func SortBy[E any, V cmp.Ordered](key func(E) V) Comparator[E] {
	return func(a, b E) int {
		return cmp.Compare(key(a), key(b))
	}
}

// SortByTime compares entities chronologically by the time key returns.
func SortByTime[E any](key func(E) time.Time) Comparator[E] {
	return func(a, b E) int {
		return key(a).Compare(key(b))
	}
}

// SearchOption configures how a MemorySearchableRepository filters and sorts.
type SearchOption[E any] func(config *searchConfig[E])

type searchConfig[E any] struct {
	filter      func(item E, filter string) bool
	sortable    map[string]Comparator[E]
	defaultSort string
	defaultDir  SortDirection
}

// WithFilter sets the predicate deciding if an item matches the filter term of a search.
// Without it, the filter term is ignored.
func WithFilter[E any](fn func(item E, filter string) bool) SearchOption[E] {
	return func(config *searchConfig[E]) {
		config.filter = fn
	}
}

// WithSortableFields sets the fields allowed as sort field, with the comparator
// defining the ascending order of each.
func WithSortableFields[E any](fields map[string]Comparator[E]) SearchOption[E] {
	return func(config *searchConfig[E]) {
		config.sortable = fields
	}
}

// WithDefaultSort sets the order used, when a search does not ask for a sortable field.
// field has to be one of the sortable fields.
func WithDefaultSort[E any](field string, dir SortDirection) SearchOption[E] {
	return func(config *searchConfig[E]) {
		config.defaultSort = field
		config.defaultDir = dir
	}
}

// NewMemorySearchableRepository extends repo with Search.
func NewMemorySearchableRepository[E domain.Entity[ID], ID domain.Identity](
	repo *MemoryRepository[E, ID],
	opts ...SearchOption[E],
) *MemorySearchableRepository[E, ID] {
	searchable := &MemorySearchableRepository[E, ID]{
		MemoryRepository: repo,
		searchConfig: searchConfig[E]{
			filter:      nil,
			sortable:    map[string]Comparator[E]{},
			defaultSort: "",
			defaultDir:  SortAsc,
		},
	}

	for _, opt := range opts {
		opt(&searchable.searchConfig)
	}

	return searchable
}

// MemorySearchableRepository implements SearchableRepository.
// A search runs filter, sort, and paginate, always in this order, over all entities.
type MemorySearchableRepository[E domain.Entity[ID], ID domain.Identity] struct {
	*MemoryRepository[E, ID]

	searchConfig[E]
}

var _ SearchableRepository[domain.Entity[domain.UUID], domain.UUID] = (*MemorySearchableRepository[domain.Entity[domain.UUID], domain.UUID])(nil)

func (repo *MemorySearchableRepository[E, ID]) SortableFields() []string {
	fields := make([]string, 0, len(repo.sortable))
	for field := range repo.sortable {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}

// Search returns the page of entities params asks for.
// The total of the result counts all entities matching the filter, independent of the page.
func (repo *MemorySearchableRepository[E, ID]) Search(ctx context.Context, params SearchParams) (SearchResult[E], error) {
	items, err := repo.FindAll(ctx)
	if err != nil {
		return SearchResult[E]{}, err
	}

	filtered := repo.ApplyFilter(items, params.Filter())
	sorted := repo.ApplySort(filtered, params.Sort(), params.SortDir())
	paginated := repo.ApplyPaginate(sorted, params.Page(), params.PerPage())

	return NewSearchResult(paginated, len(filtered), params.Page(), params.PerPage()), nil
}

// ApplyFilter returns the items matching filter, in their original order.
// For an empty filter the given slice itself is returned and the predicate is never called.
func (repo *MemorySearchableRepository[E, ID]) ApplyFilter(items []E, filter string) []E {
	if filter == "" || repo.filter == nil {
		return items
	}

	matches := []E{}

	for _, item := range items {
		if repo.filter(item, filter) {
			matches = append(matches, item)
		}
	}

	return matches
}

// ApplySort returns a sorted copy of items; items itself is not changed.
// A field that is not sortable is treated like no field: the default sort applies,
// or items are returned unchanged if there is none.
// The sort is stable in both directions.
func (repo *MemorySearchableRepository[E, ID]) ApplySort(items []E, field string, dir SortDirection) []E {
	compare, ok := repo.sortable[field]
	if !ok {
		compare, ok = repo.sortable[repo.defaultSort]
		if !ok {
			return items
		}

		dir = repo.defaultDir
	}

	sorted := slices.Clone(items)

	if dir == SortDesc {
		slices.SortStableFunc(sorted, func(a, b E) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}

	return sorted
}

// ApplyPaginate returns the items of the 1-indexed page.
// A page past the last one is empty.
func (repo *MemorySearchableRepository[E, ID]) ApplyPaginate(items []E, page int, perPage int) []E {
	if page < 1 || perPage < 1 {
		return []E{}
	}

	lastPage := (len(items) + perPage - 1) / perPage
	if page > lastPage {
		return []E{}
	}

	start := (page - 1) * perPage

	end := min(start+perPage, len(items))

	return slices.Clone(items[start:end])
}
