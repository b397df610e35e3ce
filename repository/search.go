package repository

import (
	"math"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchInput is the raw, unchecked input to build SearchParams from.
// Zero values mean the value is absent.
type SearchInput struct {
	Page    int
	PerPage int
	Sort    string
	SortDir string
	Filter  string
}

// NewSearchParams normalises in:
// a page or per_page smaller than one is replaced by its default,
// a direction is only kept if a sort field is given and is asc, if it is not desc.
func NewSearchParams(in SearchInput) SearchParams {
	params := SearchParams{
		page:    in.Page,
		perPage: in.PerPage,
		sort:    strings.TrimSpace(in.Sort),
		filter:  in.Filter,
	}

	if params.page < 1 {
		params.page = DefaultPage
	}

	if params.perPage < 1 {
		params.perPage = DefaultPerPage
	}

	if params.sort != "" {
		params.sortDir = SortAsc
		if SortDirection(strings.ToLower(strings.TrimSpace(in.SortDir))) == SortDesc {
			params.sortDir = SortDesc
		}
	}

	return params
}

// SearchParams is the immutable query of a SearchableRepository.
// The zero value is not normalised, use NewSearchParams.
type SearchParams struct {
	page    int
	perPage int
	sort    string
	sortDir SortDirection
	filter  string
}

func (p SearchParams) Page() int              { return p.page }
func (p SearchParams) PerPage() int           { return p.perPage }
func (p SearchParams) Sort() string           { return p.sort }
func (p SearchParams) SortDir() SortDirection { return p.sortDir }
func (p SearchParams) Filter() string         { return p.filter }

// Offset is the number of items skipped before the current page.
// It saturates at math.MaxInt for pages too large to be reached.
func (p SearchParams) Offset() int {
	if p.perPage < 1 || p.page < 1 {
		return 0
	}

	if p.page-1 > math.MaxInt/p.perPage {
		return math.MaxInt
	}

	return (p.page - 1) * p.perPage
}

// NewSearchResult returns the page of items out of total matching entities.
func NewSearchResult[E any](items []E, total int, currentPage int, perPage int) SearchResult[E] {
	lastPage := 0
	if perPage > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	if items == nil {
		items = []E{}
	}

	return SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: currentPage,
		PerPage:     perPage,
		LastPage:    lastPage,
	}
}

// SearchResult is one page of a search.
// Total is the number of entities matching the filter, before pagination.
type SearchResult[E any] struct {
	Items       []E `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
}

// MapResult converts the items of result, e.g. from entities into their output representation.
func MapResult[E any, O any](result SearchResult[E], fn func(E) O) SearchResult[O] {
	items := make([]O, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, fn(item))
	}

	return SearchResult[O]{
		Items:       items,
		Total:       result.Total,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		LastPage:    result.LastPage,
	}
}
