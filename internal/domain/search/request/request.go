// Package request defines the validated search query request.
package request

import (
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// Pagination limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// SortKey selects the result ordering.
type SortKey string

// Sort keys.
const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortAmount    SortKey = "amount"
	SortSupplier  SortKey = "supplier"
)

// Direction is the sort direction. Relevance sort ignores it.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Request is a normalized search query. Construction never fails: unknown
// sort keys and directions degrade to defaults, pagination is clamped.
type Request struct {
	text      string
	criteria  filter.Criteria
	sortBy    SortKey
	direction Direction
	limit     int
	offset    int
}

// New normalizes search parameters into a Request.
// Defaults: sortBy=relevance when text is present, date otherwise;
// direction=desc; limit=20 (max 100); offset>=0.
func New(
	text string,
	criteria filter.Criteria,
	sortBy SortKey,
	direction Direction,
	limit, offset int,
) Request {
	switch sortBy {
	case SortRelevance, SortDate, SortAmount, SortSupplier:
	default:
		if text != "" {
			sortBy = SortRelevance
		} else {
			sortBy = SortDate
		}
	}
	switch direction {
	case Asc, Desc:
	default:
		direction = Desc
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	criteria.Text = text

	return Request{
		text:      text,
		criteria:  criteria,
		sortBy:    sortBy,
		direction: direction,
		limit:     limit,
		offset:    offset,
	}
}

// Text returns the free-text search phrase ("" for filtering-only mode).
func (r *Request) Text() string { return r.text }

// Criteria returns the structured filter bundle.
func (r *Request) Criteria() filter.Criteria { return r.criteria }

// SortBy returns the sort key.
func (r *Request) SortBy() SortKey { return r.sortBy }

// Direction returns the sort direction.
func (r *Request) Direction() Direction { return r.direction }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Offset returns the page offset.
func (r *Request) Offset() int { return r.offset }
