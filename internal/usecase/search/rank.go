package search

import (
	"sort"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/request"
	"github.com/glassline/ordersearch/internal/domain/search/result"
)

// rank sorts results by the requested key. Relevance is always best-first
// regardless of direction; other keys honor it. Ties break on order id so
// identical queries rank identically.
func rank(
	results []result.Result,
	byID map[string]*order.Order,
	sortBy request.SortKey,
	dir request.Direction,
) {
	asc := dir == request.Asc

	less := func(a, b *result.Result) bool {
		var cmp int
		switch sortBy {
		case request.SortRelevance:
			// Direction is ignored: best match first.
			switch {
			case a.Score() > b.Score():
				return true
			case a.Score() < b.Score():
				return false
			default:
				return a.OrderID() < b.OrderID()
			}
		case request.SortDate:
			oa, ob := byID[a.OrderID()], byID[b.OrderID()]
			switch {
			case oa.CreatedAt.Before(ob.CreatedAt):
				cmp = -1
			case oa.CreatedAt.After(ob.CreatedAt):
				cmp = 1
			}
		case request.SortAmount:
			oa, ob := byID[a.OrderID()], byID[b.OrderID()]
			switch {
			case oa.TotalAmount < ob.TotalAmount:
				cmp = -1
			case oa.TotalAmount > ob.TotalAmount:
				cmp = 1
			}
		case request.SortSupplier:
			oa, ob := byID[a.OrderID()], byID[b.OrderID()]
			switch {
			case oa.Supplier.Name < ob.Supplier.Name:
				cmp = -1
			case oa.Supplier.Name > ob.Supplier.Name:
				cmp = 1
			}
		}
		if cmp == 0 {
			return a.OrderID() < b.OrderID()
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	}

	sort.Slice(results, func(i, j int) bool { return less(&results[i], &results[j]) })
}

// paginate slices results. An offset beyond the result length yields an
// empty page, never an error. total is the pre-pagination length.
func paginate(results []result.Result, limit, offset int) (page []result.Result, total int) {
	total = len(results)
	if offset >= total {
		return []result.Result{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return results[offset:end], total
}
