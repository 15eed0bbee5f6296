package search

import (
	"context"
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// Source supplies the read-only order snapshot.
type Source interface {
	Snapshot() []order.Order
}

// CandidateIndex narrows the scan set for a tokenized phrase.
// ok=false means the index cannot narrow and the caller scans everything.
type CandidateIndex interface {
	Candidates(tokens []string) (ids map[string]struct{}, ok bool)
}

// Recorder appends executed searches to the per-user history.
type Recorder interface {
	Record(
		ctx context.Context, userID, text string,
		criteria filter.Criteria, resultCount int, elapsed time.Duration,
	) error
}
