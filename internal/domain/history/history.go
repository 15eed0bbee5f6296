// Package history defines the append-only search history log.
package history

import (
	"time"

	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// MaxPerUser caps retained history entries per user; the oldest entries are
// evicted first once the cap is exceeded.
const MaxPerUser = 100

// Entry is one recorded search.
type Entry struct {
	ID             string
	UserID         string
	Text           string
	Criteria       filter.Criteria
	ResultCount    int
	Duration       time.Duration
	OpenedOrderIDs []string
	SearchedAt     time.Time
}

// Trim returns entries capped to max, keeping the most recent ones.
// Entries are expected newest-first; the tail beyond max is dropped.
func Trim(entries []Entry, max int) []Entry {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	return entries[:max]
}
