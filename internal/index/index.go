// Package index implements the in-memory inverted index over order text.
package index

import (
	"strings"
	"sync"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/token"
)

// Inverted maps tokens to the set of order identifiers containing them.
// Reads are concurrent; writes are serialized by the internal lock.
type Inverted struct {
	mu       sync.RWMutex
	postings map[string]map[string]struct{}
}

// New creates an empty inverted index.
func New() *Inverted {
	return &Inverted{postings: make(map[string]map[string]struct{})}
}

// Rebuild clears the index and reindexes every order. Indexing never fails:
// orders with missing fields contribute empty text.
func (i *Inverted) Rebuild(orders []order.Order) {
	postings := make(map[string]map[string]struct{})
	for idx := range orders {
		o := &orders[idx]
		for _, t := range token.Tokenize(o.SearchText()) {
			set, ok := postings[t]
			if !ok {
				set = make(map[string]struct{})
				postings[t] = set
			}
			set[o.ID] = struct{}{}
		}
	}

	i.mu.Lock()
	i.postings = postings
	i.mu.Unlock()
}

// Add incrementally indexes a single order.
func (i *Inverted) Add(o *order.Order) {
	tokens := token.Tokenize(o.SearchText())

	i.mu.Lock()
	defer i.mu.Unlock()
	for _, t := range tokens {
		set, ok := i.postings[t]
		if !ok {
			set = make(map[string]struct{})
			i.postings[t] = set
		}
		set[o.ID] = struct{}{}
	}
}

// Remove deletes id from every posting set. Tokens whose set becomes empty
// are pruned.
func (i *Inverted) Remove(id string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for t, set := range i.postings {
		if _, ok := set[id]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(i.postings, t)
			}
		}
	}
}

// Lookup returns the ids indexed under an exact token.
func (i *Inverted) Lookup(t string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	set := i.postings[t]
	if len(set) == 0 {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// Candidates returns the union of posting sets for every indexed token that
// contains any of the query tokens as a substring. This covers exact,
// prefix, and partial token matches in one pass over the vocabulary.
// ok is false when the query token list is empty, meaning the caller must
// fall back to scanning the full record set.
func (i *Inverted) Candidates(tokens []string) (ids map[string]struct{}, ok bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	ids = make(map[string]struct{})
	for indexed, set := range i.postings {
		for _, q := range tokens {
			if strings.Contains(indexed, q) {
				for id := range set {
					ids[id] = struct{}{}
				}
				break
			}
		}
	}
	return ids, true
}

// Len returns the number of distinct indexed tokens.
func (i *Inverted) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.postings)
}
