// Package search implements the query pipeline: structured filtering,
// relevance scoring, ranking, and pagination over the order snapshot.
package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/request"
	"github.com/glassline/ordersearch/internal/domain/search/result"
	"github.com/glassline/ordersearch/internal/domain/search/token"
)

// Response is the outcome of one search query.
type Response struct {
	Results        []result.Result
	TotalCount     int
	AppliedFilters []string
	Duration       time.Duration
}

// Service executes search queries against the order snapshot.
type Service struct {
	source  Source
	idx     CandidateIndex
	history Recorder
	weights Weights
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a search service. history may be nil when the host does not
// track search history.
func New(source Source, idx CandidateIndex, history Recorder, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		idx:     idx,
		history: history,
		weights: DefaultWeights(),
		logger:  logger,
		now:     time.Now,
	}
}

// WithWeights overrides the default scoring constants.
func (s *Service) WithWeights(w Weights) *Service {
	s.weights = w
	return s
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search runs the full pipeline: filter, score, rank, paginate. It never
// returns an error for query-shaped problems; malformed pieces degrade to
// an empty or unfiltered result set per the criteria semantics.
func (s *Service) Search(ctx context.Context, userID string, req request.Request) Response {
	start := s.now()

	orders := s.source.Snapshot()
	filtered, applied := applyFilters(orders, req.Criteria())

	results := s.scoreAll(filtered, req.Text())

	byID := make(map[string]*order.Order, len(filtered))
	for i := range filtered {
		byID[filtered[i].ID] = &filtered[i]
	}
	rank(results, byID, req.SortBy(), req.Direction())

	page, total := paginate(results, req.Limit(), req.Offset())

	elapsed := s.now().Sub(start)
	s.recordHistory(ctx, userID, req, total, elapsed)

	return Response{
		Results:        page,
		TotalCount:     total,
		AppliedFilters: applied,
		Duration:       elapsed,
	}
}

// scoreAll scores the filtered orders against the phrase. Without a phrase
// every order gets a neutral score of 1.0 (filtering-only mode). With one,
// the index narrows the scan set when it can do so exactly; orders scoring
// zero are excluded.
func (s *Service) scoreAll(filtered []order.Order, phrase string) []result.Result {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		results := make([]result.Result, len(filtered))
		for i := range filtered {
			results[i] = result.New(filtered[i].ID, 1.0, nil, nil)
		}
		return results
	}

	tokens := token.Tokenize(phrase)

	var candidates map[string]struct{}
	if narrowable(tokens) {
		candidates, _ = s.idx.Candidates(tokens)
	}

	now := s.now()
	results := make([]result.Result, 0, len(filtered))
	for i := range filtered {
		o := &filtered[i]
		if candidates != nil {
			if _, ok := candidates[o.ID]; !ok {
				continue
			}
		}
		sc, reasons, snippets := score(o, phrase, tokens, now, s.weights)
		if sc <= 0 {
			continue
		}
		results = append(results, result.New(o.ID, sc, reasons, snippets))
	}
	return results
}

// narrowable reports whether index candidate expansion is exact for these
// query tokens. A token that is a substring of a stop word could match
// field text whose only covering token was dropped from the index, so such
// queries fall back to a full scan.
func narrowable(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if token.CoveredByStopWord(t) {
			return false
		}
	}
	return true
}

func (s *Service) recordHistory(
	ctx context.Context, userID string, req request.Request, total int, elapsed time.Duration,
) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, userID, req.Text(), req.Criteria(), total, elapsed)
	if err != nil {
		// Best effort: a failed history write never fails the search.
		s.logger.Warn("record search history",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
