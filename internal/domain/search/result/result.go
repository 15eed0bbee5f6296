// Package result defines the per-query search hit with its relevance
// metadata. Results are constructed fresh per query and never persisted.
package result

// MatchTier classifies how a field matched the search phrase.
// Fuzzy and Semantic are reserved for future edit-distance and
// embedding-based matching and are not produced today.
type MatchTier string

// Match tiers.
const (
	TierExact    MatchTier = "EXACT"
	TierPartial  MatchTier = "PARTIAL"
	TierFuzzy    MatchTier = "FUZZY"
	TierSemantic MatchTier = "SEMANTIC"
)

// MatchReason explains one field's contribution to the score.
type MatchReason struct {
	Field       string
	Tier        MatchTier
	Confidence  float64
	Highlighted string
}

// Result is a single ranked search hit.
type Result struct {
	orderID  string
	score    float64
	reasons  []MatchReason
	snippets []string
}

// New creates a search result.
func New(orderID string, score float64, reasons []MatchReason, snippets []string) Result {
	return Result{orderID: orderID, score: score, reasons: reasons, snippets: snippets}
}

// OrderID returns the matched order identifier.
func (r *Result) OrderID() string { return r.orderID }

// Score returns the relevance score (0-100; 1.0 in filtering-only mode).
func (r *Result) Score() float64 { return r.score }

// Reasons returns the match reasons.
func (r *Result) Reasons() []MatchReason { return r.reasons }

// Snippets returns display snippets around substring matches.
func (r *Result) Snippets() []string { return r.snippets }
