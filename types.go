package ordersearch

import "time"

// Status is the purchase-order lifecycle state.
type Status string

// Order statuses.
const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusSent            Status = "SENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusReceived        Status = "RECEIVED"
	StatusCancelled       Status = "CANCELLED"
)

// Priority is the order urgency tier.
type Priority string

// Order priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Supplier is the counterparty of a purchase order.
type Supplier struct {
	ID   string
	Name string
	Code string
}

// LineItem is a single ordered position.
type LineItem struct {
	Description string
	ProductCode string
	Quantity    float64
	UnitPrice   float64
}

// Order is a purchase-order snapshot fed into the engine by the owning
// system. The engine never mutates it.
type Order struct {
	ID           string
	Number       string
	Supplier     Supplier
	ExternalRef  string
	CustomerRef  string
	Instructions string
	Notes        string
	Status       Status
	Priority     Priority
	TotalAmount  float64
	Currency     string
	CreatedAt    time.Time
	LineItems    []LineItem
}

// Operator is a custom-condition comparison operator.
type Operator string

// Custom filter operators.
const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "startsWith"
	OpEndsWith    Operator = "endsWith"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpBetween     Operator = "between"
)

// Range is the inclusive bound pair for the between operator.
type Range struct {
	Min float64
	Max float64
}

// Condition is a custom filter clause on a dotted field path, e.g.
// "supplier.name". Value may be a string, a number, a bool, or a Range;
// a nil Value never matches.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// Filters is the structured criteria bundle of a search. All parts are
// combined with logical AND; empty parts are no-ops.
type Filters struct {
	Statuses    []Status
	Priorities  []Priority
	SupplierIDs []string
	DateFrom    *time.Time
	DateTo      *time.Time
	AmountMin   *float64
	AmountMax   *float64
	Conditions  []Condition
}

// SortKey selects the result ordering.
type SortKey string

// Sort keys. Unknown keys degrade to the default: relevance when text is
// present, date otherwise.
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

// Query is one search request. The zero value is a valid query returning
// every order, newest first.
type Query struct {
	Text      string
	Filters   Filters
	SortBy    SortKey
	Direction Direction
	Limit     int
	Offset    int
}

// MatchTier classifies how a field matched the search phrase.
type MatchTier string

// Match tiers.
const (
	TierExact   MatchTier = "EXACT"
	TierPartial MatchTier = "PARTIAL"
)

// MatchReason explains one field's contribution to a result's score.
type MatchReason struct {
	Field       string
	Tier        MatchTier
	Confidence  float64
	Highlighted string
}

// Result is a single ranked search hit.
type Result struct {
	OrderID  string
	Score    float64
	Reasons  []MatchReason
	Snippets []string
}

// SearchResponse is the outcome of one search query. Suggestions carry
// refinement candidates for the searched phrase; empty for filter-only
// queries.
type SearchResponse struct {
	Results        []Result
	TotalCount     int
	AppliedFilters []string
	Suggestions    []Suggestion
	Duration       time.Duration
}

// SuggestionKind is the autocomplete candidate source type.
type SuggestionKind string

// Suggestion kinds.
const (
	SuggestionTerm   SuggestionKind = "term"
	SuggestionFilter SuggestionKind = "filter"
	SuggestionValue  SuggestionKind = "value"
)

// Suggestion is a ranked autocomplete candidate.
type Suggestion struct {
	Kind        SuggestionKind
	Label       string
	Description string
	Confidence  float64
	Frequency   float64
}

// Visibility controls who can read a saved filter preset.
type Visibility string

// Preset visibilities.
const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Preset is a named, reusable bundle of search filters.
type Preset struct {
	ID         string
	UserID     string
	Name       string
	Visibility Visibility
	IsDefault  bool
	Filters    Filters
	Tags       []string
	UsageCount int
	LastUsed   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PresetChange describes a partial preset update. Nil fields are left
// untouched.
type PresetChange struct {
	Name       *string
	Visibility *Visibility
	Filters    *Filters
	Tags       *[]string
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	ID             string
	UserID         string
	Text           string
	Filters        Filters
	ResultCount    int
	Duration       time.Duration
	OpenedOrderIDs []string
	SearchedAt     time.Time
}

// Weights holds the tunable relevance scoring constants.
type Weights struct {
	Number       float64
	SupplierName float64
	SupplierCode float64
	ExternalRef  float64
	CustomerRef  float64
	Instructions float64
	Notes        float64
	LineItems    float64

	ExactMultiplier  float64
	PrefixMultiplier float64
	TokenMultiplier  float64
	RecencyBoost     float64
	UrgentBoost      float64

	RecencyWindowDays int
}

// DefaultWeights returns the default scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Number:            10,
		SupplierName:      8,
		SupplierCode:      6,
		ExternalRef:       7,
		CustomerRef:       5,
		Instructions:      3,
		Notes:             2,
		LineItems:         4,
		ExactMultiplier:   2.0,
		PrefixMultiplier:  1.5,
		TokenMultiplier:   0.5,
		RecencyBoost:      1.2,
		UrgentBoost:       1.3,
		RecencyWindowDays: 30,
	}
}
