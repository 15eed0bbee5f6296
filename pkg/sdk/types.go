package sdk

import (
	"encoding/json"
	"time"
)

// Condition is a custom filter clause on a dotted field path. Value carries
// a string, number, bool, or {"min","max"} object; null never matches.
type Condition struct {
	Field    string          `json:"field"`
	Operator string          `json:"operator"`
	Value    json.RawMessage `json:"value,omitempty"`
}

// Filters is the structured criteria bundle of a search. All parts combine
// with logical AND; empty parts are no-ops.
type Filters struct {
	Statuses    []string    `json:"statuses,omitempty"`
	Priorities  []string    `json:"priorities,omitempty"`
	SupplierIDs []string    `json:"supplier_ids,omitempty"`
	DateFrom    *time.Time  `json:"date_from,omitempty"`
	DateTo      *time.Time  `json:"date_to,omitempty"`
	AmountMin   *float64    `json:"amount_min,omitempty"`
	AmountMax   *float64    `json:"amount_max,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty"`
}

// SearchRequest is one search query.
type SearchRequest struct {
	TextSearch    string   `json:"text_search,omitempty"`
	Filters       *Filters `json:"filters,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	SortDirection string   `json:"sort_direction,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}

// MatchReason explains one field's contribution to a result's score.
type MatchReason struct {
	Field       string  `json:"field"`
	Tier        string  `json:"tier"`
	Confidence  float64 `json:"confidence"`
	Highlighted string  `json:"highlighted,omitempty"`
}

// Result is a single ranked search hit.
type Result struct {
	OrderID      string        `json:"order_id"`
	Score        float64       `json:"score"`
	MatchReasons []MatchReason `json:"match_reasons,omitempty"`
	Snippets     []string      `json:"snippets,omitempty"`
}

// SearchResponse is the outcome of one search query.
type SearchResponse struct {
	Results        []Result     `json:"results"`
	TotalCount     int          `json:"total_count"`
	DurationMillis int64        `json:"search_duration_ms"`
	AppliedFilters []string     `json:"applied_filters,omitempty"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion is a ranked autocomplete candidate.
type Suggestion struct {
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
	Frequency   float64 `json:"frequency"`
}

type suggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// PresetRequest creates a saved filter preset.
type PresetRequest struct {
	Name       string   `json:"name"`
	Visibility string   `json:"visibility,omitempty"`
	Criteria   *Filters `json:"criteria,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// PresetPatch partially updates a preset. Nil fields are left untouched.
type PresetPatch struct {
	Name       *string   `json:"name,omitempty"`
	Visibility *string   `json:"visibility,omitempty"`
	Criteria   *Filters  `json:"criteria,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

// Preset is a saved filter preset.
type Preset struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Visibility string     `json:"visibility"`
	IsDefault  bool       `json:"is_default"`
	Criteria   Filters    `json:"criteria"`
	Tags       []string   `json:"tags,omitempty"`
	UsageCount int        `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type presetListResponse struct {
	Items []Preset `json:"items"`
}

type applyResponse struct {
	Criteria Filters `json:"criteria"`
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Text           string    `json:"text,omitempty"`
	Filters        Filters   `json:"filters"`
	ResultCount    int       `json:"result_count"`
	DurationMillis int64     `json:"duration_ms"`
	OpenedOrderIDs []string  `json:"opened_order_ids,omitempty"`
	SearchedAt     time.Time `json:"searched_at"`
}

type historyResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// Supplier is the counterparty of a purchase order.
type Supplier struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// LineItem is a single ordered position.
type LineItem struct {
	Description string  `json:"description,omitempty"`
	ProductCode string  `json:"product_code,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Order is a purchase-order snapshot fed into the index. The order id
// travels in the URL, not the body.
type Order struct {
	Number       string     `json:"number"`
	Supplier     Supplier   `json:"supplier"`
	ExternalRef  string     `json:"external_ref,omitempty"`
	CustomerRef  string     `json:"customer_ref,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority,omitempty"`
	TotalAmount  float64    `json:"total_amount"`
	Currency     string     `json:"currency,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LineItems    []LineItem `json:"line_items,omitempty"`
}

type rebuildResponse struct {
	IndexedOrders int `json:"indexed_orders"`
}

// HealthReport is the aggregated health check outcome.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
