package chi

import (
	"encoding/json"
	"fmt"
	"time"

	domhistory "github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/domain/order"
	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
	"github.com/glassline/ordersearch/internal/domain/search/result"
	"github.com/glassline/ordersearch/internal/domain/search/suggestion"
)

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeAlreadyExists    = "already_exists"
	codeForbidden        = "forbidden"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type conditionDTO struct {
	Field    string          `json:"field"`
	Operator string          `json:"operator"`
	Value    json.RawMessage `json:"value,omitempty"`
}

type filtersDTO struct {
	Statuses    []string       `json:"statuses,omitempty"`
	Priorities  []string       `json:"priorities,omitempty"`
	SupplierIDs []string       `json:"supplier_ids,omitempty"`
	DateFrom    *time.Time     `json:"date_from,omitempty"`
	DateTo      *time.Time     `json:"date_to,omitempty"`
	AmountMin   *float64       `json:"amount_min,omitempty"`
	AmountMax   *float64       `json:"amount_max,omitempty"`
	Conditions  []conditionDTO `json:"conditions,omitempty"`
}

type searchRequestDTO struct {
	TextSearch    string      `json:"text_search,omitempty"`
	Filters       *filtersDTO `json:"filters,omitempty"`
	SortBy        string      `json:"sort_by,omitempty"`
	SortDirection string      `json:"sort_direction,omitempty"`
	Limit         int         `json:"limit,omitempty"`
	Offset        int         `json:"offset,omitempty"`
}

type matchReasonDTO struct {
	Field       string  `json:"field"`
	Tier        string  `json:"tier"`
	Confidence  float64 `json:"confidence"`
	Highlighted string  `json:"highlighted,omitempty"`
}

type resultDTO struct {
	OrderID      string           `json:"order_id"`
	Score        float64          `json:"score"`
	MatchReasons []matchReasonDTO `json:"match_reasons,omitempty"`
	Snippets     []string         `json:"snippets,omitempty"`
}

type searchResponseDTO struct {
	Results        []resultDTO     `json:"results"`
	TotalCount     int             `json:"total_count"`
	DurationMillis int64           `json:"search_duration_ms"`
	AppliedFilters []string        `json:"applied_filters,omitempty"`
	Suggestions    []suggestionDTO `json:"suggestions,omitempty"`
}

type suggestionDTO struct {
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
	Frequency   float64 `json:"frequency"`
}

type suggestionsResponseDTO struct {
	Suggestions []suggestionDTO `json:"suggestions"`
}

type presetRequestDTO struct {
	Name       string      `json:"name"`
	Visibility string      `json:"visibility,omitempty"`
	Criteria   *filtersDTO `json:"criteria,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
}

type presetPatchDTO struct {
	Name       *string     `json:"name,omitempty"`
	Visibility *string     `json:"visibility,omitempty"`
	Criteria   *filtersDTO `json:"criteria,omitempty"`
	Tags       *[]string   `json:"tags,omitempty"`
}

type presetResponseDTO struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Visibility string     `json:"visibility"`
	IsDefault  bool       `json:"is_default"`
	Criteria   filtersDTO `json:"criteria"`
	Tags       []string   `json:"tags,omitempty"`
	UsageCount int        `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type applyResponseDTO struct {
	Criteria filtersDTO `json:"criteria"`
}

type historyEntryDTO struct {
	ID             string     `json:"id"`
	Text           string     `json:"text,omitempty"`
	Filters        filtersDTO `json:"filters"`
	ResultCount    int        `json:"result_count"`
	DurationMillis int64      `json:"duration_ms"`
	OpenedOrderIDs []string   `json:"opened_order_ids,omitempty"`
	SearchedAt     time.Time  `json:"searched_at"`
}

type historyResponseDTO struct {
	Entries []historyEntryDTO `json:"entries"`
}

type lineItemDTO struct {
	Description string  `json:"description,omitempty"`
	ProductCode string  `json:"product_code,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type supplierDTO struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

type orderRequestDTO struct {
	Number       string        `json:"number"`
	Supplier     supplierDTO   `json:"supplier"`
	ExternalRef  string        `json:"external_ref,omitempty"`
	CustomerRef  string        `json:"customer_ref,omitempty"`
	Instructions string        `json:"instructions,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Status       string        `json:"status"`
	Priority     string        `json:"priority,omitempty"`
	TotalAmount  float64       `json:"total_amount"`
	Currency     string        `json:"currency,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	LineItems    []lineItemDTO `json:"line_items,omitempty"`
}

type rebuildResponseDTO struct {
	IndexedOrders int `json:"indexed_orders"`
}

func criteriaFromDTO(dto *filtersDTO) (filter.Criteria, error) {
	if dto == nil {
		return filter.Criteria{}, nil
	}

	c := filter.Criteria{SupplierIDs: dto.SupplierIDs}
	for _, s := range dto.Statuses {
		c.Statuses = append(c.Statuses, order.Status(s))
	}
	for _, p := range dto.Priorities {
		c.Priorities = append(c.Priorities, order.Priority(p))
	}
	if dto.DateFrom != nil || dto.DateTo != nil {
		c.DateRange = &filter.DateRange{From: dto.DateFrom, To: dto.DateTo}
	}
	if dto.AmountMin != nil || dto.AmountMax != nil {
		c.AmountRange = &filter.AmountRange{Min: dto.AmountMin, Max: dto.AmountMax}
	}
	for _, cond := range dto.Conditions {
		dc, err := conditionFromDTO(cond)
		if err != nil {
			return filter.Criteria{}, err
		}
		c.Conditions = append(c.Conditions, dc)
	}
	return c, nil
}

// conditionFromDTO maps the loosely typed JSON value onto the tagged domain
// value. An omitted or null value stays absent; such conditions never match.
func conditionFromDTO(dto conditionDTO) (filter.Condition, error) {
	cond := filter.Condition{
		Field:    dto.Field,
		Operator: filter.Operator(dto.Operator),
		Value:    filter.Absent(),
	}
	if len(dto.Value) == 0 || string(dto.Value) == "null" {
		return cond, nil
	}

	var str string
	if err := json.Unmarshal(dto.Value, &str); err == nil {
		cond.Value = filter.String(str)
		return cond, nil
	}
	var num float64
	if err := json.Unmarshal(dto.Value, &num); err == nil {
		cond.Value = filter.Number(num)
		return cond, nil
	}
	var b bool
	if err := json.Unmarshal(dto.Value, &b); err == nil {
		cond.Value = filter.Bool(b)
		return cond, nil
	}
	var bounds struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}
	if err := json.Unmarshal(dto.Value, &bounds); err == nil {
		cond.Value = filter.Bounds(bounds.Min, bounds.Max)
		return cond, nil
	}
	return filter.Condition{}, fmt.Errorf("condition %q: unsupported value %s", dto.Field, dto.Value)
}

func criteriaToDTO(c filter.Criteria) filtersDTO {
	dto := filtersDTO{SupplierIDs: c.SupplierIDs}
	for _, s := range c.Statuses {
		dto.Statuses = append(dto.Statuses, string(s))
	}
	for _, p := range c.Priorities {
		dto.Priorities = append(dto.Priorities, string(p))
	}
	if c.DateRange != nil {
		dto.DateFrom = c.DateRange.From
		dto.DateTo = c.DateRange.To
	}
	if c.AmountRange != nil {
		dto.AmountMin = c.AmountRange.Min
		dto.AmountMax = c.AmountRange.Max
	}
	for _, cond := range c.Conditions {
		dto.Conditions = append(dto.Conditions, conditionToDTO(cond))
	}
	return dto
}

func conditionToDTO(cond filter.Condition) conditionDTO {
	dto := conditionDTO{
		Field:    cond.Field,
		Operator: string(cond.Operator),
	}

	var raw []byte
	switch cond.Value.Kind() {
	case filter.KindString:
		raw, _ = json.Marshal(cond.Value.Str())
	case filter.KindNumber:
		raw, _ = json.Marshal(cond.Value.Num())
	case filter.KindBool:
		raw, _ = json.Marshal(cond.Value.Boolean())
	case filter.KindRange:
		lo, hi := cond.Value.Range()
		raw, _ = json.Marshal(map[string]float64{"min": lo, "max": hi})
	}
	dto.Value = raw
	return dto
}

func resultToDTO(r *result.Result) resultDTO {
	dto := resultDTO{
		OrderID:  r.OrderID(),
		Score:    r.Score(),
		Snippets: r.Snippets(),
	}
	for _, reason := range r.Reasons() {
		dto.MatchReasons = append(dto.MatchReasons, matchReasonDTO{
			Field:       reason.Field,
			Tier:        string(reason.Tier),
			Confidence:  reason.Confidence,
			Highlighted: reason.Highlighted,
		})
	}
	return dto
}

func suggestionsToDTO(ss []suggestion.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, len(ss))
	for i := range ss {
		s := &ss[i]
		out[i] = suggestionDTO{
			Kind:        string(s.Kind()),
			Label:       s.Label(),
			Description: s.Description(),
			Confidence:  s.Confidence(),
			Frequency:   s.Frequency(),
		}
	}
	return out
}

func presetToDTO(p *dompreset.Preset) presetResponseDTO {
	return presetResponseDTO{
		ID:         p.ID(),
		UserID:     p.UserID(),
		Name:       p.Name(),
		Visibility: string(p.Visibility()),
		IsDefault:  p.IsDefault(),
		Criteria:   criteriaToDTO(p.Criteria()),
		Tags:       p.Tags(),
		UsageCount: p.UsageCount(),
		LastUsed:   p.LastUsed(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

func historyEntryToDTO(e *domhistory.Entry) historyEntryDTO {
	return historyEntryDTO{
		ID:             e.ID,
		Text:           e.Text,
		Filters:        criteriaToDTO(e.Criteria),
		ResultCount:    e.ResultCount,
		DurationMillis: e.Duration.Milliseconds(),
		OpenedOrderIDs: e.OpenedOrderIDs,
		SearchedAt:     e.SearchedAt,
	}
}

func orderFromDTO(id string, dto orderRequestDTO) order.Order {
	o := order.Order{
		ID:           id,
		Number:       dto.Number,
		Supplier:     order.Supplier{ID: dto.Supplier.ID, Name: dto.Supplier.Name, Code: dto.Supplier.Code},
		ExternalRef:  dto.ExternalRef,
		CustomerRef:  dto.CustomerRef,
		Instructions: dto.Instructions,
		Notes:        dto.Notes,
		Status:       order.Status(dto.Status),
		Priority:     order.Priority(dto.Priority),
		TotalAmount:  dto.TotalAmount,
		Currency:     dto.Currency,
		CreatedAt:    dto.CreatedAt,
	}
	for _, li := range dto.LineItems {
		o.LineItems = append(o.LineItems, order.LineItem(li))
	}
	return o
}
