package ordersearch

import (
	"fmt"

	"github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
	"github.com/glassline/ordersearch/internal/domain/search/result"
	"github.com/glassline/ordersearch/internal/domain/search/suggestion"
	searchuc "github.com/glassline/ordersearch/internal/usecase/search"
)

func toInternalOrder(o Order) order.Order {
	items := make([]order.LineItem, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = order.LineItem(li)
	}
	return order.Order{
		ID:     o.ID,
		Number: o.Number,
		Supplier: order.Supplier{
			ID:   o.Supplier.ID,
			Name: o.Supplier.Name,
			Code: o.Supplier.Code,
		},
		ExternalRef:  o.ExternalRef,
		CustomerRef:  o.CustomerRef,
		Instructions: o.Instructions,
		Notes:        o.Notes,
		Status:       order.Status(o.Status),
		Priority:     order.Priority(o.Priority),
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		CreatedAt:    o.CreatedAt,
		LineItems:    items,
	}
}

func toInternalOrders(orders []Order) []order.Order {
	out := make([]order.Order, len(orders))
	for i, o := range orders {
		out[i] = toInternalOrder(o)
	}
	return out
}

func fromInternalOrder(o order.Order) Order {
	items := make([]LineItem, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = LineItem(li)
	}
	return Order{
		ID:     o.ID,
		Number: o.Number,
		Supplier: Supplier{
			ID:   o.Supplier.ID,
			Name: o.Supplier.Name,
			Code: o.Supplier.Code,
		},
		ExternalRef:  o.ExternalRef,
		CustomerRef:  o.CustomerRef,
		Instructions: o.Instructions,
		Notes:        o.Notes,
		Status:       Status(o.Status),
		Priority:     Priority(o.Priority),
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		CreatedAt:    o.CreatedAt,
		LineItems:    items,
	}
}

func toInternalFilters(f Filters) (filter.Criteria, error) {
	c := filter.Criteria{
		SupplierIDs: f.SupplierIDs,
	}
	for _, st := range f.Statuses {
		c.Statuses = append(c.Statuses, order.Status(st))
	}
	for _, p := range f.Priorities {
		c.Priorities = append(c.Priorities, order.Priority(p))
	}
	if f.DateFrom != nil || f.DateTo != nil {
		c.DateRange = &filter.DateRange{From: f.DateFrom, To: f.DateTo}
	}
	if f.AmountMin != nil || f.AmountMax != nil {
		c.AmountRange = &filter.AmountRange{Min: f.AmountMin, Max: f.AmountMax}
	}
	for _, cond := range f.Conditions {
		v, err := toConditionValue(cond.Value)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("condition %q: %w", cond.Field, err)
		}
		c.Conditions = append(c.Conditions, filter.Condition{
			Field:    cond.Field,
			Operator: filter.Operator(cond.Operator),
			Value:    v,
		})
	}
	return c, nil
}

// toConditionValue maps a loosely typed condition operand into the tagged
// variant. A nil operand becomes the absent value, which never matches.
func toConditionValue(v any) (filter.Value, error) {
	switch x := v.(type) {
	case nil:
		return filter.Absent(), nil
	case string:
		return filter.String(x), nil
	case bool:
		return filter.Bool(x), nil
	case float64:
		return filter.Number(x), nil
	case float32:
		return filter.Number(float64(x)), nil
	case int:
		return filter.Number(float64(x)), nil
	case int64:
		return filter.Number(float64(x)), nil
	case Range:
		return filter.Bounds(x.Min, x.Max), nil
	default:
		return filter.Value{}, fmt.Errorf("unsupported value type %T", v)
	}
}

func fromInternalCriteria(c filter.Criteria) Filters {
	f := Filters{
		SupplierIDs: c.SupplierIDs,
	}
	for _, st := range c.Statuses {
		f.Statuses = append(f.Statuses, Status(st))
	}
	for _, p := range c.Priorities {
		f.Priorities = append(f.Priorities, Priority(p))
	}
	if c.DateRange != nil {
		f.DateFrom = c.DateRange.From
		f.DateTo = c.DateRange.To
	}
	if c.AmountRange != nil {
		f.AmountMin = c.AmountRange.Min
		f.AmountMax = c.AmountRange.Max
	}
	for _, cond := range c.Conditions {
		f.Conditions = append(f.Conditions, Condition{
			Field:    cond.Field,
			Operator: Operator(cond.Operator),
			Value:    fromConditionValue(cond.Value),
		})
	}
	return f
}

func fromConditionValue(v filter.Value) any {
	switch v.Kind() {
	case filter.KindString:
		return v.Str()
	case filter.KindNumber:
		return v.Num()
	case filter.KindBool:
		return v.Boolean()
	case filter.KindRange:
		lo, hi := v.Range()
		return Range{Min: lo, Max: hi}
	default:
		return nil
	}
}

func fromSearchResponse(resp searchuc.Response) SearchResponse {
	return SearchResponse{
		Results:        fromResults(resp.Results),
		TotalCount:     resp.TotalCount,
		AppliedFilters: resp.AppliedFilters,
		Duration:       resp.Duration,
	}
}

func fromResults(results []result.Result) []Result {
	out := make([]Result, len(results))
	for i := range results {
		r := &results[i]
		reasons := make([]MatchReason, len(r.Reasons()))
		for j, mr := range r.Reasons() {
			reasons[j] = MatchReason{
				Field:       mr.Field,
				Tier:        MatchTier(mr.Tier),
				Confidence:  mr.Confidence,
				Highlighted: mr.Highlighted,
			}
		}
		out[i] = Result{
			OrderID:  r.OrderID(),
			Score:    r.Score(),
			Reasons:  reasons,
			Snippets: r.Snippets(),
		}
	}
	return out
}

func fromSuggestions(suggestions []suggestion.Suggestion) []Suggestion {
	out := make([]Suggestion, len(suggestions))
	for i := range suggestions {
		s := &suggestions[i]
		out[i] = Suggestion{
			Kind:        SuggestionKind(s.Kind()),
			Label:       s.Label(),
			Description: s.Description(),
			Confidence:  s.Confidence(),
			Frequency:   s.Frequency(),
		}
	}
	return out
}

func fromInternalPreset(p preset.Preset) Preset {
	return Preset{
		ID:         p.ID(),
		UserID:     p.UserID(),
		Name:       p.Name(),
		Visibility: Visibility(p.Visibility()),
		IsDefault:  p.IsDefault(),
		Filters:    fromInternalCriteria(p.Criteria()),
		Tags:       p.Tags(),
		UsageCount: p.UsageCount(),
		LastUsed:   p.LastUsed(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

func toInternalChange(ch PresetChange) (preset.Change, error) {
	out := preset.Change{
		Name: ch.Name,
		Tags: ch.Tags,
	}
	if ch.Visibility != nil {
		v := preset.Visibility(*ch.Visibility)
		out.Visibility = &v
	}
	if ch.Filters != nil {
		c, err := toInternalFilters(*ch.Filters)
		if err != nil {
			return preset.Change{}, err
		}
		out.Criteria = &c
	}
	return out, nil
}

func fromHistoryEntries(entries []history.Entry) []HistoryEntry {
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			ID:             e.ID,
			UserID:         e.UserID,
			Text:           e.Text,
			Filters:        fromInternalCriteria(e.Criteria),
			ResultCount:    e.ResultCount,
			Duration:       e.Duration,
			OpenedOrderIDs: e.OpenedOrderIDs,
			SearchedAt:     e.SearchedAt,
		}
	}
	return out
}

func toInternalWeights(w Weights) searchuc.Weights {
	return searchuc.Weights{
		Number:            w.Number,
		SupplierName:      w.SupplierName,
		SupplierCode:      w.SupplierCode,
		ExternalRef:       w.ExternalRef,
		CustomerRef:       w.CustomerRef,
		Instructions:      w.Instructions,
		Notes:             w.Notes,
		LineItems:         w.LineItems,
		ExactMultiplier:   w.ExactMultiplier,
		PrefixMultiplier:  w.PrefixMultiplier,
		TokenMultiplier:   w.TokenMultiplier,
		RecencyBoost:      w.RecencyBoost,
		UrgentBoost:       w.UrgentBoost,
		RecencyWindowDays: w.RecencyWindowDays,
	}
}
