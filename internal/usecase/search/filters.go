package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// applyFilters narrows orders to those matching every part of the criteria
// bundle (logical AND) and returns human-readable descriptions of the
// filters that were applied. Filtering never fails: malformed conditions
// exclude records instead of erroring.
func applyFilters(orders []order.Order, c filter.Criteria) ([]order.Order, []string) {
	matched := orders
	var applied []string

	if len(c.Statuses) > 0 {
		matched = keep(matched, func(o *order.Order) bool {
			return containsStatus(c.Statuses, o.Status)
		})
		applied = append(applied, "status in "+joinStatuses(c.Statuses))
	}

	if len(c.Priorities) > 0 {
		matched = keep(matched, func(o *order.Order) bool {
			return containsPriority(c.Priorities, o.Priority)
		})
		applied = append(applied, "priority in "+joinPriorities(c.Priorities))
	}

	if len(c.SupplierIDs) > 0 {
		matched = keep(matched, func(o *order.Order) bool {
			for _, id := range c.SupplierIDs {
				if o.Supplier.ID == id {
					return true
				}
			}
			return false
		})
		applied = append(applied, fmt.Sprintf("supplier in [%s]", strings.Join(c.SupplierIDs, ", ")))
	}

	if dr := c.DateRange; dr != nil {
		matched = keep(matched, func(o *order.Order) bool {
			if dr.From != nil && o.CreatedAt.Before(*dr.From) {
				return false
			}
			if dr.To != nil && o.CreatedAt.After(*dr.To) {
				return false
			}
			return true
		})
		applied = append(applied, describeDateRange(dr))
	}

	if ar := c.AmountRange; ar != nil {
		matched = keep(matched, func(o *order.Order) bool {
			if ar.Min != nil && o.TotalAmount < *ar.Min {
				return false
			}
			if ar.Max != nil && o.TotalAmount > *ar.Max {
				return false
			}
			return true
		})
		applied = append(applied, describeAmountRange(ar))
	}

	for _, cond := range c.Conditions {
		cond := cond
		matched = keep(matched, func(o *order.Order) bool {
			return evalCondition(o, cond)
		})
		applied = append(applied, describeCondition(cond))
	}

	return matched, applied
}

func keep(orders []order.Order, pred func(*order.Order) bool) []order.Order {
	out := make([]order.Order, 0, len(orders))
	for i := range orders {
		if pred(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	return out
}

// evalCondition evaluates one custom condition against an order. Absent
// fields and unknown operators fail the condition, never panic.
func evalCondition(o *order.Order, cond filter.Condition) bool {
	fieldVal := lookupField(o, cond.Field)
	if fieldVal.IsAbsent() {
		return false
	}

	switch cond.Operator {
	case filter.OpEquals:
		return evalEquals(fieldVal, cond.Value)
	case filter.OpContains:
		return strings.Contains(lowerString(fieldVal), lowerString(cond.Value))
	case filter.OpStartsWith:
		return strings.HasPrefix(lowerString(fieldVal), lowerString(cond.Value))
	case filter.OpEndsWith:
		return strings.HasSuffix(lowerString(fieldVal), lowerString(cond.Value))
	case filter.OpGreaterThan:
		fn, fok := asNumber(fieldVal)
		vn, vok := asNumber(cond.Value)
		return fok && vok && fn > vn
	case filter.OpLessThan:
		fn, fok := asNumber(fieldVal)
		vn, vok := asNumber(cond.Value)
		return fok && vok && fn < vn
	case filter.OpBetween:
		if cond.Value.Kind() != filter.KindRange {
			return false
		}
		fn, fok := asNumber(fieldVal)
		if !fok {
			return false
		}
		lo, hi := cond.Value.Range()
		return fn >= lo && fn <= hi
	default:
		// Unknown operator excludes the record.
		return false
	}
}

func evalEquals(field, operand filter.Value) bool {
	if field.Kind() == filter.KindNumber || operand.Kind() == filter.KindNumber {
		fn, fok := asNumber(field)
		vn, vok := asNumber(operand)
		return fok && vok && fn == vn
	}
	if field.Kind() == filter.KindBool && operand.Kind() == filter.KindBool {
		return field.Boolean() == operand.Boolean()
	}
	return strings.EqualFold(field.Str(), operand.Str())
}

// lookupField resolves a dotted field path on an order. Unknown paths yield
// the absent sentinel. Timestamps resolve to unix seconds so numeric
// operators apply.
func lookupField(o *order.Order, path string) filter.Value {
	head, rest, nested := strings.Cut(path, ".")

	if nested {
		if head != "supplier" {
			return filter.Absent()
		}
		switch rest {
		case "id":
			return filter.String(o.Supplier.ID)
		case "name":
			return filter.String(o.Supplier.Name)
		case "code":
			return filter.String(o.Supplier.Code)
		default:
			return filter.Absent()
		}
	}

	switch head {
	case "id":
		return filter.String(o.ID)
	case "number":
		return filter.String(o.Number)
	case "externalRef":
		return filter.String(o.ExternalRef)
	case "customerRef":
		return filter.String(o.CustomerRef)
	case "instructions":
		return filter.String(o.Instructions)
	case "notes":
		return filter.String(o.Notes)
	case "status":
		return filter.String(string(o.Status))
	case "priority":
		return filter.String(string(o.Priority))
	case "currency":
		return filter.String(o.Currency)
	case "totalAmount":
		return filter.Number(o.TotalAmount)
	case "createdAt":
		return filter.Number(float64(o.CreatedAt.Unix()))
	default:
		return filter.Absent()
	}
}

func asNumber(v filter.Value) (float64, bool) {
	switch v.Kind() {
	case filter.KindNumber:
		return v.Num(), true
	case filter.KindString:
		n, err := strconv.ParseFloat(v.Str(), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func lowerString(v filter.Value) string {
	switch v.Kind() {
	case filter.KindString:
		return strings.ToLower(v.Str())
	case filter.KindNumber:
		return strconv.FormatFloat(v.Num(), 'f', -1, 64)
	case filter.KindBool:
		return strconv.FormatBool(v.Boolean())
	default:
		return ""
	}
}

func containsStatus(set []order.Status, s order.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []order.Priority, p order.Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

func joinStatuses(set []order.Status) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func joinPriorities(set []order.Priority) string {
	parts := make([]string, len(set))
	for i, p := range set {
		parts[i] = string(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func describeDateRange(dr *filter.DateRange) string {
	from, to := "*", "*"
	if dr.From != nil {
		from = dr.From.Format("2006-01-02")
	}
	if dr.To != nil {
		to = dr.To.Format("2006-01-02")
	}
	return fmt.Sprintf("created %s..%s", from, to)
}

func describeAmountRange(ar *filter.AmountRange) string {
	min, max := "*", "*"
	if ar.Min != nil {
		min = strconv.FormatFloat(*ar.Min, 'f', -1, 64)
	}
	if ar.Max != nil {
		max = strconv.FormatFloat(*ar.Max, 'f', -1, 64)
	}
	return fmt.Sprintf("amount %s..%s", min, max)
}

func describeCondition(cond filter.Condition) string {
	var operand string
	switch cond.Value.Kind() {
	case filter.KindRange:
		lo, hi := cond.Value.Range()
		operand = fmt.Sprintf("[%s, %s]",
			strconv.FormatFloat(lo, 'f', -1, 64),
			strconv.FormatFloat(hi, 'f', -1, 64))
	default:
		operand = lowerString(cond.Value)
	}
	return fmt.Sprintf("%s %s %q", cond.Field, cond.Operator, operand)
}
