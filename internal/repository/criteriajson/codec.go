// Package criteriajson round-trips filter criteria through JSON for the
// preset and history repositories. The encoding is exact, including the
// tagged condition values and date bounds.
package criteriajson

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

type conditionRow struct {
	Field    string  `json:"field"`
	Operator string  `json:"operator"`
	Kind     string  `json:"kind"`
	Str      string  `json:"str,omitempty"`
	Num      float64 `json:"num,omitempty"`
	Bool     bool    `json:"bool,omitempty"`
	Lo       float64 `json:"lo,omitempty"`
	Hi       float64 `json:"hi,omitempty"`
}

type criteriaRow struct {
	Text        string         `json:"text,omitempty"`
	Statuses    []string       `json:"statuses,omitempty"`
	Priorities  []string       `json:"priorities,omitempty"`
	SupplierIDs []string       `json:"supplier_ids,omitempty"`
	DateFrom    *time.Time     `json:"date_from,omitempty"`
	DateTo      *time.Time     `json:"date_to,omitempty"`
	AmountMin   *float64       `json:"amount_min,omitempty"`
	AmountMax   *float64       `json:"amount_max,omitempty"`
	Conditions  []conditionRow `json:"conditions,omitempty"`
}

// Value kind tags in the stored form.
const (
	kindString = "string"
	kindNumber = "number"
	kindBool   = "bool"
	kindRange  = "range"
	kindAbsent = "absent"
)

// Encode serializes criteria to JSON.
func Encode(c filter.Criteria) ([]byte, error) {
	row := criteriaRow{
		Text:        c.Text,
		SupplierIDs: c.SupplierIDs,
	}
	for _, s := range c.Statuses {
		row.Statuses = append(row.Statuses, string(s))
	}
	for _, p := range c.Priorities {
		row.Priorities = append(row.Priorities, string(p))
	}
	if c.DateRange != nil {
		row.DateFrom = c.DateRange.From
		row.DateTo = c.DateRange.To
	}
	if c.AmountRange != nil {
		row.AmountMin = c.AmountRange.Min
		row.AmountMax = c.AmountRange.Max
	}
	for _, cond := range c.Conditions {
		row.Conditions = append(row.Conditions, encodeCondition(cond))
	}

	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("marshal criteria: %w", err)
	}
	return data, nil
}

// Decode deserializes criteria from JSON.
func Decode(data []byte) (filter.Criteria, error) {
	if len(data) == 0 {
		return filter.Criteria{}, nil
	}

	var row criteriaRow
	if err := json.Unmarshal(data, &row); err != nil {
		return filter.Criteria{}, fmt.Errorf("unmarshal criteria: %w", err)
	}

	c := filter.Criteria{
		Text:        row.Text,
		SupplierIDs: row.SupplierIDs,
	}
	for _, s := range row.Statuses {
		c.Statuses = append(c.Statuses, order.Status(s))
	}
	for _, p := range row.Priorities {
		c.Priorities = append(c.Priorities, order.Priority(p))
	}
	if row.DateFrom != nil || row.DateTo != nil {
		c.DateRange = &filter.DateRange{From: row.DateFrom, To: row.DateTo}
	}
	if row.AmountMin != nil || row.AmountMax != nil {
		c.AmountRange = &filter.AmountRange{Min: row.AmountMin, Max: row.AmountMax}
	}
	for _, cond := range row.Conditions {
		c.Conditions = append(c.Conditions, decodeCondition(cond))
	}
	return c, nil
}

func encodeCondition(cond filter.Condition) conditionRow {
	row := conditionRow{
		Field:    cond.Field,
		Operator: string(cond.Operator),
	}
	switch cond.Value.Kind() {
	case filter.KindString:
		row.Kind = kindString
		row.Str = cond.Value.Str()
	case filter.KindNumber:
		row.Kind = kindNumber
		row.Num = cond.Value.Num()
	case filter.KindBool:
		row.Kind = kindBool
		row.Bool = cond.Value.Boolean()
	case filter.KindRange:
		row.Kind = kindRange
		row.Lo, row.Hi = cond.Value.Range()
	default:
		row.Kind = kindAbsent
	}
	return row
}

func decodeCondition(row conditionRow) filter.Condition {
	cond := filter.Condition{
		Field:    row.Field,
		Operator: filter.Operator(row.Operator),
	}
	switch row.Kind {
	case kindString:
		cond.Value = filter.String(row.Str)
	case kindNumber:
		cond.Value = filter.Number(row.Num)
	case kindBool:
		cond.Value = filter.Bool(row.Bool)
	case kindRange:
		cond.Value = filter.Bounds(row.Lo, row.Hi)
	default:
		cond.Value = filter.Absent()
	}
	return cond
}
