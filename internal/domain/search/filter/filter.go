// Package filter defines the structured search criteria bundle and the
// tagged value variant used by custom field conditions.
package filter

import (
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
)

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

// IsValid reports whether the operator is known. Unknown operators are not
// an error at evaluation time: a record simply fails the condition.
func (o Operator) IsValid() bool {
	switch o {
	case OpEquals, OpContains, OpStartsWith, OpEndsWith,
		OpGreaterThan, OpLessThan, OpBetween:
		return true
	}
	return false
}

// Kind discriminates the Value variant.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindRange
)

// Value is a tagged variant for condition operands and field lookups.
// The zero Value is absent: a lookup on a missing field path yields it, and
// any comparison against it fails without panicking.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	lo   float64
	hi   float64
}

// Absent returns the absent sentinel value.
func Absent() Value { return Value{} }

// String wraps a string operand.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric operand.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean operand.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Bounds wraps a two-element bound pair for the between operator.
func Bounds(lo, hi float64) Value { return Value{kind: KindRange, lo: lo, hi: hi} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the absent sentinel.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string payload (empty unless KindString).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (zero unless KindNumber).
func (v Value) Num() float64 { return v.num }

// Boolean returns the bool payload (false unless KindBool).
func (v Value) Boolean() bool { return v.b }

// Range returns the bound pair (zeros unless KindRange).
func (v Value) Range() (lo, hi float64) { return v.lo, v.hi }

// Condition is a single custom filter clause: field path, operator, operand.
// Field paths support dotted nested access, e.g. "supplier.name".
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
}

// DateRange bounds a record timestamp, inclusive on both ends.
// Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// AmountRange bounds a record amount, inclusive on both ends.
// Nil bounds are open.
type AmountRange struct {
	Min *float64
	Max *float64
}

// Criteria is the full structured predicate bundle of a search. All parts
// are combined with logical AND; empty parts are no-ops.
type Criteria struct {
	Text        string
	Statuses    []order.Status
	Priorities  []order.Priority
	SupplierIDs []string
	DateRange   *DateRange
	AmountRange *AmountRange
	Conditions  []Condition
}

// IsEmpty reports whether no structured constraint is set (text excluded).
func (c Criteria) IsEmpty() bool {
	return len(c.Statuses) == 0 &&
		len(c.Priorities) == 0 &&
		len(c.SupplierIDs) == 0 &&
		c.DateRange == nil &&
		c.AmountRange == nil &&
		len(c.Conditions) == 0
}
