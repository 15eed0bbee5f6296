package ordersearch

import (
	"reflect"
	"testing"
	"time"

	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

func TestToConditionValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want filter.Value
	}{
		{"nil", nil, filter.Absent()},
		{"string", "EUR", filter.String("EUR")},
		{"bool", true, filter.Bool(true)},
		{"float64", 12.5, filter.Number(12.5)},
		{"int", 7, filter.Number(7)},
		{"range", Range{Min: 10, Max: 20}, filter.Bounds(10, 20)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toConditionValue(tc.in)
			if err != nil {
				t.Fatalf("toConditionValue(%v): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestToConditionValue_Unsupported(t *testing.T) {
	if _, err := toConditionValue(map[string]string{}); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestFiltersRoundTrip(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	min := 100.0
	in := Filters{
		Statuses:    []Status{StatusSent, StatusConfirmed},
		Priorities:  []Priority{PriorityUrgent},
		SupplierIDs: []string{"s1"},
		DateFrom:    &from,
		AmountMin:   &min,
		Conditions: []Condition{
			{Field: "currency", Operator: OpEquals, Value: "EUR"},
			{Field: "total_amount", Operator: OpBetween, Value: Range{Min: 10, Max: 20}},
		},
	}

	criteria, err := toInternalFilters(in)
	if err != nil {
		t.Fatalf("toInternalFilters: %v", err)
	}
	out := fromInternalCriteria(criteria)

	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestOrderRoundTrip(t *testing.T) {
	in := fixtureOrders()[0]
	out := fromInternalOrder(toInternalOrder(in))
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}
