package criteriajson

import (
	"reflect"
	"testing"
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

func TestRoundTrip_FullBundle(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	min, max := 100.0, 50000.0

	in := filter.Criteria{
		Text:        "tempered",
		Statuses:    []order.Status{order.StatusSent, order.StatusConfirmed},
		Priorities:  []order.Priority{order.PriorityUrgent},
		SupplierIDs: []string{"s1", "s2"},
		DateRange:   &filter.DateRange{From: &from, To: &to},
		AmountRange: &filter.AmountRange{Min: &min, Max: &max},
		Conditions: []filter.Condition{
			{Field: "supplier.name", Operator: filter.OpContains, Value: filter.String("glaz")},
			{Field: "totalAmount", Operator: filter.OpBetween, Value: filter.Bounds(10, 20)},
			{Field: "createdAt", Operator: filter.OpGreaterThan, Value: filter.Number(1700000000)},
		},
	}

	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsEmpty() || got.Text != "" {
		t.Fatalf("expected empty criteria, got %+v", got)
	}
}
