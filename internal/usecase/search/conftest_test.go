package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain/search/filter"
	"github.com/glassline/ordersearch/internal/domain/order"
)

// fixedNow keeps recency boosts deterministic across the package tests.
var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type mockSource struct {
	orders []order.Order
}

func (m *mockSource) Snapshot() []order.Order {
	out := make([]order.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

// scanIndex always falls back to a full scan.
type scanIndex struct{}

func (scanIndex) Candidates(_ []string) (map[string]struct{}, bool) { return nil, false }

// fixedIndex returns a canned candidate set.
type fixedIndex struct {
	ids map[string]struct{}
}

func (f *fixedIndex) Candidates(_ []string) (map[string]struct{}, bool) { return f.ids, true }

type mockRecorder struct {
	calls  int
	userID string
	text   string
	count  int
	err    error
}

func (m *mockRecorder) Record(
	_ context.Context, userID, text string,
	_ filter.Criteria, resultCount int, _ time.Duration,
) error {
	m.calls++
	m.userID = userID
	m.text = text
	m.count = resultCount
	return m.err
}

func newTestService(orders []order.Order) *Service {
	return New(&mockSource{orders: orders}, scanIndex{}, nil, zap.NewNop()).
		WithClock(func() time.Time { return fixedNow })
}

func urgentHardwareOrder() order.Order {
	return order.Order{
		ID:          "PO-1",
		Number:      "PO-2024-001",
		Supplier:    order.Supplier{ID: "s1", Name: "Hardware Direct", Code: "HWD"},
		TotalAmount: 2745.00,
		Priority:    order.PriorityUrgent,
		Status:      order.StatusSent,
		CreatedAt:   fixedNow,
	}
}
