package ordersearch

import (
	"context"
	"fmt"
)

// OrderService feeds order snapshots from the owning system into the engine.
type OrderService struct {
	engine *Engine
}

// Upsert adds or replaces one order. Store-backed engines persist the
// snapshot before updating the catalog.
func (s *OrderService) Upsert(ctx context.Context, o Order) error {
	dom := toInternalOrder(o)
	if s.engine.ingestSvc != nil {
		return s.engine.ingestSvc.Upsert(ctx, dom)
	}
	if dom.ID == "" {
		return fmt.Errorf("%w: order id is required", ErrInvalidRequest)
	}
	s.engine.cat.Upsert(dom)
	return nil
}

// Delete removes an order. Returns false when the id was unknown.
func (s *OrderService) Delete(ctx context.Context, id string) (bool, error) {
	if s.engine.ingestSvc != nil {
		return s.engine.ingestSvc.Remove(ctx, id)
	}
	return s.engine.cat.Remove(id), nil
}

// Load replaces the whole catalog snapshot. Only in-memory engines load
// orders this way; store-backed engines warm from persistence via Rebuild.
func (s *OrderService) Load(orders []Order) error {
	if s.engine.ingestSvc != nil {
		return fmt.Errorf("ordersearch: Load on a store-backed engine; use Rebuild")
	}
	s.engine.cat.Rebuild(toInternalOrders(orders))
	return nil
}

// Rebuild reloads every stored order and swaps the catalog wholesale.
// Returns the number of orders indexed.
func (s *OrderService) Rebuild(ctx context.Context) (int, error) {
	if s.engine.ingestSvc == nil {
		return 0, ErrNoStore
	}
	return s.engine.ingestSvc.Rebuild(ctx)
}

// Get returns one indexed order by id.
func (s *OrderService) Get(id string) (Order, bool) {
	o, ok := s.engine.cat.Get(id)
	if !ok {
		return Order{}, false
	}
	return fromInternalOrder(o), true
}

// Count returns the number of indexed orders.
func (s *OrderService) Count() int {
	return s.engine.cat.Len()
}
