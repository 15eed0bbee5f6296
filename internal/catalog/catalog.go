// Package catalog holds the in-memory order snapshot and its inverted
// index under a single lock, giving readers a consistent view while the
// host drives rebuilds and incremental updates.
package catalog

import (
	"sort"
	"sync"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/index"
)

// SupplierStat is a supplier with its current order count.
type SupplierStat struct {
	Supplier order.Supplier
	Count    int
}

// Catalog is the read-only order snapshot the query path operates on.
type Catalog struct {
	mu     sync.RWMutex
	orders map[string]order.Order
	idx    *index.Inverted
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		orders: make(map[string]order.Order),
		idx:    index.New(),
	}
}

// Rebuild replaces the whole snapshot and rebuilds the index. This is the
// expensive path; the host decides its cadence.
func (c *Catalog) Rebuild(orders []order.Order) {
	m := make(map[string]order.Order, len(orders))
	for _, o := range orders {
		m[o.ID] = o
	}

	c.mu.Lock()
	c.orders = m
	c.mu.Unlock()

	c.idx.Rebuild(orders)
}

// Upsert adds or replaces one order and updates the index incrementally.
func (c *Catalog) Upsert(o order.Order) {
	c.mu.Lock()
	_, existed := c.orders[o.ID]
	c.orders[o.ID] = o
	c.mu.Unlock()

	if existed {
		c.idx.Remove(o.ID)
	}
	c.idx.Add(&o)
}

// Remove deletes an order from the snapshot and the index.
// Returns false when the id is unknown.
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	_, ok := c.orders[id]
	delete(c.orders, id)
	c.mu.Unlock()

	if ok {
		c.idx.Remove(id)
	}
	return ok
}

// Get returns one order by id.
func (c *Catalog) Get(id string) (order.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.orders[id]
	return o, ok
}

// Snapshot returns all orders sorted by id for deterministic iteration.
func (c *Catalog) Snapshot() []order.Order {
	c.mu.RLock()
	orders := make([]order.Order, 0, len(c.orders))
	for _, o := range c.orders {
		orders = append(orders, o)
	}
	c.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

// Len returns the number of orders in the snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}

// Index exposes the inverted index for candidate lookups.
func (c *Catalog) Index() *index.Inverted { return c.idx }

// SupplierNames returns distinct supplier names, sorted.
func (c *Catalog) SupplierNames() []string {
	stats := c.Suppliers()
	names := make([]string, 0, len(stats))
	for _, st := range stats {
		if st.Supplier.Name != "" {
			names = append(names, st.Supplier.Name)
		}
	}
	return names
}

// StatusCounts returns how many orders currently hold each status.
func (c *Catalog) StatusCounts() map[order.Status]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[order.Status]int)
	for _, o := range c.orders {
		counts[o.Status]++
	}
	return counts
}

// Suppliers returns distinct suppliers with order counts, sorted by name.
func (c *Catalog) Suppliers() []SupplierStat {
	c.mu.RLock()
	byID := make(map[string]SupplierStat)
	for _, o := range c.orders {
		st := byID[o.Supplier.ID]
		st.Supplier = o.Supplier
		st.Count++
		byID[o.Supplier.ID] = st
	}
	c.mu.RUnlock()

	stats := make([]SupplierStat, 0, len(byID))
	for _, st := range byID {
		stats = append(stats, st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Supplier.Name < stats[j].Supplier.Name
	})
	return stats
}
