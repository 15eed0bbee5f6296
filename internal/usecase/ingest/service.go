// Package ingest feeds order snapshots from the owning system into
// persistence and the in-memory catalog, keeping the index in step.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain"
	"github.com/glassline/ordersearch/internal/domain/order"
)

// Repository persists order snapshots for catalog warm-up.
type Repository interface {
	Save(ctx context.Context, o order.Order) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]order.Order, error)
}

// Catalog is the in-memory snapshot the query path reads.
type Catalog interface {
	Rebuild(orders []order.Order)
	Upsert(o order.Order)
	Remove(id string) bool
	Len() int
}

// SizeGauge reports the current catalog size to monitoring.
type SizeGauge interface {
	SetIndexedOrders(n int)
}

// Service applies order mutations to storage and the catalog.
type Service struct {
	repo    Repository
	catalog Catalog
	gauge   SizeGauge
	logger  *zap.Logger
}

// New creates an ingest service. gauge may be nil.
func New(repo Repository, catalog Catalog, gauge SizeGauge, logger *zap.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, gauge: gauge, logger: logger}
}

// Upsert stores an order snapshot and updates the catalog incrementally.
// The write must succeed before the catalog is touched so a restart never
// resurrects a version the store does not hold.
func (s *Service) Upsert(ctx context.Context, o order.Order) error {
	if o.ID == "" {
		return fmt.Errorf("%w: order id is required", domain.ErrInvalidRequest)
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return fmt.Errorf("save order %s: %w", o.ID, err)
	}
	s.catalog.Upsert(o)
	s.observeSize()
	return nil
}

// Remove deletes an order from storage and the catalog. Returns false when
// the catalog did not hold the id.
func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	removed := s.catalog.Remove(id)
	s.observeSize()
	return removed, nil
}

// Rebuild reloads every stored order and swaps the catalog wholesale.
// Returns the number of orders indexed.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load orders: %w", err)
	}
	s.catalog.Rebuild(orders)
	s.observeSize()

	s.logger.Info("catalog rebuilt", zap.Int("orders", len(orders)))
	return len(orders), nil
}

func (s *Service) observeSize() {
	if s.gauge != nil {
		s.gauge.SetIndexedOrders(s.catalog.Len())
	}
}
