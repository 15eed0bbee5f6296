package ingest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/catalog"
	"github.com/glassline/ordersearch/internal/domain"
	"github.com/glassline/ordersearch/internal/domain/order"
)

type mockRepo struct {
	saveFunc    func(ctx context.Context, o order.Order) error
	deleteFunc  func(ctx context.Context, id string) error
	loadAllFunc func(ctx context.Context) ([]order.Order, error)
}

func (m *mockRepo) Save(ctx context.Context, o order.Order) error {
	return m.saveFunc(ctx, o)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockRepo) LoadAll(ctx context.Context) ([]order.Order, error) {
	return m.loadAllFunc(ctx)
}

type recordingGauge struct {
	last int
}

func (g *recordingGauge) SetIndexedOrders(n int) { g.last = n }

func okRepo() *mockRepo {
	return &mockRepo{
		saveFunc:   func(context.Context, order.Order) error { return nil },
		deleteFunc: func(context.Context, string) error { return nil },
		loadAllFunc: func(context.Context) ([]order.Order, error) {
			return nil, nil
		},
	}
}

func TestUpsert_UpdatesCatalogAndGauge(t *testing.T) {
	cat := catalog.New()
	gauge := &recordingGauge{}
	svc := New(okRepo(), cat, gauge, zap.NewNop())

	err := svc.Upsert(context.Background(), order.Order{ID: "o1", Number: "PO-1"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("catalog len = %d, want 1", cat.Len())
	}
	if gauge.last != 1 {
		t.Errorf("gauge = %d, want 1", gauge.last)
	}
}

func TestUpsert_RequiresID(t *testing.T) {
	svc := New(okRepo(), catalog.New(), nil, zap.NewNop())

	err := svc.Upsert(context.Background(), order.Order{Number: "PO-1"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUpsert_StoreFailureLeavesCatalogUntouched(t *testing.T) {
	saveErr := errors.New("connection refused")
	repo := okRepo()
	repo.saveFunc = func(context.Context, order.Order) error { return saveErr }
	cat := catalog.New()
	svc := New(repo, cat, nil, zap.NewNop())

	err := svc.Upsert(context.Background(), order.Order{ID: "o1"})
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("catalog should stay empty on store failure, len = %d", cat.Len())
	}
}

func TestRemove(t *testing.T) {
	cat := catalog.New()
	cat.Upsert(order.Order{ID: "o1"})
	svc := New(okRepo(), cat, nil, zap.NewNop())

	removed, err := svc.Remove(context.Background(), "o1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Error("expected removed = true")
	}
	if cat.Len() != 0 {
		t.Errorf("catalog len = %d, want 0", cat.Len())
	}
}

func TestRemove_UnknownID(t *testing.T) {
	svc := New(okRepo(), catalog.New(), nil, zap.NewNop())

	removed, err := svc.Remove(context.Background(), "missing")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed {
		t.Error("expected removed = false for unknown id")
	}
}

func TestRebuild_SwapsSnapshot(t *testing.T) {
	repo := okRepo()
	repo.loadAllFunc = func(context.Context) ([]order.Order, error) {
		return []order.Order{{ID: "o1"}, {ID: "o2"}}, nil
	}
	cat := catalog.New()
	cat.Upsert(order.Order{ID: "stale"})
	gauge := &recordingGauge{}
	svc := New(repo, cat, gauge, zap.NewNop())

	n, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if _, ok := cat.Get("stale"); ok {
		t.Error("stale order should be gone after rebuild")
	}
	if gauge.last != 2 {
		t.Errorf("gauge = %d, want 2", gauge.last)
	}
}

func TestRebuild_LoadFailure(t *testing.T) {
	loadErr := errors.New("connection refused")
	repo := okRepo()
	repo.loadAllFunc = func(context.Context) ([]order.Order, error) { return nil, loadErr }
	svc := New(repo, catalog.New(), nil, zap.NewNop())

	_, err := svc.Rebuild(context.Background())
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}
