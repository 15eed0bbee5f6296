package preset

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/glassline/ordersearch/internal/domain"
	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
)

func TestCreateGet_RoundTrip(t *testing.T) {
	repo := New(newMemStore(), "")
	ctx := context.Background()

	in := testPreset("p1", "alice")
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(in.Criteria(), out.Criteria()) {
		t.Errorf("criteria mismatch: %+v != %+v", in.Criteria(), out.Criteria())
	}
	if out.Name() != in.Name() || out.UserID() != in.UserID() {
		t.Errorf("identity mismatch: %q/%q", out.Name(), out.UserID())
	}
	if !reflect.DeepEqual(out.Tags(), in.Tags()) {
		t.Errorf("tags mismatch: %v != %v", out.Tags(), in.Tags())
	}
	if !out.CreatedAt().Equal(fixedNow) {
		t.Errorf("createdAt = %v, want %v", out.CreatedAt(), fixedNow)
	}
	if out.LastUsed() != nil {
		t.Errorf("lastUsed should be nil for a fresh preset")
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	repo := New(newMemStore(), "")
	ctx := context.Background()

	if err := repo.Create(ctx, testPreset("p1", "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, testPreset("p1", "bob"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMemStore(), "")

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUsage_PartialWrite(t *testing.T) {
	store := newMemStore()
	repo := New(store, "")
	ctx := context.Background()

	if err := repo.Create(ctx, testPreset("p1", "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}

	used := fixedNow.Add(time.Hour)
	if err := repo.UpdateUsage(ctx, "p1", 3, used); err != nil {
		t.Fatalf("update usage: %v", err)
	}

	out, err := repo.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.UsageCount() != 3 {
		t.Errorf("usageCount = %d, want 3", out.UsageCount())
	}
	if out.LastUsed() == nil || !out.LastUsed().Equal(used) {
		t.Errorf("lastUsed = %v, want %v", out.LastUsed(), used)
	}
	// the rest of the hash is untouched
	if out.Name() != "Urgent glass" {
		t.Errorf("name clobbered: %q", out.Name())
	}
}

func TestDelete(t *testing.T) {
	repo := New(newMemStore(), "")
	ctx := context.Background()

	if err := repo.Create(ctx, testPreset("p1", "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestList_SortedByCreatedAt(t *testing.T) {
	repo := New(newMemStore(), "")
	ctx := context.Background()

	base := testPreset("x", "alice")
	older, _ := dompreset.New("p-old", "alice", "Old", dompreset.VisibilityPrivate, false,
		base.Criteria(), nil, fixedNow.Add(-time.Hour))
	newer, _ := dompreset.New("p-new", "alice", "New", dompreset.VisibilityPrivate, false,
		base.Criteria(), nil, fixedNow)

	if err := repo.Create(ctx, newer); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, older); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID() != "p-old" || got[1].ID() != "p-new" {
		t.Errorf("order = [%s %s], want [p-old p-new]", got[0].ID(), got[1].ID())
	}
}

func TestList_Empty(t *testing.T) {
	repo := New(newMemStore(), "")

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestList_ScanError(t *testing.T) {
	scanErr := errors.New("connection refused")
	repo := New(&mockStore{
		scanFunc: func(context.Context, string) ([]string, error) {
			return nil, scanErr
		},
	}, "")

	_, err := repo.List(context.Background())
	if !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestKey_UsesPrefix(t *testing.T) {
	var gotKey string
	repo := New(&mockStore{
		hgetAllFunc: func(_ context.Context, key string) (map[string]string, error) {
			gotKey = key
			return map[string]string{}, nil
		},
	}, "custom:")

	_, _ = repo.Get(context.Background(), "p1")
	if gotKey != "custom:preset:p1" {
		t.Errorf("key = %q, want custom:preset:p1", gotKey)
	}
}
