package preset

import (
	"context"
	"time"

	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type mockStore struct {
	hsetFunc         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFunc      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFunc func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFunc          func(ctx context.Context, key string) error
	existsFunc       func(ctx context.Context, key string) (bool, error)
	scanFunc         func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	return m.hsetFunc(ctx, key, fields)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return m.hgetAllFunc(ctx, key)
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	return m.hgetAllMultiFunc(ctx, keys)
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	return m.delFunc(ctx, key)
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	return m.existsFunc(ctx, key)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	return m.scanFunc(ctx, pattern)
}

// memStore is an in-memory hash store for round-trip tests.
type memStore struct {
	hashes map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string]map[string]string)}
}

func (m *memStore) HSet(_ context.Context, key string, fields map[string]string) error {
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string)
		m.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (m *memStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	h, ok := m.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		h, err := m.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	delete(m.hashes, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *memStore) Scan(_ context.Context, _ string) ([]string, error) {
	keys := make([]string, 0, len(m.hashes))
	for k := range m.hashes {
		keys = append(keys, k)
	}
	return keys, nil
}

func testPreset(id, userID string) dompreset.Preset {
	p, err := dompreset.New(id, userID, "Urgent glass", dompreset.VisibilityPrivate, false,
		filter.Criteria{Text: "tempered"}, []string{"glass", "urgent"}, fixedNow)
	if err != nil {
		panic(err)
	}
	return p
}
