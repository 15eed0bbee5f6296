package preset

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain"
	"github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type mockRepo struct {
	presets        map[string]preset.Preset
	createErr      error
	usageErr       error
	lastUsageID    string
	lastUsageCount int
	lastUsedAt     time.Time
}

func newMockRepo() *mockRepo {
	return &mockRepo{presets: make(map[string]preset.Preset)}
}

func (m *mockRepo) Create(_ context.Context, p preset.Preset) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.presets[p.ID()] = p
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (preset.Preset, error) {
	p, ok := m.presets[id]
	if !ok {
		return preset.Preset{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p preset.Preset) error {
	m.presets[p.ID()] = p
	return nil
}

func (m *mockRepo) UpdateUsage(_ context.Context, id string, usageCount int, lastUsed time.Time) error {
	if m.usageErr != nil {
		return m.usageErr
	}
	m.lastUsageID = id
	m.lastUsageCount = usageCount
	m.lastUsedAt = lastUsed
	p := m.presets[id]
	m.presets[id] = preset.Restore(
		p.ID(), p.UserID(), p.Name(), p.Visibility(), p.IsDefault(),
		p.Criteria(), p.Tags(), usageCount, &lastUsed, p.CreatedAt(), p.UpdatedAt(),
	)
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	delete(m.presets, id)
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]preset.Preset, error) {
	out := make([]preset.Preset, 0, len(m.presets))
	for _, p := range m.presets {
		out = append(out, p)
	}
	return out, nil
}

func newTestService(repo *mockRepo) *Service {
	return New(repo, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
}

func TestSaveAndGet(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Save(ctx, "u1", "My urgent", preset.VisibilityPrivate, filter.Criteria{}, []string{"mine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, "u1", p.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name() != "My urgent" {
		t.Fatalf("unexpected preset: %+v", got)
	}
}

func TestSave_EmptyNameRejected(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Save(context.Background(), "u1", "", preset.VisibilityPrivate, filter.Criteria{}, nil)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestGet_PrivatePresetHiddenFromOthers(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Save(ctx, "u1", "Mine", preset.VisibilityPrivate, filter.Criteria{}, nil)

	if _, err := svc.Get(ctx, "u2", p.ID()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApply_TracksUsageThreeTimes(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Save(ctx, "u1", "Mine", preset.VisibilityPrivate, filter.Criteria{}, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.Apply(ctx, "u1", p.ID()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if repo.lastUsageCount != 3 {
		t.Fatalf("expected usage count 3, got %d", repo.lastUsageCount)
	}
	if !repo.lastUsedAt.Equal(fixedNow) {
		t.Fatalf("expected lastUsed %v, got %v", fixedNow, repo.lastUsedAt)
	}
}

func TestApply_UsageWriteFailureStillReturnsCriteria(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	min := 500.0
	p, _ := svc.Save(ctx, "u1", "Mine", preset.VisibilityPrivate,
		filter.Criteria{AmountRange: &filter.AmountRange{Min: &min}}, nil)

	repo.usageErr = errors.New("store down")

	criteria, err := svc.Apply(ctx, "u1", p.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if criteria.AmountRange == nil || *criteria.AmountRange.Min != 500.0 {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Save(ctx, "u1", "Mine", preset.VisibilityPublic, filter.Criteria{}, nil)

	name := "Stolen"
	_, err := svc.Update(ctx, "u2", p.ID(), preset.Change{Name: &name})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Save(ctx, "u1", "Mine", preset.VisibilityPrivate, filter.Criteria{}, nil)

	ok, err := svc.Delete(ctx, "u1", p.ID())
	if err != nil || !ok {
		t.Fatalf("expected deletion, got ok=%v err=%v", ok, err)
	}
	ok, err = svc.Delete(ctx, "u1", p.ID())
	if err != nil || ok {
		t.Fatalf("expected missing on second delete, got ok=%v err=%v", ok, err)
	}
}

func TestSeedDefaults(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.presets) != 3 {
		t.Fatalf("expected 3 seeded presets, got %d", len(repo.presets))
	}
	for _, p := range repo.presets {
		if p.Visibility() != preset.VisibilityPublic || !p.IsDefault() {
			t.Fatalf("seeded preset not public default: %+v", p)
		}
	}

	// Second call is a no-op.
	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.presets) != 3 {
		t.Fatalf("reseed duplicated presets: %d", len(repo.presets))
	}
}

func TestSeedDefaults_SkippedWhenPresetsExist(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, _ = svc.Save(ctx, "u1", "Mine", preset.VisibilityPrivate, filter.Criteria{}, nil)

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.presets) != 1 {
		t.Fatalf("expected no seeding, got %d presets", len(repo.presets))
	}
}
