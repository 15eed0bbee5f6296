// Package preset manages saved search filters: CRUD, usage tracking on
// apply, and one-time seeding of the default public presets.
package preset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain"
	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// SystemUser owns the seeded default presets.
const SystemUser = "system"

// highValueThreshold is the amount floor of the seeded "High value" preset.
const highValueThreshold = 10000.0

// Repository persists presets.
type Repository interface {
	Create(ctx context.Context, p preset.Preset) error
	Get(ctx context.Context, id string) (preset.Preset, error)
	Update(ctx context.Context, p preset.Preset) error
	UpdateUsage(ctx context.Context, id string, usageCount int, lastUsed time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]preset.Preset, error)
}

// Service manages saved filter presets.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a preset service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Save creates a new preset owned by userID.
func (s *Service) Save(
	ctx context.Context, userID, name string, visibility preset.Visibility,
	criteria filter.Criteria, tags []string,
) (preset.Preset, error) {
	p, err := preset.New(s.newID(), userID, name, visibility, false, criteria, tags, s.now())
	if err != nil {
		return preset.Preset{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return preset.Preset{}, fmt.Errorf("create preset: %w", err)
	}
	return p, nil
}

// Get returns a preset readable by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (preset.Preset, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	if !p.ReadableBy(userID) {
		return preset.Preset{}, domain.ErrForbidden
	}
	return p, nil
}

// List returns all presets readable by userID.
func (s *Service) List(ctx context.Context, userID string) ([]preset.Preset, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	readable := make([]preset.Preset, 0, len(all))
	for _, p := range all {
		if p.ReadableBy(userID) {
			readable = append(readable, p)
		}
	}
	return readable, nil
}

// Update applies a partial change to a preset owned by userID.
func (s *Service) Update(
	ctx context.Context, userID, id string, change preset.Change,
) (preset.Preset, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	if !p.OwnedBy(userID) {
		return preset.Preset{}, domain.ErrForbidden
	}
	if err := p.Apply(change, s.now()); err != nil {
		return preset.Preset{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return preset.Preset{}, fmt.Errorf("update preset %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a preset owned by userID. Returns false when it did not
// exist.
func (s *Service) Delete(ctx context.Context, userID, id string) (bool, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get preset %s: %w", id, err)
	}
	if !p.OwnedBy(userID) {
		return false, domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete preset %s: %w", id, err)
	}
	return true, nil
}

// Apply returns the preset's criteria for execution, incrementing its usage
// counter and touching lastUsed as a side effect. A failed usage write is
// logged and does not block the caller from searching.
func (s *Service) Apply(ctx context.Context, userID, id string) (filter.Criteria, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	if !p.ReadableBy(userID) {
		return filter.Criteria{}, domain.ErrForbidden
	}

	now := s.now()
	p.MarkUsed(now)
	if err := s.repo.UpdateUsage(ctx, id, p.UsageCount(), now); err != nil {
		s.logger.Warn("persist preset usage",
			zap.String("preset_id", id),
			zap.Error(err),
		)
	}

	return p.Criteria(), nil
}

// SeedDefaults creates the default public presets when the store holds no
// presets at all. Safe to call on every startup.
func (s *Service) SeedDefaults(ctx context.Context) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	threshold := highValueThreshold
	defaults := []struct {
		name     string
		criteria filter.Criteria
		tags     []string
	}{
		{
			name:     "Urgent orders",
			criteria: filter.Criteria{Priorities: []order.Priority{order.PriorityUrgent}},
			tags:     []string{"priority"},
		},
		{
			name:     "Pending approval",
			criteria: filter.Criteria{Statuses: []order.Status{order.StatusPendingApproval}},
			tags:     []string{"workflow"},
		},
		{
			name:     "High value",
			criteria: filter.Criteria{AmountRange: &filter.AmountRange{Min: &threshold}},
			tags:     []string{"amount"},
		},
	}

	now := s.now()
	for _, d := range defaults {
		p, err := preset.New(s.newID(), SystemUser, d.name, preset.VisibilityPublic, true, d.criteria, d.tags, now)
		if err != nil {
			return fmt.Errorf("build default preset %q: %w", d.name, err)
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed preset %q: %w", d.name, err)
		}
	}

	s.logger.Info("seeded default presets", zap.Int("count", len(defaults)))
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
