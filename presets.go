package ordersearch

import (
	"context"
	"fmt"

	"github.com/glassline/ordersearch/internal/domain/preset"
	presetuc "github.com/glassline/ordersearch/internal/usecase/preset"
)

// PresetService manages saved filter presets. Every operation requires a
// store-backed engine and returns ErrNoStore otherwise.
type PresetService struct {
	svc *presetuc.Service
}

// Save creates a new preset owned by userID.
func (s *PresetService) Save(
	ctx context.Context, userID, name string, visibility Visibility,
	f Filters, tags []string,
) (Preset, error) {
	if s.svc == nil {
		return Preset{}, ErrNoStore
	}
	criteria, err := toInternalFilters(f)
	if err != nil {
		return Preset{}, fmt.Errorf("save preset: %w", err)
	}
	p, err := s.svc.Save(ctx, userID, name, preset.Visibility(visibility), criteria, tags)
	if err != nil {
		return Preset{}, err
	}
	return fromInternalPreset(p), nil
}

// Get returns a preset readable by userID.
func (s *PresetService) Get(ctx context.Context, userID, id string) (Preset, error) {
	if s.svc == nil {
		return Preset{}, ErrNoStore
	}
	p, err := s.svc.Get(ctx, userID, id)
	if err != nil {
		return Preset{}, err
	}
	return fromInternalPreset(p), nil
}

// List returns all presets readable by userID.
func (s *PresetService) List(ctx context.Context, userID string) ([]Preset, error) {
	if s.svc == nil {
		return nil, ErrNoStore
	}
	presets, err := s.svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = fromInternalPreset(p)
	}
	return out, nil
}

// Update applies a partial change to a preset owned by userID.
func (s *PresetService) Update(
	ctx context.Context, userID, id string, change PresetChange,
) (Preset, error) {
	if s.svc == nil {
		return Preset{}, ErrNoStore
	}
	ch, err := toInternalChange(change)
	if err != nil {
		return Preset{}, fmt.Errorf("update preset: %w", err)
	}
	p, err := s.svc.Update(ctx, userID, id, ch)
	if err != nil {
		return Preset{}, err
	}
	return fromInternalPreset(p), nil
}

// Delete removes a preset owned by userID. Returns false when it did not
// exist.
func (s *PresetService) Delete(ctx context.Context, userID, id string) (bool, error) {
	if s.svc == nil {
		return false, ErrNoStore
	}
	return s.svc.Delete(ctx, userID, id)
}

// Apply returns the preset's filters for execution, incrementing its usage
// counter as a side effect.
func (s *PresetService) Apply(ctx context.Context, userID, id string) (Filters, error) {
	if s.svc == nil {
		return Filters{}, ErrNoStore
	}
	criteria, err := s.svc.Apply(ctx, userID, id)
	if err != nil {
		return Filters{}, err
	}
	return fromInternalCriteria(criteria), nil
}

// SeedDefaults creates the default public presets when the store holds no
// presets at all. Safe to call on every startup.
func (s *PresetService) SeedDefaults(ctx context.Context) error {
	if s.svc == nil {
		return ErrNoStore
	}
	return s.svc.SeedDefaults(ctx)
}
