// Package preset defines the saved search filter aggregate.
package preset

import (
	"fmt"
	"time"

	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// Visibility controls who can read a preset.
type Visibility string

// Preset visibilities.
const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// IsValid reports whether the visibility is known.
func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// Preset is a named, reusable bundle of search criteria.
type Preset struct {
	id         string
	userID     string
	name       string
	visibility Visibility
	isDefault  bool
	criteria   filter.Criteria
	tags       []string
	usageCount int
	lastUsed   *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// New validates and creates a preset.
func New(id, userID, name string, visibility Visibility, isDefault bool,
	criteria filter.Criteria, tags []string, now time.Time,
) (Preset, error) {
	if id == "" {
		return Preset{}, fmt.Errorf("preset id is required")
	}
	if name == "" {
		return Preset{}, fmt.Errorf("preset name is required")
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	if !visibility.IsValid() {
		return Preset{}, fmt.Errorf("invalid visibility %q", visibility)
	}
	return Preset{
		id:         id,
		userID:     userID,
		name:       name,
		visibility: visibility,
		isDefault:  isDefault,
		criteria:   criteria,
		tags:       tags,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Restore rehydrates a preset from storage without validation.
func Restore(id, userID, name string, visibility Visibility, isDefault bool,
	criteria filter.Criteria, tags []string,
	usageCount int, lastUsed *time.Time, createdAt, updatedAt time.Time,
) Preset {
	return Preset{
		id:         id,
		userID:     userID,
		name:       name,
		visibility: visibility,
		isDefault:  isDefault,
		criteria:   criteria,
		tags:       tags,
		usageCount: usageCount,
		lastUsed:   lastUsed,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the preset identifier.
func (p *Preset) ID() string { return p.id }

// UserID returns the owning user.
func (p *Preset) UserID() string { return p.userID }

// Name returns the preset name.
func (p *Preset) Name() string { return p.name }

// Visibility returns the preset visibility.
func (p *Preset) Visibility() Visibility { return p.visibility }

// IsDefault reports whether this is a seeded default preset.
func (p *Preset) IsDefault() bool { return p.isDefault }

// Criteria returns the saved filter bundle.
func (p *Preset) Criteria() filter.Criteria { return p.criteria }

// Tags returns the preset tags.
func (p *Preset) Tags() []string { return p.tags }

// UsageCount returns how many times the preset has been applied.
func (p *Preset) UsageCount() int { return p.usageCount }

// LastUsed returns when the preset was last applied (nil if never).
func (p *Preset) LastUsed() *time.Time { return p.lastUsed }

// CreatedAt returns the creation timestamp.
func (p *Preset) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last modification timestamp.
func (p *Preset) UpdatedAt() time.Time { return p.updatedAt }

// ReadableBy reports whether userID may read the preset.
func (p *Preset) ReadableBy(userID string) bool {
	return p.visibility == VisibilityPublic || p.userID == userID
}

// OwnedBy reports whether userID may mutate the preset.
func (p *Preset) OwnedBy(userID string) bool { return p.userID == userID }

// MarkUsed increments the usage counter and touches the last-used timestamp.
func (p *Preset) MarkUsed(now time.Time) {
	p.usageCount++
	p.lastUsed = &now
}

// Change describes a partial preset update. Nil fields are left untouched.
type Change struct {
	Name       *string
	Visibility *Visibility
	Criteria   *filter.Criteria
	Tags       *[]string
}

// Apply merges a partial update into the preset and touches updatedAt.
func (p *Preset) Apply(ch Change, now time.Time) error {
	if ch.Name != nil {
		if *ch.Name == "" {
			return fmt.Errorf("preset name is required")
		}
		p.name = *ch.Name
	}
	if ch.Visibility != nil {
		if !ch.Visibility.IsValid() {
			return fmt.Errorf("invalid visibility %q", *ch.Visibility)
		}
		p.visibility = *ch.Visibility
	}
	if ch.Criteria != nil {
		p.criteria = *ch.Criteria
	}
	if ch.Tags != nil {
		p.tags = *ch.Tags
	}
	p.updatedAt = now
	return nil
}
