// Package preset persists saved filter presets as hashes in the store.
package preset

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/glassline/ordersearch/internal/domain"
	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
)

// store is the consumer interface for preset persistence.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/preset.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a preset repository.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Create stores a new preset. Fails when the id already exists.
func (r *Repo) Create(ctx context.Context, p dompreset.Preset) error {
	key := r.key(p.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	fields, err := presetToHash(p)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset preset %s: %w", p.ID(), err)
	}
	return nil
}

// Get retrieves a preset by id.
func (r *Repo) Get(ctx context.Context, id string) (dompreset.Preset, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return dompreset.Preset{}, fmt.Errorf("hgetall preset %s: %w", id, err)
	}
	if len(m) == 0 {
		return dompreset.Preset{}, domain.ErrNotFound
	}
	return presetFromHash(m)
}

// Update overwrites a preset's hash.
func (r *Repo) Update(ctx context.Context, p dompreset.Preset) error {
	fields, err := presetToHash(p)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, r.key(p.ID()), fields); err != nil {
		return fmt.Errorf("hset preset %s: %w", p.ID(), err)
	}
	return nil
}

// UpdateUsage writes only the usage fields, leaving the rest of the hash
// untouched so a concurrent edit cannot be clobbered by an apply.
func (r *Repo) UpdateUsage(ctx context.Context, id string, usageCount int, lastUsed time.Time) error {
	fields := map[string]string{
		fieldUsageCount: strconv.Itoa(usageCount),
		fieldLastUsed:   lastUsed.Format(time.RFC3339Nano),
	}
	if err := r.store.HSet(ctx, r.key(id), fields); err != nil {
		return fmt.Errorf("hset preset usage %s: %w", id, err)
	}
	return nil
}

// Delete removes a preset.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del preset %s: %w", id, err)
	}
	return nil
}

// List returns all presets sorted by creation time.
func (r *Repo) List(ctx context.Context) ([]dompreset.Preset, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan presets: %w", err)
	}
	if len(keys) == 0 {
		return []dompreset.Preset{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi presets: %w", err)
	}

	presets := make([]dompreset.Preset, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue
		}
		p, err := presetFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse preset %s: %w", keys[i], err)
		}
		presets = append(presets, p)
	}

	sortByCreatedAt(presets)
	return presets, nil
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + "preset:" + id
}
