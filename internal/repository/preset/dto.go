package preset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/repository/criteriajson"
)

// Hash field names of the stored preset.
const (
	fieldID         = "id"
	fieldUserID     = "user_id"
	fieldName       = "name"
	fieldVisibility = "visibility"
	fieldIsDefault  = "is_default"
	fieldCriteria   = "criteria"
	fieldTags       = "tags"
	fieldUsageCount = "usage_count"
	fieldLastUsed   = "last_used"
	fieldCreatedAt  = "created_at"
	fieldUpdatedAt  = "updated_at"
)

func presetToHash(p dompreset.Preset) (map[string]string, error) {
	criteria, err := criteriajson.Encode(p.Criteria())
	if err != nil {
		return nil, fmt.Errorf("encode criteria: %w", err)
	}

	tags := "[]"
	if len(p.Tags()) > 0 {
		data, err := json.Marshal(p.Tags())
		if err != nil {
			return nil, fmt.Errorf("marshal tags: %w", err)
		}
		tags = string(data)
	}

	lastUsed := ""
	if lu := p.LastUsed(); lu != nil {
		lastUsed = lu.Format(time.RFC3339Nano)
	}

	return map[string]string{
		fieldID:         p.ID(),
		fieldUserID:     p.UserID(),
		fieldName:       p.Name(),
		fieldVisibility: string(p.Visibility()),
		fieldIsDefault:  strconv.FormatBool(p.IsDefault()),
		fieldCriteria:   string(criteria),
		fieldTags:       tags,
		fieldUsageCount: strconv.Itoa(p.UsageCount()),
		fieldLastUsed:   lastUsed,
		fieldCreatedAt:  p.CreatedAt().Format(time.RFC3339Nano),
		fieldUpdatedAt:  p.UpdatedAt().Format(time.RFC3339Nano),
	}, nil
}

func presetFromHash(m map[string]string) (dompreset.Preset, error) {
	criteria, err := criteriajson.Decode([]byte(m[fieldCriteria]))
	if err != nil {
		return dompreset.Preset{}, fmt.Errorf("decode criteria: %w", err)
	}

	var tags []string
	if raw := m[fieldTags]; raw != "" && raw != "[]" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return dompreset.Preset{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	isDefault, _ := strconv.ParseBool(m[fieldIsDefault])
	usageCount, _ := strconv.Atoi(m[fieldUsageCount])

	var lastUsed *time.Time
	if raw := m[fieldLastUsed]; raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return dompreset.Preset{}, fmt.Errorf("parse last_used: %w", err)
		}
		lastUsed = &t
	}

	createdAt, err := time.Parse(time.RFC3339Nano, m[fieldCreatedAt])
	if err != nil {
		return dompreset.Preset{}, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, m[fieldUpdatedAt])
	if err != nil {
		return dompreset.Preset{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return dompreset.Restore(
		m[fieldID],
		m[fieldUserID],
		m[fieldName],
		dompreset.Visibility(m[fieldVisibility]),
		isDefault,
		criteria,
		tags,
		usageCount,
		lastUsed,
		createdAt,
		updatedAt,
	), nil
}

func sortByCreatedAt(presets []dompreset.Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		if presets[i].CreatedAt().Equal(presets[j].CreatedAt()) {
			return presets[i].ID() < presets[j].ID()
		}
		return presets[i].CreatedAt().Before(presets[j].CreatedAt())
	})
}
