package sdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// PresetsClient manages saved filter presets over the API.
type PresetsClient struct {
	c *Client
}

// List returns all presets readable by the caller.
func (p *PresetsClient) List(ctx context.Context) (_ []Preset, err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.list", start, err) }()

	var out presetListResponse
	if err = p.c.do(ctx, http.MethodGet, "/v1/filters", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Create saves a new preset owned by the caller.
func (p *PresetsClient) Create(ctx context.Context, req PresetRequest) (preset Preset, err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.create", start, err) }()

	err = p.c.do(ctx, http.MethodPost, "/v1/filters", req, &preset)
	return preset, err
}

// Get returns one preset by id.
func (p *PresetsClient) Get(ctx context.Context, id string) (preset Preset, err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.get", start, err) }()

	err = p.c.do(ctx, http.MethodGet, "/v1/filters/"+url.PathEscape(id), nil, &preset)
	return preset, err
}

// Update applies a partial change to a preset owned by the caller.
func (p *PresetsClient) Update(ctx context.Context, id string, patch PresetPatch) (preset Preset, err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.update", start, err) }()

	err = p.c.do(ctx, http.MethodPatch, "/v1/filters/"+url.PathEscape(id), patch, &preset)
	return preset, err
}

// Delete removes a preset owned by the caller.
func (p *PresetsClient) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.delete", start, err) }()

	return p.c.do(ctx, http.MethodDelete, "/v1/filters/"+url.PathEscape(id), nil, nil)
}

// Apply returns the preset's filters for execution, incrementing its usage
// counter on the server.
func (p *PresetsClient) Apply(ctx context.Context, id string) (_ Filters, err error) {
	start := time.Now()
	defer func() { p.c.obs.observe("presets.apply", start, err) }()

	var out applyResponse
	if err = p.c.do(ctx, http.MethodPost, "/v1/filters/"+url.PathEscape(id)+"/apply", nil, &out); err != nil {
		return Filters{}, err
	}
	return out.Criteria, nil
}
