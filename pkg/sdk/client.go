package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the ordersearch HTTP API client.
type Client struct {
	baseURL string
	apiKey  string
	userID  string
	http    *http.Client
	obs     *observer
}

// New creates a client for the API served at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("sdk: base URL is required")
	}

	cfg := &clientConfig{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		userID:  cfg.userID,
		http:    cfg.httpClient,
		obs:     obs,
	}, nil
}

// Search executes a search query.
func (c *Client) Search(ctx context.Context, req SearchRequest) (resp SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	err = c.do(ctx, http.MethodPost, "/v1/search", req, &resp)
	return resp, err
}

// Suggest returns ranked autocomplete candidates for a partial input.
func (c *Client) Suggest(ctx context.Context, partial string) (_ []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	var out suggestionsResponse
	path := "/v1/suggestions?q=" + url.QueryEscape(partial)
	if err = c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// Health fetches the aggregated health report. A degraded service returns
// the report alongside an error matching ErrUnavailable.
func (c *Client) Health(ctx context.Context) (report HealthReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthReport{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return HealthReport{}, fmt.Errorf("GET /health: %w", err)
	}
	defer resp.Body.Close()

	// The report body is present on both 200 and 503.
	if derr := json.NewDecoder(resp.Body).Decode(&report); derr != nil {
		return HealthReport{}, fmt.Errorf("decode response: %w", derr)
	}
	if resp.StatusCode != http.StatusOK {
		err = &APIError{StatusCode: resp.StatusCode, Code: report.Status}
		return report, err
	}
	return report, nil
}

// Presets returns the saved filter API.
func (c *Client) Presets() *PresetsClient {
	return &PresetsClient{c: c}
}

// History returns the search history API.
func (c *Client) History() *HistoryClient {
	return &HistoryClient{c: c}
}

// Orders returns the order ingestion API.
func (c *Client) Orders() *OrdersClient {
	return &OrdersClient{c: c}
}

// do executes one API call. The response body is decoded into out when out
// is non-nil and the call succeeded; 4xx/5xx responses decode the error
// envelope into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
