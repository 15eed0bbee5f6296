package sdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// HistoryClient exposes the caller's search history over the API.
type HistoryClient struct {
	c *Client
}

// List returns the caller's history, most recent first.
func (h *HistoryClient) List(ctx context.Context) (_ []HistoryEntry, err error) {
	start := time.Now()
	defer func() { h.c.obs.observe("history.list", start, err) }()

	var out historyResponse
	if err = h.c.do(ctx, http.MethodGet, "/v1/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// MarkOpened records that the caller opened a result of a past search.
func (h *HistoryClient) MarkOpened(ctx context.Context, entryID, orderID string) (err error) {
	start := time.Now()
	defer func() { h.c.obs.observe("history.mark_opened", start, err) }()

	body := map[string]string{"order_id": orderID}
	path := "/v1/history/" + url.PathEscape(entryID) + "/opened"
	return h.c.do(ctx, http.MethodPost, path, body, nil)
}

// Clear drops the caller's entire history.
func (h *HistoryClient) Clear(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { h.c.obs.observe("history.clear", start, err) }()

	return h.c.do(ctx, http.MethodDelete, "/v1/history", nil, nil)
}
