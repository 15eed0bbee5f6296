package sdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// OrdersClient feeds order snapshots into the index over the API.
type OrdersClient struct {
	c *Client
}

// Upsert stores an order snapshot under id and updates the index.
func (o *OrdersClient) Upsert(ctx context.Context, id string, order Order) (err error) {
	start := time.Now()
	defer func() { o.c.obs.observe("orders.upsert", start, err) }()

	return o.c.do(ctx, http.MethodPut, "/v1/orders/"+url.PathEscape(id), order, nil)
}

// Delete removes an order from the store and the index.
func (o *OrdersClient) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { o.c.obs.observe("orders.delete", start, err) }()

	return o.c.do(ctx, http.MethodDelete, "/v1/orders/"+url.PathEscape(id), nil, nil)
}

// RebuildIndex reloads every stored order into the index wholesale.
// Returns the number of orders indexed.
func (o *OrdersClient) RebuildIndex(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { o.c.obs.observe("orders.rebuild", start, err) }()

	var out rebuildResponse
	if err = o.c.do(ctx, http.MethodPost, "/v1/index/rebuild", nil, &out); err != nil {
		return 0, err
	}
	return out.IndexedOrders, nil
}
