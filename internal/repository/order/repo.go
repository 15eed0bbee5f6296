// Package order persists purchase-order snapshots as JSON blobs so the
// in-memory catalog can be rebuilt on startup.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glassline/ordersearch/internal/db"
	"github.com/glassline/ordersearch/internal/domain"
	domorder "github.com/glassline/ordersearch/internal/domain/order"
)

// store is the consumer interface for order persistence.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores order snapshots keyed by order id.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates an order repository.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

type lineItemRow struct {
	Description string  `json:"description,omitempty"`
	ProductCode string  `json:"product_code,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type orderRow struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	SupplierID   string        `json:"supplier_id,omitempty"`
	SupplierName string        `json:"supplier_name,omitempty"`
	SupplierCode string        `json:"supplier_code,omitempty"`
	ExternalRef  string        `json:"external_ref,omitempty"`
	CustomerRef  string        `json:"customer_ref,omitempty"`
	Instructions string        `json:"instructions,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Status       string        `json:"status"`
	Priority     string        `json:"priority"`
	TotalAmount  float64       `json:"total_amount"`
	Currency     string        `json:"currency,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	LineItems    []lineItemRow `json:"line_items,omitempty"`
}

// Save writes one order snapshot.
func (r *Repo) Save(ctx context.Context, o domorder.Order) error {
	if o.ID == "" {
		return fmt.Errorf("%w: order id is required", domain.ErrInvalidRequest)
	}

	data, err := json.Marshal(toRow(o))
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID, err)
	}
	if err := r.store.Set(ctx, r.key(o.ID), data); err != nil {
		return fmt.Errorf("set order %s: %w", o.ID, err)
	}
	return nil
}

// Delete removes an order snapshot.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del order %s: %w", id, err)
	}
	return nil
}

// LoadAll returns every stored order snapshot. Used to warm the catalog.
func (r *Repo) LoadAll(ctx context.Context) ([]domorder.Order, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	orders := make([]domorder.Order, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			// deleted between scan and get
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get order %s: %w", key, err)
		}

		var row orderRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("unmarshal order %s: %w", key, err)
		}
		orders = append(orders, fromRow(row))
	}
	return orders, nil
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + "order:" + id
}

func toRow(o domorder.Order) orderRow {
	row := orderRow{
		ID:           o.ID,
		Number:       o.Number,
		SupplierID:   o.Supplier.ID,
		SupplierName: o.Supplier.Name,
		SupplierCode: o.Supplier.Code,
		ExternalRef:  o.ExternalRef,
		CustomerRef:  o.CustomerRef,
		Instructions: o.Instructions,
		Notes:        o.Notes,
		Status:       string(o.Status),
		Priority:     string(o.Priority),
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		CreatedAt:    o.CreatedAt,
	}
	for _, li := range o.LineItems {
		row.LineItems = append(row.LineItems, lineItemRow(li))
	}
	return row
}

func fromRow(row orderRow) domorder.Order {
	o := domorder.Order{
		ID:           row.ID,
		Number:       row.Number,
		Supplier:     domorder.Supplier{ID: row.SupplierID, Name: row.SupplierName, Code: row.SupplierCode},
		ExternalRef:  row.ExternalRef,
		CustomerRef:  row.CustomerRef,
		Instructions: row.Instructions,
		Notes:        row.Notes,
		Status:       domorder.Status(row.Status),
		Priority:     domorder.Priority(row.Priority),
		TotalAmount:  row.TotalAmount,
		Currency:     row.Currency,
		CreatedAt:    row.CreatedAt,
	}
	for _, li := range row.LineItems {
		o.LineItems = append(o.LineItems, domorder.LineItem(li))
	}
	return o
}
