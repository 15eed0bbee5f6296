// Package order defines the purchase-order record the search engine operates on.
// Records are read-only snapshots owned by the order-management system; the
// engine never mutates them.
package order

import (
	"strings"
	"time"
)

// Status is the order lifecycle state.
type Status string

// Order statuses.
const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusSent            Status = "SENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusReceived        Status = "RECEIVED"
	StatusCancelled       Status = "CANCELLED"
)

// Statuses lists all known order statuses in display order.
func Statuses() []Status {
	return []Status{
		StatusDraft, StatusPendingApproval, StatusApproved,
		StatusSent, StatusConfirmed, StatusReceived, StatusCancelled,
	}
}

// Priority is the order urgency tier.
type Priority string

// Order priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Supplier is the counterparty of a purchase order.
type Supplier struct {
	ID   string
	Name string
	Code string
}

// LineItem is a single ordered position.
type LineItem struct {
	Description string
	ProductCode string
	Quantity    float64
	UnitPrice   float64
}

// Order is a purchase-order snapshot.
type Order struct {
	ID           string
	Number       string
	Supplier     Supplier
	ExternalRef  string
	CustomerRef  string
	Instructions string
	Notes        string
	Status       Status
	Priority     Priority
	TotalAmount  float64
	Currency     string
	CreatedAt    time.Time
	LineItems    []LineItem
}

// LineItemText concatenates line-item descriptions and product codes.
func (o *Order) LineItemText() string {
	if len(o.LineItems) == 0 {
		return ""
	}
	parts := make([]string, 0, len(o.LineItems)*2)
	for _, li := range o.LineItems {
		if li.Description != "" {
			parts = append(parts, li.Description)
		}
		if li.ProductCode != "" {
			parts = append(parts, li.ProductCode)
		}
	}
	return strings.Join(parts, " ")
}

// SearchText concatenates every textual field for indexing.
// Absent fields contribute empty strings, never errors.
func (o *Order) SearchText() string {
	parts := []string{
		o.Number,
		o.Supplier.Name,
		o.Supplier.Code,
		o.ExternalRef,
		o.CustomerRef,
		o.Instructions,
		o.Notes,
		o.LineItemText(),
	}
	return strings.Join(parts, " ")
}
