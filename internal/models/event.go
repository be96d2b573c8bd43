package models

import "time"

// Product lifecycle event types. They double as message routing keys.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change applied to a stored product.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Sku        string    `json:"sku"`
	OccurredAt time.Time `json:"occurred_at"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
}
