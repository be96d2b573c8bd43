package models

import "github.com/shopspring/decimal"

// Product represents a product in the catalog.
// Sku is the storage key and never changes once the product is created.
type Product struct {
	Sku            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Size           string          `json:"size,omitempty"`
	Price          decimal.Decimal `json:"price"`
	PrincipalImage string          `json:"principal_image"`
	OtherImages    []string        `json:"other_images,omitempty"`
}

// Clone returns a copy of the product that shares no slices with p.
func (p Product) Clone() Product {
	if p.OtherImages != nil {
		p.OtherImages = append([]string(nil), p.OtherImages...)
	}
	return p
}
