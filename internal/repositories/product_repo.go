package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access, keyed by sku.
type ProductRepository interface {
	// Save inserts the product or overwrites the one stored under the same sku.
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	// FindBySku returns nil and no error when no product is stored under sku.
	FindBySku(ctx context.Context, sku string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	Delete(ctx context.Context, product *models.Product) error
}
