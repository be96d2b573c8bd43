package repositories

import (
	"context"
	"sort"
	"sync"

	"catalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// Save stores a copy of the product under its sku.
func (r *MemoryProductRepository) Save(_ context.Context, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.Sku] = product.Clone()
	saved := product.Clone()
	return &saved, nil
}

// FindBySku returns a product by its sku.
func (r *MemoryProductRepository) FindBySku(_ context.Context, sku string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[sku]
	if !ok {
		return nil, nil
	}
	found := product.Clone()
	return &found, nil
}

// FindAll returns all products ordered by sku.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p.Clone())
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].Sku < productList[j].Sku
	})
	return productList, nil
}

// Delete removes a product. Deleting an absent sku is a no-op.
func (r *MemoryProductRepository) Delete(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, product.Sku)
	return nil
}
