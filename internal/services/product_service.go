package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher delivers serialized product events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // optional
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// SaveProduct stores the product. A product already stored under the same
// sku is overwritten.
func (s *ProductService) SaveProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	saved, err := s.repo.Save(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("save product %s: %w", product.Sku, err)
	}
	s.publish(models.EventProductCreated, saved.Sku, saved)
	return saved, nil
}

// GetProductBySku retrieves a single product by its sku.
func (s *ProductService) GetProductBySku(ctx context.Context, sku string) (*models.Product, error) {
	return s.findExisting(ctx, sku)
}

// UpdateProductBySku replaces every field of the stored product except its sku,
// which is always taken from the sku argument. It returns the product as it
// was before the update.
func (s *ProductService) UpdateProductBySku(ctx context.Context, sku string, product models.Product) (*models.Product, error) {
	product.Sku = sku
	previous, err := s.findExisting(ctx, sku)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", sku, err)
	}
	s.publish(models.EventProductUpdated, sku, updated)
	return previous, nil
}

// GetAllProducts retrieves all products. An empty catalog is reported as a
// NotFoundError.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return nil, &NotFoundError{Message: "No registered products found"}
	}
	return products, nil
}

// DeleteProductBySku deletes a product by its sku.
func (s *ProductService) DeleteProductBySku(ctx context.Context, sku string) error {
	product, err := s.findExisting(ctx, sku)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product); err != nil {
		return fmt.Errorf("delete product %s: %w", sku, err)
	}
	s.publish(models.EventProductDeleted, sku, nil)
	return nil
}

func (s *ProductService) findExisting(ctx context.Context, sku string) (*models.Product, error) {
	product, err := s.repo.FindBySku(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", sku, err)
	}
	if product == nil {
		return nil, productNotFound(sku)
	}
	return product, nil
}

// publish sends a lifecycle event. Failures are logged and never reach the caller.
func (s *ProductService) publish(eventType, sku string, product *models.Product) {
	if s.publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s event for product %s", eventType, sku)
		return
	}

	event := models.ProductEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Sku:        sku,
		OccurredAt: time.Now().UTC(),
		Product:    product,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", eventType, sku, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", eventType, sku, err)
		return
	}
	log.Printf("Successfully published %s event for product %s", eventType, sku)
}
