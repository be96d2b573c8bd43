package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// Save upserts the product row and replaces its image rows in one transaction.
func (r *GORMProductRepository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	entity := models.NewProductEntity(*product)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// OnConflict turns the insert into an overwrite when the sku already exists.
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&entity).Error; err != nil {
			return err
		}
		if err := tx.Where("product_sku = ?", entity.Sku).Delete(&models.ProductImageEntity{}).Error; err != nil {
			return err
		}
		if len(entity.OtherImages) > 0 {
			return tx.Create(&entity.OtherImages).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save product %s: %w", product.Sku, err)
	}

	saved := entity.ToDomain()
	return &saved, nil
}

// FindBySku retrieves a single product with its images.
func (r *GORMProductRepository) FindBySku(ctx context.Context, sku string) (*models.Product, error) {
	var entity models.ProductEntity
	err := r.db.WithContext(ctx).
		Preload("OtherImages", orderByPosition).
		Where("sku = ?", sku).
		Take(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by sku %s: %w", sku, err)
	}
	product := entity.ToDomain()
	return &product, nil
}

// FindAll retrieves all products in the order the database returns them.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var entities []models.ProductEntity
	if err := r.db.WithContext(ctx).Preload("OtherImages", orderByPosition).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0, len(entities))
	for _, entity := range entities {
		products = append(products, entity.ToDomain())
	}
	return products, nil
}

// Delete removes the product and its images.
func (r *GORMProductRepository) Delete(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_sku = ?", product.Sku).Delete(&models.ProductImageEntity{}).Error; err != nil {
			return err
		}
		return tx.Where("sku = ?", product.Sku).Delete(&models.ProductEntity{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", product.Sku, err)
	}
	return nil
}
