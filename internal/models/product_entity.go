package models

import "github.com/shopspring/decimal"

// ProductEntity is the relational form of a Product.
type ProductEntity struct {
	Sku            string               `gorm:"primaryKey;type:varchar(12)"`
	Name           string               `gorm:"type:varchar(50);not null"`
	Brand          string               `gorm:"type:varchar(50);not null"`
	Size           *string              `gorm:"type:varchar(255)"`
	Price          decimal.Decimal      `gorm:"type:numeric(10,2);not null"`
	PrincipalImage string               `gorm:"type:varchar(255);not null"`
	OtherImages    []ProductImageEntity `gorm:"foreignKey:ProductSku;references:Sku;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProductEntity.
func (ProductEntity) TableName() string {
	return "product"
}

// ProductImageEntity is one entry of a product's ordered list of secondary images.
type ProductImageEntity struct {
	ID         uint   `gorm:"primaryKey"`
	ProductSku string `gorm:"type:varchar(12);not null;index"`
	Position   int    `gorm:"not null"`
	URL        string `gorm:"column:other_images;type:varchar(255);not null"`
}

// TableName returns the table name for ProductImageEntity.
func (ProductImageEntity) TableName() string {
	return "product_other_images"
}

// NewProductEntity copies a domain product into its relational form.
func NewProductEntity(p Product) ProductEntity {
	entity := ProductEntity{
		Sku:            p.Sku,
		Name:           p.Name,
		Brand:          p.Brand,
		Price:          p.Price,
		PrincipalImage: p.PrincipalImage,
	}
	if p.Size != "" {
		size := p.Size
		entity.Size = &size
	}
	for i, url := range p.OtherImages {
		entity.OtherImages = append(entity.OtherImages, ProductImageEntity{
			ProductSku: p.Sku,
			Position:   i,
			URL:        url,
		})
	}
	return entity
}

// ToDomain copies the entity back into a domain product.
// OtherImages is expected to be ordered by Position already.
func (e ProductEntity) ToDomain() Product {
	product := Product{
		Sku:            e.Sku,
		Name:           e.Name,
		Brand:          e.Brand,
		Price:          e.Price,
		PrincipalImage: e.PrincipalImage,
	}
	if e.Size != nil {
		product.Size = *e.Size
	}
	for _, image := range e.OtherImages {
		product.OtherImages = append(product.OtherImages, image.URL)
	}
	return product
}
