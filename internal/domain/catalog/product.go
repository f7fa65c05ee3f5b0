package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product represents a product in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(100);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(50);index"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(255)"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product owned by the given user
func NewProduct(ownerID uuid.UUID, name string, price decimal.Decimal, description, category string, stock int, imageURL string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be positive")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if len(category) > 50 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 50 characters")
	}
	if len(imageURL) > 255 {
		return nil, shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 255 characters")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Product owner is required")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Price:       price,
		Description: description,
		Category:    category,
		Stock:       stock,
		ImageURL:    imageURL,
		OwnerID:     ownerID,
	}, nil
}

// HasStock returns true if at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// PriceMoney returns the selling price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}
