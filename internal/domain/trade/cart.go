package trade

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartEntry represents an unpurchased intent to buy: one row per
// (user, product) pair. A quantity reaching zero or below removes the row.
type CartEntry struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartEntry) TableName() string {
	return "cart_entries"
}

// NewCartEntry creates a new cart entry with a positive quantity
func NewCartEntry(userID, productID uuid.UUID, quantity int) (*CartEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Cart entry must reference a user")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Cart entry must reference a product")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Cart entry quantity must be positive")
	}

	return &CartEntry{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// ApplyDelta adds delta to the entry's quantity and returns the result.
// A result of zero or below means the entry should be removed.
func (e *CartEntry) ApplyDelta(delta int) int {
	e.Quantity += delta
	e.Touch()
	return e.Quantity
}

// BelongsTo returns true if the entry is owned by the given user
func (e *CartEntry) BelongsTo(userID uuid.UUID) bool {
	return e.UserID == userID
}

// References returns true if the entry references the given product
func (e *CartEntry) References(productID uuid.UUID) bool {
	return e.ProductID == productID
}
