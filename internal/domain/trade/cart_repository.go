package trade

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart entry persistence
type CartRepository interface {
	// FindByID finds a cart entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartEntry, error)

	// FindByUser finds all cart entries for a user, oldest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartEntry, error)

	// FindByUserAndProduct finds the user's entry for a product, if any
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartEntry, error)

	// Save creates or updates a cart entry
	Save(ctx context.Context, entry *CartEntry) error

	// Delete removes a cart entry
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all of a user's cart entries
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
