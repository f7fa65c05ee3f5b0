package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds all orders for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// Save persists an order together with its line items
	Save(ctx context.Context, order *Order) error
}
