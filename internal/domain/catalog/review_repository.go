package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByProduct finds all reviews for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error
}
