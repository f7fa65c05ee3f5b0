package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	cache       catalog.ResponseCache
	logger      *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	cache catalog.ResponseCache,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Create adds a review to an existing product and invalidates the
// product's cached detail view so the new review shows up immediately
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	review, err := catalog.NewReview(req.ProductID, userID, req.Rating, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, catalog.DetailCacheKey(req.ProductID))

	s.logger.Info("review created",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("rating", req.Rating),
	)

	response := ToReviewResponse(review)
	return &response, nil
}
