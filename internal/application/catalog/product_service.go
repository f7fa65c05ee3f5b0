package catalog

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductService handles catalog reads and writes. Listing and detail
// reads go through the response cache; any product write invalidates
// the affected keys.
type ProductService struct {
	productRepo catalog.ProductRepository
	reviewRepo  catalog.ReviewRepository
	cache       catalog.ResponseCache
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	reviewRepo catalog.ReviewRepository,
	cache catalog.ResponseCache,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List returns one page of the catalog, optionally filtered by a
// case-insensitive name search. Identical requests within the cache
// TTL are served from the cache.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*ProductListResult, error) {
	filter = normalizeFilter(filter)
	key := catalog.ListingCacheKey(filter.Search, filter.Page, filter.Limit)

	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached ProductListResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// A corrupt entry is treated as a miss and overwritten below
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	repoFilter := shared.DefaultFilter()
	repoFilter.Page = filter.Page
	repoFilter.PageSize = filter.Limit
	repoFilter.Search = filter.Search

	products, err := s.productRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{
		Products: make([]ProductResponse, 0, len(products)),
		Pagination: Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages(total, filter.Limit),
		},
	}
	for i := range products {
		result.Products = append(result.Products, ToProductResponse(&products[i]))
	}

	if payload, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, payload, catalog.CacheTTL)
	}

	return result, nil
}

// GetDetail returns a product together with its reviews, newest first.
// The combined payload is cached under the product's detail key.
func (s *ProductService) GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDetailResult, error) {
	key := catalog.DetailCacheKey(productID)

	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached ProductDetailResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &ProductDetailResult{
		Product: ToProductResponse(product),
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}
	for i := range reviews {
		result.Reviews = append(result.Reviews, ToReviewResponse(&reviews[i]))
	}

	if payload, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, payload, catalog.CacheTTL)
	}

	return result, nil
}

// Create lists a new product owned by the given user and invalidates
// every cached listing page
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(ownerID, req.Name, req.Price, req.Description, req.Category, req.Stock, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(ctx, catalog.ListingCachePrefix)

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// normalizeFilter clamps page and limit into their valid ranges
func normalizeFilter(filter ProductListFilter) ProductListFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return filter
}

// totalPages computes the page count for a total and page size
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
