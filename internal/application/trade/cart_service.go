package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// CartService reconciles cart mutations into one entry per
// (user, product) pair
type CartService struct {
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo trade.CartRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Upsert applies a signed quantity delta to the user's cart.
// Resolution order: an explicit entry id is used when it belongs to
// the caller and matches the product; otherwise the user's existing
// entry for the product is looked up. An entry driven to zero or
// below is deleted. A negative delta matching nothing is a no-op.
func (s *CartService) Upsert(ctx context.Context, userID uuid.UUID, req UpsertCartRequest) (*UpsertCartResult, error) {
	if req.Quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity delta cannot be zero")
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	entry, err := s.resolveEntry(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		if req.Quantity <= 0 {
			// Removing from an absent entry has nothing to do
			return &UpsertCartResult{Removed: true}, nil
		}
		return s.createEntry(ctx, userID, req.ProductID, req.Quantity)
	}

	if entry.ApplyDelta(req.Quantity) <= 0 {
		if err := s.cartRepo.Delete(ctx, entry.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return &UpsertCartResult{Removed: true}, nil
	}

	if err := s.cartRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToCartEntryResponse(entry)
	return &UpsertCartResult{Entry: &response}, nil
}

// ListCart returns the user's cart entries joined with live product
// info, oldest entry first. Entries whose product has since been
// deleted are omitted from the listing.
func (s *CartService) ListCart(ctx context.Context, userID uuid.UUID) (*CartResult, error) {
	entries, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CartResult{
		Items:       make([]CartItemResponse, 0, len(entries)),
		TotalAmount: decimal.Zero,
	}
	if len(entries) == 0 {
		return result, nil
	}

	productIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, entry := range entries {
		product, ok := byID[entry.ProductID]
		if !ok {
			s.logger.Warn("cart entry references missing product",
				zap.String("entry_id", entry.ID.String()),
				zap.String("product_id", entry.ProductID.String()),
			)
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		result.Items = append(result.Items, CartItemResponse{
			EntryID:     entry.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			UnitPrice:   product.Price,
			Quantity:    entry.Quantity,
			LineTotal:   lineTotal,
		})
		result.TotalAmount = result.TotalAmount.Add(lineTotal)
		result.ItemCount += entry.Quantity
	}

	return result, nil
}

// resolveEntry finds the entry the delta applies to, or nil.
// A supplied entry id that belongs to another user or references a
// different product is discarded rather than surfaced, so callers
// cannot probe other users' carts.
func (s *CartService) resolveEntry(ctx context.Context, userID uuid.UUID, req UpsertCartRequest) (*trade.CartEntry, error) {
	if req.EntryID != nil {
		entry, err := s.cartRepo.FindByID(ctx, *req.EntryID)
		if err == nil && entry.BelongsTo(userID) && entry.References(req.ProductID) {
			return entry, nil
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	entry, err := s.cartRepo.FindByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// createEntry inserts a fresh entry, falling back to a re-read when a
// concurrent insert for the same (user, product) pair wins the race
func (s *CartService) createEntry(ctx context.Context, userID, productID uuid.UUID, quantity int) (*UpsertCartResult, error) {
	entry, err := trade.NewCartEntry(userID, productID, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, entry); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			existing, findErr := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
			if findErr != nil {
				return nil, findErr
			}
			existing.ApplyDelta(quantity)
			if saveErr := s.cartRepo.Save(ctx, existing); saveErr != nil {
				return nil, saveErr
			}
			response := ToCartEntryResponse(existing)
			return &UpsertCartResult{Entry: &response}, nil
		}
		return nil, err
	}

	response := ToCartEntryResponse(entry)
	return &UpsertCartResult{Entry: &response}, nil
}
