package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// CheckoutService converts a user's cart into an order as one unit of
// work: validate stock, snapshot prices, decrement inventory, clear
// the cart. Any failure rolls the whole conversion back.
type CheckoutService struct {
	tm          shared.TransactionManager
	userRepo    identity.UserRepository
	cartRepo    trade.CartRepository
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
	cache       catalog.ResponseCache
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	tm shared.TransactionManager,
	userRepo identity.UserRepository,
	cartRepo trade.CartRepository,
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	cache catalog.ResponseCache,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		tm:          tm,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Checkout converts all of the user's cart entries into a completed
// order. The whole conversion, stock decrements included, runs in one
// store transaction; concurrent checkouts racing for the same stock
// are decided by the conditional decrement, and the loser aborts with
// nothing applied.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderSummary, error) {
	var summary *OrderSummary
	var orderedIDs []uuid.UUID

	err := s.tm.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("USER_NOT_FOUND", "User not found")
			}
			return err
		}

		entries, err := s.cartRepo.FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return shared.NewDomainError("EMPTY_CART", "Cart is empty")
		}

		products, err := s.loadProducts(ctx, entries)
		if err != nil {
			return err
		}

		// Validate everything before mutating anything
		for _, entry := range entries {
			if entry.Quantity <= 0 {
				return shared.NewDomainError("INVALID_QUANTITY", "Cart entry quantity must be positive")
			}
			product, ok := products[entry.ProductID]
			if !ok {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "A product in the cart no longer exists")
			}
			if !product.HasStock(entry.Quantity) {
				return insufficientStockError(product, entry.Quantity)
			}
		}

		order, err := trade.NewOrder(userID, req.ShippingInfo())
		if err != nil {
			return err
		}

		for _, entry := range entries {
			product := products[entry.ProductID]

			// Live price at checkout time, not the cart-add price
			if _, err := order.AddItem(product.ID, entry.Quantity, product.PriceMoney()); err != nil {
				return err
			}

			if err := s.productRepo.DecrementStock(ctx, product.ID, entry.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					// A concurrent checkout drained the stock after
					// validation; re-read so the message reports the
					// level that caused the refusal, not the stale one
					if fresh, lookupErr := s.productRepo.FindByID(ctx, product.ID); lookupErr == nil {
						product = fresh
					}
					return insufficientStockError(product, entry.Quantity)
				}
				return err
			}
			orderedIDs = append(orderedIDs, product.ID)
		}

		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		summary = &OrderSummary{
			OrderID:     order.ID,
			TotalAmount: order.TotalAmount,
			ItemCount:   order.ItemCount(),
			CreatedAt:   order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stock changed for every ordered product, so the cached detail
	// entries and every cached listing page are now stale
	detailKeys := make([]string, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		detailKeys = append(detailKeys, catalog.DetailCacheKey(id))
	}
	s.cache.Invalidate(ctx, detailKeys...)
	s.cache.InvalidatePrefix(ctx, catalog.ListingCachePrefix)

	s.logger.Info("checkout completed",
		zap.String("order_id", summary.OrderID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("item_count", summary.ItemCount),
		zap.String("total_amount", summary.TotalAmount.String()),
	)

	return summary, nil
}

// loadProducts fetches the products referenced by the cart, keyed by id
func (s *CheckoutService) loadProducts(ctx context.Context, entries []trade.CartEntry) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func insufficientStockError(product *catalog.Product, requested int) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf(
		"Insufficient stock for %s: %d available, %d requested",
		product.Name, product.Stock, requested,
	))
}
