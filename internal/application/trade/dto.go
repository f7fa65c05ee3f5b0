package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// UpsertCartRequest applies a quantity delta to the caller's cart.
// Quantity is a signed delta: positive adds, negative removes, and an
// entry reaching zero or below is deleted. EntryID optionally targets
// an existing entry directly.
type UpsertCartRequest struct {
	EntryID   *uuid.UUID `json:"entry_id"`
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required"`
}

// CartEntryResponse represents a single cart entry in API responses
type CartEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertCartResult reports the outcome of a cart upsert. Removed is
// true when the delta drove the entry to zero or below (or when a
// negative delta matched nothing).
type UpsertCartResult struct {
	Removed bool               `json:"removed"`
	Entry   *CartEntryResponse `json:"entry,omitempty"`
}

// CartItemResponse is a cart entry joined with live product info
type CartItemResponse struct {
	EntryID     uuid.UUID       `json:"entry_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CartResult is the payload of the cart listing endpoint
type CartResult struct {
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	ItemCount   int                `json:"item_count"`
}

// CheckoutRequest carries the shipping and payment snapshot for checkout
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" binding:"required,notblank,max=100"`
	CustomerAddress string `json:"customer_address" binding:"required,notblank"`
	CustomerPhone   string `json:"customer_phone" binding:"required,notblank,max=20"`
	PaymentMethod   string `json:"payment_method" binding:"required,notblank,max=50"`
}

// ShippingInfo converts the request to the domain value
func (r CheckoutRequest) ShippingInfo() trade.ShippingInfo {
	return trade.ShippingInfo{
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		CustomerPhone:   r.CustomerPhone,
		PaymentMethod:   r.PaymentMethod,
	}
}

// OrderSummary is the payload returned by a successful checkout
type OrderSummary struct {
	OrderID     uuid.UUID       `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToCartEntryResponse converts a domain CartEntry to CartEntryResponse
func ToCartEntryResponse(e *trade.CartEntry) CartEntryResponse {
	return CartEntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
