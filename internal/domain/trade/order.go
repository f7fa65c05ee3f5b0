package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	// OrderStatusCompleted is the only status produced by checkout;
	// further transitions are outside this system's scope.
	OrderStatusCompleted OrderStatus = "completed"
)

// ShippingInfo is the customer snapshot captured at checkout time
type ShippingInfo struct {
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	PaymentMethod   string
}

// Validate checks that all shipping fields are present and within bounds
func (s ShippingInfo) Validate() error {
	if strings.TrimSpace(s.CustomerName) == "" {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Customer name is required")
	}
	if len(s.CustomerName) > 100 {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Customer name cannot exceed 100 characters")
	}
	if strings.TrimSpace(s.CustomerAddress) == "" {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Shipping address is required")
	}
	if strings.TrimSpace(s.CustomerPhone) == "" {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Contact phone is required")
	}
	if len(s.CustomerPhone) > 20 {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Contact phone cannot exceed 20 characters")
	}
	if strings.TrimSpace(s.PaymentMethod) == "" {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Payment method is required")
	}
	if len(s.PaymentMethod) > 50 {
		return shared.NewDomainError("INVALID_SHIPPING_INFO", "Payment method cannot exceed 50 characters")
	}
	return nil
}

// Order is an immutable snapshot of a completed checkout.
// It is the aggregate root owning its line items.
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(100);not null"`
	CustomerAddress string          `gorm:"type:text;not null"`
	CustomerPhone   string          `gorm:"type:varchar(20);not null"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status          OrderStatus     `gorm:"type:varchar(50);not null;default:'completed'"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line item with the price snapshot taken at purchase time,
// decoupled from the live catalog price.
type OrderItem struct {
	shared.BaseEntity
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        int             `gorm:"not null"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a new completed order for the given user
func NewOrder(userID uuid.UUID, shipping ShippingInfo) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order must reference a user")
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		CustomerName:    shipping.CustomerName,
		CustomerAddress: shipping.CustomerAddress,
		CustomerPhone:   shipping.CustomerPhone,
		PaymentMethod:   shipping.PaymentMethod,
		TotalAmount:     decimal.Zero,
		Status:          OrderStatusCompleted,
		Items:           make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line item and recalculates the order total
func (o *Order) AddItem(productID uuid.UUID, quantity int, priceAtPurchase valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Order item must reference a product")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	if !priceAtPurchase.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Order item price must be positive")
	}

	item := OrderItem{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         o.ID,
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtPurchase: priceAtPurchase.Amount(),
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()

	return &o.Items[len(o.Items)-1], nil
}

// ItemCount returns the total quantity across all line items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// recalculateTotal keeps the invariant
// TotalAmount == sum(item.PriceAtPurchase * item.Quantity)
func (o *Order) recalculateTotal() {
	total := valueobject.ZeroUSD()
	for _, item := range o.Items {
		line := valueobject.NewMoneyUSD(item.PriceAtPurchase).MultiplyByInt(int64(item.Quantity))
		total = total.MustAdd(line)
	}
	o.TotalAmount = total.Amount()
}
