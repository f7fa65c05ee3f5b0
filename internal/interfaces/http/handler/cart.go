package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService *apptrade.CartService
	authGuard   gin.HandlerFunc
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *apptrade.CartService, authGuard gin.HandlerFunc, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		authGuard:   authGuard,
		logger:      logger,
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart", h.authGuard)
	{
		cart.GET("", h.List)
		cart.POST("", h.Upsert)
	}
}

// List handles GET /api/cart
func (h *CartHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.ListCart(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("cart listing failed", zap.Error(err))
		h.InternalError(c, "Failed to list cart")
		return
	}

	h.Success(c, result)
}

// Upsert handles POST /api/cart
func (h *CartHandler) Upsert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apptrade.UpsertCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	result, err := h.cartService.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.Removed {
		h.SuccessWithMessage(c, "Cart entry removed", result)
		return
	}
	h.SuccessWithMessage(c, "Cart updated", result)
}
