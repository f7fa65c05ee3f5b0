package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apptrade "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	BaseHandler
	checkoutService *apptrade.CheckoutService
	authGuard       gin.HandlerFunc
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *apptrade.CheckoutService, authGuard gin.HandlerFunc, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		authGuard:       authGuard,
		logger:          logger,
	}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.authGuard, h.Checkout)
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apptrade.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	summary, err := h.checkoutService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			h.HandleDomainError(c, err)
			return
		}
		// The transaction already rolled back; surface a stable code
		// without leaking store internals
		h.logger.Error("checkout failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.ErrCodeCheckout, "Checkout failed"))
		return
	}

	h.SuccessWithMessage(c, "Order placed", summary)
}
