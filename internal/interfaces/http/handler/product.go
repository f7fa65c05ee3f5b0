package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
	authGuard      gin.HandlerFunc
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService, authGuard gin.HandlerFunc, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		authGuard:      authGuard,
		logger:         logger,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/product")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Detail)
		products.POST("", h.authGuard, h.Create)
	}
}

// List handles GET /api/product
func (h *ProductHandler) List(c *gin.Context) {
	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("product listing failed", zap.Error(err))
		h.InternalError(c, "Failed to list products")
		return
	}

	h.Success(c, result)
}

// Detail handles GET /api/product/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	productID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	result, err := h.productService.GetDetail(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Create handles POST /api/product
func (h *ProductHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, "Product created", product)
}
