package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

func setupProductRoutes(productRepo *MockProductRepository, reviewRepo *MockReviewRepository, userID uuid.UUID) *gin.Engine {
	responseCache := cache.NewInMemoryResponseCache(cache.NewMetrics())
	service := catalogapp.NewProductService(productRepo, reviewRepo, responseCache, zap.NewNop())
	h := NewProductHandler(service, authStub(userID), zap.NewNop())

	engine := setupTestEngine()
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func TestProductHandler_List_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	owner := uuid.New()
	products := []catalog.Product{
		*newTestProduct(t, owner, "Walnut Desk", "450", 3),
		*newTestProduct(t, owner, "Desk Lamp", "35", 10),
	}
	productRepo.On("FindAll", mock.Anything, mock.Anything).Return(products, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product?page=1&limit=10", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)

	var result catalogapp.ProductListResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Products, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_List_InvalidPage(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product?page=0", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	productRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductHandler_List_InvalidLimit(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product?limit=0", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	productRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductHandler_List_DefaultPagination(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())

	var result catalogapp.ProductListResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
}

func TestProductHandler_Detail_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	product := newTestProduct(t, uuid.New(), "Walnut Desk", "450", 3)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	reviewRepo.On("FindByProduct", mock.Anything, product.ID).Return([]catalog.Review{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product/"+product.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())

	var result catalogapp.ProductDetailResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "Walnut Desk", result.Product.Name)
	assert.Empty(t, result.Reviews)
}

func TestProductHandler_Detail_InvalidID(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Detail_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	missing := uuid.New()
	productRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/product/"+missing.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestProductHandler_Create_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	owner := uuid.New()
	engine := setupProductRoutes(productRepo, reviewRepo, owner)

	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, _ := json.Marshal(gin.H{
		"name":  "Walnut Desk",
		"price": "450.00",
		"stock": 3,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/product", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "Product created", env.Message)

	var result catalogapp.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, owner, result.OwnerID)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	engine := setupProductRoutes(productRepo, reviewRepo, uuid.New())

	body, _ := json.Marshal(gin.H{"price": "450.00"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/product", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
