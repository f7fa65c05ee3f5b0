package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

type checkoutMocks struct {
	userRepo    *MockUserRepository
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	orderRepo   *MockOrderRepository
}

func setupCheckoutRoutes(userID uuid.UUID) (*gin.Engine, checkoutMocks) {
	m := checkoutMocks{
		userRepo:    new(MockUserRepository),
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		orderRepo:   new(MockOrderRepository),
	}
	service := tradeapp.NewCheckoutService(
		passthroughTxManager{}, m.userRepo, m.cartRepo, m.productRepo, m.orderRepo,
		cache.NewInMemoryResponseCache(cache.NewMetrics()), zap.NewNop())
	h := NewCheckoutHandler(service, authStub(userID), zap.NewNop())

	engine := setupTestEngine()
	h.RegisterRoutes(engine.Group("/api"))
	return engine, m
}

func validCheckoutBody() *bytes.Buffer {
	body, _ := json.Marshal(gin.H{
		"customer_name":    "Dana Smith",
		"customer_address": "12 Harbor Lane",
		"customer_phone":   "555-0104",
		"payment_method":   "card",
	})
	return bytes.NewBuffer(body)
}

func TestCheckoutHandler_Success(t *testing.T) {
	userID := uuid.New()
	engine, m := setupCheckoutRoutes(userID)

	user, err := identity.NewUser("Dana Smith", "dana@example.com")
	require.NoError(t, err)
	user.ID = userID

	product := newTestProduct(t, uuid.New(), "Desk Lamp", "35", 10)
	entry, err := trade.NewCartEntry(userID, product.ID, 2)
	require.NoError(t, err)

	m.userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	m.cartRepo.On("FindByUser", mock.Anything, userID).Return([]trade.CartEntry{*entry}, nil)
	m.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	m.productRepo.On("DecrementStock", mock.Anything, product.ID, 2).Return(nil)
	m.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	m.cartRepo.On("DeleteByUser", mock.Anything, userID).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", validCheckoutBody())
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, "Order placed", env.Message)

	var summary tradeapp.OrderSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, "70", summary.TotalAmount.String())
	assert.NotEqual(t, uuid.Nil, summary.OrderID)
	m.orderRepo.AssertExpectations(t)
	m.cartRepo.AssertExpectations(t)
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	userID := uuid.New()
	engine, m := setupCheckoutRoutes(userID)

	user, err := identity.NewUser("Dana Smith", "dana@example.com")
	require.NoError(t, err)
	user.ID = userID

	m.userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	m.cartRepo.On("FindByUser", mock.Anything, userID).Return([]trade.CartEntry{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", validCheckoutBody())
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "EMPTY_CART", env.ErrorCode)
	m.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCheckoutHandler_MissingShippingFields(t *testing.T) {
	engine, m := setupCheckoutRoutes(uuid.New())

	body, _ := json.Marshal(gin.H{"customer_name": "Dana Smith"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCheckoutHandler_StoreFailureHidesDetails(t *testing.T) {
	userID := uuid.New()
	engine, m := setupCheckoutRoutes(userID)

	user, err := identity.NewUser("Dana Smith", "dana@example.com")
	require.NoError(t, err)
	user.ID = userID

	product := newTestProduct(t, uuid.New(), "Desk Lamp", "35", 10)
	entry, err := trade.NewCartEntry(userID, product.ID, 1)
	require.NoError(t, err)

	m.userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	m.cartRepo.On("FindByUser", mock.Anything, userID).Return([]trade.CartEntry{*entry}, nil)
	m.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	m.productRepo.On("DecrementStock", mock.Anything, product.ID, 1).Return(nil)
	m.orderRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset by peer"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", validCheckoutBody())
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "CHECKOUT_ERROR", env.ErrorCode)
	assert.NotContains(t, env.Message, "connection reset")
}
