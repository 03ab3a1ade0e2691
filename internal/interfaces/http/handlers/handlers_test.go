package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/cart"
	"github.com/your-org/jewelry-storefront/internal/domain/catalog"
	"github.com/your-org/jewelry-storefront/internal/domain/checkout"
	"github.com/your-org/jewelry-storefront/internal/domain/pricing"
	"github.com/your-org/jewelry-storefront/internal/domain/product"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLoader struct {
	cfg      pricing.Config
	products []product.Product
	err      error
}

func (s *stubLoader) Load(context.Context) (pricing.Config, []product.Product, error) {
	if s.err != nil {
		return pricing.Config{}, nil, s.err
	}
	return s.cfg, s.products, nil
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", cart.ErrNotFound
	}
	return val, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			ShippingCost: decimal.NewFromInt(50),
			TaxRates:     map[string]decimal.Decimal{"IL": decimal.NewFromFloat(0.10)},
			CartTTL:      time.Hour,
			PageSize:     2,
		},
	}
}

func catalogProducts() []product.Product {
	return []product.Product{
		{ID: "R-1", Name: "Gold Ring", Category: "rings", Weight: product.Weight{Kind: product.WeightNotApplicable}, FixedPrice: 200},
		{ID: "R-2", Name: "Gold Band", Category: "rings", Weight: product.Weight{Kind: product.WeightNotApplicable}, FixedPrice: 300},
		{ID: "R-3", Name: "Gold Signet", Category: "rings", Weight: product.Weight{Kind: product.WeightNotApplicable}, FixedPrice: 400},
	}
}

type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCatalogPaginates(t *testing.T) {
	cfg := testConfig()
	provider := catalog.NewProvider(&stubLoader{products: catalogProducts()}, testLogger())
	handler := NewCatalogHandler(provider, cfg)

	router := gin.New()
	router.GET("/catalog", handler.GetCatalog)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog?cat=rings&page=1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Mode       string `json:"mode"`
		Pagination struct {
			Total   int  `json:"total"`
			HasMore bool `json:"has_more"`
		} `json:"pagination"`
		Products []product.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &data))

	assert.Equal(t, "products", data.Mode)
	assert.Len(t, data.Products, 2)
	assert.Equal(t, 3, data.Pagination.Total)
	assert.True(t, data.Pagination.HasMore)
}

func TestGetCatalogCategoryGridMode(t *testing.T) {
	provider := catalog.NewProvider(&stubLoader{products: catalogProducts()}, testLogger())
	handler := NewCatalogHandler(provider, testConfig())

	router := gin.New()
	router.GET("/catalog", handler.GetCatalog)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog?cat=yellow-gold", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &data))
	assert.Equal(t, "categories", data.Mode)
}

func TestGetCatalogUnavailableFeed(t *testing.T) {
	provider := catalog.NewProvider(&stubLoader{err: errors.New("feed down")}, testLogger())
	handler := NewCatalogHandler(provider, testConfig())

	router := gin.New()
	router.GET("/catalog", handler.GetCatalog)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decodeBody(t, rec).Error, "Unable to load storefront data")
}

func TestGetProductNotFound(t *testing.T) {
	provider := catalog.NewProvider(&stubLoader{products: catalogProducts()}, testLogger())
	handler := NewCatalogHandler(provider, testConfig())

	router := gin.New()
	router.GET("/products/:id", handler.GetProduct)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newCartRouter(t *testing.T, loader *stubLoader) (*gin.Engine, *cart.Service) {
	t.Helper()
	cfg := testConfig()
	provider := catalog.NewProvider(loader, testLogger())
	cartService := cart.NewService(&memoryStore{data: make(map[string]string)}, time.Hour, testLogger())
	handler := NewCartHandler(cartService, provider, cfg)

	router := gin.New()
	router.GET("/cart", handler.GetCart)
	router.GET("/cart/count", handler.GetCartCount)
	router.POST("/cart/items", handler.AddToCart)
	router.PUT("/cart/items/:id", handler.UpdateCartItem)
	router.DELETE("/cart/items/:id", handler.RemoveFromCart)
	return router, cartService
}

func TestAddToCartIssuesSessionCookie(t *testing.T) {
	router, _ := newCartRouter(t, &stubLoader{products: catalogProducts()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id": "R-1", "quantity": 2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookieName, cookies[0].Name)

	var items []cart.Item
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	router, _ := newCartRouter(t, &stubLoader{products: catalogProducts()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id": "nope"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartCountAcrossRequests(t *testing.T) {
	router, _ := newCartRouter(t, &stubLoader{products: catalogProducts()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id": "R-1", "quantity": 2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	session := rec.Result().Cookies()[0]

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	req.AddCookie(session)
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &data))
	assert.Equal(t, 2, data.Count)
}

func TestCheckoutSummaryRequiresSession(t *testing.T) {
	cfg := testConfig()
	loader := &stubLoader{products: catalogProducts()}
	cartService := cart.NewService(&memoryStore{data: make(map[string]string)}, time.Hour, testLogger())
	checkoutService := checkout.NewService(loader, cartService, cfg.Checkout, testLogger())
	handler := NewCheckoutHandler(checkoutService, nil, cfg)

	router := gin.New()
	router.GET("/checkout/summary", handler.GetSummary)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout/summary?state=IL", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	cfg := testConfig()
	loader := &stubLoader{products: catalogProducts()}
	cartService := cart.NewService(&memoryStore{data: make(map[string]string)}, time.Hour, testLogger())
	checkoutService := checkout.NewService(loader, cartService, cfg.Checkout, testLogger())
	handler := NewCheckoutHandler(checkoutService, nil, cfg)

	router := gin.New()
	router.POST("/checkout/orders", handler.CreateOrder)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/orders", strings.NewReader(`{"state": "IL"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "session-1"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec).Error, "Cart is empty")
}
