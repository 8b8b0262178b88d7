package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront-backend/internal/api"
	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/application/checkout"
	"github.com/nilecart/storefront-backend/internal/infrastructure/config"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*api.Server, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	service := checkout.NewService(repo, nil, logger, config.CheckoutConfig{})
	server := api.NewServer(api.DefaultConfig(), repo, service, logger)
	return server, repo
}

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response.Status)
}

func TestServer_CatalogEndpoints(t *testing.T) {
	server, repo := newTestServer(t)
	repo.AddProduct(storage.Product{
		ID:       "prod-1",
		NameEN:   "Olive Oil",
		Price:    decimal.NewFromInt(100),
		Quantity: 5,
		IsActive: true,
	})
	repo.AddOffer(storage.Offer{
		ID:            "offer-1",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		AppliesTo:     "all",
		IsActive:      true,
	})

	t.Run("GET /api/products resolves pricing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ProductListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, 90.0, response.Products[0].Pricing.FinalPrice)
	})

	t.Run("GET /api/deals surfaces the store-wide offer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/deals", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.DealListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, response.Count)
	})

	t.Run("GET /api/shipping lists governorates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/shipping", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ShippingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "EGP", response.Currency)
		assert.NotEmpty(t, response.Governorates)
	})
}

func TestServer_CORSHeaders(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
