package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/api/handlers"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

func cartRouter(repo *storage.MockRepository) chi.Router {
	handler := handlers.NewCartHandler(repo, handlers.NewCartManager())
	r := chi.NewRouter()
	r.Get("/api/cart", handler.Get)
	r.Delete("/api/cart", handler.Clear)
	r.Post("/api/cart/items", handler.AddItem)
	r.Put("/api/cart/items/{productID}", handler.SetQty)
	r.Post("/api/cart/items/{productID}/increase", handler.IncreaseQty)
	r.Post("/api/cart/items/{productID}/decrease", handler.DecreaseQty)
	r.Delete("/api/cart/items/{productID}", handler.RemoveItem)
	r.Get("/api/wishlist", handler.Wishlist)
	r.Post("/api/wishlist", handler.ToggleWishlist)
	return r
}

func doCart(t *testing.T, router chi.Router, method, path, session string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if session != "" {
		req.Header.Set(handlers.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_SessionRequired(t *testing.T) {
	repo := storage.NewMockRepository()
	router := cartRouter(repo)

	rec := doCart(t, router, http.MethodGet, "/api/cart", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("adds item with add-time price snapshot", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedCatalog(repo)
		repo.AddOffer(storage.Offer{
			ID:            "offer-1",
			DiscountType:  "percentage",
			DiscountValue: decimal.NewFromInt(20),
			AppliesTo:     "product",
			ProductID:     "prod-1",
			IsActive:      true,
		})
		router := cartRouter(repo)

		rec := doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 2})

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, 2, response.Lines[0].Qty)
		assert.Equal(t, 80.0, response.Lines[0].Price)
		assert.Equal(t, 100.0, response.Lines[0].OriginalPrice)
		assert.Equal(t, "offer-1", response.Lines[0].AppliedOfferID)
		assert.Equal(t, 160.0, response.Subtotal)
	})

	t.Run("merges repeat adds into one line", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedCatalog(repo)
		router := cartRouter(repo)

		doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 1})
		rec := doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 2})

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, 3, response.Lines[0].Qty)
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		repo := storage.NewMockRepository()
		router := cartRouter(repo)

		rec := doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "missing", Qty: 1})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedCatalog(repo)
		router := cartRouter(repo)

		doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 1})
		rec := doCart(t, router, http.MethodGet, "/api/cart", "sess-2", nil)

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 0, response.Count)
	})
}

func TestCartHandler_QuantityOps(t *testing.T) {
	repo := storage.NewMockRepository()
	seedCatalog(repo)
	router := cartRouter(repo)

	doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 1})

	t.Run("set qty clamps to the snapshotted stock", func(t *testing.T) {
		// prod-1 had 5 in stock at add-time
		rec := doCart(t, router, http.MethodPut, "/api/cart/items/prod-1", "sess-1", dto.CartQtyRequest{Qty: 99})

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 5, response.Lines[0].Qty)
	})

	t.Run("decrease never drops below one", func(t *testing.T) {
		doCart(t, router, http.MethodPut, "/api/cart/items/prod-1", "sess-1", dto.CartQtyRequest{Qty: 1})
		rec := doCart(t, router, http.MethodPost, "/api/cart/items/prod-1/decrease", "sess-1", nil)

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, response.Lines[0].Qty)
	})

	t.Run("increase bumps by one", func(t *testing.T) {
		rec := doCart(t, router, http.MethodPost, "/api/cart/items/prod-1/increase", "sess-1", nil)

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 2, response.Lines[0].Qty)
	})

	t.Run("remove deletes the line", func(t *testing.T) {
		rec := doCart(t, router, http.MethodDelete, "/api/cart/items/prod-1", "sess-1", nil)

		var response dto.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 0, response.Count)
	})
}

func TestCartHandler_Clear(t *testing.T) {
	repo := storage.NewMockRepository()
	seedCatalog(repo)
	router := cartRouter(repo)

	doCart(t, router, http.MethodPost, "/api/cart/items", "sess-1", dto.CartAddRequest{ProductID: "prod-1", Qty: 2})
	doCart(t, router, http.MethodPost, "/api/wishlist", "sess-1", dto.WishlistToggleRequest{ProductID: "prod-1"})

	rec := doCart(t, router, http.MethodDelete, "/api/cart", "sess-1", nil)

	var response dto.CartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 0, response.Count)

	// wishlist survives a cart clear
	rec = doCart(t, router, http.MethodGet, "/api/wishlist", "sess-1", nil)
	var wishlist dto.WishlistResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wishlist))
	assert.Equal(t, 1, wishlist.Count)
}

func TestCartHandler_WishlistToggle(t *testing.T) {
	repo := storage.NewMockRepository()
	seedCatalog(repo)
	router := cartRouter(repo)

	rec := doCart(t, router, http.MethodPost, "/api/wishlist", "sess-1", dto.WishlistToggleRequest{ProductID: "prod-1"})
	var wishlist dto.WishlistResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wishlist))
	assert.Equal(t, 1, wishlist.Count)

	// second toggle removes
	rec = doCart(t, router, http.MethodPost, "/api/wishlist", "sess-1", dto.WishlistToggleRequest{ProductID: "prod-1"})
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&wishlist))
	assert.Equal(t, 0, wishlist.Count)
}
