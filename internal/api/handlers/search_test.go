package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/api/handlers"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

func TestSearchHandler_Search(t *testing.T) {
	t.Run("requires a query", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := handlers.NewSearchHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("matches by name in either language", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedCatalog(repo)
		handler := handlers.NewSearchHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=olive", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ProductListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 1, response.Count)
		assert.Equal(t, "prod-1", response.Products[0].ID)
	})

	t.Run("returns empty list for no matches", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedCatalog(repo)
		handler := handlers.NewSearchHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=zzzzz", nil)
		rec := httptest.NewRecorder()

		handler.Search(rec, req)

		var response dto.ProductListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 0, response.Count)
	})
}
