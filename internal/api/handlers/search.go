package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// defaultSearchLimit caps search results when the client does not ask for
// a specific limit.
const defaultSearchLimit = 20

// SearchHandler handles product search requests.
type SearchHandler struct {
	*Base
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(repo storage.Repository) *SearchHandler {
	return &SearchHandler{
		Base: NewBase(repo),
	}
}

// Search handles GET /api/search?q= - matches products by name or
// description in either language, with resolved pricing.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("query parameter 'q' is required"))
		return
	}

	limit := ParseIntParam(r, "limit", defaultSearchLimit)

	products, err := h.repo.SearchProducts(ctx, query, limit)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	offers, err := h.repo.ListOffers(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	now := time.Now()
	priced := storage.PricingOffers(offers)
	byID := offersByID(offers)

	response := dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for i := range products {
		quote := pricing.Resolve(products[i].Pricing(), priced, now)
		response.Products = append(response.Products, toProductResponse(&products[i], quote, byID))
	}
	response.Count = len(response.Products)

	h.WriteJSON(w, http.StatusOK, response)
}
