package handlers

import (
	"net/http"
	"time"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// defaultDealLimit caps the deals listing.
const defaultDealLimit = 10

// DealsHandler serves the deal-of-the-week selection: purchasable products
// promoted by a broad (category or store-wide) offer. Products that carry
// their own live product-scoped offer are excluded, those already have a
// dedicated promotion surface.
type DealsHandler struct {
	*Base
}

// NewDealsHandler creates a new deals handler.
func NewDealsHandler(repo storage.Repository) *DealsHandler {
	return &DealsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/deals.
func (h *DealsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	offers, err := h.repo.ListOffers(ctx)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	limit := ParseIntParam(r, "limit", defaultDealLimit)
	now := time.Now()
	priced := storage.PricingOffers(offers)
	byID := offersByID(offers)

	response := dto.DealListResponse{Deals: []dto.DealResponse{}}
	for i := range products {
		p := &products[i]
		if !p.Purchasable() {
			continue
		}
		deal := pricing.DealOffer(p.Pricing(), priced, now)
		if deal == nil {
			continue
		}
		record, ok := byID[deal.ID]
		if !ok {
			continue
		}
		quote := pricing.Resolve(p.Pricing(), priced, now)
		response.Deals = append(response.Deals, dto.DealResponse{
			Product: toProductResponse(p, quote, byID),
			Offer:   toOfferResponse(record),
		})
		if limit > 0 && len(response.Deals) >= limit {
			break
		}
	}
	response.Count = len(response.Deals)

	h.WriteJSON(w, http.StatusOK, response)
}
