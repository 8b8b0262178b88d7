package handlers

import (
	"net/http"
	"time"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// SpecialsHandler serves the specials listing: every purchasable product
// that currently has a live applicable offer, with its resolved discount.
type SpecialsHandler struct {
	*Base
}

// NewSpecialsHandler creates a new specials handler.
func NewSpecialsHandler(repo storage.Repository) *SpecialsHandler {
	return &SpecialsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/specials.
func (h *SpecialsHandler) List(w http.ResponseWriter, r *http.Request) {
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

	limit := ParseIntParam(r, "limit", 0)
	now := time.Now()
	priced := storage.PricingOffers(offers)
	byID := offersByID(offers)

	response := dto.ProductListResponse{Products: []dto.ProductResponse{}}
	for i := range products {
		p := &products[i]
		if !p.Purchasable() {
			continue
		}
		quote := pricing.Resolve(p.Pricing(), priced, now)
		if quote.SelectedOffer == nil {
			continue
		}
		response.Products = append(response.Products, toProductResponse(p, quote, byID))
		if limit > 0 && len(response.Products) >= limit {
			break
		}
	}
	response.Count = len(response.Products)

	h.WriteJSON(w, http.StatusOK, response)
}
