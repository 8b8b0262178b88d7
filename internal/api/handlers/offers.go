package handlers

import (
	"net/http"
	"time"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

// OffersHandler handles promotional offer requests.
type OffersHandler struct {
	*Base
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(repo storage.Repository) *OffersHandler {
	return &OffersHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/offers - returns the offer snapshot. With
// ?live=true only offers currently in their active window are returned.
func (h *OffersHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.repo.ListOffers(r.Context())
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	liveOnly := ParseBoolParam(r, "live", false)
	now := time.Now()

	response := dto.OfferListResponse{Offers: []dto.OfferResponse{}}
	for i := range offers {
		if liveOnly {
			if !pricing.IsLive(offers[i].Pricing(), now) {
				continue
			}
		}
		response.Offers = append(response.Offers, toOfferResponse(&offers[i]))
	}
	response.Count = len(response.Offers)

	h.WriteJSON(w, http.StatusOK, response)
}
