package handlers

import (
	"net/http"

	"github.com/nilecart/storefront-backend/internal/api/dto"
	"github.com/nilecart/storefront-backend/internal/domain/shipping"
)

// ShippingHandler serves the shipping destination and fee table.
type ShippingHandler struct {
	*Base
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler() *ShippingHandler {
	return &ShippingHandler{Base: &Base{}}
}

// List handles GET /api/shipping.
func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	governorates := shipping.All()

	response := dto.ShippingResponse{
		Currency:     shipping.DefaultCurrency,
		Governorates: make([]dto.GovernorateResponse, 0, len(governorates)),
	}
	for _, g := range governorates {
		response.Governorates = append(response.Governorates, dto.GovernorateResponse{
			Key:    g.Key,
			NameAR: g.NameAR,
			NameEN: g.NameEN,
			Fee:    g.Fee.InexactFloat64(),
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}
